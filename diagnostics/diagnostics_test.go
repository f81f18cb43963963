package diagnostics

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverities(t *testing.T) {
	opts := Options{MinimumSeverity: SeverityWarning, Categories: AllCategories}

	flags := opts.Severities()
	assert.False(t, flags.Contains(SeverityVerbose))
	assert.False(t, flags.Contains(SeverityInfo))
	assert.True(t, flags.Contains(SeverityWarning))
	assert.True(t, flags.Contains(SeverityError))

	assert.Equal(t, SeverityFlags(0x1111), DefaultOptions().Severities())
}

func TestParse(t *testing.T) {
	severity, err := ParseSeverity("Warning")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, severity)

	category, err := ParseCategory("performance")
	require.NoError(t, err)
	assert.Equal(t, CategoryPerformance, category)

	_, err = ParseSeverity("fatal")
	assert.Error(t, err)
	_, err = ParseCategory("device address binding")
	assert.Error(t, err)
}

func TestLogHandler(t *testing.T) {
	var logs bytes.Buffer
	handler := LogHandler(log.New(&logs, "", 0), Options{
		MinimumSeverity: SeverityInfo,
		Categories:      CategoryFlags(CategoryValidation),
	})

	assert.False(t, handler(SeverityError, CategoryValidation, "invalid handle"))
	assert.False(t, handler(SeverityVerbose, CategoryValidation, "loader chatter"))
	assert.False(t, handler(SeverityError, CategoryPerformance, "slow path"))

	assert.Equal(t, "validation layer: (ERROR,VALIDATION) invalid handle\n", logs.String())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "OTHER", Severity(0x2).String())
	assert.Equal(t, "GENERAL|PERFORMANCE", (CategoryFlags(CategoryGeneral) | CategoryFlags(CategoryPerformance)).String())
	assert.Equal(t, "severity>=VERBOSE categories=GENERAL|VALIDATION|PERFORMANCE", DefaultOptions().String())
}
