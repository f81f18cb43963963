package queues

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/driver"
)

type presentSupport map[int]bool

func (p presentSupport) SupportsPresent(family int) (bool, error) {
	return p[family], nil
}

type failingTarget struct{}

func (failingTarget) SupportsPresent(family int) (bool, error) {
	return false, errors.New("surface lost")
}

func families(flags ...driver.QueueFlags) []driver.QueueFamilyProperties {
	var props []driver.QueueFamilyProperties
	for _, f := range flags {
		props = append(props, driver.QueueFamilyProperties{Flags: f, QueueCount: 16})
	}
	return props
}

func TestResolveSameFamily(t *testing.T) {
	assignment, err := Resolve(
		families(driver.QueueGraphics|driver.QueueCompute, driver.QueueTransfer),
		presentSupport{0: true})
	require.NoError(t, err)
	assert.Equal(t, Assignment{GraphicsFamily: 0, PresentFamily: 0}, assignment)
	assert.True(t, assignment.Shared())
}

func TestResolveScansIndependently(t *testing.T) {
	assignment, err := Resolve(
		families(driver.QueueCompute, driver.QueueGraphics, driver.QueueGraphics, driver.QueueTransfer),
		presentSupport{2: true, 3: true})
	require.NoError(t, err)
	assert.Equal(t, 1, assignment.GraphicsFamily)
	assert.Equal(t, 2, assignment.PresentFamily)
	assert.False(t, assignment.Shared())
}

func TestResolveMissingPresent(t *testing.T) {
	_, err := Resolve(families(driver.QueueGraphics), presentSupport{})

	var resolution *QueueResolutionError
	require.True(t, errors.As(err, &resolution))
	assert.Equal(t, RolePresent, resolution.Missing)
	assert.Equal(t, "can not find queue family for present", err.Error())
}

func TestResolveMissingGraphics(t *testing.T) {
	_, err := Resolve(families(driver.QueueCompute), presentSupport{0: true})

	var resolution *QueueResolutionError
	require.True(t, errors.As(err, &resolution))
	assert.Equal(t, RoleGraphics, resolution.Missing)
}

func TestResolveMissingBoth(t *testing.T) {
	_, err := Resolve(families(driver.QueueTransfer), presentSupport{})

	var resolution *QueueResolutionError
	require.True(t, errors.As(err, &resolution))
	assert.Equal(t, RoleGraphics|RolePresent, resolution.Missing)
	assert.Equal(t, "graphics+present", resolution.Missing.String())
}

func TestResolveNoFamilies(t *testing.T) {
	_, err := Resolve(nil, presentSupport{})

	var resolution *QueueResolutionError
	require.True(t, errors.As(err, &resolution))
	assert.Equal(t, RoleGraphics|RolePresent, resolution.Missing)
}

func TestResolvePropagatesHostErrors(t *testing.T) {
	_, err := Resolve(families(driver.QueueGraphics), failingTarget{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface lost")

	var resolution *QueueResolutionError
	assert.False(t, errors.As(err, &resolution))
}

func TestSharingMode(t *testing.T) {
	mode, indices := Assignment{GraphicsFamily: 0, PresentFamily: 1}.SharingMode()
	assert.Equal(t, driver.SharingModeConcurrent, mode)
	assert.Equal(t, []int{0, 1}, indices)

	mode, indices = Assignment{GraphicsFamily: 2, PresentFamily: 2}.SharingMode()
	assert.Equal(t, driver.SharingModeExclusive, mode)
	assert.Empty(t, indices)
}

func TestPlanDistinctFamilies(t *testing.T) {
	infos, ordinals := Plan(Assignment{GraphicsFamily: 0, PresentFamily: 1}, families(driver.QueueGraphics, driver.QueueTransfer))

	require.Len(t, infos, 2)
	assert.Equal(t, 0, infos[0].FamilyIndex)
	assert.Equal(t, []float32{1.0}, infos[0].Priorities)
	assert.Equal(t, 1, infos[1].FamilyIndex)
	assert.Equal(t, []float32{1.0}, infos[1].Priorities)
	assert.Equal(t, Ordinals{Graphics: 0, Present: 0}, ordinals)
}

func TestPlanSharedFamily(t *testing.T) {
	infos, ordinals := Plan(Assignment{GraphicsFamily: 0, PresentFamily: 0}, families(driver.QueueGraphics))

	require.Len(t, infos, 1)
	assert.Equal(t, 0, infos[0].FamilyIndex)
	assert.Equal(t, 2, infos[0].Count())
	assert.Equal(t, []float32{1.0, 1.0}, infos[0].Priorities)
	assert.Equal(t, Ordinals{Graphics: 0, Present: 1}, ordinals)
}

func TestPlanSharedFamilyWithSingleQueue(t *testing.T) {
	single := []driver.QueueFamilyProperties{{Flags: driver.QueueGraphics, QueueCount: 1}}
	infos, ordinals := Plan(Assignment{GraphicsFamily: 0, PresentFamily: 0}, single)

	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Count())
	assert.Equal(t, Ordinals{Graphics: 0, Present: 0}, ordinals)
}

func TestPlanOrdersByRole(t *testing.T) {
	infos, _ := Plan(Assignment{GraphicsFamily: 3, PresentFamily: 1}, families(0, 0, 0, driver.QueueGraphics))

	require.Len(t, infos, 2)
	assert.Equal(t, 3, infos[0].FamilyIndex)
	assert.Equal(t, 1, infos[1].FamilyIndex)
}
