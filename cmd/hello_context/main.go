package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/config"
	"github.com/vkngwrapper/bootstrap/lifecycle"
	"github.com/vkngwrapper/bootstrap/vkhost"
)

type HelloContextApplication struct {
	settings   config.Settings
	controller *lifecycle.Controller
	context    *lifecycle.Context
}

func (app *HelloContextApplication) Run() error {
	cfg, err := app.settings.Lifecycle(log.Default())
	if err != nil {
		return err
	}

	window := app.settings.Window
	app.controller, app.context, err = lifecycle.Open(vkhost.Platform{}, cfg, window.Width, window.Height, window.Title)
	if err != nil {
		return err
	}
	defer app.controller.Close()

	log.Printf("context %s: %s, %d images at %dx%d", app.context.ID, app.context.Selected.Adapter,
		app.context.ImageCount, app.context.Extent.Width, app.context.Extent.Height)

	return app.mainLoop()
}

func (app *HelloContextApplication) mainLoop() error {
appLoop:
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				break appLoop
			case *sdl.KeyboardEvent:
				if e.State == sdl.PRESSED {
					log.Println("press key!")
				}
			}
		}
		sdl.Delay(16)
	}

	return nil
}

func main() {
	runtime.LockOSThread()

	settingsFile := flag.String("config", "", "TOML settings file")
	diagnostics := flag.Bool("diagnostics", false, "enable validation layers and the debug messenger")
	flag.Parse()

	settings := config.Default()
	if *settingsFile != "" {
		var err error
		settings, err = config.Load(*settingsFile)
		if err != nil {
			log.Fatalf("%+v\n", err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "diagnostics" {
			settings.DiagnosticsEnabled = *diagnostics
		}
	})

	app := &HelloContextApplication{settings: settings}

	err := app.Run()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
