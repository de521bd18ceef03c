/*
Viewer for the tinyrender software rasterizer. It draws one model,
either in a window or once into an image file with -headless.
*/
package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tinyrender/engine"
	"github.com/spaghettifunk/tinyrender/engine/core"
	"github.com/spaghettifunk/tinyrender/engine/platform"
	"github.com/spaghettifunk/tinyrender/testbed"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	headless := flag.Bool("headless", false, "render a single frame to -out instead of opening a window")
	out := flag.String("out", "output.png", "image written in headless mode (.png or .tga)")
	model := flag.String("model", "", "model to draw, overrides the configuration")
	flag.Parse()

	config := engine.DefaultConfig()
	if *configPath != "" {
		c, err := engine.LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("%s", err)
		}
		config = c
	}
	if *model != "" {
		config.Model = *model
	}

	var presenter engine.Presenter
	if *headless {
		config.HotReload = false
		hp, err := engine.NewHeadlessPresenter(*out)
		if err != nil {
			core.LogFatal("%s", err)
		}
		presenter = hp
	} else {
		presenter = platform.New(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight)
	}

	tb := testbed.NewTestGame(config)

	engine, err := engine.New(tb.Game, presenter)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := engine.Initialize(); err != nil {
		engine.Shutdown()
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// The frame loop runs on the main thread; a signal asks it to stop.
	go func() {
		<-sigCh
		engine.RequestQuit()
	}()

	// run engine
	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
	if runErr != nil && !errors.Is(runErr, core.ErrApplicationQuit) {
		core.LogFatal("%s", runErr)
	}
}
