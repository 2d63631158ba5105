package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"

	"github.com/sirupsen/logrus"

	"uk.ac.bris.cs/golengine/gol"
	"uk.ac.bris.cs/golengine/sdl"
	"uk.ac.bris.cs/golengine/util"
)

// main is the function called when starting Game of Life with 'go run .'
func main() {
	runtime.LockOSThread()
	var params gol.Params

	flag.IntVar(
		&params.Threads,
		"t",
		8,
		"Specify the number of worker threads to use. Defaults to 8.")

	flag.IntVar(
		&params.ImageWidth,
		"w",
		512,
		"Specify the width of the image. Defaults to 512.")

	flag.IntVar(
		&params.ImageHeight,
		"h",
		512,
		"Specify the height of the image. Defaults to 512.")

	flag.IntVar(
		&params.Turns,
		"turns",
		10000000,
		"Specify the number of turns to process. Defaults to 10000000.")

	fps := flag.Int(
		"fps",
		60,
		"Specify the FPS of the SDL window. Defaults to 60.")

	headless := flag.Bool(
		"headless",
		false,
		"Disables the SDL window, so there is no visualisation during the tests.")

	server := flag.String(
		"server",
		"",
		"Address of a broker to run the turns on. Runs locally when empty.")

	logLevel := flag.String(
		"log-level",
		"info",
		"Log level: debug, info, warn or error.")

	flag.Parse()

	log, err := util.NewLogger(*logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Bad log level")
	}
	mainLog := util.Target(log, "Main")
	mainLog.Infof("%-10v %v", "Threads", params.Threads)
	mainLog.Infof("%-10v %v", "Width", params.ImageWidth)
	mainLog.Infof("%-10v %v", "Height", params.ImageHeight)
	mainLog.Infof("%-10v %v", "Turns", params.Turns)

	keyPresses := make(chan rune, 10)
	events := make(chan gol.Event, 1000)

	rc := gol.RunContext{
		Params:     params,
		Events:     events,
		KeyPresses: keyPresses,
		Log:        log,
	}
	if *server != "" {
		remote, err := gol.DialRemote(*server, params.Threads, log)
		if err != nil {
			mainLog.WithError(err).Fatal("Cannot use broker")
		}
		defer remote.Close()
		rc.Executor = remote
	}

	go sigint(keyPresses)

	done := make(chan error, 1)
	go func() {
		done <- gol.RunWith(context.Background(), rc)
	}()

	if *headless {
		sdl.RunHeadless(events, log)
	} else if err := sdl.Run(params, *fps, events, keyPresses, log); err != nil {
		mainLog.WithError(err).Error("Window failed, continuing headless")
		sdl.RunHeadless(events, log)
	}

	if err := <-done; err != nil {
		mainLog.WithError(err).Error("Game of Life failed")
		os.Exit(1)
	}
}

// sigint turns Ctrl+C into a quit key press.
func sigint(keyPresses chan<- rune) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	keyPresses <- 'q'
}
