package gol

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"uk.ac.bris.cs/golengine/util"
)

// Params provides the details of how to run the Game of Life and which image to load.
type Params struct {
	Turns       int
	Threads     int
	ImageWidth  int
	ImageHeight int
}

// Validate rejects parameters a run cannot start with.
func (p Params) Validate() error {
	switch {
	case p.Threads < 1:
		return fmt.Errorf("%w: need at least one worker, got %d", ErrConfiguration, p.Threads)
	case p.ImageWidth < 1 || p.ImageHeight < 1:
		return fmt.Errorf("%w: image must be at least 1x1, got %dx%d", ErrConfiguration, p.ImageWidth, p.ImageHeight)
	case p.Turns < 0:
		return fmt.Errorf("%w: turns must not be negative, got %d", ErrConfiguration, p.Turns)
	}
	return nil
}

const (
	defaultImageDir      = "images"
	defaultOutDir        = "out"
	defaultAliveInterval = 2 * time.Second
)

// RunContext is everything a run needs. Zero fields take the defaults: a local
// WorkerPool, images/ and out/, a 2 second alive cells interval and an info level logger.
type RunContext struct {
	Params     Params
	Events     chan<- Event
	KeyPresses <-chan rune

	Log           logrus.FieldLogger
	Executor      Executor
	ImageDir      string
	OutDir        string
	AliveInterval time.Duration
}

func (rc *RunContext) setDefaults() {
	if rc.Log == nil {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		rc.Log = log
	}
	if rc.Executor == nil {
		rc.Executor = NewWorkerPool(rc.Params.Threads)
	}
	if rc.ImageDir == "" {
		rc.ImageDir = defaultImageDir
	}
	if rc.OutDir == "" {
		rc.OutDir = defaultOutDir
	}
	if rc.AliveInterval <= 0 {
		rc.AliveInterval = defaultAliveInterval
	}
}

// Run starts the processing of Game of Life with the default RunContext.
// It closes events when it returns.
func Run(p Params, events chan<- Event, keyPresses <-chan rune) error {
	return RunWith(context.Background(), RunContext{Params: p, Events: events, KeyPresses: keyPresses})
}

// RunWith runs the Game of Life described by rc until the turns are done or the run is
// quit. Cancelling ctx means the event consumer has gone: the run stops sending events,
// saves the world and returns. The events channel is closed on return.
func RunWith(ctx context.Context, rc RunContext) error {
	if rc.Events != nil {
		defer close(rc.Events)
	}
	if rc.Events == nil {
		return fmt.Errorf("%w: no events channel", ErrConfiguration)
	}
	if err := rc.Params.Validate(); err != nil {
		return err
	}
	rc.setDefaults()
	log := util.Target(rc.Log, "Distributor")

	io := newIoGateway(rc.Params, rc.ImageDir, rc.OutDir, util.Target(rc.Log, "IO"))
	defer io.close()

	d := distributor{
		ctx: ctx,
		p:   rc.Params,
		c: distributorChannels{
			events:     rc.Events,
			keyPresses: rc.KeyPresses,
			io:         io,
		},
		executor: rc.Executor,
		interval: rc.AliveInterval,
		log:      log,
	}
	if err := d.run(); err != nil {
		log.WithError(err).Error("Run failed")
		return err
	}
	return nil
}
