package gol

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type distributorChannels struct {
	events     chan<- Event
	keyPresses <-chan rune
	io         *ioGateway
}

// distributor owns the world and the turn counter, runs the turns and applies key presses
// between them.
type distributor struct {
	ctx      context.Context
	p        Params
	c        distributorChannels
	executor Executor
	interval time.Duration
	log      *logrus.Entry

	world          World
	completedTurns int
	state          State
	// detached is set once the event consumer has gone away; no more events are sent.
	detached bool
	// shutdownExecutor asks the executor to shut down when quitting ('k').
	shutdownExecutor bool
}

func inputFilename(p Params) string {
	return fmt.Sprintf("%dx%d", p.ImageWidth, p.ImageHeight)
}

func outputFilename(p Params, completedTurns int) string {
	return fmt.Sprintf("%dx%dx%d", p.ImageWidth, p.ImageHeight, completedTurns)
}

// run loads the initial world, executes the turns and finishes with the quit sequence.
func (d *distributor) run() error {
	world, err := d.c.io.load(inputFilename(d.p), d.p.ImageWidth, d.p.ImageHeight)
	if err != nil {
		return err
	}
	d.world = world

	if aliveCells := world.AliveCells(); len(aliveCells) > 0 {
		d.emit(CellsFlipped{CompletedTurns: 0, Cells: aliveCells})
	}
	d.setState(Executing)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for d.state != Quitting && d.completedTurns < d.p.Turns {
		if err := d.executeTurn(); err != nil {
			return err
		}

		select {
		case <-ticker.C:
			if err := d.reportAliveCells(); err != nil {
				return err
			}
		default:
		}

		// Reaching the last turn quits; keys still queued are not applied.
		if d.completedTurns >= d.p.Turns {
			break
		}
		if err := d.handleKeyPresses(ticker); err != nil {
			return err
		}
	}
	return d.quit()
}

// executeTurn computes one turn and publishes its flipped cells before the TurnComplete.
func (d *distributor) executeTurn() error {
	start := time.Now()
	newWorld, flipped, err := d.executor.NextTurn(d.world)
	if err != nil {
		return err
	}
	d.world = newWorld
	d.completedTurns++
	d.log.WithFields(logrus.Fields{
		"turn":    d.completedTurns,
		"flipped": len(flipped),
		"elapsed": time.Since(start),
	}).Debug("Turn complete")

	if len(flipped) > 0 {
		d.emit(CellsFlipped{CompletedTurns: d.completedTurns, Cells: flipped})
	}
	d.emit(TurnComplete{CompletedTurns: d.completedTurns})
	return nil
}

func (d *distributor) reportAliveCells() error {
	count, err := d.executor.AliveCount(d.world)
	if err != nil {
		return err
	}
	d.emit(AliveCellsCount{CompletedTurns: d.completedTurns, CellsCount: count})
	return nil
}

// handleKeyPresses applies every pending key press. While paused it blocks for the next
// one, so it only returns once execution resumes or the run is quitting.
func (d *distributor) handleKeyPresses(ticker *time.Ticker) error {
	for d.state != Quitting {
		var key rune
		var ok bool
		if d.state == Paused {
			select {
			case key, ok = <-d.c.keyPresses:
			case <-d.ctx.Done():
				d.detach()
				return nil
			}
		} else {
			select {
			case key, ok = <-d.c.keyPresses:
			case <-d.ctx.Done():
				d.detach()
				return nil
			default:
				return nil
			}
		}

		if !ok {
			d.log.WithError(ErrChannelClosed).Warn("Key presses closed, quitting")
			d.state = Quitting
			return nil
		}
		if err := d.handleKeyPress(key, ticker); err != nil {
			return err
		}
	}
	return nil
}

func (d *distributor) handleKeyPress(key rune, ticker *time.Ticker) error {
	switch key {
	case 'p':
		if d.state == Paused {
			ticker.Reset(d.interval)
			d.setState(Executing)
		} else {
			d.setState(Paused)
		}
	case 's':
		return d.outputImage()
	case 'q':
		d.state = Quitting
	case 'k':
		d.shutdownExecutor = true
		d.state = Quitting
	default:
		d.log.WithField("key", string(key)).Debug("Ignoring key press")
	}
	return nil
}

// outputImage saves the current world and reports it once the file is flushed.
func (d *distributor) outputImage() error {
	filename := outputFilename(d.p, d.completedTurns)
	if err := d.c.io.save(filename, d.world); err != nil {
		return err
	}
	d.emit(ImageOutputComplete{CompletedTurns: d.completedTurns, Filename: filename})
	return nil
}

// quit saves the final world, reports it and waits for the io goroutine to go idle
// before announcing Quitting.
func (d *distributor) quit() error {
	if err := d.outputImage(); err != nil {
		return err
	}
	if d.shutdownExecutor {
		if err := d.executor.Shutdown(); err != nil {
			d.log.WithError(err).Warn("Executor did not shut down cleanly")
		}
	}
	d.emit(FinalTurnComplete{CompletedTurns: d.completedTurns, Alive: d.world.AliveCells()})

	if err := d.c.io.checkIdle(); err != nil {
		return err
	}
	d.setState(Quitting)
	return nil
}

func (d *distributor) setState(state State) {
	if d.detached {
		return
	}
	d.state = state
	d.log.WithField("turn", d.completedTurns).Info(state)
	d.emit(StateChange{CompletedTurns: d.completedTurns, NewState: state})
}

// emit sends an event, giving up if the run's context is cancelled while the consumer is
// not keeping up.
func (d *distributor) emit(event Event) {
	if d.detached {
		return
	}
	select {
	case d.c.events <- event:
	case <-d.ctx.Done():
		d.detach()
	}
}

// detach treats a departed event consumer as a quit request.
func (d *distributor) detach() {
	if !d.detached {
		d.log.WithError(ErrChannelClosed).Warn("Event consumer gone, quitting")
	}
	d.detached = true
	d.state = Quitting
}
