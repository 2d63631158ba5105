package sdl

import (
	"github.com/sirupsen/logrus"

	"uk.ac.bris.cs/golengine/gol"
	"uk.ac.bris.cs/golengine/util"
)

// eventLogger logs the events a user reads and ignores the ones only a window can show.
type eventLogger struct {
	log      *logrus.Entry
	avgTurns *util.AvgTurns
}

func newEventLogger(log logrus.FieldLogger) *eventLogger {
	return &eventLogger{log: util.Target(log, "Event"), avgTurns: util.NewAvgTurns()}
}

func (l *eventLogger) AliveCellsCount(e gol.AliveCellsCount) {
	l.log.WithField("turn", e.CompletedTurns).Infof("%v Avg%5d turns/s", e, l.avgTurns.Get(e.CompletedTurns))
}

func (l *eventLogger) ImageOutputComplete(e gol.ImageOutputComplete) {
	l.log.WithField("turn", e.CompletedTurns).Info(e)
}

func (l *eventLogger) StateChange(e gol.StateChange) {
	l.log.WithField("turn", e.CompletedTurns).Info(e)
}

func (l *eventLogger) CellFlipped(gol.CellFlipped) {}

func (l *eventLogger) CellsFlipped(gol.CellsFlipped) {}

func (l *eventLogger) TurnComplete(gol.TurnComplete) {}

func (l *eventLogger) FinalTurnComplete(e gol.FinalTurnComplete) {
	l.log.WithField("turn", e.CompletedTurns).Info(e)
}

// RunHeadless logs events until the run closes the channel.
func RunHeadless(events <-chan gol.Event, log logrus.FieldLogger) {
	logger := newEventLogger(log)
	for event := range events {
		event.Visit(logger)
	}
}
