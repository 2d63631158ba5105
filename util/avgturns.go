package util

import (
	"math"
	"time"
)

const avgTurnsWindow = 3

// AvgTurns smooths the turns per second figure over the last few reports.
type AvgTurns struct {
	count              int
	lastCompletedTurns int
	lastCalled         time.Time
	bufTurns           [avgTurnsWindow]int
	bufDurations       [avgTurnsWindow]time.Duration
}

func NewAvgTurns() *AvgTurns {
	return &AvgTurns{lastCalled: time.Now()}
}

// Get records a report at completedTurns and returns the average turns per second.
func (a *AvgTurns) Get(completedTurns int) int {
	return a.get(completedTurns, time.Now())
}

func (a *AvgTurns) get(completedTurns int, now time.Time) int {
	a.bufTurns[a.count%avgTurnsWindow] = completedTurns - a.lastCompletedTurns
	a.bufDurations[a.count%avgTurnsWindow] = now.Sub(a.lastCalled)
	a.lastCalled = now
	a.lastCompletedTurns = completedTurns
	a.count++

	turns := 0
	for _, t := range a.bufTurns {
		turns += t
	}
	seconds := 0
	for _, d := range a.bufDurations {
		seconds += int(math.Round(d.Seconds()))
	}
	if seconds < 1 {
		seconds = 1
	}
	return turns / seconds
}
