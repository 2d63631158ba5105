package gol

import (
	"fmt"

	"uk.ac.bris.cs/golengine/util"
)

// Event represents any Game of Life event that needs to be communicated to the user.
// The set of events is closed: every event implements Visit, so a consumer written
// as an EventHandler stops compiling when a new event is added.
type Event interface {
	fmt.Stringer
	GetCompletedTurns() int
	Visit(h EventHandler)
}

// EventHandler has one method per event type.
type EventHandler interface {
	AliveCellsCount(e AliveCellsCount)
	ImageOutputComplete(e ImageOutputComplete)
	StateChange(e StateChange)
	CellFlipped(e CellFlipped)
	CellsFlipped(e CellsFlipped)
	TurnComplete(e TurnComplete)
	FinalTurnComplete(e FinalTurnComplete)
}

// State represents a change in the state of execution.
type State int

const (
	Paused State = iota
	Executing
	Quitting
)

func (state State) String() string {
	switch state {
	case Paused:
		return "Paused"
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// AliveCellsCount is an Event notifying the user about the number of currently alive cells.
// It is sent roughly every 2 seconds, at a turn boundary.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// ImageOutputComplete is an Event notifying the user about the completion of output.
// It is sent after every image has been saved and flushed.
type ImageOutputComplete struct {
	CompletedTurns int
	Filename       string
}

// StateChange is an Event notifying the user about the change of state of execution.
// It is sent every time the execution is paused, resumed or quit.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// CellFlipped is an Event notifying the GUI about a change of state of a single cell.
type CellFlipped struct {
	CompletedTurns int
	Cell           util.Cell
}

// CellsFlipped is an Event notifying the GUI about a change of state of many cells.
// The distributor sends one per turn, always before that turn's TurnComplete.
type CellsFlipped struct {
	CompletedTurns int
	Cells          []util.Cell
}

// TurnComplete is an Event notifying the GUI about turn completion.
// SDL will render a frame when this event is sent.
type TurnComplete struct {
	CompletedTurns int
}

// FinalTurnComplete is an Event notifying the testing framework about the new world state after execution finished.
// SDL closes the window when this Event is sent.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []util.Cell
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %v", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int { return event.CompletedTurns }

func (event AliveCellsCount) Visit(h EventHandler) { h.AliveCellsCount(event) }

func (event ImageOutputComplete) String() string {
	return fmt.Sprintf("File %v Output Done", event.Filename)
}

func (event ImageOutputComplete) GetCompletedTurns() int { return event.CompletedTurns }

func (event ImageOutputComplete) Visit(h EventHandler) { h.ImageOutputComplete(event) }

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int { return event.CompletedTurns }

func (event StateChange) Visit(h EventHandler) { h.StateChange(event) }

func (event CellFlipped) String() string {
	return ""
}

func (event CellFlipped) GetCompletedTurns() int { return event.CompletedTurns }

func (event CellFlipped) Visit(h EventHandler) { h.CellFlipped(event) }

func (event CellsFlipped) String() string {
	return ""
}

func (event CellsFlipped) GetCompletedTurns() int { return event.CompletedTurns }

func (event CellsFlipped) Visit(h EventHandler) { h.CellsFlipped(event) }

func (event TurnComplete) String() string {
	return ""
}

func (event TurnComplete) GetCompletedTurns() int { return event.CompletedTurns }

func (event TurnComplete) Visit(h EventHandler) { h.TurnComplete(event) }

func (event FinalTurnComplete) String() string {
	return fmt.Sprintf("Final Turn %v, %v Alive Cells", event.CompletedTurns, len(event.Alive))
}

func (event FinalTurnComplete) GetCompletedTurns() int { return event.CompletedTurns }

func (event FinalTurnComplete) Visit(h EventHandler) { h.FinalTurnComplete(event) }
