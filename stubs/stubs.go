package stubs

import "uk.ac.bris.cs/golengine/util"

var PushWorld = "Broker.PushWorld"
var NextTurn = "Broker.NextTurn"
var Shutdown = "Broker.Shutdown"

// World is a cell plane in the pgm encoding: row-major, one byte per cell, 255 alive.
type World struct {
	Width      int
	Height     int
	CellValues []byte
}

type AliveCellsCount struct {
	CellsCount int
}

type TurnRequest struct {
	World   World
	Threads int
}

type TurnResponse struct {
	World   World
	Flipped []util.Cell
}
