package gol

import (
	"fmt"
	"math"

	"uk.ac.bris.cs/golengine/util"
)

const (
	alive byte = 255
	dead  byte = 0
)

// World is the toroidal grid of cells, indexed world[y][x]. A cell is alive when it holds 255.
type World [][]byte

// initialise world
func initWorld(height, width int) World {
	world := make(World, height)
	for i := range world {
		world[i] = make([]byte, width)
	}
	return world
}

// WorldFromBytes rebuilds a world from a row-major cell plane. Both dimensions must be
// positive.
func WorldFromBytes(width, height int, cells []byte) (World, error) {
	if width < 1 || height < 1 || width > math.MaxInt/height {
		return nil, fmt.Errorf("invalid world dimensions %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("a %dx%d world needs %d cells, got %d", width, height, width*height, len(cells))
	}
	world := initWorld(height, width)
	for y := range world {
		for x := range world[y] {
			world[y][x] = cellValue(cells[y*width+x])
		}
	}
	return world, nil
}

func (world World) Height() int {
	return len(world)
}

func (world World) Width() int {
	if len(world) == 0 {
		return 0
	}
	return len(world[0])
}

// Bytes flattens the world into a row-major cell plane, the encoding used by pgm files and RPC.
func (world World) Bytes() []byte {
	cells := make([]byte, 0, world.Width()*world.Height())
	for _, row := range world {
		cells = append(cells, row...)
	}
	return cells
}

// AliveCells lists the alive cells in row-major order.
func (world World) AliveCells() []util.Cell {
	var aliveCells []util.Cell
	for row := range world {
		for col, cell := range world[row] {
			if cell == alive {
				aliveCells = append(aliveCells, util.Cell{X: col, Y: row})
			}
		}
	}
	return aliveCells
}

func (world World) AliveCount() int {
	count := 0
	for _, row := range world {
		for _, cell := range row {
			if cell == alive {
				count++
			}
		}
	}
	return count
}

// cellValue decodes a pixel. Anything other than 255 is dead.
func cellValue(b byte) byte {
	if b == alive {
		return alive
	}
	return dead
}

// countLiveNeighbors counts the alive cells among the 8 neighbours of (col, row),
// wrapping around the edges of a rows x cols torus.
func countLiveNeighbors(world [][]byte, row, col, rows, cols int) int {
	neighbors := [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	liveNeighbors := 0
	for _, n := range neighbors {
		newRow := (row + n[0] + rows) % rows
		newCol := (col + n[1] + cols) % cols
		if world[newRow][newCol] == alive {
			liveNeighbors++
		}
	}
	return liveNeighbors
}

// nextState applies the Game of Life rules to a single cell.
func nextState(cell byte, liveNeighbors int) byte {
	if cell == alive {
		if liveNeighbors == 2 || liveNeighbors == 3 {
			return alive
		}
		return dead
	}
	if liveNeighbors == 3 {
		return alive
	}
	return dead
}
