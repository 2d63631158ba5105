package gol

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"uk.ac.bris.cs/golengine/util"
)

// band is the half-open row range [startY, endY) one worker computes.
type band struct {
	startY, endY int
}

// splitBands divides height rows into at most threads contiguous bands. Sizes differ by at
// most one row and the first bands take the remainder. Empty bands are left out.
func splitBands(height, threads int) []band {
	bands := make([]band, 0, min(threads, height))
	heightPerThread := height / threads
	remainder := height % threads
	startY := 0
	for i := 0; i < threads; i++ {
		rows := heightPerThread
		if i < remainder {
			rows++
		}
		if rows == 0 {
			break
		}
		bands = append(bands, band{startY: startY, endY: startY + rows})
		startY += rows
	}
	return bands
}

type bandResult struct {
	rows    [][]byte
	flipped []util.Cell
}

// calculateNextState computes the next rows of one band and the cells that flipped in it.
func calculateNextState(view haloView, width int) bandResult {
	height := view.height()
	newRows := make([][]byte, height)
	var flipped []util.Cell
	for y := 0; y < height; y++ {
		newRows[y] = make([]byte, width)
		for x := 0; x < width; x++ {
			cell := view.cell(y, x)
			newCell := nextState(cell, view.liveNeighbors(y, x, width))
			newRows[y][x] = newCell
			if newCell != cell {
				flipped = append(flipped, util.Cell{X: x, Y: view.startY + y})
			}
		}
	}
	return bandResult{rows: newRows, flipped: flipped}
}

// WorkerPool computes turns locally, splitting the world into one band per worker.
type WorkerPool struct {
	threads int
}

func NewWorkerPool(threads int) *WorkerPool {
	if threads < 1 {
		threads = 1
	}
	return &WorkerPool{threads: threads}
}

// NextTurn computes the next world and the flipped cells in row-major order. Every worker
// has returned before NextTurn does; if any of them fails no part of the turn is returned.
func (wp *WorkerPool) NextTurn(world World) (World, []util.Cell, error) {
	width := world.Width()
	bands := splitBands(world.Height(), wp.threads)
	results := make([]bandResult, len(bands))

	var g errgroup.Group
	g.SetLimit(wp.threads)
	for i, b := range bands {
		i, b := i, b
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: rows %d-%d: %v", ErrTurnComputationFailed, b.startY, b.endY, r)
				}
			}()
			results[i] = calculateNextState(newHaloView(world, b.startY, b.endY), width)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	newWorld := make(World, 0, world.Height())
	var flipped []util.Cell
	for _, result := range results {
		newWorld = append(newWorld, result.rows...)
		flipped = append(flipped, result.flipped...)
	}
	return newWorld, flipped, nil
}

func (wp *WorkerPool) AliveCount(world World) (int, error) {
	return world.AliveCount(), nil
}

// Shutdown is a no-op: pool workers never outlive a turn.
func (wp *WorkerPool) Shutdown() error {
	return nil
}
