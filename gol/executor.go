package gol

import "uk.ac.bris.cs/golengine/util"

// Executor advances a world by one turn. The distributor uses a WorkerPool unless a
// RemoteExecutor is configured; both must produce the same worlds and flipped cells.
type Executor interface {
	NextTurn(world World) (World, []util.Cell, error)
	AliveCount(world World) (int, error)
	Shutdown() error
}

var (
	_ Executor = (*WorkerPool)(nil)
	_ Executor = (*RemoteExecutor)(nil)
)
