package gol

import (
	"fmt"
	"net/rpc"

	"github.com/sirupsen/logrus"

	"uk.ac.bris.cs/golengine/stubs"
	"uk.ac.bris.cs/golengine/util"
)

// RemoteExecutor hands every turn to a broker over RPC.
type RemoteExecutor struct {
	client  *rpc.Client
	address string
	threads int
	log     *logrus.Entry
}

// DialRemote connects to the broker at address. threads is the worker count the broker
// should use for each turn.
func DialRemote(address string, threads int, log logrus.FieldLogger) (*RemoteExecutor, error) {
	client, err := rpc.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker %s: %w", address, err)
	}
	entry := util.Target(log, "Remote")
	entry.WithField("address", address).Info("Connected to broker")
	return &RemoteExecutor{client: client, address: address, threads: threads, log: entry}, nil
}

func toStub(world World) stubs.World {
	return stubs.World{Width: world.Width(), Height: world.Height(), CellValues: world.Bytes()}
}

func (r *RemoteExecutor) NextTurn(world World) (World, []util.Cell, error) {
	req := stubs.TurnRequest{World: toStub(world), Threads: r.threads}
	var res stubs.TurnResponse
	if err := r.client.Call(stubs.NextTurn, req, &res); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrTurnComputationFailed, r.address, err)
	}
	if res.World.Width != world.Width() || res.World.Height != world.Height() {
		return nil, nil, fmt.Errorf("%w: broker returned a %dx%d world for a %dx%d one",
			ErrTurnComputationFailed, res.World.Width, res.World.Height, world.Width(), world.Height())
	}
	newWorld, err := WorldFromBytes(res.World.Width, res.World.Height, res.World.CellValues)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTurnComputationFailed, err)
	}
	return newWorld, res.Flipped, nil
}

// AliveCount pushes the world to the broker and returns the count it reports.
func (r *RemoteExecutor) AliveCount(world World) (int, error) {
	var res stubs.AliveCellsCount
	if err := r.client.Call(stubs.PushWorld, toStub(world), &res); err != nil {
		return 0, fmt.Errorf("push world to %s: %w", r.address, err)
	}
	return res.CellsCount, nil
}

// Shutdown stops the broker and closes the connection.
func (r *RemoteExecutor) Shutdown() error {
	var ack bool
	err := r.client.Call(stubs.Shutdown, true, &ack)
	if err != nil {
		err = fmt.Errorf("shut down broker %s: %w", r.address, err)
	} else {
		r.log.Info("Broker shut down")
	}
	if closeErr := r.client.Close(); err == nil && closeErr != nil && closeErr != rpc.ErrShutdown {
		err = closeErr
	}
	return err
}

// Close drops the connection and leaves the broker running.
func (r *RemoteExecutor) Close() error {
	return r.client.Close()
}
