package main

import (
	"flag"
	"net"
	"net/rpc"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"uk.ac.bris.cs/golengine/gol"
	"uk.ac.bris.cs/golengine/stubs"
	"uk.ac.bris.cs/golengine/util"
)

// Broker runs turns on behalf of a remote distributor.
type Broker struct {
	log      *logrus.Entry
	shutdown chan struct{}
	once     sync.Once

	mu    sync.Mutex
	world gol.World
}

func newBroker(log logrus.FieldLogger) *Broker {
	return &Broker{log: util.Target(log, "Broker"), shutdown: make(chan struct{})}
}

// PushWorld stores the world and replies with its alive cell count.
func (b *Broker) PushWorld(req stubs.World, res *stubs.AliveCellsCount) error {
	world, err := gol.WorldFromBytes(req.Width, req.Height, req.CellValues)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.world = world
	b.mu.Unlock()

	res.CellsCount = world.AliveCount()
	return nil
}

// NextTurn computes one turn of the pushed world with its own worker pool.
func (b *Broker) NextTurn(req stubs.TurnRequest, res *stubs.TurnResponse) error {
	world, err := gol.WorldFromBytes(req.World.Width, req.World.Height, req.World.CellValues)
	if err != nil {
		return err
	}
	// More workers than rows would only leave bands empty.
	threads := min(req.Threads, world.Height())
	newWorld, flipped, err := gol.NewWorkerPool(threads).NextTurn(world)
	if err != nil {
		b.log.WithError(err).Error("Turn failed")
		return err
	}
	b.mu.Lock()
	b.world = newWorld
	b.mu.Unlock()

	res.World = stubs.World{Width: newWorld.Width(), Height: newWorld.Height(), CellValues: newWorld.Bytes()}
	res.Flipped = flipped
	return nil
}

// Shutdown acks and stops the broker accepting connections once the reply is sent.
func (b *Broker) Shutdown(_ bool, ack *bool) error {
	*ack = true
	b.once.Do(func() {
		b.log.Info("Shutting down the broker")
		close(b.shutdown)
	})
	return nil
}

// serve answers RPCs on listener until Shutdown is called.
func serve(listener net.Listener, b *Broker) error {
	server := rpc.NewServer()
	if err := server.Register(b); err != nil {
		return err
	}
	go func() {
		<-b.shutdown
		listener.Close()
	}()
	server.Accept(listener)
	return nil
}

func main() {
	pAddr := flag.String("port", "8030", "Port to listen on")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	log, err := util.NewLogger(*logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Bad log level")
	}
	b := newBroker(log)

	listener, err := net.Listen("tcp", ":"+*pAddr)
	if err != nil {
		b.log.WithError(err).Error("Cannot listen")
		os.Exit(1)
	}
	b.log.WithField("address", listener.Addr().String()).Info("Broker started")
	if err := serve(listener, b); err != nil {
		b.log.WithError(err).Error("Broker failed")
		os.Exit(1)
	}
	b.log.Info("Broker stopped")
}
