package gol

import "errors"

var (
	// ErrIo is returned when a snapshot cannot be read or written. It is fatal to the run.
	ErrIo = errors.New("io error")
	// ErrTurnComputationFailed is returned when a worker fails; the turn is never applied.
	ErrTurnComputationFailed = errors.New("turn computation failed")
	// ErrChannelClosed marks a dropped command source or event consumer.
	// The distributor treats it as a quit request.
	ErrChannelClosed = errors.New("channel closed")
	// ErrConfiguration is returned before a run starts when Params are unusable.
	ErrConfiguration = errors.New("configuration error")
)
