/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
)

// Failure kinds seen by the dispatch loop. Only startup errors are fatal;
// everything here is recovered locally.
var (
	ErrIOFailure         = errors.New("client i/o failure")
	ErrPeerClosed        = errors.New("connection closed by peer")
	ErrProtocolViolation = errors.New("protocol violation")
	ErrOutOfTurn         = errors.New("guess out of turn")
	ErrCapacityExceeded  = errors.New("input exceeded buffer capacity")
	ErrReadinessWait     = errors.New("waiting for connections failed")
	ErrShutdown          = errors.New("server shutting down")
)
