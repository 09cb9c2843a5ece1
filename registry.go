/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

// ClientID identifies a connection for the lifetime of the process. IDs are
// never reused, and 0 means "nobody".
type ClientID uint64

// readEvent is the result of one read on a client connection.
type readEvent struct {
	id   ClientID
	data []byte
	err  error
}

// Registry owns the open client connections. Each registered connection has
// a reader goroutine that hands every read result to the dispatch loop; the
// map itself is only touched from the loop.
type Registry struct {
	ctx    context.Context
	conns  map[ClientID]net.Conn
	events chan readEvent
	wg     sync.WaitGroup
}

func newRegistry(ctx context.Context) *Registry {
	return &Registry{
		ctx:    ctx,
		conns:  make(map[ClientID]net.Conn),
		events: make(chan readEvent, 64),
	}
}

// Events is the stream of read results for the dispatch loop.
func (r *Registry) Events() <-chan readEvent { return r.events }

func (r *Registry) Len() int { return len(r.conns) }

// Register starts monitoring conn under id.
func (r *Registry) Register(id ClientID, conn net.Conn) error {
	if _, exists := r.conns[id]; exists {
		return fmt.Errorf("client %d already registered", id)
	}

	r.conns[id] = conn

	r.wg.Add(1)
	go r.pump(id, conn)

	return nil
}

// Unregister stops monitoring id and closes its connection. It reports false
// if id was not registered, so a connection is closed at most once.
func (r *Registry) Unregister(id ClientID) bool {
	conn, ok := r.conns[id]
	if !ok {
		return false
	}

	delete(r.conns, id)
	_ = conn.Close()

	return true
}

// Close unregisters every connection and waits for the readers to exit.
func (r *Registry) Close() {
	for id := range r.conns {
		r.Unregister(id)
	}
	r.wg.Wait()
}

func (r *Registry) pump(id ClientID, conn net.Conn) {
	defer r.wg.Done()

	buf := make([]byte, MaxBuf)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])

			if !r.deliver(readEvent{id: id, data: data}) {
				return
			}
		}

		if err == nil {
			continue
		}

		switch {
		case errors.Is(err, net.ErrClosed):
			// Unregistered by the loop; nobody is waiting for this.
			return
		case errors.Is(err, io.EOF):
			err = ErrPeerClosed
		default:
			err = fmt.Errorf("%w: %w", ErrIOFailure, err)
		}

		r.deliver(readEvent{id: id, err: err})

		return
	}
}

func (r *Registry) deliver(ev readEvent) bool {
	select {
	case r.events <- ev:
		return true
	case <-r.ctx.Done():
		return false
	}
}
