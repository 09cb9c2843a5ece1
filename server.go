/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Seednode/wordsrv/words"
)

const acceptBackoff = 50 * time.Millisecond

// Server is the game: the client table, the turn pointer and the round state.
// Everything in it is owned by the goroutine running Run; other goroutines
// talk to it through channels.
type Server struct {
	cfg  *Config
	dict *words.Dictionary
	game *words.Game

	round string

	reg      *Registry
	accepted chan net.Conn
	requests chan chan Snapshot
	done     chan struct{}

	clients map[ClientID]*Client
	pending []ClientID
	active  []ClientID
	turn    ClientID
	lastID  ClientID

	// announce is set when the turn needs announcing once the current event
	// has been handled.
	announce bool
}

func newServer(ctx context.Context, cfg *Config, dict *words.Dictionary) *Server {
	return &Server{
		cfg:      cfg,
		dict:     dict,
		game:     words.NewGame(dict, cfg.maxGuesses),
		round:    uuid.NewString(),
		reg:      newRegistry(ctx),
		accepted: make(chan net.Conn),
		requests: make(chan chan Snapshot),
		done:     make(chan struct{}),
		clients:  make(map[ClientID]*Client),
	}
}

// Run serves ln until ctx is cancelled. It always returns nil; failures on
// individual connections are handled by dropping that client.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	log.Info().
		Str("addr", ln.Addr().String()).
		Str("dictionary", s.dict.Path()).
		Int("words", s.dict.Len()).
		Str("round", s.round).
		Msg("listening")

	go s.acceptLoop(ctx, ln)

	defer func() {
		_ = ln.Close()
		s.shutdown()
		close(s.done)
	}()

	for {
		// New connections are serviced before client input.
		select {
		case conn := <-s.accepted:
			s.admit(conn)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return nil
		case conn := <-s.accepted:
			s.admit(conn)
		case ev := <-s.reg.Events():
			s.dispatch(ev)
		case reply := <-s.requests:
			reply <- s.snapshot()
		}
	}
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}

			log.Error().Err(errors.Join(ErrReadinessWait, err)).Msg("accept failed")
			time.Sleep(acceptBackoff)

			continue
		}

		select {
		case s.accepted <- conn:
		case <-ctx.Done():
			_ = conn.Close()
			return
		}
	}
}

// dispatch runs one ingest, extract and handle cycle for a read result, then
// announces the turn if anything changed it.
func (s *Server) dispatch(ev readEvent) {
	s.handle(ev)
	s.flushTurn()
}

func (s *Server) handle(ev readEvent) {
	c := s.lookup(ev.id)
	if c == nil {
		// Already removed; its reader raced the close.
		return
	}

	if ev.err != nil {
		s.remove(c, ev.err)
		return
	}

	log.Debug().Uint64("client", uint64(c.id)).Int("bytes", len(ev.data)).Msg("read")

	if c.in.Ingest(ev.data) {
		log.Debug().Uint64("client", uint64(c.id)).Err(ErrCapacityExceeded).Msg("input reset")
	}

	line, ok := c.in.ExtractLine()
	if !ok {
		return
	}

	switch c.state {
	case statePending:
		s.registerName(c, line)
	case stateActive:
		if c.id != s.turn {
			log.Debug().Str("player", c.name).Err(ErrOutOfTurn).Msg("guess rejected")
			s.send(c, msgNotYourTurn)
			return
		}

		if len(line) != 1 {
			log.Debug().Str("player", c.name).Err(ErrProtocolViolation).Int("length", len(line)).Msg("guess rejected")
			s.send(c, msgInvalidGuess)
			return
		}

		s.handleGuess(c, line[0])
	}
}

// lookup finds a live client, searching players before pending arrivals.
func (s *Server) lookup(id ClientID) *Client {
	for _, lists := range [][]ClientID{s.active, s.pending} {
		for _, cid := range lists {
			if cid == id {
				return s.clients[id]
			}
		}
	}
	return nil
}

func (s *Server) shutdown() {
	log.Info().Int("clients", len(s.clients)).Msg("shutting down")

	for _, id := range append(append([]ClientID{}, s.active...), s.pending...) {
		if c, ok := s.clients[id]; ok {
			s.drop(c, ErrShutdown)
		}
	}

	s.reg.Close()
}
