/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxName bounds display names: a name must be shorter than this many bytes.
const MaxName = 30

type clientState int

const (
	statePending clientState = iota
	stateActive
	stateRemoved
)

func (s clientState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateActive:
		return "active"
	default:
		return "removed"
	}
}

// Client is one connection. Its conn belongs to the registry.
type Client struct {
	id     ClientID
	conn   net.Conn
	addr   string
	name   string
	state  clientState
	in     lineBuffer
	joined time.Time
}

// admit accepts a fresh connection as a pending client and greets it.
func (s *Server) admit(conn net.Conn) {
	s.lastID++

	c := &Client{
		id:     s.lastID,
		conn:   conn,
		addr:   conn.RemoteAddr().String(),
		state:  statePending,
		joined: time.Now(),
	}

	if err := s.reg.Register(c.id, conn); err != nil {
		log.Error().Err(err).Str("addr", c.addr).Msg("register failed")
		_ = conn.Close()
		return
	}

	s.clients[c.id] = c
	s.pending = append(s.pending, c.id)

	log.Info().Uint64("client", uint64(c.id)).Str("addr", c.addr).Msg("connection")

	s.send(c, msgWelcome)
}

// registerName promotes a pending client to a player, or tells it to try
// again.
func (s *Server) registerName(c *Client, name string) {
	if reason := s.checkName(name); reason != nil {
		log.Debug().
			Uint64("client", uint64(c.id)).
			Str("name", name).
			Err(fmt.Errorf("%w: %w", ErrProtocolViolation, reason)).
			Msg("name rejected")
		s.send(c, msgBadName)
		return
	}

	c.name = name
	c.state = stateActive
	s.pending = slices.DeleteFunc(s.pending, func(id ClientID) bool { return id == c.id })
	// Newest player goes first in list order.
	s.active = slices.Insert(s.active, 0, c.id)

	log.Info().Uint64("client", uint64(c.id)).Str("player", name).Msg("joined")

	s.broadcast(fmt.Sprintf(msgJoined, name))
	s.sendStatus(c)

	if s.turn == 0 && c.state == stateActive {
		s.turn = c.id
	}
	s.ensureTurn()

	s.announce = true
}

var (
	errNameEmpty = errors.New("name is empty")
	errNameLong  = errors.New("name is too long")
	errNameTaken = errors.New("name is taken")
)

func (s *Server) checkName(name string) error {
	switch {
	case name == "":
		return errNameEmpty
	case len(name) >= MaxName:
		return errNameLong
	}

	for _, id := range s.active {
		if s.clients[id].name == name {
			return errNameTaken
		}
	}

	return nil
}

// remove disconnects c. A departing player's turn passes to the next player
// and everyone left is told. The turn is announced again after the current
// event.
func (s *Server) remove(c *Client, cause error) {
	if c.state == stateRemoved {
		return
	}

	wasActive := c.state == stateActive

	next := s.turn
	if wasActive && s.turn == c.id {
		next = s.nextAfter(c.id)
		if next == c.id {
			next = 0
		}
	}

	s.drop(c, cause)

	if !wasActive {
		return
	}

	s.turn = next
	s.ensureTurn()

	s.broadcast(fmt.Sprintf(msgGoodbye, c.name))
	s.announce = true
}

// drop unlinks c and closes its connection without telling anyone.
func (s *Server) drop(c *Client, cause error) {
	if c.state == stateRemoved {
		return
	}

	ev := log.Info()
	if errors.Is(cause, ErrIOFailure) {
		ev = log.Warn()
	}
	ev.Uint64("client", uint64(c.id)).
		Str("addr", c.addr).
		Str("player", c.name).
		Stringer("state", c.state).
		Err(cause).
		Msg("disconnect")

	switch c.state {
	case statePending:
		s.pending = slices.DeleteFunc(s.pending, func(id ClientID) bool { return id == c.id })
	case stateActive:
		s.active = slices.DeleteFunc(s.active, func(id ClientID) bool { return id == c.id })
	}

	c.state = stateRemoved
	delete(s.clients, c.id)
	s.reg.Unregister(c.id)

	if s.turn == c.id {
		s.turn = 0
	}
}

// send writes msg to c, removing c if the write fails. It reports whether c
// is still connected.
func (s *Server) send(c *Client, msg string) bool {
	if c.state == stateRemoved {
		return false
	}

	if s.cfg.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.writeTimeout))
	}

	if _, err := c.conn.Write([]byte(msg)); err != nil {
		s.remove(c, fmt.Errorf("%w: %w", ErrIOFailure, err))
		return false
	}

	return true
}
