/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type PlayerSnapshot struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Addr          string `json:"addr"`
	OnlineSeconds int64  `json:"online_seconds"`
	HasTurn       bool   `json:"has_turn"`
}

// Snapshot is a point-in-time copy of the game, safe to use outside the loop.
// It never carries the secret word.
type Snapshot struct {
	Round       string           `json:"round"`
	Pattern     string           `json:"pattern"`
	GuessesLeft int              `json:"guesses_left"`
	Letters     string           `json:"letters_guessed"`
	Turn        string           `json:"turn,omitempty"`
	Players     []PlayerSnapshot `json:"players"`
	Pending     int              `json:"pending"`
	Connections int              `json:"connections"`
}

// Snapshot asks the running loop for a copy of its state. It fails with
// ErrShutdown once the loop has stopped.
func (s *Server) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)

	select {
	case s.requests <- reply:
	case <-s.done:
		return Snapshot{}, ErrShutdown
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case snap := <-reply:
		return snap, nil
	case <-s.done:
		return Snapshot{}, ErrShutdown
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// snapshot must only be called from the loop.
func (s *Server) snapshot() Snapshot {
	now := time.Now()

	snap := Snapshot{
		Round:       s.round,
		Pattern:     s.game.Pattern(),
		GuessesLeft: s.game.GuessesLeft(),
		Letters:     s.game.Letters(),
		Players:     make([]PlayerSnapshot, 0, len(s.active)),
		Pending:     len(s.pending),
		Connections: s.reg.Len(),
	}

	for _, id := range s.active {
		c := s.clients[id]
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:            uint64(id),
			Name:          c.name,
			Addr:          c.addr,
			OnlineSeconds: int64(now.Sub(c.joined) / time.Second),
			HasTurn:       id == s.turn,
		})

		if id == s.turn {
			snap.Turn = c.name
		}
	}

	return snap
}

// playersTable renders the players in turn order as a text table.
func playersTable(snap Snapshot) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "addr", "name", "online(s)", "turn"})

	for _, p := range snap.Players {
		turn := ""
		if p.HasTurn {
			turn = "*"
		}
		t.AppendRow(table.Row{p.ID, p.Addr, p.Name, p.OnlineSeconds, turn})
	}

	t.AppendFooter(table.Row{"", "", "pending", snap.Pending, ""})

	return t.Render() + "\n"
}
