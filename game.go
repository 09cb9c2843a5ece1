/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Seednode/wordsrv/words"
)

// broadcast sends msg to every player. A failed write drops that player and
// delivery carries on with the rest.
func (s *Server) broadcast(msg string) {
	for _, id := range slices.Clone(s.active) {
		if c, ok := s.clients[id]; ok {
			s.send(c, msg)
		}
	}
}

// flushTurn announces the turn if an event asked for it. Departures during
// the announcement can move the turn, which asks again.
func (s *Server) flushTurn() {
	for s.announce {
		s.announce = false
		s.announceTurn()
	}
}

// announceTurn prompts the turn holder and tells everyone else who it is.
func (s *Server) announceTurn() {
	holder, ok := s.clients[s.turn]
	if !ok {
		return
	}

	id, turn := holder.id, fmt.Sprintf(msgTurn, holder.name)

	for _, pid := range slices.Clone(s.active) {
		c, ok := s.clients[pid]
		if !ok {
			continue
		}

		if pid == id {
			s.send(c, msgYourGuess)
		} else {
			s.send(c, turn)
		}

		// The holder left; flushTurn announces the new one.
		if s.turn != id {
			return
		}
	}

	// Only non-holders left meanwhile; everyone remaining has been told.
	s.announce = false

	log.Info().Str("player", holder.name).Msg("turn")
}

// handleGuess applies a guess from the turn holder.
func (s *Server) handleGuess(c *Client, letter byte) {
	hit, err := s.game.Guess(letter)
	switch {
	case errors.Is(err, words.ErrNotLetter):
		log.Debug().Str("player", c.name).Err(fmt.Errorf("%w: %w", ErrProtocolViolation, err)).Msg("guess rejected")
		s.send(c, msgInvalidGuess)
		return
	case errors.Is(err, words.ErrAlreadyGuessed):
		log.Debug().Str("player", c.name).Err(fmt.Errorf("%w: %w", ErrProtocolViolation, err)).Msg("guess rejected")
		s.send(c, msgAlreadyGuess)
		return
	}

	log.Info().
		Str("player", c.name).
		Str("letter", string(letter)).
		Bool("hit", hit).
		Int("guesses_left", s.game.GuessesLeft()).
		Msg("guess")

	id, name := c.id, c.name

	if !hit {
		s.send(c, fmt.Sprintf(msgNotInWord, letter))
	}

	s.broadcast(fmt.Sprintf(msgGuesses, name, letter))

	if !s.checkGameOver(id, name) {
		s.broadcast(s.game.Status())
	}

	// If the guesser left meanwhile, removal already passed the turn on.
	if s.turn != id {
		return
	}

	s.advanceTurn(hit)
}

// advanceTurn passes the turn to the next player, unless keep is set, and
// asks for it to be announced.
func (s *Server) advanceTurn(keep bool) {
	if !keep {
		s.turn = s.nextAfter(s.turn)
	}

	s.announce = true
}

// nextAfter returns the player after id in list order, wrapping at the end.
// An id that is no longer listed yields the head.
func (s *Server) nextAfter(id ClientID) ClientID {
	if len(s.active) == 0 {
		return 0
	}

	i := slices.Index(s.active, id)
	if i < 0 {
		return s.active[0]
	}

	return s.active[(i+1)%len(s.active)]
}

// ensureTurn keeps the turn pointer on a listed player whenever there is one.
func (s *Server) ensureTurn() {
	if len(s.active) == 0 {
		s.turn = 0
		return
	}

	if !slices.Contains(s.active, s.turn) {
		s.turn = s.active[0]
	}
}

// checkGameOver ends the round if the word is solved or the budget is spent,
// and starts the next one.
func (s *Server) checkGameOver(guesser ClientID, name string) bool {
	if !s.game.Over() {
		return false
	}

	s.broadcast(fmt.Sprintf(msgWordWas, s.game.Word()))

	if s.game.Solved() {
		s.announceWinner(guesser, name)
	} else {
		log.Info().Str("round", s.round).Str("word", s.game.Word()).Msg("round lost")
		s.broadcast(msgNoGuessesLeft)
	}

	s.newRound()

	s.broadcast(msgNewGame)
	for _, id := range slices.Clone(s.active) {
		if c, ok := s.clients[id]; ok {
			s.sendStatus(c)
		}
	}

	return true
}

func (s *Server) announceWinner(winner ClientID, name string) {
	won := fmt.Sprintf(msgWinner, name)

	for _, id := range slices.Clone(s.active) {
		c, ok := s.clients[id]
		if !ok {
			continue
		}

		if id == winner {
			s.send(c, msgYouWin)
		} else {
			s.send(c, won)
		}
	}

	log.Info().Str("round", s.round).Str("word", s.game.Word()).Str("winner", name).Msg("round won")
}

func (s *Server) newRound() {
	s.game.Reset()
	s.round = uuid.NewString()

	log.Info().Str("round", s.round).Int("length", len(s.game.Word())).Msg("new game")
}

func (s *Server) sendStatus(c *Client) bool {
	return s.send(c, s.game.Status())
}
