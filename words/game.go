/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package words

import (
	"errors"
	"fmt"
	"strings"
)

const hidden = '-'

var (
	ErrNotLetter      = errors.New("guess is not a lowercase letter")
	ErrAlreadyGuessed = errors.New("letter was already guessed")
)

// Game is the state of one round. The zero value is not usable; call NewGame.
type Game struct {
	dict       *Dictionary
	maxGuesses int

	word        string
	pattern     []byte
	guessesLeft int
	letters     [26]bool
}

func NewGame(dict *Dictionary, maxGuesses int) *Game {
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}

	g := &Game{dict: dict, maxGuesses: maxGuesses}
	g.Reset()

	return g
}

// Reset starts a new round with a fresh word from the dictionary.
func (g *Game) Reset() {
	g.ResetWith(g.dict.Random())
}

// ResetWith starts a new round with the given word.
func (g *Game) ResetWith(word string) {
	g.word = word
	g.pattern = []byte(strings.Repeat(string(hidden), len(word)))
	g.guessesLeft = g.maxGuesses
	g.letters = [26]bool{}
}

func (g *Game) Word() string { return g.word }

func (g *Game) Pattern() string { return string(g.pattern) }

func (g *Game) GuessesLeft() int { return g.guessesLeft }

// Guessed reports whether letter was already tried this round. Bytes outside
// a-z are never guessed.
func (g *Game) Guessed(letter byte) bool {
	if letter < 'a' || letter > 'z' {
		return false
	}
	return g.letters[letter-'a']
}

// Letters returns the tried letters in alphabetical order.
func (g *Game) Letters() string {
	var b strings.Builder
	for i, ok := range g.letters {
		if ok {
			b.WriteByte('a' + byte(i))
		}
	}
	return b.String()
}

// Guess applies one letter. A hit reveals every occurrence; a miss costs one
// guess. Invalid or repeated letters change nothing.
func (g *Game) Guess(letter byte) (bool, error) {
	if letter < 'a' || letter > 'z' {
		return false, ErrNotLetter
	}
	if g.letters[letter-'a'] {
		return false, ErrAlreadyGuessed
	}

	g.letters[letter-'a'] = true

	hit := false
	for i := 0; i < len(g.word); i++ {
		if g.word[i] == letter {
			g.pattern[i] = letter
			hit = true
		}
	}

	if !hit {
		g.guessesLeft--
	}

	return hit, nil
}

func (g *Game) Solved() bool { return string(g.pattern) == g.word }

func (g *Game) Over() bool { return g.Solved() || g.guessesLeft <= 0 }

// Status renders the round summary sent to players.
func (g *Game) Status() string {
	var b strings.Builder

	b.WriteString("***************\r\n")
	fmt.Fprintf(&b, "Word to guess: %s\r\n", g.pattern)
	fmt.Fprintf(&b, "Guesses remaining: %d\r\n", g.guessesLeft)
	b.WriteString("Letters guessed: \r\n")
	for _, l := range g.Letters() {
		b.WriteRune(l)
		b.WriteByte(' ')
	}
	b.WriteString("\r\n***************\r\n")

	return b.String()
}
