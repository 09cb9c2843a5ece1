/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package words supplies the secret words and the per-round guessing state
// for the word game: which letters were tried, the revealed pattern, and how
// many wrong guesses remain.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
)

const (
	// MaxWord is the longest word accepted from a dictionary.
	MaxWord = 30

	// DefaultMaxGuesses is the number of wrong guesses allowed per round.
	DefaultMaxGuesses = 4
)

var ErrEmptyDictionary = errors.New("dictionary contains no usable words")

// Dictionary is an immutable list of candidate secret words.
type Dictionary struct {
	path  string
	words []string
}

// Load reads one word per line from path. Lines are trimmed and lowercased;
// anything that is not 1-MaxWord letters a-z is skipped.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		list = append(list, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	d := New(list)
	d.path = path
	if d.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDictionary)
	}

	return d, nil
}

// New builds a dictionary from an in-memory list, applying the same
// normalization as Load.
func New(list []string) *Dictionary {
	d := &Dictionary{}
	for _, line := range list {
		w := strings.ToLower(strings.TrimSpace(line))
		if len(w) == 0 || len(w) > MaxWord || !isAlpha(w) {
			continue
		}
		d.words = append(d.words, w)
	}
	return d
}

func (d *Dictionary) Len() int { return len(d.words) }

func (d *Dictionary) Path() string { return d.path }

// Random returns a uniformly chosen word. It panics on an empty dictionary;
// Load never returns one.
func (d *Dictionary) Random() string {
	if len(d.words) == 1 {
		return d.words[0]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.words))))
	if err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return d.words[n.Int64()]
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
