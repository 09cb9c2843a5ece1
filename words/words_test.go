/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFiltersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	data := "Apple\n  banana  \n\nnot-a-word\nc4t\n" + strings.Repeat("z", MaxWord+1) + "\nkiwi\r\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"apple", "banana", "kiwi"}
	if d.Len() != len(want) {
		t.Fatalf("Len = %d, want %d (%v)", d.Len(), len(want), d.words)
	}
	for i, w := range want {
		if d.words[i] != w {
			t.Errorf("words[%d] = %q, want %q", i, d.words[i], w)
		}
	}
	if d.Path() != path {
		t.Errorf("Path = %q, want %q", d.Path(), path)
	}
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("123\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrEmptyDictionary) {
		t.Fatalf("Load error = %v, want ErrEmptyDictionary", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRandomStaysInDictionary(t *testing.T) {
	d := New([]string{"one", "two", "three"})
	for i := 0; i < 50; i++ {
		w := d.Random()
		if w != "one" && w != "two" && w != "three" {
			t.Fatalf("Random returned %q", w)
		}
	}
}

func TestGuessHitAndMiss(t *testing.T) {
	g := NewGame(New([]string{"hello"}), 4)

	if g.Pattern() != "-----" {
		t.Fatalf("initial pattern = %q", g.Pattern())
	}

	hit, err := g.Guess('l')
	if err != nil || !hit {
		t.Fatalf("Guess(l) = %v, %v; want hit", hit, err)
	}
	if g.Pattern() != "--ll-" {
		t.Errorf("pattern = %q, want --ll-", g.Pattern())
	}
	if g.GuessesLeft() != 4 {
		t.Errorf("hit cost a guess: %d left", g.GuessesLeft())
	}

	hit, err = g.Guess('z')
	if err != nil || hit {
		t.Fatalf("Guess(z) = %v, %v; want miss", hit, err)
	}
	if g.GuessesLeft() != 3 {
		t.Errorf("GuessesLeft = %d, want 3", g.GuessesLeft())
	}
	if g.Letters() != "lz" {
		t.Errorf("Letters = %q, want lz", g.Letters())
	}
}

func TestGuessRejectsWithoutChange(t *testing.T) {
	g := NewGame(New([]string{"cat"}), 2)
	if _, err := g.Guess('x'); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		letter byte
		want   error
	}{
		{'A', ErrNotLetter},
		{'1', ErrNotLetter},
		{' ', ErrNotLetter},
		{'x', ErrAlreadyGuessed},
	}

	for _, tt := range tests {
		pattern, left, letters := g.Pattern(), g.GuessesLeft(), g.Letters()

		_, err := g.Guess(tt.letter)
		if !errors.Is(err, tt.want) {
			t.Errorf("Guess(%q) error = %v, want %v", tt.letter, err, tt.want)
		}
		if g.Pattern() != pattern || g.GuessesLeft() != left || g.Letters() != letters {
			t.Errorf("Guess(%q) changed state", tt.letter)
		}
	}
}

func TestOver(t *testing.T) {
	g := NewGame(New([]string{"ab"}), 1)
	g.Guess('a')
	if g.Over() {
		t.Fatal("over after one hit")
	}
	g.Guess('b')
	if !g.Solved() || !g.Over() {
		t.Fatal("expected solved")
	}

	g.Reset()
	g.Guess('q')
	if g.Solved() || !g.Over() {
		t.Fatal("expected budget exhausted")
	}
}

func TestResetClearsRound(t *testing.T) {
	g := NewGame(New([]string{"dog"}), 3)
	g.Guess('d')
	g.Guess('x')

	g.ResetWith("pig")
	if g.Word() != "pig" || g.Pattern() != "---" || g.GuessesLeft() != 3 || g.Letters() != "" {
		t.Fatalf("reset left state behind: %q %q %d %q", g.Word(), g.Pattern(), g.GuessesLeft(), g.Letters())
	}
	if g.Guessed('d') {
		t.Fatal("letter still marked after reset")
	}
}

func TestStatus(t *testing.T) {
	g := NewGame(New([]string{"tree"}), 4)
	g.Guess('e')
	g.Guess('a')

	want := "***************\r\n" +
		"Word to guess: --ee\r\n" +
		"Guesses remaining: 3\r\n" +
		"Letters guessed: \r\n" +
		"a e \r\n" +
		"***************\r\n"

	if got := g.Status(); got != want {
		t.Fatalf("Status =\n%q\nwant\n%q", got, want)
	}
}
