/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"testing"
)

func TestExtractLine(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   string
		ok     bool
		left   int
	}{
		{"single", []string{"alice\r\n"}, "alice", true, 0},
		{"split across reads", []string{"al", "ice", "\r", "\n"}, "alice", true, 0},
		{"empty line", []string{"\r\n"}, "", true, 0},
		{"no terminator", []string{"alice"}, "", false, 5},
		{"bare lf", []string{"alice\n"}, "", false, 6},
		{"bare cr", []string{"alice\r"}, "", false, 6},
		{"second line dropped", []string{"a\r\nb\r\n"}, "a", true, 0},
		{"nul truncates", []string{"ab\x00cd"}, "", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b lineBuffer

			var (
				line string
				ok   bool
			)
			for _, c := range tt.chunks {
				b.Ingest([]byte(c))
				line, ok = b.ExtractLine()
			}

			if ok != tt.ok || line != tt.want {
				t.Fatalf("ExtractLine = %q, %v; want %q, %v", line, ok, tt.want, tt.ok)
			}
			if b.Len() != tt.left {
				t.Fatalf("Len = %d, want %d", b.Len(), tt.left)
			}
		})
	}
}

func TestExtractLineAfterNul(t *testing.T) {
	var b lineBuffer

	b.Ingest([]byte("ab\x00junk"))
	if _, ok := b.ExtractLine(); ok {
		t.Fatal("line extracted past nul")
	}

	b.Ingest([]byte("c\r\n"))
	line, ok := b.ExtractLine()
	if !ok || line != "abc" {
		t.Fatalf("ExtractLine = %q, %v; want abc", line, ok)
	}
}

func TestIngestOverflowRestarts(t *testing.T) {
	var b lineBuffer

	if b.Ingest([]byte(strings.Repeat("x", MaxBuf-10))) {
		t.Fatal("overflow reported below capacity")
	}
	if _, ok := b.ExtractLine(); ok {
		t.Fatal("line without terminator")
	}

	if !b.Ingest([]byte(strings.Repeat("y", 9) + "\r\n")) {
		t.Fatal("overflow not reported")
	}

	line, ok := b.ExtractLine()
	if !ok || line != strings.Repeat("y", 9) {
		t.Fatalf("ExtractLine = %q, %v; discarded input leaked", line, ok)
	}
}

func TestIngestExactlyFull(t *testing.T) {
	var b lineBuffer

	if b.Ingest([]byte(strings.Repeat("x", MaxBuf-2) + "\r\n")) {
		t.Fatal("overflow reported for a chunk that fits")
	}
	if b.Len() != MaxBuf {
		t.Fatalf("Len = %d, want %d", b.Len(), MaxBuf)
	}
	if _, ok := b.ExtractLine(); !ok {
		t.Fatal("no line in full buffer")
	}
}

func TestIngestOversizeChunk(t *testing.T) {
	var b lineBuffer

	b.Ingest([]byte(strings.Repeat("z", MaxBuf+40)))
	if b.Len() != MaxBuf {
		t.Fatalf("Len = %d, want %d", b.Len(), MaxBuf)
	}
}
