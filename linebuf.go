/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

const (
	// MaxBuf is the per-client input capacity in bytes, and the size of a
	// single read.
	MaxBuf = 256
)

// lineBuffer accumulates client input until a CRLF terminated line is seen.
// n is the cursor: buf[:n] holds unconsumed input.
type lineBuffer struct {
	buf [MaxBuf]byte
	n   int
}

// Ingest appends chunk at the cursor. A chunk that does not fit in the
// remaining space discards everything buffered so far and starts over with
// the chunk; overflow reports that this happened.
func (b *lineBuffer) Ingest(chunk []byte) (overflow bool) {
	if len(chunk) > MaxBuf-b.n {
		b.n = 0
		overflow = true
	}

	b.n += copy(b.buf[b.n:], chunk)

	return overflow
}

// ExtractLine returns the first line in the buffer, without its CRLF, and
// empties the buffer, dropping anything that followed the terminator. A NUL
// byte marks the end of usable data: the cursor is pulled back to it and no
// line is returned.
func (b *lineBuffer) ExtractLine() (string, bool) {
	for i := 0; i < b.n; i++ {
		switch {
		case b.buf[i] == 0:
			b.n = i
			return "", false
		case b.buf[i] == '\r' && i+1 < b.n && b.buf[i+1] == '\n':
			line := string(b.buf[:i])
			b.n = 0
			return line, true
		}
	}

	return "", false
}

func (b *lineBuffer) Len() int { return b.n }
