/*
Package input provides the input buffer and cursor type for PEG parse runs.

A parse run operates on an immutable, random-access sequence of characters,
the Buffer. Positions within a buffer are represented by Locations, which are
cheap, value-like cursors. Locations additionally support virtual (synthetic)
input: an error-recovery strategy may insert characters in front of the
current position without touching the buffer, e.g. to model a missing token.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package input

import (
	"bufio"
	"io"
	"sort"

	"github.com/ianlewis/runeio"
	"github.com/npillmayer/pergo"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pergo.input'.
func tracer() tracing.Trace {
	return tracing.Select("pergo.input")
}

// Buffer is a random-access sequence of input characters, terminated by a
// virtual EOI sentinel. Buffers are immutable during a parse run.
type Buffer struct {
	chars []rune
	lines []int // chars-index of the first character of each line
	eoi   *Location
}

// NewBuffer creates a buffer from a string.
func NewBuffer(text string) *Buffer {
	b := &Buffer{chars: []rune(text)}
	b.scanLines()
	return b
}

// NewBufferFromReader creates a buffer by draining a reader. The reader is
// expected to deliver UTF-8 encoded text.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	rr := runeio.NewReader(br)
	var chars []rune
	for {
		c, _, err := rr.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	tracer().Debugf("buffer of %d characters read", len(chars))
	b := &Buffer{chars: chars}
	b.scanLines()
	return b, nil
}

func (b *Buffer) scanLines() {
	b.lines = []int{0}
	for i, c := range b.chars {
		if c == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
	line, col := b.lineColumn(len(b.chars))
	b.eoi = &Location{index: len(b.chars), line: line, col: col, char: pergo.EOI}
}

// Len returns the number of characters in the buffer, excluding the EOI
// sentinel.
func (b *Buffer) Len() int {
	return len(b.chars)
}

// CharAt returns the character at a given index, or EOI if the index is
// located behind the end of the buffer.
func (b *Buffer) CharAt(i int) rune {
	if i < 0 || i >= len(b.chars) {
		return pergo.EOI
	}
	return b.chars[i]
}

// Extract returns the text between two indices.
func (b *Buffer) Extract(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(b.chars) {
		to = len(b.chars)
	}
	if from >= to {
		return ""
	}
	return string(b.chars[from:to])
}

// LineColumn maps a character index to a (line, column) pair, both 1-based.
func (b *Buffer) LineColumn(i int) (int, int) {
	return b.lineColumn(i)
}

func (b *Buffer) lineColumn(i int) (int, int) {
	if i < 0 {
		i = 0
	}
	if i > len(b.chars) {
		i = len(b.chars)
	}
	n := sort.Search(len(b.lines), func(k int) bool { return b.lines[k] > i })
	return n, i - b.lines[n-1] + 1
}

// Line returns the text of line n (1-based), without the trailing newline.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	from := b.lines[n-1]
	to := len(b.chars)
	if n < len(b.lines) {
		to = b.lines[n] - 1 // strip '\n'
	}
	return string(b.chars[from:to])
}

// Start returns a location denoting the first character of the buffer.
func (b *Buffer) Start() *Location {
	return b.LocationAt(0)
}

// LocationAt returns a location for a character index. Indices behind the end
// of the buffer all map to the buffer's single EOI location.
func (b *Buffer) LocationAt(i int) *Location {
	if i < 0 {
		i = 0
	}
	if i >= len(b.chars) {
		return b.eoi
	}
	line, col := b.lineColumn(i)
	return &Location{index: i, line: line, col: col, char: b.chars[i]}
}
