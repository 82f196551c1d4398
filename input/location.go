package input

import (
	"fmt"

	"github.com/npillmayer/pergo"
)

// Location is a cursor into a Buffer. Locations are immutable; advancing a
// location produces a new one. Two locations denote the same position iff
// they are the same pointer — matchers rely on this identity to detect that
// an operand has not consumed any input.
//
// A location may be virtual, i.e. denote a synthetic character inserted in
// front of a real buffer position during error recovery. Virtual locations
// share the index of the real location they shadow; advancing past them
// continues at that real location.
type Location struct {
	index int
	line  int
	col   int
	char  rune
	next  *Location // continuation, set for virtual locations only
}

// Index returns the character index of the location within its buffer.
func (l *Location) Index() int {
	return l.index
}

// Char returns the character at the location. For the end-of-input position
// this is the EOI sentinel.
func (l *Location) Char() rune {
	return l.char
}

// Line returns the 1-based line number of the location.
func (l *Location) Line() int {
	return l.line
}

// Column returns the 1-based column number of the location.
func (l *Location) Column() int {
	return l.col
}

// IsVirtual is true for locations denoting synthetic input.
func (l *Location) IsVirtual() bool {
	return l.next != nil
}

// IsAtEnd is true for the end-of-input location.
func (l *Location) IsAtEnd() bool {
	return l.char == pergo.EOI && l.next == nil
}

// Advance moves the cursor to the next input character. Advancing a virtual
// location continues at the location it shadows; advancing the end-of-input
// location yields the same location again.
func (l *Location) Advance(b *Buffer) *Location {
	if l.next != nil {
		return l.next
	}
	if l.char == pergo.EOI {
		return l
	}
	return b.LocationAt(l.index + 1)
}

// InsertVirtual inserts a synthetic character in front of the location,
// returning the location of the inserted character.
func (l *Location) InsertVirtual(c rune) *Location {
	return &Location{index: l.index, line: l.line, col: l.col, char: c, next: l}
}

// InsertVirtualText inserts a string of synthetic characters in front of the
// location, returning the location of the first inserted character.
func (l *Location) InsertVirtualText(s string) *Location {
	loc := l
	chars := []rune(s)
	for i := len(chars) - 1; i >= 0; i-- {
		loc = loc.InsertVirtual(chars[i])
	}
	return loc
}

func (l *Location) String() string {
	if l.IsVirtual() {
		return fmt.Sprintf("%d:%d(virtual %q)", l.line, l.col, l.char)
	}
	return fmt.Sprintf("%d:%d", l.line, l.col)
}
