package match

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pergo"
)

// Chars is an immutable set of characters, used for starter- and
// follower-character computation. A Chars value is either additive (the
// characters listed) or subtractive (all characters but the ones listed), so
// complements like "anything but EOI" are expressible without enumeration.
//
// The pseudo-character pergo.EmptyMark participates like a regular member;
// it marks sets of matchers which may succeed on empty input.
type Chars struct {
	set      *treeset.Set
	inverted bool
}

func newCharSet(runes ...rune) *treeset.Set {
	s := treeset.NewWith(utils.RuneComparator)
	for _, r := range runes {
		s.Add(r)
	}
	return s
}

// NoChars returns the empty character set.
func NoChars() *Chars {
	return &Chars{set: newCharSet()}
}

// OnlyEmpty returns the set containing just the EmptyMark pseudo-character.
func OnlyEmpty() *Chars {
	return CharsOf(pergo.EmptyMark)
}

// CharsOf returns the set of the given characters.
func CharsOf(runes ...rune) *Chars {
	return &Chars{set: newCharSet(runes...)}
}

// CharRange returns the set of all characters between lo and hi, inclusive.
func CharRange(lo, hi rune) *Chars {
	s := newCharSet()
	for c := lo; c <= hi; c++ {
		s.Add(c)
	}
	return &Chars{set: s}
}

// AllBut returns the subtractive set of all characters except the given ones.
func AllBut(runes ...rune) *Chars {
	return &Chars{set: newCharSet(runes...), inverted: true}
}

// Contains checks set membership.
func (cs *Chars) Contains(c rune) bool {
	if cs.inverted {
		return !cs.set.Contains(c)
	}
	return cs.set.Contains(c)
}

// IsInverted is true for subtractive sets.
func (cs *Chars) IsInverted() bool {
	return cs.inverted
}

// IsEmptySet is true if no character is a member.
func (cs *Chars) IsEmptySet() bool {
	return !cs.inverted && cs.set.Size() == 0
}

// Add returns a set additionally containing c.
func (cs *Chars) Add(c rune) *Chars {
	if cs.Contains(c) {
		return cs
	}
	s := cs.clone()
	if cs.inverted {
		s.set.Remove(c)
	} else {
		s.set.Add(c)
	}
	return s
}

// Without returns a set not containing c.
func (cs *Chars) Without(c rune) *Chars {
	if !cs.Contains(c) {
		return cs
	}
	s := cs.clone()
	if cs.inverted {
		s.set.Add(c)
	} else {
		s.set.Remove(c)
	}
	return s
}

// Union returns the union of two sets.
func (cs *Chars) Union(other *Chars) *Chars {
	switch {
	case !cs.inverted && !other.inverted:
		s := cs.clone()
		for _, v := range other.set.Values() {
			s.set.Add(v)
		}
		return s
	case cs.inverted && !other.inverted:
		// all but (cs.set minus other's members)
		s := cs.clone()
		for _, v := range other.set.Values() {
			s.set.Remove(v)
		}
		return s
	case !cs.inverted && other.inverted:
		return other.Union(cs)
	default:
		// complement of the intersection of the two exclusion sets
		s := &Chars{set: newCharSet(), inverted: true}
		for _, v := range cs.set.Values() {
			if other.set.Contains(v) {
				s.set.Add(v)
			}
		}
		return s
	}
}

// Equal compares two sets for equal membership.
func (cs *Chars) Equal(other *Chars) bool {
	if cs.inverted != other.inverted || cs.set.Size() != other.set.Size() {
		return false
	}
	for _, v := range cs.set.Values() {
		if !other.set.Contains(v) {
			return false
		}
	}
	return true
}

// Runes returns the members of an additive set (the exclusions of a
// subtractive one) in ascending order.
func (cs *Chars) Runes() []rune {
	values := cs.set.Values()
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = v.(rune)
	}
	return runes
}

func (cs *Chars) clone() *Chars {
	s := newCharSet()
	for _, v := range cs.set.Values() {
		s.Add(v)
	}
	return &Chars{set: s, inverted: cs.inverted}
}

func (cs *Chars) String() string {
	var sb strings.Builder
	if cs.inverted {
		sb.WriteString("[^")
	} else {
		sb.WriteString("[")
	}
	for _, c := range cs.Runes() {
		switch c {
		case pergo.EOI:
			sb.WriteString("EOI")
		case pergo.EmptyMark:
			sb.WriteString("ε")
		default:
			sb.WriteString(fmt.Sprintf("%c", c))
		}
	}
	sb.WriteString("]")
	return sb.String()
}
