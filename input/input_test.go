package input

import (
	"strings"
	"testing"

	"github.com/npillmayer/pergo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBufferCharAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("ab\ncd")
	if buf.Len() != 5 {
		t.Errorf("expected buffer length 5, is %d", buf.Len())
	}
	if buf.CharAt(0) != 'a' || buf.CharAt(4) != 'd' {
		t.Errorf("unexpected characters in buffer")
	}
	if buf.CharAt(5) != pergo.EOI {
		t.Errorf("expected EOI behind end of buffer")
	}
	if buf.CharAt(-1) != pergo.EOI {
		t.Errorf("expected EOI for negative index")
	}
}

func TestBufferFromReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf, err := NewBufferFromReader(strings.NewReader("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 5 || buf.CharAt(1) != 'e' {
		t.Errorf("buffer not read correctly from reader")
	}
}

func TestLineColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("ab\ncd")
	cases := []struct {
		index     int
		line, col int
	}{
		{0, 1, 1}, {1, 1, 2}, {2, 1, 3}, {3, 2, 1}, {4, 2, 2}, {5, 2, 3},
	}
	for _, c := range cases {
		line, col := buf.LineColumn(c.index)
		if line != c.line || col != c.col {
			t.Errorf("index %d: expected %d:%d, got %d:%d", c.index, c.line, c.col, line, col)
		}
	}
	if buf.Line(1) != "ab" || buf.Line(2) != "cd" {
		t.Errorf("line extraction broken: %q / %q", buf.Line(1), buf.Line(2))
	}
}

func TestLocationAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("ab")
	loc := buf.Start()
	if loc.Char() != 'a' || loc.Index() != 0 {
		t.Errorf("start location broken: %v", loc)
	}
	loc = loc.Advance(buf)
	if loc.Char() != 'b' || loc.Index() != 1 {
		t.Errorf("advance broken: %v", loc)
	}
	loc = loc.Advance(buf)
	if !loc.IsAtEnd() {
		t.Errorf("expected end-of-input location, is %v", loc)
	}
	if loc.Advance(buf) != loc {
		t.Errorf("advancing the EOI location should be idempotent")
	}
}

func TestEOILocationIsShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("x")
	l1 := buf.LocationAt(1)
	l2 := buf.LocationAt(99)
	if l1 != l2 {
		t.Errorf("all locations behind the end should be the same EOI location")
	}
}

func TestVirtualInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("b")
	real := buf.Start()
	loc := real.InsertVirtual('a')
	if !loc.IsVirtual() || loc.Char() != 'a' {
		t.Errorf("virtual location broken: %v", loc)
	}
	if loc.Index() != real.Index() {
		t.Errorf("virtual location should shadow the real index")
	}
	if loc.Advance(buf) != real {
		t.Errorf("advancing virtual input should continue at the shadowed location")
	}
}

func TestVirtualText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("")
	loc := buf.Start().InsertVirtualText("xy")
	if loc.Char() != 'x' {
		t.Errorf("expected first virtual char 'x', is %q", loc.Char())
	}
	loc = loc.Advance(buf)
	if loc.Char() != 'y' {
		t.Errorf("expected second virtual char 'y', is %q", loc.Char())
	}
	loc = loc.Advance(buf)
	if !loc.IsAtEnd() {
		t.Errorf("expected end of input after virtual text")
	}
}

func TestExtract(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.input")
	defer teardown()
	//
	buf := NewBuffer("hello")
	if s := buf.Extract(1, 4); s != "ell" {
		t.Errorf("expected \"ell\", got %q", s)
	}
	if s := buf.Extract(3, 99); s != "lo" {
		t.Errorf("extract should clip at the end, got %q", s)
	}
}
