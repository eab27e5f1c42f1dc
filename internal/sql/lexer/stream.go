package lexer

import (
	"errors"
	"io"
	"unicode/utf8"
)

// Stream is a finite, forward-only source of position-tagged characters.
// The lexer never computes offsets itself; it threads through whatever
// positions the stream reports.
type Stream interface {
	// Next returns the next pair, or ok == false once exhausted.
	Next() (pos int, ch rune, ok bool)
}

// Pair is a single position-tagged character.
type Pair struct {
	Pos int
	Ch  rune
}

// stringStream enumerates the runes of a string with their byte offsets.
type stringStream struct {
	s   string
	off int
}

// FromString returns a Stream over s. Positions are byte offsets.
func FromString(s string) Stream {
	return &stringStream{s: s}
}

func (s *stringStream) Next() (int, rune, bool) {
	if s.off >= len(s.s) {
		return 0, 0, false
	}
	ch, size := utf8.DecodeRuneInString(s.s[s.off:])
	pos := s.off
	s.off += size
	return pos, ch, true
}

// ReaderStream pulls runes lazily from an io.RuneReader.
type ReaderStream struct {
	r   io.RuneReader
	off int
	err error
}

// FromRuneReader returns a Stream reading from r. Positions are byte
// offsets accumulated from the rune sizes r reports.
func FromRuneReader(r io.RuneReader) *ReaderStream {
	return &ReaderStream{r: r}
}

func (s *ReaderStream) Next() (int, rune, bool) {
	if s.r == nil {
		return 0, 0, false
	}
	ch, size, err := s.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		s.r = nil
		return 0, 0, false
	}
	pos := s.off
	s.off += size
	return pos, ch, true
}

// Err returns the read error that ended the stream, if any. io.EOF is
// not reported.
func (s *ReaderStream) Err() error {
	return s.err
}

type pairStream struct {
	pairs []Pair
	i     int
}

// FromPairs replays caller-supplied pairs verbatim.
func FromPairs(pairs []Pair) Stream {
	return &pairStream{pairs: pairs}
}

func (s *pairStream) Next() (int, rune, bool) {
	if s.i >= len(s.pairs) {
		return 0, 0, false
	}
	p := s.pairs[s.i]
	s.i++
	return p.Pos, p.Ch, true
}
