package lexer

// EOF is returned by the cursor once the stream is exhausted. Use Done to
// tell exhaustion apart from a stream that reports a negative rune.
const EOF rune = -1

// Cursor is a two-slot lookahead window over a Stream.
//
// curr always lags next by exactly one advance, and both become EOF once
// the stream runs out, next first.
type Cursor struct {
	stream  Stream
	curr    rune
	next    rune
	currOK  bool
	nextOK  bool
	currPos int
	nextPos int
}

// NewCursor wraps stream and primes both lookahead slots.
func NewCursor(stream Stream) *Cursor {
	c := &Cursor{
		stream: stream,
		curr:   EOF,
		next:   EOF,
	}
	c.Advance()
	c.Advance()
	return c
}

// Advance shifts the window forward by one character and returns the new
// lookahead character. Past the end it keeps returning EOF.
func (c *Cursor) Advance() rune {
	pos, ch, ok := c.stream.Next()
	c.currPos = c.nextPos
	if ok {
		c.nextPos = pos
	} else {
		ch = EOF
	}
	c.curr, c.currOK = c.next, c.nextOK
	c.next, c.nextOK = ch, ok
	return c.next
}

// Done reports whether the stream is exhausted at the current slot.
func (c *Cursor) Done() bool { return !c.currOK }

// Curr returns the character under examination.
func (c *Cursor) Curr() rune { return c.curr }

// Next returns the character one position ahead.
func (c *Cursor) Next() rune { return c.next }

// CurrPos returns the position of Curr.
func (c *Cursor) CurrPos() int { return c.currPos }

// NextPos returns the position of Next.
func (c *Cursor) NextPos() int { return c.nextPos }
