package brainfuck

import "errors"

// ErrTapeLimit is returned by cursor movement when growing the tape would
// exceed the configured cell limit.
var ErrTapeLimit = errors.New("tape cell limit exceeded")

// Tape is the interpreter's data memory: a sequence of byte cells, unbounded
// in both directions, with a cursor identifying the current cell.
//
// Cells are stored as two slices addressed by signed offset from the origin:
// right[n] holds offset n, left[n] holds offset -(n+1). Moving the cursor
// past an edge appends a zero cell to that side, so extension is amortized
// O(1) in either direction. A cell, once allocated, stays allocated until
// Reset.
type Tape struct {
	right []byte // cells at offsets >= 0
	left  []byte // cells at offsets < 0, nearest first
	pos   int    // cursor offset from the origin
	limit int    // max total cells, 0 means unbounded
}

// NewTape returns a fresh tape: one zero cell at the origin, cursor on it.
// limit caps the total number of allocated cells; 0 means unbounded.
func NewTape(limit int) *Tape {
	return &Tape{
		right: make([]byte, 1),
		limit: limit,
	}
}

// Right moves the cursor one cell to the right, allocating a zero cell if
// the cursor crosses the tape's right edge. Returns ErrTapeLimit when the
// allocation would exceed the cell limit.
func (t *Tape) Right() error {
	t.pos++
	if t.pos >= 0 && t.pos >= len(t.right) {
		if err := t.checkLimit(); err != nil {
			t.pos--
			return err
		}
		t.right = append(t.right, 0)
	}
	return nil
}

// Left moves the cursor one cell to the left, allocating a zero cell if the
// cursor crosses the tape's left edge. Returns ErrTapeLimit when the
// allocation would exceed the cell limit.
func (t *Tape) Left() error {
	t.pos--
	if t.pos < 0 && -(t.pos+1) >= len(t.left) {
		if err := t.checkLimit(); err != nil {
			t.pos++
			return err
		}
		t.left = append(t.left, 0)
	}
	return nil
}

func (t *Tape) checkLimit() error {
	if t.limit > 0 && len(t.right)+len(t.left) >= t.limit {
		return ErrTapeLimit
	}
	return nil
}

// cell returns a pointer to the current cell.
func (t *Tape) cell() *byte {
	if t.pos < 0 {
		return &t.left[-(t.pos + 1)]
	}
	return &t.right[t.pos]
}

// Value returns the current cell's value.
func (t *Tape) Value() byte {
	return *t.cell()
}

// SetValue stores b in the current cell.
func (t *Tape) SetValue(b byte) {
	*t.cell() = b
}

// Inc increments the current cell, wrapping modulo 256.
func (t *Tape) Inc() {
	*t.cell()++
}

// Dec decrements the current cell, wrapping modulo 256.
func (t *Tape) Dec() {
	*t.cell()--
}

// Pos returns the cursor's signed offset from the origin.
func (t *Tape) Pos() int {
	return t.pos
}

// Len returns the number of allocated cells.
func (t *Tape) Len() int {
	return len(t.right) + len(t.left)
}

// Reset returns the tape to its fresh state: one zero cell, cursor at the
// origin.
func (t *Tape) Reset() {
	t.right = make([]byte, 1)
	t.left = nil
	t.pos = 0
}

// Snapshot copies the allocated cells into a single slice ordered from the
// leftmost cell to the rightmost. origin is the index of offset 0 within
// cells; cursor is the index of the current cell.
func (t *Tape) Snapshot() (cells []byte, origin, cursor int) {
	cells = make([]byte, len(t.left)+len(t.right))
	for i, b := range t.left {
		cells[len(t.left)-1-i] = b
	}
	copy(cells[len(t.left):], t.right)
	return cells, len(t.left), len(t.left) + t.pos
}
