package stack

import "github.com/vovakirdan/tui-stacker/internal/core"

// Tower is the ordered stack of landed blocks, bottom first.
// Blocks are appended at the back and evicted only from the front.
// It is a ring buffer so eviction does not shift the backing array.
type Tower struct {
	buf  []Block
	head int
	n    int
}

// NewTower creates an empty tower with room for capacity blocks.
func NewTower(capacity int) *Tower {
	if capacity < 1 {
		capacity = 1
	}
	return &Tower{buf: make([]Block, capacity)}
}

// Len returns the number of blocks in the tower.
func (t *Tower) Len() int {
	return t.n
}

// Reset empties the tower and seeds it with base.
func (t *Tower) Reset(base Block) {
	t.head = 0
	t.n = 0
	t.PushBack(base)
}

// PushBack appends b as the new top.
func (t *Tower) PushBack(b Block) {
	if t.n == len(t.buf) {
		t.grow()
	}
	t.buf[(t.head+t.n)%len(t.buf)] = b
	t.n++
}

// PopFront removes and returns the bottom block.
func (t *Tower) PopFront() (Block, bool) {
	if t.n == 0 {
		return Block{}, false
	}
	b := t.buf[t.head]
	t.buf[t.head] = Block{}
	t.head = (t.head + 1) % len(t.buf)
	t.n--
	return b, true
}

// Top returns the most recently landed block.
func (t *Tower) Top() (Block, bool) {
	if t.n == 0 {
		return Block{}, false
	}
	return t.At(t.n - 1), true
}

// At returns a copy of the i-th block counting from the bottom.
func (t *Tower) At(i int) Block {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Blocks returns a copy of the tower, bottom first.
func (t *Tower) Blocks() []Block {
	out := make([]Block, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// ShiftDown moves every block down by dy world units.
func (t *Tower) ShiftDown(dy float64) {
	for i := 0; i < t.n; i++ {
		t.buf[(t.head+i)%len(t.buf)].CenterY += dy
	}
}

// Retint applies c to every block.
func (t *Tower) Retint(c core.RGB) {
	for i := 0; i < t.n; i++ {
		t.buf[(t.head+i)%len(t.buf)].Tint = c
	}
}

func (t *Tower) grow() {
	next := make([]Block, len(t.buf)*2)
	for i := 0; i < t.n; i++ {
		next[i] = t.At(i)
	}
	t.buf = next
	t.head = 0
}
