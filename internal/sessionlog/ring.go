package sessionlog

// LineRing keeps the most recent lines pushed into it.
// Once full, each push overwrites the oldest line.
type LineRing struct {
	buf  []string
	size int
	head int // next write position
	full bool
}

// NewLineRing creates a ring holding at most size lines.
func NewLineRing(size int) *LineRing {
	if size <= 0 {
		size = DefaultTailLines
	}
	return &LineRing{
		buf:  make([]string, size),
		size: size,
	}
}

// Push appends a line, evicting the oldest one when the ring is full.
func (r *LineRing) Push(line string) {
	r.buf[r.head] = line
	r.head = (r.head + 1) % r.size
	if r.head == 0 {
		r.full = true
	}
}

// Lines returns the retained lines, oldest first.
func (r *LineRing) Lines() []string {
	if !r.full {
		out := make([]string, r.head)
		copy(out, r.buf[:r.head])
		return out
	}
	out := make([]string, 0, r.size)
	out = append(out, r.buf[r.head:]...)
	return append(out, r.buf[:r.head]...)
}
