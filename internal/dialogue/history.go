package dialogue

// MaxHistory is the largest number of questions a History retains.
const MaxHistory = 10

// History is a fixed-capacity FIFO of recent questions backed by a ring buffer.
type History struct {
	buf   []string
	start int
	size  int
}

// NewHistory returns a history holding at most capacity entries. Capacity is
// clamped to [1, MaxHistory].
func NewHistory(capacity int) *History {
	if capacity <= 0 || capacity > MaxHistory {
		capacity = MaxHistory
	}
	return &History{buf: make([]string, capacity)}
}

// Add appends q, evicting the oldest entry when full.
func (h *History) Add(q string) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = q
		h.size++
		return
	}
	h.buf[h.start] = q
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return h.size
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return len(h.buf)
}

// Items returns all entries, oldest first.
func (h *History) Items() []string {
	return h.Recent(h.size)
}

// Recent returns the newest n entries, oldest first.
func (h *History) Recent(n int) []string {
	if n > h.size {
		n = h.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	first := h.size - n
	for i := 0; i < n; i++ {
		out[i] = h.buf[(h.start+first+i)%len(h.buf)]
	}
	return out
}
