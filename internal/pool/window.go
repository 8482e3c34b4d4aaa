package pool

// Window remembers the most recent keys in a fixed-size ring.
// Adding to a full window overwrites the oldest key.
type Window[K comparable] struct {
	buf  []K
	head int
	full bool
}

// NewWindow creates a window holding up to size keys. size <= 0 yields a
// window that remembers nothing.
func NewWindow[K comparable](size int) *Window[K] {
	if size < 0 {
		size = 0
	}
	return &Window[K]{buf: make([]K, size)}
}

// Add records key as most recent.
func (w *Window[K]) Add(key K) {
	if len(w.buf) == 0 {
		return
	}
	w.buf[w.head] = key
	w.head = (w.head + 1) % len(w.buf)
	if w.head == 0 {
		w.full = true
	}
}

// Contains reports whether key is among the remembered keys.
func (w *Window[K]) Contains(key K) bool {
	n := w.Len()
	for i := range n {
		if w.buf[i] == key {
			return true
		}
	}
	return false
}

// Len returns the number of remembered keys.
func (w *Window[K]) Len() int {
	if w.full {
		return len(w.buf)
	}
	return w.head
}

// Reset forgets every key.
func (w *Window[K]) Reset() {
	clear(w.buf)
	w.head = 0
	w.full = false
}
