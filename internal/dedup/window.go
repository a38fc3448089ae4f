package dedup

// window is a bounded FIFO of strings with O(1) membership checks. When full,
// adding a new entry silently evicts the oldest one.
type window struct {
	buf   []string
	seen  map[string]int // value -> live occurrence count
	head  int
	count int
}

func newWindow(capacity int) *window {
	if capacity < 1 {
		capacity = 1
	}
	return &window{
		buf:  make([]string, capacity),
		seen: make(map[string]int, capacity),
	}
}

func (w *window) add(s string) {
	if w.count == len(w.buf) {
		oldest := w.buf[w.head]
		if n := w.seen[oldest]; n <= 1 {
			delete(w.seen, oldest)
		} else {
			w.seen[oldest] = n - 1
		}
		w.buf[w.head] = s
		w.head = (w.head + 1) % len(w.buf)
	} else {
		w.buf[(w.head+w.count)%len(w.buf)] = s
		w.count++
	}
	w.seen[s]++
}

func (w *window) contains(s string) bool {
	_, ok := w.seen[s]
	return ok
}

// each visits entries oldest-first; the visitor returns false to stop.
func (w *window) each(fn func(s string) bool) {
	for i := 0; i < w.count; i++ {
		if !fn(w.buf[(w.head+i)%len(w.buf)]) {
			return
		}
	}
}

func (w *window) reset() {
	w.head = 0
	w.count = 0
	w.seen = make(map[string]int, len(w.buf))
}
