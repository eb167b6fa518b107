package pathwalk

// writer appends to a bounded buffer. pos keeps counting past the end of
// dst so the complete length is known after a truncated write.
type writer struct {
	dst []byte
	pos int
}

func put[P Path](w *writer, text P) {
	w.pos += writeAt(w.dst, w.pos, text)
}

func (w *writer) putByte(c byte) {
	if w.pos < len(w.dst) {
		w.dst[w.pos] = c
	}
	w.pos++
}

// putRoot copies a root and rewrites Windows separators to '\'.
func putRoot[P Path](w *writer, s Style, root P) {
	start := w.pos
	put(w, root)
	if s != StyleWindows {
		return
	}
	for i := start; i < w.pos && i < len(w.dst); i++ {
		if w.dst[i] == '/' {
			w.dst[i] = '\\'
		}
	}
}

func (w *writer) terminate() int {
	terminate(w.dst, w.pos)
	return w.pos
}

// writeAt copies as much of text as fits at dst[pos:] and returns len(text).
// copy has memmove semantics, so dst may overlap text.
func writeAt[P Path](dst []byte, pos int, text P) int {
	if pos < len(dst) {
		copy(dst[pos:], text)
	}
	return len(text)
}

func terminate(dst []byte, n int) {
	if len(dst) == 0 {
		return
	}
	if n < len(dst) {
		dst[n] = 0
		return
	}
	dst[len(dst)-1] = 0
}

// Written returns the usable prefix of dst after an operation returned n.
// It is shorter than n when the result was truncated.
func Written(dst []byte, n int) []byte {
	if n < len(dst) {
		return dst[:n]
	}
	if len(dst) == 0 {
		return dst[:0]
	}
	return dst[:len(dst)-1]
}

// Fits reports whether a result of length n was written to dst in full.
func Fits(dst []byte, n int) bool {
	return n < len(dst)
}
