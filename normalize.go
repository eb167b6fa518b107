package pathwalk

// Normalize writes p with "." segments removed, ".." segments resolved
// against the segments before them, separator runs collapsed and trailing
// separators dropped. The root is kept, with Windows separators in it
// rewritten to '\'.
//
// A relative path that cancels out completely becomes ".", an absolute one
// becomes its root. An empty path stays empty. ".." segments that climb
// above the start of a relative path are kept, above an absolute root they
// are dropped.
//
// dst may be the same memory as p.
func Normalize[P Path](s Style, dst []byte, p P) int {
	paths := [1]P{p}
	return joinNormalized(s, dst, paths[:])
}

// Join writes the normalized concatenation of a and b. The root of b is not
// treated as a root: Join("/first", "/second") is "/first/second".
func Join[P Path](s Style, dst []byte, a, b P) int {
	paths := [2]P{a, b}
	return joinNormalized(s, dst, paths[:])
}

// JoinMultiple is Join for any number of paths.
func JoinMultiple[P Path](s Style, dst []byte, paths ...P) int {
	return joinNormalized(s, dst, paths)
}

// Absolute resolves p against base. An absolute p is only normalized. When
// base is relative too the result is rooted at a single separator.
func Absolute[P Path](s Style, dst []byte, base, p P) int {
	if IsAbsolute(s, p) {
		paths := [1]P{p}
		return joinNormalized(s, dst, paths[:])
	}
	if IsAbsolute(s, base) {
		paths := [2]P{base, p}
		return joinNormalized(s, dst, paths[:])
	}
	paths := [3]P{P("/"), base, p}
	return joinNormalized(s, dst, paths[:])
}

func joinNormalized[P Path](s Style, dst []byte, paths []P) int {
	w := writer{dst: dst}
	if len(paths) == 0 {
		return w.terminate()
	}

	rootLen, absolute := Root(s, paths[0])
	putRoot(&w, s, paths[0][:rootLen])

	j := joined[P]{style: s, paths: paths}
	if !j.first() {
		return w.terminate()
	}

	emitted := false
	for {
		if !j.removed(absolute) {
			emitted = true
			put(&w, j.seg.Value())
			w.putByte(s.Separator())
		}
		if !j.next() {
			break
		}
	}

	if emitted {
		w.pos--
	} else if w.pos == 0 {
		w.putByte('.')
	}
	return w.terminate()
}
