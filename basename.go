package pathwalk

// Basename returns the last segment of p. Trailing separators are ignored.
// It reports false when p has no segments.
func Basename[P Path](s Style, p P) (P, bool) {
	seg, ok := LastSegment(s, p)
	if !ok {
		var zero P
		return zero, false
	}
	return seg.Value(), true
}

// BasenameWithoutExtension is Basename cut before the last '.'.
func BasenameWithoutExtension[P Path](s Style, p P) (P, bool) {
	seg, ok := LastSegment(s, p)
	if !ok {
		var zero P
		return zero, false
	}
	return p[seg.begin:extensionStart(seg)], true
}

// Dirname returns the length of the part of p before its last segment, so
// p[:Dirname(s, p)] keeps the root and the separator in front of the
// basename. Paths without segments have no dirname and return 0.
func Dirname[P Path](s Style, p P) int {
	seg, ok := LastSegment(s, p)
	if !ok {
		return 0
	}
	return seg.begin
}

// Extension returns the extension of the last segment, from its last '.'
// to the end and including the dot.
func Extension[P Path](s Style, p P) (P, bool) {
	seg, ok := LastSegment(s, p)
	if !ok {
		var zero P
		return zero, false
	}
	dot := extensionStart(seg)
	if dot == seg.end {
		var zero P
		return zero, false
	}
	return p[dot:seg.end], true
}

func HasExtension[P Path](s Style, p P) bool {
	_, ok := Extension(s, p)
	return ok
}

// extensionStart is the offset of the last '.' in seg, or seg.end.
func extensionStart[P Path](seg Segment[P]) int {
	for i := seg.end - 1; i >= seg.begin; i-- {
		if seg.path[i] == '.' {
			return i
		}
	}
	return seg.end
}
