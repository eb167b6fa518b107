package pathwalk

import "iter"

// SegmentType classifies a segment by its text.
type SegmentType int

const (
	SegmentNormal  SegmentType = iota // any name
	SegmentCurrent                    // "."
	SegmentBack                       // ".."
)

func (t SegmentType) String() string {
	switch t {
	case SegmentCurrent:
		return "current"
	case SegmentBack:
		return "back"
	default:
		return "normal"
	}
}

// Segment is a view of one segment of a path. It never spans a separator
// and is never empty. The zero value is not a valid segment.
type Segment[P Path] struct {
	style Style
	path  P
	// lower bound for backward traversal, the end of the root
	segments int
	begin    int
	end      int
}

// FirstSegment returns the first segment after the root of p. It reports
// false when p has no segments, as with "", "/" or "C:\".
func FirstSegment[P Path](s Style, p P) (Segment[P], bool) {
	return firstSegmentAfter(s, p, rootLength(s, p))
}

// LastSegment returns the last segment of p, ignoring trailing separators.
func LastSegment[P Path](s Style, p P) (Segment[P], bool) {
	seg, ok := FirstSegment(s, p)
	if !ok {
		return seg, false
	}
	for seg.Next() {
	}
	return seg, true
}

// firstSegmentAfter skips the first n bytes of p and then any separators.
func firstSegmentAfter[P Path](s Style, p P, n int) (Segment[P], bool) {
	i := n
	for i < len(p) && s.IsSeparator(p[i]) {
		i++
	}
	if i >= len(p) {
		return Segment[P]{}, false
	}
	return Segment[P]{
		style:    s,
		path:     p,
		segments: n,
		begin:    i,
		end:      nextStop(s, p, i),
	}, true
}

func lastSegmentAfter[P Path](s Style, p P, n int) (Segment[P], bool) {
	seg, ok := firstSegmentAfter(s, p, n)
	if !ok {
		return seg, false
	}
	for seg.Next() {
	}
	return seg, true
}

// Next advances to the following segment. Trailing separators do not form
// a segment. On false the segment is left unchanged.
func (g *Segment[P]) Next() bool {
	i := g.end
	for i < len(g.path) && g.style.IsSeparator(g.path[i]) {
		i++
	}
	if i >= len(g.path) {
		return false
	}
	g.begin = i
	g.end = nextStop(g.style, g.path, i)
	return true
}

// Previous moves back to the preceding segment, never into the root. On
// false the segment is left unchanged.
func (g *Segment[P]) Previous() bool {
	if g.begin <= g.segments {
		return false
	}
	i := g.begin - 1
	for i >= g.segments && g.style.IsSeparator(g.path[i]) {
		i--
	}
	if i < g.segments {
		return false
	}
	g.end = i + 1
	g.begin = previousStop(g.style, g.path, g.segments, i)
	return true
}

func (g Segment[P]) Type() SegmentType {
	switch g.end - g.begin {
	case 1:
		if g.path[g.begin] == '.' {
			return SegmentCurrent
		}
	case 2:
		if g.path[g.begin] == '.' && g.path[g.begin+1] == '.' {
			return SegmentBack
		}
	}
	return SegmentNormal
}

// Begin is the offset of the first byte of the segment within Path.
func (g Segment[P]) Begin() int { return g.begin }

// End is the offset just past the segment.
func (g Segment[P]) End() int { return g.end }

func (g Segment[P]) Size() int { return g.end - g.begin }

// Value returns the text of the segment.
func (g Segment[P]) Value() P { return g.path[g.begin:g.end] }

// Path returns the whole path the segment was taken from.
func (g Segment[P]) Path() P { return g.path }

func (g Segment[P]) Style() Style { return g.style }

func (g Segment[P]) String() string { return string(g.Value()) }

// Segments iterates over the segments of p from first to last.
func Segments[P Path](s Style, p P) iter.Seq[Segment[P]] {
	return func(yield func(Segment[P]) bool) {
		seg, ok := FirstSegment(s, p)
		for ok {
			if !yield(seg) {
				return
			}
			ok = seg.Next()
		}
	}
}

// Backward iterates over the segments of p from last to first.
func Backward[P Path](s Style, p P) iter.Seq[Segment[P]] {
	return func(yield func(Segment[P]) bool) {
		seg, ok := LastSegment(s, p)
		for ok {
			if !yield(seg) {
				return
			}
			ok = seg.Previous()
		}
	}
}

func nextStop[P Path](s Style, p P, i int) int {
	for i < len(p) && !s.IsSeparator(p[i]) {
		i++
	}
	return i
}

// previousStop returns the start of the segment whose last byte is at i.
func previousStop[P Path](s Style, p P, lower, i int) int {
	for i > lower && !s.IsSeparator(p[i-1]) {
		i--
	}
	return i
}
