package pathwalk

// Intersection returns how many leading bytes of a name the same location
// as b. Roots must match and segments are compared as normalization would
// see them, so "/a/b/../c" and "/a/c" share "/a/b/../c". The result ends
// after the last matching segment of a, or after the root when no segment
// matches.
func Intersection[P Path](s Style, a, b P) int {
	rootLen, absolute, ok := sameRoot(s, a, b)
	if !ok {
		return 0
	}

	pa, pb := [1]P{a}, [1]P{b}
	ja := joined[P]{style: s, paths: pa[:]}
	jb := joined[P]{style: s, paths: pb[:]}
	if !ja.first() || !jb.first() {
		return rootLen
	}

	end := rootLen
	for {
		if !ja.skipRemoved(absolute) || !jb.skipRemoved(absolute) {
			break
		}
		if !equal(s, ja.seg.Value(), jb.seg.Value()) {
			break
		}
		end = ja.seg.End()
		if !ja.next() || !jb.next() {
			break
		}
	}
	return end
}

// Relative writes the path leading from base to target: one ".." for every
// segment of base past the shared prefix, then the rest of target. Equal
// locations give ".". When the roots differ, including one path being
// absolute and the other relative, no path exists and 0 is returned.
func Relative[P Path](s Style, dst []byte, base, target P) int {
	w := writer{dst: dst}

	_, absolute, ok := sameRoot(s, base, target)
	if !ok {
		return w.terminate()
	}

	pb, pt := [1]P{base}, [1]P{target}
	jb := joined[P]{style: s, paths: pb[:]}
	jt := joined[P]{style: s, paths: pt[:]}
	baseLeft := jb.first()
	targetLeft := jt.first()

	for baseLeft && targetLeft {
		baseLeft = jb.skipRemoved(absolute)
		targetLeft = jt.skipRemoved(absolute)
		if !baseLeft || !targetLeft {
			break
		}
		if !equal(s, jb.seg.Value(), jt.seg.Value()) {
			break
		}
		baseLeft = jb.next()
		targetLeft = jt.next()
	}

	emitted := false
	for more := baseLeft; more; more = jb.next() {
		if jb.removed(absolute) {
			continue
		}
		emitted = true
		put(&w, "..")
		w.putByte(s.Separator())
	}
	for more := targetLeft; more; more = jt.next() {
		if jt.removed(absolute) {
			continue
		}
		emitted = true
		put(&w, jt.seg.Value())
		w.putByte(s.Separator())
	}

	if emitted {
		w.pos--
	} else {
		w.putByte('.')
	}
	return w.terminate()
}

// SharesRoot reports whether a and b have the same root, so that Relative
// can express one in terms of the other.
func SharesRoot[P Path](s Style, a, b P) bool {
	_, _, ok := sameRoot(s, a, b)
	return ok
}

func sameRoot[P Path](s Style, a, b P) (int, bool, bool) {
	rootA, absolute := Root(s, a)
	rootB, _ := Root(s, b)
	if rootA != rootB || !equal(s, a[:rootA], b[:rootB]) {
		return 0, false, false
	}
	return rootA, absolute, true
}
