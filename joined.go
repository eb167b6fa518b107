package pathwalk

// joined walks several paths as if they were one. Only the first path
// contributes a root; later paths are only stripped of leading separators,
// so "C:" in a later Windows path is an ordinary segment.
type joined[P Path] struct {
	style Style
	paths []P
	index int
	seg   Segment[P]
}

func (j *joined[P]) firstIn(i int) (Segment[P], bool) {
	if i == 0 {
		return FirstSegment(j.style, j.paths[0])
	}
	return firstSegmentAfter(j.style, j.paths[i], 0)
}

func (j *joined[P]) lastIn(i int) (Segment[P], bool) {
	if i == 0 {
		return LastSegment(j.style, j.paths[0])
	}
	return lastSegmentAfter(j.style, j.paths[i], 0)
}

func (j *joined[P]) first() bool {
	for i := range j.paths {
		if seg, ok := j.firstIn(i); ok {
			j.index, j.seg = i, seg
			return true
		}
	}
	return false
}

func (j *joined[P]) next() bool {
	seg := j.seg
	if seg.Next() {
		j.seg = seg
		return true
	}
	for i := j.index + 1; i < len(j.paths); i++ {
		if seg, ok := j.firstIn(i); ok {
			j.index, j.seg = i, seg
			return true
		}
	}
	return false
}

func (j *joined[P]) previous() bool {
	seg := j.seg
	if seg.Previous() {
		j.seg = seg
		return true
	}
	for i := j.index - 1; i >= 0; i-- {
		if seg, ok := j.lastIn(i); ok {
			j.index, j.seg = i, seg
			return true
		}
	}
	return false
}

// removed reports whether normalization drops the current segment.
func (j joined[P]) removed(absolute bool) bool {
	switch j.seg.Type() {
	case SegmentCurrent:
		return true
	case SegmentBack:
		return absolute || j.backCancelled()
	default:
		return j.normalCancelled()
	}
}

// backCancelled scans backward from a ".." for a normal segment it cancels.
// j is a copy, the caller's cursor does not move.
func (j joined[P]) backCancelled() bool {
	counter := 0
	for j.previous() {
		switch j.seg.Type() {
		case SegmentNormal:
			counter++
			if counter > 0 {
				return true
			}
		case SegmentBack:
			counter--
		}
	}
	return false
}

// normalCancelled scans forward for a ".." that cancels this segment.
func (j joined[P]) normalCancelled() bool {
	counter := 0
	for j.next() {
		switch j.seg.Type() {
		case SegmentNormal:
			counter++
		case SegmentBack:
			counter--
			if counter < 0 {
				return true
			}
		}
	}
	return false
}

// skipRemoved advances past segments normalization would drop. It reports
// false when it runs out of segments.
func (j *joined[P]) skipRemoved(absolute bool) bool {
	for j.removed(absolute) {
		if !j.next() {
			return false
		}
	}
	return true
}
