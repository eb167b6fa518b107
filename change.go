package pathwalk

// The Change functions build their output back to front: the unchanged
// tail is moved first, then the new text, then the head. That order lets
// dst share memory with the input path.

// ChangeRoot writes p with its root replaced by newRoot, copied verbatim.
// An empty newRoot removes the root.
func ChangeRoot[P, R Path](s Style, dst []byte, p P, newRoot R) int {
	rootLen := rootLength(s, p)
	tail := p[rootLen:]

	writeAt(dst, len(newRoot), tail)
	writeAt(dst, 0, newRoot)

	n := len(newRoot) + len(tail)
	terminate(dst, n)
	return n
}

// ChangeSegment writes the path of seg with the segment text replaced by
// value. Separators around value are trimmed. An empty value leaves the
// surrounding separators in place.
func ChangeSegment[P, V Path](seg Segment[P], dst []byte, value V) int {
	value = trimSeparators(seg.style, value)
	head := seg.path[:seg.begin]
	tail := seg.path[seg.end:]

	writeAt(dst, len(head)+len(value), tail)
	writeAt(dst, len(head), value)
	writeAt(dst, 0, head)

	n := len(head) + len(value) + len(tail)
	terminate(dst, n)
	return n
}

// ChangeBasename writes p with its last segment replaced by name. A path
// without segments gets name appended after its root.
func ChangeBasename[P, V Path](s Style, dst []byte, p P, name V) int {
	seg, ok := LastSegment(s, p)
	if ok {
		return ChangeSegment(seg, dst, name)
	}

	name = trimSeparators(s, name)
	rootLen := rootLength(s, p)
	n := writeAt(dst, 0, p[:rootLen])
	n += writeAt(dst, n, name)
	terminate(dst, n)
	return n
}

// ChangeExtension writes p with the extension of its last segment replaced
// by ext, or added when there is none. A leading '.' in ext is optional and
// an empty ext removes the extension. Paths without segments are copied
// unchanged.
func ChangeExtension[P, V Path](s Style, dst []byte, p P, ext V) int {
	seg, ok := LastSegment(s, p)
	if !ok {
		n := writeAt(dst, 0, p)
		terminate(dst, n)
		return n
	}

	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	dot := extensionStart(seg)
	tail := p[seg.end:]

	n := dot
	if len(ext) > 0 {
		n += 1 + len(ext)
	}
	writeAt(dst, n, tail)
	if len(ext) > 0 {
		writeAt(dst, dot+1, ext)
		if dot < len(dst) {
			dst[dot] = '.'
		}
	}
	writeAt(dst, 0, p[:dot])

	n += len(tail)
	terminate(dst, n)
	return n
}

func trimSeparators[V Path](s Style, v V) V {
	start, end := 0, len(v)
	for start < end && s.IsSeparator(v[start]) {
		start++
	}
	for end > start && s.IsSeparator(v[end-1]) {
		end--
	}
	return v[start:end]
}
