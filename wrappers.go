package pathwalk

// render runs a core operation into a small stack buffer and falls back to
// an exactly sized one when the result does not fit.
func render(op func(dst []byte) int) string {
	var small [128]byte
	n := op(small[:])
	if n < len(small) {
		return string(small[:n])
	}
	buf := make([]byte, n+1)
	n = op(buf)
	return string(buf[:n])
}

func (s Style) Normalize(p string) string {
	return render(func(dst []byte) int { return Normalize(s, dst, p) })
}

func (s Style) Join(a, b string) string {
	return render(func(dst []byte) int { return Join(s, dst, a, b) })
}

func (s Style) JoinMultiple(paths ...string) string {
	return render(func(dst []byte) int { return JoinMultiple(s, dst, paths...) })
}

func (s Style) Absolute(base, p string) string {
	return render(func(dst []byte) int { return Absolute(s, dst, base, p) })
}

// Relative returns the path from base to target and false when the two
// do not share a root.
func (s Style) Relative(base, target string) (string, bool) {
	if !SharesRoot(s, base, target) {
		return "", false
	}
	return render(func(dst []byte) int { return Relative(s, dst, base, target) }), true
}

// Intersection returns the leading part of a naming the same location as b.
func (s Style) Intersection(a, b string) string {
	return a[:Intersection(s, a, b)]
}

func (s Style) Root(p string) string {
	n, _ := Root(s, p)
	return p[:n]
}

func (s Style) IsAbsolute(p string) bool { return IsAbsolute(s, p) }

func (s Style) IsRelative(p string) bool { return IsRelative(s, p) }

// Split returns the text of every segment of p.
func (s Style) Split(p string) []string {
	var out []string
	for seg := range Segments(s, p) {
		out = append(out, seg.Value())
	}
	return out
}

func (s Style) Basename(p string) string {
	name, _ := Basename(s, p)
	return name
}

func (s Style) Dirname(p string) string {
	return p[:Dirname(s, p)]
}

func (s Style) Extension(p string) string {
	ext, _ := Extension(s, p)
	return ext
}

func (s Style) ChangeRoot(p, newRoot string) string {
	return render(func(dst []byte) int { return ChangeRoot(s, dst, p, newRoot) })
}

func (s Style) ChangeBasename(p, name string) string {
	return render(func(dst []byte) int { return ChangeBasename(s, dst, p, name) })
}

func (s Style) ChangeExtension(p, ext string) string {
	return render(func(dst []byte) int { return ChangeExtension(s, dst, p, ext) })
}
