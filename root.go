package pathwalk

// Root returns the length of the root of p and whether that root makes p
// absolute.
//
// UNIX roots are a single leading '/'. Windows roots are one of:
//
//	\        a leading separator
//	\\?\     \\.\  device namespaces
//	\\server\share\
//	C:       relative to the current directory of drive C
//	C:\
func Root[P Path](s Style, p P) (int, bool) {
	n := rootLength(s, p)
	return n, isRootAbsolute(s, p, n)
}

func IsAbsolute[P Path](s Style, p P) bool {
	_, abs := Root(s, p)
	return abs
}

func IsRelative[P Path](s Style, p P) bool {
	return !IsAbsolute(s, p)
}

func rootLength[P Path](s Style, p P) int {
	if s == StyleWindows {
		return windowsRoot(s, p)
	}
	if len(p) > 0 && p[0] == '/' {
		return 1
	}
	return 0
}

func windowsRoot[P Path](s Style, p P) int {
	if len(p) == 0 {
		return 0
	}

	if s.IsSeparator(p[0]) {
		if len(p) < 2 || !s.IsSeparator(p[1]) {
			return 1
		}
		if len(p) >= 4 && (p[2] == '?' || p[2] == '.') && s.IsSeparator(p[3]) {
			return 4
		}

		// \\server\share\ : the server name, any separator run, then the share
		i := nextStop(s, p, 2)
		for i < len(p) && s.IsSeparator(p[i]) {
			i++
		}
		i = nextStop(s, p, i)
		if i < len(p) {
			i++
		}
		return i
	}

	if len(p) >= 2 && p[1] == ':' {
		if len(p) >= 3 && s.IsSeparator(p[2]) {
			return 3
		}
		return 2
	}
	return 0
}

func isRootAbsolute[P Path](s Style, p P, n int) bool {
	return n > 0 && s.IsSeparator(p[n-1])
}
