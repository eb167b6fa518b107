package pathwalk

// GuessStyle guesses the style p was written in. Drive, UNC and device
// roots mean Windows. Otherwise the first separator decides, '/' for UNIX
// and '\' for Windows. Without separators a leading '.' (a hidden file)
// means UNIX and any other '.' (an extension) means Windows. Everything
// else, including the empty path, is UNIX.
func GuessStyle[P Path](p P) Style {
	if windowsRoot(StyleWindows, p) > 1 {
		return StyleWindows
	}

	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '/':
			return StyleUnix
		case '\\':
			return StyleWindows
		}
	}

	seg, ok := LastSegment(StyleUnix, p)
	if !ok || p[seg.begin] == '.' {
		return StyleUnix
	}
	if extensionStart(seg) != seg.end {
		return StyleWindows
	}
	return StyleUnix
}
