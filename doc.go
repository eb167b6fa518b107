// Package pathwalk does path arithmetic on UNIX and Windows style paths
// without touching the filesystem.
//
// Paths are walked as a sequence of segments. The core operations
// (Normalize, Join, Absolute, Relative, Intersection and the Change*
// helpers) write into a caller supplied buffer and never allocate. They
// follow one buffer contract:
//
//   - at most len(dst) bytes are written
//   - the returned length is the length of the complete result, even when
//     dst was too small to hold it
//   - when len(dst) > 0 a zero byte is written at min(n, len(dst)-1)
//
// A result fits when n < len(dst). Passing a nil dst measures the result.
// Use Written to slice the usable part out of dst.
//
// Every core operation takes an explicit Style. The Style methods of the
// same name are allocating convenience wrappers returning strings, and
// GetStyle/SetStyle hold a process wide default for callers that want one.
//
// Inputs may be strings or byte slices:
//
//	var buf [256]byte
//	n := pathwalk.Normalize(pathwalk.StyleUnix, buf[:], "/var/logs//test/../.././")
//	fmt.Println(string(pathwalk.Written(buf[:], n))) // "/var"
package pathwalk
