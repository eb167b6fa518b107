package pathwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoot(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		path     string
		length   int
		absolute bool
	}{
		{"unix absolute", StyleUnix, "/test.txt", 1, true},
		{"unix relative", StyleUnix, "test.txt", 0, false},
		{"unix only root", StyleUnix, "/", 1, true},
		{"unix ignores drive", StyleUnix, "C:\\test.txt", 0, false},
		{"unix ignores backslash", StyleUnix, "\\folder\\", 0, false},
		{"windows empty", StyleWindows, "", 0, false},
		{"windows relative", StyleWindows, "..\\hello\\world.txt", 0, false},
		{"windows relative drive", StyleWindows, "C:test.txt", 2, false},
		{"windows absolute drive", StyleWindows, "C:\\test.txt", 3, true},
		{"windows drive forward slash", StyleWindows, "C:/test.txt", 3, true},
		{"windows slash", StyleWindows, "/test.txt", 1, true},
		{"windows backslash", StyleWindows, "\\test.txt", 1, true},
		{"device question mark", StyleWindows, "\\\\?\\mydevice\\test", 4, true},
		{"device dot", StyleWindows, "\\\\.\\mydevice\\test", 4, true},
		{"device unc", StyleWindows, "\\\\.\\UNC\\LOCALHOST\\c$\\temp\\test-file.txt", 4, true},
		{"unc", StyleWindows, "\\\\server\\folder\\data", 16, true},
		{"unc without share", StyleWindows, "\\\\server", 8, false},
		{"unc share without separator", StyleWindows, "\\\\server\\share", 14, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length, absolute := Root(tt.style, tt.path)
			assert.Equal(t, tt.length, length)
			assert.Equal(t, tt.absolute, absolute)
			assert.Equal(t, tt.absolute, IsAbsolute(tt.style, tt.path))
			assert.Equal(t, !tt.absolute, IsRelative(tt.style, tt.path))
		})
	}
}

func TestRootAcceptsBytes(t *testing.T) {
	length, absolute := Root(StyleWindows, []byte("C:\\data"))
	assert.Equal(t, 3, length)
	assert.True(t, absolute)
}

func TestIsAbsoluteUnix(t *testing.T) {
	for _, p := range []string{"..", "test", "test/test", "../another_test", "./simple", ".././simple"} {
		assert.False(t, IsAbsolute(StyleUnix, p), p)
		assert.True(t, IsRelative(StyleUnix, p), p)
	}
	for _, p := range []string{"/", "/test", "/../test/", "/../another_test", "/./simple", "/.././simple", "/dir"} {
		assert.True(t, IsAbsolute(StyleUnix, p), p)
	}
}
