package pathwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasename(t *testing.T) {
	tests := []struct {
		style    Style
		path     string
		want     string
		wantBare string
		ok       bool
	}{
		{StyleWindows, "C:\\path\\test.txt", "test.txt", "test", true},
		{StyleUnix, "/", "", "", false},
		{StyleUnix, "", "", "", false},
		{StyleUnix, "..", "..", ".", true},
		{StyleUnix, ".", ".", "", true},
		{StyleUnix, "file_name", "file_name", "file_name", true},
		{StyleUnix, "/my/path.txt////", "path.txt", "path", true},
		{StyleUnix, "/my/path.txt/", "path.txt", "path", true},
		{StyleUnix, "/my/path.txt", "path.txt", "path", true},
		{StyleUnix, "/my/archive.tar.gz", "archive.tar.gz", "archive.tar", true},
	}

	for _, tt := range tests {
		got, ok := Basename(tt.style, tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)

		bare, ok := BasenameWithoutExtension(tt.style, tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.wantBare, bare, tt.path)
	}
}

func TestDirname(t *testing.T) {
	tests := map[string]int{
		"/":                0,
		"..":               0,
		".":                0,
		"file_name":        0,
		"/my/path.txt////": 4,
		"/my/path.txt/":    4,
		"":                 0,
		"/my/path.txt":     4,
	}

	for in, want := range tests {
		assert.Equal(t, want, Dirname(StyleUnix, in), in)
	}
	assert.Equal(t, "C:\\dir\\", StyleWindows.Dirname("C:\\dir\\file"))
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/my/path", "", false},
		{"/my/path.txt", ".txt", true},
		{"/my/path.abc.txt.tests", ".tests", true},
		{"/my/path.", ".", true},
		{"/my/.path", ".path", true},
		{"/my.dir/path", "", false},
		{"/", "", false},
	}

	for _, tt := range tests {
		got, ok := Extension(StyleUnix, tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.ok, HasExtension(StyleUnix, tt.path), tt.path)
	}
}
