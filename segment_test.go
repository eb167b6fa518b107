package pathwalk

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstSegment(t *testing.T) {
	for _, p := range []string{"/hello_world/abc", "hello_world/abc", "//hello_world"} {
		seg, ok := FirstSegment(StyleUnix, p)
		require.True(t, ok, p)
		assert.Equal(t, "hello_world", seg.Value(), p)
	}

	for _, p := range []string{"", "/", "////", "C:\\"} {
		_, ok := FirstSegment(StyleWindows, p)
		assert.False(t, ok, p)
	}
}

func TestLastSegment(t *testing.T) {
	for _, p := range []string{"/hello_world/abc", "hello_world/abc", "hello_world/abc///"} {
		seg, ok := LastSegment(StyleUnix, p)
		require.True(t, ok, p)
		assert.Equal(t, "abc", seg.Value(), p)
	}
}

func TestNextSegment(t *testing.T) {
	seg, ok := FirstSegment(StyleUnix, "/hello_world/abc/")
	require.True(t, ok)
	assert.Equal(t, "hello_world", seg.Value())

	require.True(t, seg.Next())
	assert.Equal(t, "abc", seg.Value())
	assert.Equal(t, 13, seg.Begin())
	assert.Equal(t, 16, seg.End())
	assert.Equal(t, 3, seg.Size())

	assert.False(t, seg.Next())
	assert.False(t, seg.Next())
	assert.Equal(t, "abc", seg.Value(), "failed Next must not move the segment")
}

func TestPreviousSegment(t *testing.T) {
	for _, p := range []string{"/now/hello_world/abc/", "now/hello_world/abc/"} {
		seg, ok := LastSegment(StyleUnix, p)
		require.True(t, ok)
		assert.Equal(t, "abc", seg.Value())

		require.True(t, seg.Previous())
		assert.Equal(t, "hello_world", seg.Value())
		require.True(t, seg.Previous())
		assert.Equal(t, "now", seg.Value())

		assert.False(t, seg.Previous())
		assert.False(t, seg.Previous())
		assert.Equal(t, "now", seg.Value(), "failed Previous must not move the segment")
	}
}

func TestPreviousSegmentStopsAtRoot(t *testing.T) {
	seg, ok := LastSegment(StyleWindows, "C:\\this\\path")
	require.True(t, ok)
	assert.Equal(t, "path", seg.Value())
	require.True(t, seg.Previous())
	assert.Equal(t, "this", seg.Value())
	assert.False(t, seg.Previous())

	seg, ok = LastSegment(StyleWindows, "\\\\server\\share\\dir")
	require.True(t, ok)
	assert.Equal(t, "dir", seg.Value())
	assert.False(t, seg.Previous())
}

func TestPreviousSegmentSingleByte(t *testing.T) {
	seg, ok := LastSegment(StyleUnix, "/a/b")
	require.True(t, ok)
	require.True(t, seg.Previous())
	assert.Equal(t, "a", seg.Value())
	assert.False(t, seg.Previous())

	seg, ok = LastSegment(StyleUnix, "a//b")
	require.True(t, ok)
	require.True(t, seg.Previous())
	assert.Equal(t, "a", seg.Value())
}

func TestSegmentType(t *testing.T) {
	var got []SegmentType
	for seg := range Segments(StyleUnix, "/a/./../.folder/..folder") {
		got = append(got, seg.Type())
	}
	assert.Equal(t, []SegmentType{SegmentNormal, SegmentCurrent, SegmentBack, SegmentNormal, SegmentNormal}, got)
	assert.Equal(t, "back", SegmentBack.String())
}

func TestSegmentsIterators(t *testing.T) {
	var forward, backward []string
	for seg := range Segments(StyleWindows, "C:\\one/two\\\\three\\") {
		forward = append(forward, seg.String())
	}
	for seg := range Backward(StyleWindows, "C:\\one/two\\\\three\\") {
		backward = append(backward, seg.String())
	}
	assert.Equal(t, []string{"one", "two", "three"}, forward)
	slices.Reverse(backward)
	assert.Equal(t, forward, backward)

	for range Segments(StyleUnix, "/") {
		t.Fatal("root only path has no segments")
	}
}

func TestSegmentsOverBytes(t *testing.T) {
	seg, ok := FirstSegment(StyleUnix, []byte("/usr/lib"))
	require.True(t, ok)
	assert.Equal(t, []byte("usr"), seg.Value())
	assert.Equal(t, []byte("/usr/lib"), seg.Path())
}
