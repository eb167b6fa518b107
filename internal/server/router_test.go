package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterMatchLongestPrefix(t *testing.T) {
	router := newRouter([]Route{
		{ID: "a", Prefix: "/api"},
		{ID: "b", Prefix: "/api/v1/"},
		{ID: "root", Prefix: "/"},
	})

	route, ok := router.Match("/api/v1/users")
	require.True(t, ok)
	assert.Equal(t, "b", route.ID)
	assert.Equal(t, "/api/v1", route.Prefix)

	route, ok = router.Match("/api/v2")
	require.True(t, ok)
	assert.Equal(t, "a", route.ID)

	route, ok = router.Match("/apiv1")
	require.True(t, ok)
	assert.Equal(t, "root", route.ID)
}

func TestRouterMatchesWholeSegments(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		path string
		op   string
		ok   bool
	}{
		{"/v1/join", "join", true},
		{"/v1/join/", "join", true},
		{"/v1//join", "join", true},
		{"/v1/x/../join", "join", true},
		{"/v1/./change-root", "change-root", true},
		{"/v1/joined", "", false},
		{"/v1/join/../normalize", "normalize", true},
		{"/v2/join", "", false},
		{"v1/join", "", false},
		{"/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, ok := router.Match(tt.path)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.op, route.Op)
		})
	}

	route, ok := router.Match("/healthz")
	require.True(t, ok)
	assert.Equal(t, "healthz", route.ID)
	assert.Empty(t, route.Op)
}
