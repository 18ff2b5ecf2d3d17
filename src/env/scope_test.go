package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corelangc/src/env"
)

func TestGlobalFrameVisibleFromNestedScope(t *testing.T) {
	s := env.New[int]()
	s.Put("g", 1)
	s.PushEmpty()
	defer s.Pop()

	v, ok := s.Get("g")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	s := env.New[string]()
	s.Put("x", "outer")
	s.PushEmpty()
	s.Put("x", "inner")

	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, "inner", v)

	s.Pop()
	v, ok = s.Get("x")
	require.True(t, ok)
	assert.Equal(t, "outer", v)
}

func TestPutReturnsShadowedValue(t *testing.T) {
	s := env.New[int]()
	_, had := s.Put("x", 1)
	assert.False(t, had, "first Put should report no prior value")

	old, had := s.Put("x", 2)
	require.True(t, had)
	assert.Equal(t, 1, old)
}

func TestGetMissingReturnsFalse(t *testing.T) {
	s := env.New[int]()
	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestPopGlobalScopePanics(t *testing.T) {
	assert.Panics(t, func() {
		env.New[int]().Pop()
	})
}

func TestPushWithExplicitFrame(t *testing.T) {
	s := env.New[int]()
	s.Push(map[string]int{"a": 1, "b": 2})
	defer s.Pop()

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, s.Depth())
}
