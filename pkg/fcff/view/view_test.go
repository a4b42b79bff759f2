package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

var abc = []string{"A", "B", "C"}

func TestClampScenario(t *testing.T) {
	v, err := New(abc, Clamp)
	require.NoError(t, err)
	assert.Equal(t, "A", v.Current())

	require.NoError(t, v.Advance(1))
	assert.Equal(t, "B", v.Current())
	require.NoError(t, v.Advance(1))
	assert.Equal(t, "C", v.Current())
	require.NoError(t, v.Advance(1))
	assert.Equal(t, "C", v.Current())

	require.NoError(t, v.Advance(-10))
	assert.Equal(t, "A", v.Current())
	require.NoError(t, v.Prev())
	assert.Equal(t, 0, v.Index())
}

func TestWrap(t *testing.T) {
	v, err := New(abc, Wrap)
	require.NoError(t, err)

	require.NoError(t, v.Prev())
	assert.Equal(t, "C", v.Current())
	require.NoError(t, v.Next())
	assert.Equal(t, "A", v.Current())
	require.NoError(t, v.Advance(7))
	assert.Equal(t, "B", v.Current())
	require.NoError(t, v.Advance(-5))
	assert.Equal(t, "C", v.Current())
}

func TestReject(t *testing.T) {
	v, err := New(abc, Reject)
	require.NoError(t, err)
	require.NoError(t, v.Advance(2))

	err = v.Next()
	require.ErrorIs(t, err, types.ErrOutOfRange)
	assert.Equal(t, "C", v.Current())

	require.NoError(t, v.Advance(-2))
	err = v.Prev()
	require.ErrorIs(t, err, types.ErrOutOfRange)
	assert.Equal(t, "A", v.Current())
}

func TestJumpTo(t *testing.T) {
	v, err := New(abc, Clamp)
	require.NoError(t, err)
	require.NoError(t, v.Next())

	err = v.JumpTo("Z")
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, "B", v.Current())

	require.NoError(t, v.JumpTo("C"))
	assert.Equal(t, 2, v.Index())
}

func TestNewEmpty(t *testing.T) {
	_, err := New(nil, Clamp)
	assert.Error(t, err)
}

func TestNewCopiesInput(t *testing.T) {
	in := []string{"A", "B"}
	v, err := New(in, Clamp)
	require.NoError(t, err)
	in[0] = "X"
	assert.Equal(t, "A", v.Current())
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": Clamp, "Clamp": Clamp, " wrap ": Wrap, "REJECT": Reject} {
		got, err := ParsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in != "" {
			assert.Equal(t, want.String(), got.String())
		}
	}
	_, err := ParsePolicy("bounce")
	assert.Error(t, err)
}
