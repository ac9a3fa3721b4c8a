package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Arena_New(t *testing.T) {
	a, err := New(1 << 16)
	require.NoError(t, err)
	defer a.Release()

	require.Equal(t, uint32(1<<16), a.Size())
	require.Len(t, a.Bytes(), 1<<16)

	// Fresh arenas are zero-filled.
	for _, b := range a.Bytes()[:4096] {
		if b != 0 {
			t.Fatal("arena not zero-filled")
		}
	}
}

func Test_Arena_ZeroSize(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrSize)
}

func Test_Arena_Slice(t *testing.T) {
	a, err := New(8192)
	require.NoError(t, err)
	defer a.Release()

	s := a.Slice(4096, 4096)
	require.Len(t, s, 4096)

	// Writes through the slice land in the backing buffer.
	s[0] = 0xAB
	require.Equal(t, byte(0xAB), a.Bytes()[4096])

	// Out of range requests return nil rather than panicking.
	require.Nil(t, a.Slice(4096, 4097))
	require.Nil(t, a.Slice(8192, 1))

	// Offset+length overflow must not wrap.
	require.Nil(t, a.Slice(0xFFFFFFFF, 0xFFFFFFFF))
}

func Test_Arena_ReleaseTwice(t *testing.T) {
	a, err := New(4096)
	require.NoError(t, err)
	require.NoError(t, a.Release())
	require.NoError(t, a.Release())
}
