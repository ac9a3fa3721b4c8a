package frame

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Bitmap_SetClearTest(t *testing.T) {
	b := newBitmap(64)

	require.False(t, b.test(0))
	b.set(0)
	require.True(t, b.test(0))
	b.clear(0)
	require.False(t, b.test(0))

	b.set(63)
	require.True(t, b.test(63))
	require.Equal(t, uint32(1), b.countSet())
}

// Test_Bitmap_SetRange_PartialBytes exercises runs that start and end
// mid-byte, the cases the bulk masks exist for.
func Test_Bitmap_SetRange_PartialBytes(t *testing.T) {
	cases := []struct {
		name         string
		start, count uint32
	}{
		{"within one byte", 1, 3},
		{"aligned short", 0, 4},
		{"full byte", 0, 8},
		{"leading partial", 4, 8},
		{"trailing partial", 8, 5},
		{"both partial", 3, 13},
		{"long run", 5, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBitmap(128)
			b.setRange(tc.start, tc.count)

			for i := uint32(0); i < 128; i++ {
				want := i >= tc.start && i < tc.start+tc.count
				require.Equal(t, want, b.test(i), "bit %d", i)
			}
			require.Equal(t, tc.count, b.countSet())
		})
	}
}

func Test_Bitmap_ClearRange_InvertsSetRange(t *testing.T) {
	b := newBitmap(128)
	b.setRange(0, 128)

	b.clearRange(3, 13)
	for i := uint32(0); i < 128; i++ {
		want := i < 3 || i >= 16
		require.Equal(t, want, b.test(i), "bit %d", i)
	}
	require.Equal(t, uint32(115), b.countSet())
}

func Test_Bitmap_RangeZeroCount(t *testing.T) {
	b := newBitmap(64)
	b.setRange(10, 0)
	require.Equal(t, uint32(0), b.countSet())
	b.setRange(0, 64)
	b.clearRange(10, 0)
	require.Equal(t, uint32(64), b.countSet())
}

// Test_Bitmap_SetRange_MatchesBitByBit cross-checks the bulk masks
// against the single-bit path on random runs.
func Test_Bitmap_SetRange_MatchesBitByBit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		const frames = 256
		start := uint32(rng.Intn(frames))
		count := uint32(rng.Intn(frames - int(start)))

		bulk := newBitmap(frames)
		single := newBitmap(frames)

		bulk.setRange(start, count)
		for i := start; i < start+count; i++ {
			single.set(i)
		}

		require.Equal(t, single, bulk, "start=%d count=%d", start, count)
	}
}
