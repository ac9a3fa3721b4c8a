package frame

import (
	"math/rand"
	"testing"
)

// Benchmarks comparing the two scan strategies on the same bitmap
// states. This is where the linear/byte-scan trade-off is measured;
// behavior is pinned by Test_Strategies_Equivalence.

func benchBitmap(density float64) (bitmap, uint32) {
	const total = 4096 // default geometry frame count
	bm := newBitmap(total)
	rng := rand.New(rand.NewSource(1))
	for i := uint32(0); i < total; i++ {
		if rng.Float64() < density {
			bm.set(i)
		}
	}
	return bm, total
}

func benchmarkScan(b *testing.B, s ScanStrategy, density float64) {
	bm, total := benchBitmap(density)
	hint := uint32(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx, ok := s.FindFree(bm, total, hint)
		if ok {
			hint = idx + 1
		} else {
			hint = 0
		}
	}
}

func Benchmark_LinearScan_Sparse(b *testing.B)  { benchmarkScan(b, LinearScan{}, 0.10) }
func Benchmark_ByteScan_Sparse(b *testing.B)    { benchmarkScan(b, ByteScan{}, 0.10) }
func Benchmark_LinearScan_Dense(b *testing.B)   { benchmarkScan(b, LinearScan{}, 0.95) }
func Benchmark_ByteScan_Dense(b *testing.B)     { benchmarkScan(b, ByteScan{}, 0.95) }
func Benchmark_LinearScan_HalfFull(b *testing.B) { benchmarkScan(b, LinearScan{}, 0.50) }
func Benchmark_ByteScan_HalfFull(b *testing.B)   { benchmarkScan(b, ByteScan{}, 0.50) }

func Benchmark_AllocFreeCycle(b *testing.B) {
	a, err := New(testGeometry, ByteScan{})
	if err != nil {
		b.Fatal(err)
	}
	if err := a.Init(testGeometry.KernelEnd); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		addr, allocErr := a.AllocatePage()
		if allocErr != nil {
			b.Fatal(allocErr)
		}
		if freeErr := a.FreePage(addr); freeErr != nil {
			b.Fatal(freeErr)
		}
	}
}
