// Package frame implements the page frame allocator: a bitmap with one
// bit per physical page frame (bit set = frame in use) and a search
// hint pointing at the next frame to try.
//
// # Scan strategies
//
// Free frames are located by a ScanStrategy. Two implementations exist
// behind the same interface:
//
//   - LinearScan walks the bitmap one bit at a time.
//   - ByteScan inspects eight frames per step and extracts the first
//     zero bit with a bit-count primitive.
//
// Both strategies return the same frame for the same bitmap state and
// hint; the choice is a performance strategy, not a behavioral one. The
// equivalence is enforced by a property test and the two are compared by
// the package benchmarks.
//
// # Concurrency
//
// One spinlock guards the bitmap and the hint. Every mutating operation
// holds it for its full duration, including the read-modify-write of
// bitmap bytes.
package frame
