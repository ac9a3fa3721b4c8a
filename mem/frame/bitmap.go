package frame

import "math/bits"

// bitmap is the frame usage map: one bit per frame, bit set while the
// frame is handed out or reserved.
type bitmap []byte

func newBitmap(frames uint32) bitmap {
	return make(bitmap, (frames+7)/8)
}

func (b bitmap) set(i uint32) {
	b[i>>3] |= 1 << (i & 7)
}

func (b bitmap) clear(i uint32) {
	b[i>>3] &^= 1 << (i & 7)
}

func (b bitmap) test(i uint32) bool {
	return b[i>>3]&(1<<(i&7)) != 0
}

// setRange marks count bits starting at start in one pass: a masked
// write for the partial leading byte, full-byte stores in the middle,
// and a masked write for the partial trailing byte.
func (b bitmap) setRange(start, count uint32) {
	if count == 0 {
		return
	}
	end := start + count
	startByte := start >> 3
	startBit := start & 7
	endByte := end >> 3
	endBit := end & 7

	if startBit != 0 {
		mask := byte(0xFF << startBit)
		if startByte == endByte {
			mask &= 0xFF >> (8 - endBit)
		}
		b[startByte] |= mask
		startByte++
	}
	for i := startByte; i < endByte; i++ {
		b[i] = 0xFF
	}
	if endBit != 0 && endByte >= startByte {
		b[endByte] |= 0xFF >> (8 - endBit)
	}
}

// clearRange is the inverse of setRange.
func (b bitmap) clearRange(start, count uint32) {
	if count == 0 {
		return
	}
	end := start + count
	startByte := start >> 3
	startBit := start & 7
	endByte := end >> 3
	endBit := end & 7

	if startBit != 0 {
		mask := byte(0xFF << startBit)
		if startByte == endByte {
			mask &= 0xFF >> (8 - endBit)
		}
		b[startByte] &^= mask
		startByte++
	}
	for i := startByte; i < endByte; i++ {
		b[i] = 0
	}
	if endBit != 0 && endByte >= startByte {
		b[endByte] &^= 0xFF >> (8 - endBit)
	}
}

// countSet returns the number of set bits.
func (b bitmap) countSet() uint32 {
	var n int
	for _, v := range b {
		n += bits.OnesCount8(v)
	}
	return uint32(n)
}
