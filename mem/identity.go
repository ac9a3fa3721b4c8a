package mem

import "github.com/ojas-mohbansi/memkit/pkg/types"

// Page table entry flags, 32-bit x86 layout.
const (
	PagePresent = 0x1
	PageWrite   = 0x2
	PageUser    = 0x4
)

const (
	pageTableEntries = 1024
	pageShift        = 12
	dirShift         = 22
	tableMask        = 0x3FF
	flagMask         = 0xFFF
)

// IdentityMap models the boot-time paging structures: a page directory
// whose first entry points at a single page table identity-mapping the
// first 4 MiB, every entry present and writable. The layout is the
// 32-bit x86 two-level scheme with 4 KiB pages regardless of the
// allocator geometry; loading it into a control register is outside
// this package's scope.
type IdentityMap struct {
	Directory [pageTableEntries]uint32
	Table     [pageTableEntries]uint32

	tableBase types.Addr
}

// NewIdentityMap builds the directory and table. tableBase is the
// notional physical address recorded in the directory entry, the way a
// kernel records where it placed the table in its own image.
func NewIdentityMap(tableBase types.Addr) *IdentityMap {
	m := &IdentityMap{tableBase: tableBase}
	for i := uint32(0); i < pageTableEntries; i++ {
		m.Table[i] = (i << pageShift) | PagePresent | PageWrite
	}
	m.Directory[0] = (uint32(tableBase) &^ flagMask) | PagePresent | PageWrite
	return m
}

// MappedLimit is the first virtual address past the identity-mapped
// window.
func (m *IdentityMap) MappedLimit() types.Addr {
	return types.Addr(pageTableEntries << pageShift)
}

// Lookup walks the structures for va and returns the translated
// physical address and the table entry's flag bits. ok is false when
// either level is not present.
func (m *IdentityMap) Lookup(va types.Addr) (pa types.Addr, flags uint32, ok bool) {
	dir := uint32(va) >> dirShift
	if m.Directory[dir]&PagePresent == 0 {
		return 0, 0, false
	}
	entry := m.Table[(uint32(va)>>pageShift)&tableMask]
	if entry&PagePresent == 0 {
		return 0, 0, false
	}
	return types.Addr((entry &^ flagMask) | uint32(va)&flagMask), entry & flagMask, true
}
