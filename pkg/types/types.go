package types

import "fmt"

// Addr is a 32-bit physical address. The reference machine is a 32-bit
// platform with 16 MiB of physical memory, so all address arithmetic
// (including the overflow guard in region validation) is done in uint32.
type Addr uint32

// String renders the address the way the security log expects it.
func (a Addr) String() string {
	return fmt.Sprintf("0x%X", uint32(a))
}

// Prot is a set of independent memory protection flags.
type Prot uint8

const (
	ProtNone  Prot = 0
	ProtRead  Prot = 1 << 0
	ProtWrite Prot = 1 << 1
	ProtExec  Prot = 1 << 2

	// ProtAll is the full permission set carried by the kernel region.
	ProtAll = ProtRead | ProtWrite | ProtExec
)

// Has reports whether p contains every flag in want. A region grants an
// access only when its flags are a superset of the requested ones.
func (p Prot) Has(want Prot) bool {
	return p&want == want
}

// String returns the conventional "rwx" rendering, with '-' for
// missing flags.
func (p Prot) String() string {
	b := []byte{'-', '-', '-'}
	if p.Has(ProtRead) {
		b[0] = 'r'
	}
	if p.Has(ProtWrite) {
		b[1] = 'w'
	}
	if p.Has(ProtExec) {
		b[2] = 'x'
	}
	return string(b)
}
