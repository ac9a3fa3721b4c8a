// Package types defines the public API types shared by the memkit
// allocator packages: physical addresses, protection flags, and the
// machine geometry (page size, kernel image end, physical memory end).
//
// This package only exposes core types and constants. The allocators
// themselves live under mem/ and consume these types.
//
// Design goals:
//   - Small, copyable values (Addr, Prot) instead of object graphs.
//   - Explicit geometry passed to every component; no hidden globals.
//   - Paranoid validation; never panic on bad configuration.
//
// This package has no dependencies beyond the standard library.
package types
