// Package mem ties the physical-memory components together behind one
// Manager: an mmap-backed arena standing in for physical memory, the
// page frame allocator, the region registry, the small-object pool,
// and the security collaborators that gate and audit every operation.
//
// Boot order matters and New performs it: arena, identity map, frame
// bitmap with the kernel image reserved, the kernel region, the small
// pool carved from the top of the kernel image, and finally arming the
// access checks. Callers authenticate against the user table before
// allocating; unauthenticated page requests are refused and logged.
package mem
