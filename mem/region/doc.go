// Package region tracks live allocations in a fixed-capacity table and
// gates every memory access behind bounds, alignment, overflow,
// ownership, and permission checks.
//
// Every rejection is reported to the security event log with a stable,
// machine-readable tag and the offending address:
//
//	INVALID_ACCESS       nil address or zero size
//	ADDRESS_OVERFLOW     address + size wraps the address space
//	OUT_OF_BOUNDS        outside the non-kernel physical range
//	MISALIGNED_ACCESS    address not on a page boundary
//	UNREGISTERED_REGION  no live region covers the access
//	PERMISSION_DENIED    region flags do not cover the request
//	WRONG_OWNER          region owned by a different principal
//
// The registry starts disabled so the kernel can perform privileged
// early-boot work (building the identity map, reserving its own image)
// before protection is armed; while disabled, Validate always succeeds.
package region
