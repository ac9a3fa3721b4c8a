package region

import (
	"github.com/ojas-mohbansi/memkit/internal/spin"
	"github.com/ojas-mohbansi/memkit/pkg/types"
	"github.com/ojas-mohbansi/memkit/security"
)

// PrincipalSource supplies the identity on whose behalf an access is
// validated. security.UserTable satisfies it.
type PrincipalSource interface {
	Current() *security.Principal
}

// EventSink receives the registry's audit trail. security.Log
// satisfies it.
type EventSink interface {
	LogViolationAddr(tag, detail string, addr types.Addr, p *security.Principal)
}

// Region is one tracked allocation: an address range, its protection
// flags, and the owning principal (nil for the kernel region).
type Region struct {
	Base  types.Addr
	Size  uint32
	Prot  types.Prot
	Owner *security.Principal
}

// end returns the first address past the region. Region extents are
// validated at registration, so this cannot wrap.
func (r Region) end() types.Addr {
	return r.Base + types.Addr(r.Size)
}

// Registry is the flat table of live regions. Entries keep insertion
// order; unregistering compacts the table by shifting later entries
// down one slot.
type Registry struct {
	lock spin.Lock
	geo  types.Geometry

	regions []Region
	cap     int

	enabled bool

	principals PrincipalSource
	log        EventSink
}

// Config carries the registry's construction parameters. Capacity <= 0
// selects the reference default of 1024.
type Config struct {
	Geometry   types.Geometry
	Capacity   int
	Principals PrincipalSource
	Log        EventSink
}

// New creates a disabled registry. Call Enable once early boot is done.
func New(cfg Config) (*Registry, error) {
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = types.MaxRegions
	}
	return &Registry{
		geo:        cfg.Geometry,
		regions:    make([]Region, 0, capacity),
		cap:        capacity,
		principals: cfg.Principals,
		log:        cfg.Log,
	}, nil
}

// Enable arms access validation. Before this, Validate always allows,
// which is how privileged early-boot operations run.
func (r *Registry) Enable() {
	r.lock.Acquire()
	r.enabled = true
	r.lock.Release()
}

// Enabled reports whether validation is armed.
func (r *Registry) Enabled() bool {
	r.lock.Acquire()
	defer r.lock.Release()
	return r.enabled
}

// Register appends a live region.
func (r *Registry) Register(base types.Addr, size uint32, prot types.Prot, owner *security.Principal) error {
	r.lock.Acquire()
	defer r.lock.Release()

	if len(r.regions) >= r.cap {
		return ErrRegistryFull
	}
	r.regions = append(r.regions, Region{Base: base, Size: size, Prot: prot, Owner: owner})
	return nil
}

// Unregister removes the region whose base matches addr.
func (r *Registry) Unregister(addr types.Addr) error {
	r.lock.Acquire()
	defer r.lock.Release()

	for i := range r.regions {
		if r.regions[i].Base == addr {
			copy(r.regions[i:], r.regions[i+1:])
			r.regions = r.regions[:len(r.regions)-1]
			return nil
		}
	}
	return ErrNotFound
}

// Validate is the central guard for all memory operations. It checks,
// in order: protection armed, non-nil arguments, overflow in the end
// address, user-space bounds, page alignment, a covering live region,
// permission superset, and ownership. The first failed check logs a
// violation and returns its sentinel error; nil means allowed.
func (r *Registry) Validate(addr types.Addr, size uint32, want types.Prot) error {
	r.lock.Acquire()
	defer r.lock.Release()

	if !r.enabled {
		return nil
	}

	cur := r.current()

	if addr == 0 || size == 0 {
		r.violation("INVALID_ACCESS", "Null address or zero size", addr, cur)
		return ErrNullArgument
	}

	end := addr + types.Addr(size)
	if end < addr {
		r.violation("ADDRESS_OVERFLOW", "Address calculation overflow", addr, cur)
		return ErrAddressOverflow
	}

	if addr < r.geo.KernelEnd || end > r.geo.PhysEnd {
		r.violation("OUT_OF_BOUNDS", "Memory access out of bounds", addr, cur)
		return ErrOutOfBounds
	}

	if !r.geo.Aligned(addr) {
		r.violation("MISALIGNED_ACCESS", "Misaligned memory access", addr, cur)
		return ErrMisaligned
	}

	for i := range r.regions {
		reg := &r.regions[i]
		if addr >= reg.Base && end <= reg.end() {
			if !reg.Prot.Has(want) {
				r.violation("PERMISSION_DENIED", "Insufficient permissions for memory access", addr, cur)
				return ErrPermissionDenied
			}
			if reg.Owner != nil && reg.Owner != cur {
				r.violation("WRONG_OWNER", "Memory access by wrong user", addr, cur)
				return ErrWrongOwner
			}
			return nil
		}
	}

	r.violation("UNREGISTERED_REGION", "Access to unregistered memory region", addr, cur)
	return ErrUnregistered
}

// Find returns the live region whose base matches addr.
func (r *Registry) Find(addr types.Addr) (Region, bool) {
	r.lock.Acquire()
	defer r.lock.Release()

	for i := range r.regions {
		if r.regions[i].Base == addr {
			return r.regions[i], true
		}
	}
	return Region{}, false
}

// Len returns the number of live regions.
func (r *Registry) Len() int {
	r.lock.Acquire()
	defer r.lock.Release()
	return len(r.regions)
}

// Snapshot copies the live table, in insertion order.
func (r *Registry) Snapshot() []Region {
	r.lock.Acquire()
	defer r.lock.Release()

	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	return out
}

// current must be called with the lock held.
func (r *Registry) current() *security.Principal {
	if r.principals == nil {
		return nil
	}
	return r.principals.Current()
}

func (r *Registry) violation(tag, detail string, addr types.Addr, p *security.Principal) {
	if r.log != nil {
		r.log.LogViolationAddr(tag, detail, addr, p)
	}
}
