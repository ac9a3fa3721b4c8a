package mem

import (
	"errors"
	"log/slog"

	"github.com/ojas-mohbansi/memkit/internal/arena"
	"github.com/ojas-mohbansi/memkit/internal/spin"
	"github.com/ojas-mohbansi/memkit/mem/frame"
	"github.com/ojas-mohbansi/memkit/mem/region"
	"github.com/ojas-mohbansi/memkit/mem/small"
	"github.com/ojas-mohbansi/memkit/pkg/types"
	"github.com/ojas-mohbansi/memkit/security"
)

// ErrPoolGeometry rejects a configuration whose small pool does not fit
// inside the kernel image.
var ErrPoolGeometry = errors.New("mem: small pool does not fit below kernel end")

// Config carries the Manager's construction parameters. The zero value
// selects the reference defaults throughout.
type Config struct {
	// Geometry is the physical layout. Zero selects
	// types.DefaultGeometry.
	Geometry types.Geometry

	// Scan selects the bitmap search strategy. Nil selects ByteScan.
	Scan frame.ScanStrategy

	// PoolSize is the small-object pool size in bytes, carved from the
	// top of the kernel image. Zero selects types.SmallPoolSize.
	PoolSize uint32

	// RegionCapacity bounds the region table. Zero selects
	// types.MaxRegions.
	RegionCapacity int

	// Users is an existing user table to share. Nil creates one seeded
	// with the default accounts.
	Users *security.UserTable

	// Logger tees audit events to structured logging. Nil discards.
	Logger *slog.Logger
}

// Manager owns the arena and every allocator operating on it. All
// methods are safe for concurrent use. Each component carries its own
// lock; the composite page paths additionally serialize on pageLock so
// the bitmap and the region table always move together, the way the
// reference system holds one lock across the whole allocate or free.
type Manager struct {
	geo      types.Geometry
	mem      *arena.Arena
	frames   *frame.Allocator
	regions  *region.Registry
	pool     *small.Pool
	users    *security.UserTable
	log      *security.Log
	paging   *IdentityMap
	pageLock spin.Lock

	poolBase types.Addr
	poolSize uint32
}

// New runs the boot sequence: map the arena, build the identity map,
// initialize the frame bitmap with the kernel image reserved, register
// the kernel region, carve the small pool from the top of the kernel
// image, then arm access validation.
func New(cfg Config) (*Manager, error) {
	geo := cfg.Geometry
	if geo == (types.Geometry{}) {
		geo = types.DefaultGeometry
	}
	if err := geo.Validate(); err != nil {
		return nil, err
	}

	poolSize := cfg.PoolSize
	if poolSize == 0 {
		poolSize = types.SmallPoolSize
	}
	if types.Addr(poolSize) >= geo.KernelEnd {
		return nil, ErrPoolGeometry
	}
	poolBase := geo.KernelEnd - types.Addr(poolSize)

	log := security.NewLogWith(types.SecurityLogSize, cfg.Logger)
	users := cfg.Users
	if users == nil {
		users = security.NewUserTable(types.MaxUsers, log)
		users.SeedDefaults()
	}

	mem, err := arena.New(uint32(geo.PhysEnd))
	if err != nil {
		return nil, err
	}

	frames, err := frame.New(geo, cfg.Scan)
	if err != nil {
		mem.Release()
		return nil, err
	}
	if err := frames.Init(geo.KernelEnd); err != nil {
		mem.Release()
		return nil, err
	}

	regions, err := region.New(region.Config{
		Geometry:   geo,
		Capacity:   cfg.RegionCapacity,
		Principals: users,
		Log:        log,
	})
	if err != nil {
		mem.Release()
		return nil, err
	}
	if err := regions.Register(0, uint32(geo.KernelEnd), types.ProtAll, nil); err != nil {
		mem.Release()
		return nil, err
	}

	pool, err := small.New(poolBase, mem.Slice(uint32(poolBase), poolSize), 0)
	if err != nil {
		mem.Release()
		return nil, err
	}

	m := &Manager{
		geo:      geo,
		mem:      mem,
		frames:   frames,
		regions:  regions,
		pool:     pool,
		users:    users,
		log:      log,
		paging:   NewIdentityMap(identityTableBase),
		poolBase: poolBase,
		poolSize: poolSize,
	}
	regions.Enable()
	log.LogEvent("MEMORY_INIT", "memory manager online", nil)
	return m, nil
}

// identityTableBase is the notional in-image address of the boot page
// table, mirroring where the reference kernel links it.
const identityTableBase types.Addr = 0x2000

// AllocatePage hands out one page frame to the current principal and
// registers it as a read-write region they own. Without a logged-in
// principal the request is refused and audited.
func (m *Manager) AllocatePage() (types.Addr, error) {
	p := m.users.Current()
	if p == nil {
		m.log.LogViolation("NO_USER", "Page allocation without login", nil)
		return 0, region.ErrWrongOwner
	}

	m.pageLock.Acquire()
	defer m.pageLock.Release()

	addr, err := m.frames.AllocatePage()
	if err != nil {
		m.log.LogViolation("OUT_OF_MEMORY", "No free page frames", p)
		return 0, err
	}
	if err := m.regions.Register(addr, m.geo.PageSize, types.ProtRead|types.ProtWrite, p); err != nil {
		// Roll the frame back so the bitmap and the table stay in step.
		m.frames.FreePage(addr)
		return 0, err
	}
	m.log.LogEventAddr("MEMORY_ALLOCATED", "Page allocated", addr, p)
	return addr, nil
}

// FreePage returns a page obtained from AllocatePage. The address must
// pass full validation as the current principal, be the base of a live
// page region, and be marked allocated in the bitmap.
func (m *Manager) FreePage(addr types.Addr) error {
	p := m.users.Current()
	if addr == 0 {
		m.log.LogViolation("INVALID_ACCESS", "Free of null address", p)
		return region.ErrNullArgument
	}
	m.pageLock.Acquire()
	defer m.pageLock.Release()

	if err := m.regions.Validate(addr, m.geo.PageSize, types.ProtWrite); err != nil {
		// The registry already logged the violation.
		return err
	}
	r, ok := m.regions.Find(addr)
	if !ok || r.Size != m.geo.PageSize {
		m.log.LogViolationAddr("INVALID_ACCESS", "Not a page allocation", addr, p)
		return region.ErrUnregistered
	}

	// Unregister before clearing the bit so the frame never looks free
	// while a stale region is still in the table.
	if err := m.regions.Unregister(addr); err != nil {
		m.log.LogViolationAddr("DOUBLE_FREE", "Region already removed", addr, p)
		return region.ErrUnregistered
	}
	if err := m.frames.FreePage(addr); err != nil {
		m.log.LogViolationAddr("DOUBLE_FREE", "Frame already free", addr, p)
		return err
	}
	m.log.LogEventAddr("MEMORY_FREED", "Page freed", addr, p)
	return nil
}

// AllocateSmall serves sub-page requests from the pool. Requests above
// the pool threshold are redirected to the page allocator, so callers
// hold one entry point for both sizes.
func (m *Manager) AllocateSmall(size uint32) (types.Addr, error) {
	if size > m.pool.Threshold() {
		return m.AllocatePage()
	}
	addr, err := m.pool.Alloc(size)
	if err != nil {
		switch {
		case errors.Is(err, small.ErrZeroSize):
			m.log.LogViolation("INVALID_ACCESS", "Zero-size small allocation", m.users.Current())
		case errors.Is(err, small.ErrOutOfMemory):
			m.log.LogViolation("OUT_OF_MEMORY", "Small pool exhausted", m.users.Current())
		}
		return 0, err
	}
	m.log.LogEventAddr("MEMORY_ALLOCATED", "Small block allocated", addr, m.users.Current())
	return addr, nil
}

// FreeSmall returns a block to the pool. Addresses outside the pool are
// ignored; freeing an already-free block is audited as a double free.
func (m *Manager) FreeSmall(addr types.Addr) small.FreeOutcome {
	out := m.pool.Free(addr)
	switch out {
	case small.Freed:
		m.log.LogEventAddr("MEMORY_FREED", "Small block freed", addr, m.users.Current())
	case small.DoubleFree:
		m.log.LogViolationAddr("DOUBLE_FREE", "Small block already free", addr, m.users.Current())
	}
	return out
}

// Slice returns a writable window into the arena after the access
// passes full validation for the current principal. This is how
// collaborators (e.g. a file system) obtain backing storage for pages
// they allocated.
func (m *Manager) Slice(addr types.Addr, size uint32, want types.Prot) ([]byte, error) {
	if err := m.regions.Validate(addr, size, want); err != nil {
		return nil, err
	}
	b := m.mem.Slice(uint32(addr), size)
	if b == nil {
		return nil, region.ErrOutOfBounds
	}
	return b, nil
}

// Stats is a point-in-time snapshot for reporting.
type Stats struct {
	Strategy string

	TotalFrames    uint32
	ReservedFrames uint32
	UsedFrames     uint32
	FreeFrames     uint32

	Regions int

	PoolSize      uint32
	PoolFreeBytes uint32
	PoolBlocks    int

	Events     uint64
	Violations uint64
}

// Stats gathers counters from every component. The snapshot is not
// atomic across components.
func (m *Manager) Stats() Stats {
	return Stats{
		Strategy:       m.frames.Strategy().Name(),
		TotalFrames:    m.frames.TotalFrames(),
		ReservedFrames: m.frames.ReservedFrames(),
		UsedFrames:     m.frames.UsedFrames(),
		FreeFrames:     m.frames.FreeFrames(),
		Regions:        m.regions.Len(),
		PoolSize:       m.poolSize,
		PoolFreeBytes:  m.pool.FreeBytes(),
		PoolBlocks:     len(m.pool.Blocks()),
		Events:         m.log.EventCount(),
		Violations:     m.log.ViolationCount(),
	}
}

// Users exposes the user table for login and account management.
func (m *Manager) Users() *security.UserTable { return m.users }

// AuditLog exposes the security event log.
func (m *Manager) AuditLog() *security.Log { return m.log }

// Regions exposes the region registry, chiefly for diagnostics.
func (m *Manager) Regions() *region.Registry { return m.regions }

// Frames exposes the page frame allocator, chiefly for diagnostics.
func (m *Manager) Frames() *frame.Allocator { return m.frames }

// Paging exposes the boot identity map.
func (m *Manager) Paging() *IdentityMap { return m.paging }

// Geometry returns the layout the Manager was built with.
func (m *Manager) Geometry() types.Geometry { return m.geo }

// PoolBase returns the small pool's base address.
func (m *Manager) PoolBase() types.Addr { return m.poolBase }

// Close unmaps the arena. The Manager must not be used afterwards.
func (m *Manager) Close() error {
	return m.mem.Release()
}
