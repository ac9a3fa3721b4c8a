package security

import (
	"io"
	"log/slog"

	"github.com/ojas-mohbansi/memkit/internal/spin"
	"github.com/ojas-mohbansi/memkit/pkg/types"
)

// Event is one entry in the security log. Tag is a stable,
// machine-readable identifier (e.g. "OUT_OF_BOUNDS"); Detail is free
// text for operators. Addr carries the offending address for memory
// events, 0 otherwise.
type Event struct {
	Seq       uint64
	Tag       string
	Detail    string
	Addr      types.Addr
	Principal string
	Violation bool
}

// Log is the fixed-size circular event buffer every allocator component
// reports into. Old entries are overwritten once the buffer wraps;
// counters keep the lifetime totals.
//
// Entries are optionally mirrored to a structured logger. By default all
// slog output is discarded; pass a handler via NewLogWith to enable it.
type Log struct {
	lock    spin.Lock
	entries []Event
	next    int
	count   int
	seq     uint64

	events     uint64
	violations uint64

	slog *slog.Logger
}

// NewLog creates a log with the given ring capacity. capacity <= 0 uses
// the reference default. Structured output is discarded.
func NewLog(capacity int) *Log {
	return NewLogWith(capacity, nil)
}

// NewLogWith creates a log that mirrors entries to logger. A nil logger
// discards structured output.
func NewLogWith(capacity int, logger *slog.Logger) *Log {
	if capacity <= 0 {
		capacity = types.SecurityLogSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Log{
		entries: make([]Event, capacity),
		slog:    logger,
	}
}

// LogEvent records a non-violation event.
func (l *Log) LogEvent(tag, detail string, p *Principal) {
	l.record(tag, detail, 0, p, false)
}

// LogViolation records a security violation.
func (l *Log) LogViolation(tag, detail string, p *Principal) {
	l.record(tag, detail, 0, p, true)
}

// LogEventAddr records a non-violation event carrying the affected
// address. The address is also appended to the detail text, matching the
// reference log format.
func (l *Log) LogEventAddr(tag, detail string, addr types.Addr, p *Principal) {
	l.record(tag, detail+" at "+addr.String(), addr, p, false)
}

// LogViolationAddr records a violation carrying the offending address.
func (l *Log) LogViolationAddr(tag, detail string, addr types.Addr, p *Principal) {
	l.record(tag, detail+" at "+addr.String(), addr, p, true)
}

func (l *Log) record(tag, detail string, addr types.Addr, p *Principal, violation bool) {
	name := ""
	if p != nil {
		name = p.Name
	}

	l.lock.Acquire()
	l.seq++
	ev := Event{
		Seq:       l.seq,
		Tag:       tag,
		Detail:    detail,
		Addr:      addr,
		Principal: name,
		Violation: violation,
	}
	l.entries[l.next] = ev
	l.next = (l.next + 1) % len(l.entries)
	if l.count < len(l.entries) {
		l.count++
	}
	if violation {
		l.violations++
	} else {
		l.events++
	}
	l.lock.Release()

	if violation {
		l.slog.Warn("security violation",
			"tag", tag, "detail", detail, "addr", addr.String(), "principal", name)
	} else {
		l.slog.Info("security event",
			"tag", tag, "detail", detail, "addr", addr.String(), "principal", name)
	}
}

// Events returns the retained entries, oldest first.
func (l *Log) Events() []Event {
	l.lock.Acquire()
	defer l.lock.Release()

	out := make([]Event, 0, l.count)
	start := l.next - l.count
	if start < 0 {
		start += len(l.entries)
	}
	for i := 0; i < l.count; i++ {
		out = append(out, l.entries[(start+i)%len(l.entries)])
	}
	return out
}

// Last returns the most recent entry and true, or a zero Event and
// false when the log is empty.
func (l *Log) Last() (Event, bool) {
	l.lock.Acquire()
	defer l.lock.Release()

	if l.count == 0 {
		return Event{}, false
	}
	idx := l.next - 1
	if idx < 0 {
		idx += len(l.entries)
	}
	return l.entries[idx], true
}

// EventCount returns the lifetime number of non-violation events.
func (l *Log) EventCount() uint64 {
	l.lock.Acquire()
	defer l.lock.Release()
	return l.events
}

// ViolationCount returns the lifetime number of violations.
func (l *Log) ViolationCount() uint64 {
	l.lock.Acquire()
	defer l.lock.Release()
	return l.violations
}
