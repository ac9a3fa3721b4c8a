// Package printer renders memory manager reports for humans and
// machines. The text format uses locale-aware number formatting so
// frame and byte counts stay readable on large geometries.
package printer

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ojas-mohbansi/memkit/mem"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

const DefaultMaxEvents = 10

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowRegions includes the live region table.
	// Default: true
	ShowRegions bool

	// ShowEvents includes the tail of the audit log.
	// Default: false
	ShowEvents bool

	// MaxEvents limits how many audit entries to display. Set to 0 for
	// no limit.
	// Default: 10
	MaxEvents int

	// Language selects the locale for number formatting (text format
	// only).
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		ShowRegions: true,
		ShowEvents:  false,
		MaxEvents:   DefaultMaxEvents,
		Language:    language.English,
	}
}

// Printer handles formatted output of memory manager state.
type Printer struct {
	opts Options
	w    io.Writer
	msg  *message.Printer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintReport(manager)
func New(w io.Writer, opts Options) *Printer {
	lang := opts.Language
	if lang == (language.Tag{}) {
		lang = language.English
	}
	return &Printer{
		opts: opts,
		w:    w,
		msg:  message.NewPrinter(lang),
	}
}

// PrintReport prints a full snapshot of the manager: frame counters,
// pool state, and optionally the region table and audit tail.
func (p *Printer) PrintReport(m *mem.Manager) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(m)
	case FormatText:
		return p.printText(m)
	default:
		return p.printText(m)
	}
}

// PrintStats prints only the counter block.
func (p *Printer) PrintStats(s mem.Stats) error {
	return p.statsText(s)
}

func (p *Printer) printText(m *mem.Manager) error {
	if err := p.statsText(m.Stats()); err != nil {
		return err
	}

	if p.opts.ShowRegions {
		regions := m.Regions().Snapshot()
		if _, err := p.msg.Fprintf(p.w, "Regions: %d\n", len(regions)); err != nil {
			return err
		}
		for _, r := range regions {
			owner := "kernel"
			if r.Owner != nil {
				owner = r.Owner.Name
			}
			if _, err := p.msg.Fprintf(p.w, "  %s  %d bytes  %s  %s\n",
				r.Base, r.Size, r.Prot, owner); err != nil {
				return err
			}
		}
	}

	if p.opts.ShowEvents {
		events := m.AuditLog().Events()
		if p.opts.MaxEvents > 0 && len(events) > p.opts.MaxEvents {
			events = events[len(events)-p.opts.MaxEvents:]
		}
		if _, err := fmt.Fprintf(p.w, "Audit tail (%d entries):\n", len(events)); err != nil {
			return err
		}
		for _, ev := range events {
			marker := " "
			if ev.Violation {
				marker = "!"
			}
			if _, err := fmt.Fprintf(p.w, "  %s %s: %s\n", marker, ev.Tag, ev.Detail); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) statsText(s mem.Stats) error {
	_, err := p.msg.Fprintf(p.w,
		"Memory manager (%s scan)\n"+
			"Frames: %d total, %d reserved, %d used, %d free\n"+
			"Pool: %d bytes, %d free in %d blocks\n"+
			"Audit: %d events, %d violations\n",
		s.Strategy,
		s.TotalFrames, s.ReservedFrames, s.UsedFrames, s.FreeFrames,
		s.PoolSize, s.PoolFreeBytes, s.PoolBlocks,
		s.Events, s.Violations)
	return err
}

// reportJSON is the machine-readable report shape.
type reportJSON struct {
	Stats   mem.Stats    `json:"stats"`
	Regions []regionJSON `json:"regions,omitempty"`
	Events  []eventJSON  `json:"events,omitempty"`
}

type regionJSON struct {
	Base  string `json:"base"`
	Size  uint32 `json:"size"`
	Prot  string `json:"prot"`
	Owner string `json:"owner,omitempty"`
}

type eventJSON struct {
	Seq       uint64 `json:"seq"`
	Tag       string `json:"tag"`
	Detail    string `json:"detail"`
	Principal string `json:"principal,omitempty"`
	Violation bool   `json:"violation,omitempty"`
}

func (p *Printer) printJSON(m *mem.Manager) error {
	out := reportJSON{Stats: m.Stats()}

	if p.opts.ShowRegions {
		for _, r := range m.Regions().Snapshot() {
			rj := regionJSON{Base: r.Base.String(), Size: r.Size, Prot: r.Prot.String()}
			if r.Owner != nil {
				rj.Owner = r.Owner.Name
			}
			out.Regions = append(out.Regions, rj)
		}
	}
	if p.opts.ShowEvents {
		events := m.AuditLog().Events()
		if p.opts.MaxEvents > 0 && len(events) > p.opts.MaxEvents {
			events = events[len(events)-p.opts.MaxEvents:]
		}
		for _, ev := range events {
			out.Events = append(out.Events, eventJSON{
				Seq:       ev.Seq,
				Tag:       ev.Tag,
				Detail:    ev.Detail,
				Principal: ev.Principal,
				Violation: ev.Violation,
			})
		}
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
