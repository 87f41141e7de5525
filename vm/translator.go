package vm

import (
	"log"
	"strings"

	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/physmem"
)

func physmemWord(v int64) physmem.Word {
	return physmem.Word(v)
}

// Translator is the public surface: Initialize/Read/Write, per spec §4.1
// and §6. It owns no frame data itself — everything lives in the
// PhysicalMemory and BackingStore it was built with.
type Translator struct {
	mem  PhysicalMemory
	swap BackingStore

	allocator *Allocator
	linker    *Linker

	pageSize    uint64
	numPages    uint64
	tablesDepth uint
	offsetWidth uint

	sink    EventSink
	verbose bool
	Stats   Stats
}

// New builds a Translator over mem/swap for the given tree geometry. Use
// WithEventSink to attach observability; a Translator with no sink
// records nothing but still updates Stats.
func New(
	mem PhysicalMemory,
	swap BackingStore,
	pageSize, numFrames, numPages uint64,
	tablesDepth, offsetWidth uint,
) *Translator {
	linker := NewLinker(mem, pageSize, tablesDepth, offsetWidth)
	allocator := NewAllocator(
		mem, swap, linker, pageSize, numFrames, numPages, tablesDepth, offsetWidth)

	return &Translator{
		mem:         mem,
		swap:        swap,
		allocator:   allocator,
		linker:      linker,
		pageSize:    pageSize,
		numPages:    numPages,
		tablesDepth: tablesDepth,
		offsetWidth: offsetWidth,
	}
}

// WithEventSink attaches an observer that receives an Event for every
// allocator decision (fresh/reclaim/evict) and every restore.
func (t *Translator) WithEventSink(sink EventSink) *Translator {
	t.sink = sink
	return t
}

// WithLogLevel sets the operational log verbosity from a config-file
// level string ("DEBUG", "INFO", "WARN", "ERROR" — case-insensitive,
// anything else treated as "INFO"). Only "DEBUG" turns on the
// per-decision reclaim/evict log.Printf lines in translate; invariant
// violations always log via log.Panicf regardless of level.
func (t *Translator) WithLogLevel(level string) *Translator {
	t.verbose = strings.EqualFold(level, "DEBUG")
	return t
}

// Initialize clears frame 0 (the root). Must be called before any
// Read/Write, per spec §6.
func (t *Translator) Initialize() error {
	return t.mem.ClearTable(0)
}

// Read splits virtualAddress into page/offset, translates the page, and
// reads the word at the resulting physical address. status is true on
// success; per spec §7, valid input always succeeds — a collaborator
// error here means an invariant was violated and is not recoverable.
func (t *Translator) Read(virtualAddress uint64) (word int64, status bool) {
	offset := virtualAddress % t.pageSize
	page := virtualAddress / t.pageSize

	frame := t.translate(page)

	w, err := t.mem.ReadWord(frame*t.pageSize + offset)
	if err != nil {
		log.Panicf("vm: reading translated address for page %d: %v", page, err)
	}

	return int64(w), true
}

// Write splits virtualAddress into page/offset, translates the page,
// and writes value at the resulting physical address.
func (t *Translator) Write(virtualAddress uint64, value int64) (status bool) {
	offset := virtualAddress % t.pageSize
	page := virtualAddress / t.pageSize

	frame := t.translate(page)

	if err := t.mem.WriteWord(frame*t.pageSize+offset, physmemWord(value)); err != nil {
		log.Panicf("vm: writing translated address for page %d: %v", page, err)
	}

	return true
}

// translate walks the tree from the root, one level per step, for
// TablesDepth steps, allocating on-demand at any unpopulated link, per
// spec §4.1. Any collaborator error here is an invariant violation
// (out-of-range physical index, corrupt swap), not a recoverable
// runtime condition, so translate panics rather than threading an
// error back through Read/Write.
func (t *Translator) translate(page uint64) uint64 {
	roundedWidth := uint64(t.tablesDepth) * uint64(t.offsetWidth)
	chunkMask := t.pageSize - 1

	current := uint64(0) // root is always frame 0
	for i := uint64(1); i <= uint64(t.tablesDepth); i++ {
		shift := roundedWidth - i*uint64(t.offsetWidth)
		chunk := (page >> shift) & chunkMask
		entryAddr := current*t.pageSize + chunk

		val, err := t.mem.ReadWord(entryAddr)
		if err != nil {
			log.Panicf("vm: reading table entry at %d: %v", entryAddr, err)
		}

		if val != 0 {
			current = uint64(val)
			continue
		}

		t.Stats.Faults++

		frame, kind, err := t.allocator.FindFrame(page, current)
		if err != nil {
			log.Panicf("vm: resolving page fault for page %d: %v", page, err)
		}

		switch kind {
		case EventFresh:
			t.Stats.Fresh++
		case EventReclaim:
			t.Stats.Reclaims++
			if t.verbose {
				log.Printf("vm: reclaimed frame %d for page %d", frame, page)
			}
		case EventEvict:
			t.Stats.Evictions++
			if t.verbose {
				log.Printf("vm: evicted frame %d for page %d", frame, page)
			}
		}
		t.emit(Event{Kind: kind, Page: page, Frame: frame})

		if err := t.writeEntry(entryAddr, frame); err != nil {
			log.Panicf("vm: linking table entry at %d: %v", entryAddr, err)
		}

		current = frame
	}

	if err := t.swap.Restore(current, page); err != nil {
		log.Panicf("vm: restoring page %d into frame %d: %v", page, current, err)
	}
	t.emit(Event{Kind: EventRestore, Page: page, Frame: current})

	return current
}

// UsedFrames reports how many physical frames are currently part of the
// live page-table tree, for the monitoring package's occupancy gauge.
func (t *Translator) UsedFrames() (uint64, error) {
	return t.allocator.UsedFrameCount()
}

func (t *Translator) writeEntry(entryAddr, frame uint64) error {
	return t.mem.WriteWord(entryAddr, physmemWord(int64(frame)))
}

func (t *Translator) emit(e Event) {
	if t.sink != nil {
		t.sink.Record(e)
	}
}
