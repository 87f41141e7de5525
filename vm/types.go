// Package vm implements the hierarchical virtual-memory translator: the
// page-table tree walk, the DFS frame allocator, and the parent-link
// unlinker, per spec §4. It consumes a PhysicalMemory and a BackingStore;
// the Translator's Initialize/Read/Write are the public entry points, and
// the tree walk itself (translate) is unexported.
package vm

//go:generate mockgen -destination mock_physmem_test.go -package vm_test github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/vm PhysicalMemory
//go:generate mockgen -destination mock_backingstore_test.go -package vm_test github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/vm BackingStore

import "github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/physmem"

// PhysicalMemory is the narrow interface the translator consumes from
// the simulated physical memory array (spec §6).
type PhysicalMemory interface {
	ReadWord(physicalIndex uint64) (physmem.Word, error)
	WriteWord(physicalIndex uint64, w physmem.Word) error
	ClearTable(frameIndex uint64) error
}

// BackingStore is the narrow interface the translator consumes from the
// swap area (spec §6).
type BackingStore interface {
	Evict(frame, page uint64) error
	Restore(frame, page uint64) error
}

// EventKind identifies which of the four page-fault-resolution paths a
// recorded Event came from.
type EventKind int

// The four outcomes a page-table tree mutation can have, per spec §5's
// ordering guarantees.
const (
	EventFresh EventKind = iota
	EventReclaim
	EventEvict
	EventRestore
)

// Event is a single page-fault-resolution step, handed to an optional
// EventSink for observability. It is not part of the algorithm itself.
type Event struct {
	Kind EventKind
	Page uint64
	Frame uint64
}

// EventSink receives Events as they occur. A nil EventSink is valid and
// simply means nothing is recorded.
type EventSink interface {
	Record(Event)
}

// Stats are plain counters of page faults and of the three outcomes a
// call to the allocator can produce, exposed for the monitoring package.
type Stats struct {
	Faults     uint64
	Fresh      uint64
	Reclaims   uint64
	Evictions  uint64
}
