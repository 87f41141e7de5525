package vm

// Linker unlinks a reused frame from its former parent's table entry so
// the single-parent invariant (spec §3, invariant 2) holds once the
// allocator hands that frame to a new owner.
type Linker struct {
	mem         PhysicalMemory
	pageSize    uint64
	tablesDepth uint
	offsetWidth uint
}

// NewLinker builds a Linker over mem using the given tree geometry.
func NewLinker(mem PhysicalMemory, pageSize uint64, tablesDepth, offsetWidth uint) *Linker {
	return &Linker{
		mem:         mem,
		pageSize:    pageSize,
		tablesDepth: tablesDepth,
		offsetWidth: offsetWidth,
	}
}

// Unlink walks from the root along ownerPrefix (a full TablesDepth-chunk
// virtual-page address, MSB-first) and zeroes the first parent entry it
// finds holding frame. Only one write ever occurs.
//
// If the walk exhausts TablesDepth steps without finding frame, nothing
// is written. Spec §9's open question: this is unreachable given the
// allocator's bookkeeping invariants, so callers should assert it never
// happens rather than rely on the no-op.
func (l *Linker) Unlink(ownerPrefix, frame uint64) error {
	roundedWidth := uint64(l.tablesDepth) * uint64(l.offsetWidth)
	chunkMask := l.pageSize - 1

	current := uint64(0)
	for i := uint64(1); i <= uint64(l.tablesDepth); i++ {
		shift := roundedWidth - i*uint64(l.offsetWidth)
		chunk := (ownerPrefix >> shift) & chunkMask
		entryAddr := current*l.pageSize + chunk

		val, err := l.mem.ReadWord(entryAddr)
		if err != nil {
			return err
		}

		if uint64(val) == frame {
			return l.mem.WriteWord(entryAddr, 0)
		}

		current = uint64(val)
	}

	return nil
}
