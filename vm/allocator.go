package vm

// Allocator runs the single DFS over the live page-table tree that
// simultaneously collects the three candidates spec §4.2 describes, then
// applies the priority rules to pick a frame.
type Allocator struct {
	mem    PhysicalMemory
	swap   BackingStore
	linker *Linker

	pageSize    uint64
	numFrames   uint64
	numPages    uint64
	tablesDepth uint
	offsetWidth uint
}

// NewAllocator builds an Allocator over mem/swap using the given tree
// geometry and linker.
func NewAllocator(
	mem PhysicalMemory,
	swap BackingStore,
	linker *Linker,
	pageSize, numFrames, numPages uint64,
	tablesDepth, offsetWidth uint,
) *Allocator {
	return &Allocator{
		mem:         mem,
		swap:        swap,
		linker:      linker,
		pageSize:    pageSize,
		numFrames:   numFrames,
		numPages:    numPages,
		tablesDepth: tablesDepth,
		offsetWidth: offsetWidth,
	}
}

// dfsState bundles the three outputs of the single traversal, per spec
// §9's "single-pass DFS" design note: a struct-of-outputs rather than a
// tagged-variant return.
type dfsState struct {
	avoid uint64

	maxSeen uint64

	foundEmpty       bool
	emptyFrame       uint64
	emptyFramePrefix uint64

	foundEvict bool
	evictFrame uint64
	evictPage  uint64
	maxDist    int64
}

// FindFrame locates a physical frame to use for targetPage, never
// returning or unlinking avoidFrame (the frame the translator is
// currently descending through). It cannot fail given valid inputs and
// NumFrames >= TablesDepth+1 (spec §4.2).
func (a *Allocator) FindFrame(targetPage, avoidFrame uint64) (uint64, EventKind, error) {
	st := &dfsState{avoid: avoidFrame, maxDist: -1}

	if err := a.dfs(0, 0, 0, targetPage, st); err != nil {
		return 0, 0, err
	}

	if st.maxSeen+1 < a.numFrames {
		fresh := st.maxSeen + 1
		if err := a.mem.ClearTable(fresh); err != nil {
			return 0, 0, err
		}
		return fresh, EventFresh, nil
	}

	if st.foundEmpty {
		if err := a.linker.Unlink(st.emptyFramePrefix, st.emptyFrame); err != nil {
			return 0, 0, err
		}
		return st.emptyFrame, EventReclaim, nil
	}

	if err := a.swap.Evict(st.evictFrame, st.evictPage); err != nil {
		return 0, 0, err
	}
	if err := a.mem.ClearTable(st.evictFrame); err != nil {
		return 0, 0, err
	}
	if err := a.linker.Unlink(st.evictPage, st.evictFrame); err != nil {
		return 0, 0, err
	}

	return st.evictFrame, EventEvict, nil
}

// dfs visits frame at the given depth, having arrived there via prefix
// (the accumulated virtual-page address of the path so far), and
// updates st in place. Order of visitation within a node is ascending by
// entry index, per spec §4.2.
func (a *Allocator) dfs(depth uint, frame, prefix, targetPage uint64, st *dfsState) error {
	if frame > st.maxSeen {
		st.maxSeen = frame
	}

	if depth == a.tablesDepth {
		if frame != st.avoid {
			dist := cyclicDistance(targetPage, prefix, a.numPages)
			if dist >= st.maxDist {
				st.maxDist = dist
				st.evictFrame = frame
				st.evictPage = prefix
				st.foundEvict = true
			}
		}
		return nil
	}

	zeroCount := uint64(0)
	for idx := uint64(0); idx < a.pageSize; idx++ {
		val, err := a.mem.ReadWord(frame*a.pageSize + idx)
		if err != nil {
			return err
		}

		if val == 0 {
			zeroCount++
			continue
		}

		child := uint64(val)
		childPrefix := (prefix << a.offsetWidth) | idx
		if err := a.dfs(depth+1, child, childPrefix, targetPage, st); err != nil {
			return err
		}
	}

	if zeroCount == a.pageSize && frame != st.avoid {
		st.emptyFrame = frame
		st.emptyFramePrefix = prefix << (a.offsetWidth * uint(a.tablesDepth-depth))
		st.foundEmpty = true
	}

	return nil
}

// UsedFrameCount runs the same traversal FindFrame uses and reports how
// many frames are currently part of the live tree, for the monitoring
// package's occupancy gauge. It never mutates anything.
func (a *Allocator) UsedFrameCount() (uint64, error) {
	st := &dfsState{avoid: a.numFrames, maxDist: -1}
	if err := a.dfs(0, 0, 0, 0, st); err != nil {
		return 0, err
	}
	return st.maxSeen + 1, nil
}

// cyclicDistance is min(numPages - |p-q|, |p-q|), per spec's GLOSSARY.
func cyclicDistance(p, q, numPages uint64) int64 {
	var diff int64
	if p >= q {
		diff = int64(p - q)
	} else {
		diff = int64(q - p)
	}

	alt := int64(numPages) - diff
	if alt < diff {
		return alt
	}
	return diff
}
