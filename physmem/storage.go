// Package physmem implements the simulated physical memory: a flat word
// array addressed by physical index, plus the clear-table convenience
// primitive. It is the only package allowed to hold the raw frame bytes.
package physmem

import "fmt"

// Word is the unit stored at each physical index.
type Word int64

// Memory is a fixed-capacity array of words, addressed by physical
// index in [0, capacity).
type Memory struct {
	words    []Word
	pageSize uint64
}

// New creates a Memory with room for numFrames frames of pageSize words
// each.
func New(numFrames, pageSize uint64) *Memory {
	return &Memory{
		words:    make([]Word, numFrames*pageSize),
		pageSize: pageSize,
	}
}

// ReadWord returns the word at the given physical index.
func (m *Memory) ReadWord(physicalIndex uint64) (Word, error) {
	if physicalIndex >= uint64(len(m.words)) {
		return 0, fmt.Errorf(
			"physmem: read index %d out of range [0, %d)",
			physicalIndex, len(m.words))
	}
	return m.words[physicalIndex], nil
}

// WriteWord writes a word at the given physical index.
func (m *Memory) WriteWord(physicalIndex uint64, w Word) error {
	if physicalIndex >= uint64(len(m.words)) {
		return fmt.Errorf(
			"physmem: write index %d out of range [0, %d)",
			physicalIndex, len(m.words))
	}
	m.words[physicalIndex] = w
	return nil
}

// ClearTable writes zero to every word of the given frame. It is a
// convenience built atop WriteWord, as spec'd — the core never needs a
// faster bulk-clear than PageSize individual writes.
func (m *Memory) ClearTable(frameIndex uint64) error {
	base := frameIndex * m.pageSize
	for i := uint64(0); i < m.pageSize; i++ {
		if err := m.WriteWord(base+i, 0); err != nil {
			return err
		}
	}
	return nil
}
