package vm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/physmem"
	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/vm"
)

var _ = Describe("Allocator", func() {
	var (
		mockCtrl *gomock.Controller
		mockMem  *MockPhysicalMemory
		mockSwap *MockBackingStore
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockMem = NewMockPhysicalMemory(mockCtrl)
		mockSwap = NewMockBackingStore(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	// tablesDepth=1, pageSize=4: a cold one-level tree with headroom
	// below NumFrames always takes the fresh-frame path.
	It("hands out the next fresh frame when headroom remains", func() {
		linker := vm.NewLinker(mockMem, 4, 1, 2)
		a := vm.NewAllocator(mockMem, mockSwap, linker, 4, 4, 16, 1, 2)

		mockMem.EXPECT().ReadWord(uint64(0)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(1)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(2)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(3)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ClearTable(uint64(1)).Return(nil)

		frame, kind, err := a.FindFrame(5, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(frame).To(Equal(uint64(1)))
		Expect(kind).To(Equal(vm.EventFresh))
	})

	// tablesDepth=1, NumFrames=2 (tight): root -> leaf frame 1 at entry
	// index 2. Saturated tree, so FindFrame must evict the sole leaf and
	// unlink it from its parent entry.
	It("evicts the farthest leaf by cyclic distance when saturated", func() {
		linker := vm.NewLinker(mockMem, 4, 1, 2)
		a := vm.NewAllocator(mockMem, mockSwap, linker, 4, 2, 16, 1, 2)

		mockMem.EXPECT().ReadWord(uint64(0)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(1)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(2)).Times(2).Return(physmem.Word(1), nil)
		mockMem.EXPECT().ReadWord(uint64(3)).Return(physmem.Word(0), nil)
		mockSwap.EXPECT().Evict(uint64(1), uint64(2)).Return(nil)
		mockMem.EXPECT().ClearTable(uint64(1)).Return(nil)
		mockMem.EXPECT().WriteWord(uint64(2), physmem.Word(0)).Return(nil)

		frame, kind, err := a.FindFrame(10, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(frame).To(Equal(uint64(1)))
		Expect(kind).To(Equal(vm.EventEvict))
	})

	// tablesDepth=2, NumFrames=3 (tight): root -> frame1 (empty interior,
	// reclaimable) and root -> frame2 (empty interior, but it's the
	// in-flight frame being descended through, so it must be skipped).
	It("reclaims an empty intermediate table over evicting a leaf", func() {
		linker := vm.NewLinker(mockMem, 4, 2, 2)
		a := vm.NewAllocator(mockMem, mockSwap, linker, 4, 3, 64, 2, 2)

		mockMem.EXPECT().ReadWord(uint64(0)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(1)).Times(2).Return(physmem.Word(1), nil)
		mockMem.EXPECT().ReadWord(uint64(2)).Return(physmem.Word(0), nil)
		mockMem.EXPECT().ReadWord(uint64(3)).Return(physmem.Word(2), nil)
		for addr := uint64(4); addr < 8; addr++ {
			mockMem.EXPECT().ReadWord(addr).Return(physmem.Word(0), nil)
		}
		for addr := uint64(8); addr < 12; addr++ {
			mockMem.EXPECT().ReadWord(addr).Return(physmem.Word(0), nil)
		}
		mockMem.EXPECT().WriteWord(uint64(1), physmem.Word(0)).Return(nil)

		frame, kind, err := a.FindFrame(40, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(frame).To(Equal(uint64(1)))
		Expect(kind).To(Equal(vm.EventReclaim))
	})
})
