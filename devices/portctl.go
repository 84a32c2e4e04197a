package devices

// PortControlBlock holds one GPIO port's 16-byte register window (board
// ): PODR/PDR pairs packed as two 16-bit halves of 32-bit-aliased
// registers, plus the narrower PIDR/PORR/POSR/EORR companions. Every
// halfword of the 16-byte window is stored, but only the offsets in
// blockOffsets16 and blockOffsets32 are reachable: offset 10 only as the
// upper half of the 32-bit register at offset 8, and offset 14 not at all.
type PortControlBlock struct {
	half [8]uint16 // 8 halfwords cover offsets 0,2,4,6,8,10,12,14
}

// PortControllerBank (C3) is the 10-block array of GPIO port register
// windows starting at canonical offset 0x40000, spaced 0x20 apart (board
// ). Grounded on core_engine/devices/pic.go's narrow switch-on-offset
// register dispatch, generalized to an indexed block array and to the
// this register's 16-bit/32-bit aliasing rules instead of single-byte ports.
type PortControllerBank struct {
	rf    *RegisterFile
	fault *FaultLog
}

// NewPortControllerBank returns a bank bound to rf's port blocks, logging
// rejected accesses to fault (nil is accepted, e.g. for tests that don't
// care about log output).
func NewPortControllerBank(rf *RegisterFile, fault *FaultLog) *PortControllerBank {
	return &PortControllerBank{rf: rf, fault: fault}
}

// blockOffsets16 are the only offsets within a 16-byte block that accept
// 16-bit accesses; 32-bit accesses are further
// restricted to blockOffsets32.
var blockOffsets16 = map[uint64]bool{0: true, 2: true, 4: true, 6: true, 8: true, 12: true}
var blockOffsets32 = map[uint64]bool{0: true, 4: true, 8: true}

// decodePortOffset splits a canonical Port Control Bank offset into (block index,
// intra-block offset), reporting ok=false if it falls outside the 10
// populated blocks.
func decodePortOffset(offset uint64) (block int, intra uint64, ok bool) {
	if offset < portCtlBase {
		return 0, 0, false
	}
	rel := offset - portCtlBase
	block = int(rel / portCtlStride)
	if block >= portCtlCount {
		return 0, 0, false
	}
	return block, rel % portCtlStride, true
}

func (p *PortControllerBank) Read(offset uint64, width int) uint32 {
	block, intra, ok := decodePortOffset(offset)
	if !ok {
		p.fault.unknownOffset("PortControllerBank.Read", offset)
		return 0
	}
	b := p.rf.Port(block)
	switch width {
	case 2:
		if !blockOffsets16[intra] {
			p.fault.unknownOffset("PortControllerBank.Read", offset)
			return 0
		}
		return uint32(b.half[intra/2])
	case 4:
		if !blockOffsets32[intra] {
			p.fault.unknownOffset("PortControllerBank.Read", offset)
			return 0
		}
		lo := uint32(b.half[intra/2])
		hi := uint32(b.half[intra/2+1])
		return lo | hi<<16
	default:
		p.fault.badWidth("PortControllerBank.Read", offset, width)
		return 0
	}
}

func (p *PortControllerBank) Write(offset uint64, width int, val uint32) {
	block, intra, ok := decodePortOffset(offset)
	if !ok {
		p.fault.unknownOffset("PortControllerBank.Write", offset)
		return
	}
	b := p.rf.Port(block)
	switch width {
	case 2:
		if !blockOffsets16[intra] {
			p.fault.unknownOffset("PortControllerBank.Write", offset)
			return
		}
		b.half[intra/2] = uint16(val)
	case 4:
		if !blockOffsets32[intra] {
			p.fault.unknownOffset("PortControllerBank.Write", offset)
			return
		}
		b.half[intra/2] = uint16(val)
		b.half[intra/2+1] = uint16(val >> 16)
	default:
		p.fault.badWidth("PortControllerBank.Write", offset, width)
	}
}

// InPortControlRange reports whether offset falls within the Port Control Bank's
// address span, for the RegionDecoder's dispatch test.
func InPortControlRange(offset uint64) bool {
	return offset >= portCtlBase && offset < portCtlBase+portCtlCount*portCtlStride
}
