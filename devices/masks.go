package devices

// Canonical (post-shift, low-window-relative) offsets for every
// single-register handler the RegionDecoder dispatches to. These are a
// compile-time table, never parsed from a config string at runtime.
const (
	offFCACHEE     = 0x1C100
	offSCKDIVCR    = 0x1E020
	offSCKSCR      = 0x1E026
	offMEMWAIT     = 0x1E031
	offHOCOCR      = 0x1E036
	offOSCSF       = 0x1E03C
	offOPCCR       = 0x1E0A0
	offMOSCWTCR    = 0x1E0A2
	offPRCR        = 0x1E3FE
	offMOMCR       = 0x1E413
	offVBTCR1      = 0x1E41F
	offSOSCCR      = 0x1E480
	offSOMCR       = 0x1E481
	offVBTSR       = 0x1E4B1
	offUSBFSSYSCFG = 0x90000
)

// Port Control Bank geometry.
const (
	portCtlBase   = 0x40000
	portCtlStride = 0x20
	portCtlCount  = 10
)

// Interrupt Steering Unit window. Mapped as its own bus window at
// isuBase (original_source/hw/intc/ra4m1_icu.c's RA4M1_ICU_BASE), so
// offsets the unit sees are window-relative: IELSR[0] sits at local
// offset ielsrLo, exactly as the real ICU register layout has it.
const (
	isuBase  = 0x40006000
	isuSize  = 0x1000
	ielsrLo  = 0x300
	ielsrHi  = 0x380 // exclusive
	ielsrCnt = (ielsrHi - ielsrLo) / 4
)

// Flash Register Stub window, mapped as its own bus window at
// flashRegsBase (original's RA4M1_FLASH_REGS_OFF), independent of the
// Region Decoder's two ra4m1_regs windows.
const (
	flashRegsBase = 0x407E0000
	flashRegsSize = 0x10000
)

// Serial Channel Set geometry: one bus window starting at serialBase
// covering every channel slot (the board only populates indices in
// serialChannels; the rest of the window is simply unmapped), mirroring
// the original's per-channel sysbus_mmio_map calls at
// RA4M1_SCI_BASE + idx*RA4M1_SCI_OFF.
const (
	serialBase         = 0x40070000
	serialStride       = 0x20
	serialChannelSlots = 10
	serialSize         = serialChannelSlots * serialStride
)

// Region Decoder window shifts.
const (
	peripheralLoBase  = 0x40000000
	peripheralLoSize  = 0x70000
	peripheralHiBase  = 0x40080000
	peripheralHiSize  = 0x80000
	peripheralHiShift = 0x80000
)

// Physical memory map.
const (
	FlashBase        = 0x00000000
	FlashSize        = 256 * 1024
	SRAMBase         = 0x20000000
	SRAMSize         = 32 * 1024
	OnChipFlashBase  = 0x407FB19C
	OnChipFlashSize  = 4
)

// Reset values.
const (
	resetSCKDIVCR uint32 = 0x44044444
	resetSCKSCR   uint8  = 0x01
	resetVBTSR    uint8  = 0x10
	resetMOSCWTCR uint8  = 0x05
	resetSOSCCR   uint8  = 0x01
	resetOPCCR    uint8  = 0x02
	resetOSCSF    uint8  = 0x01
)

// Per-register writable-bit masks and retention masks, lifted
// unchanged from original_source/hw/arm/ra4m1_regs.c's set_with/
// set_with_retain bit lists. A set bit in a mask is writable; a set bit in
// a retain mask is preserved from the prior value regardless of M.
const (
	maskPRCR         uint16 = 0x000B // bits 0,1,3
	maskFCACHEE      uint16 = 0x0001 // bit 0
	maskSCKDIVCR     uint32 = 0xFFFFFFFF
	retainSCKDIVCR   uint32 = 0x88FF8888 // bits 3,7,11,15-23,27,31
	maskSCKSCR       uint8  = 0x07 // bits 0,1,2
	maskMOMCR        uint8  = 0x48 // bits 3,6
	maskMOSCWTCR     uint8  = 0x0F // bits 0,1,2,3
	maskSOSCCR       uint8  = 0x01 // bit 0
	maskSOMCR        uint8  = 0x03 // bits 0,1
	maskOPCCR        uint8  = 0x13 // bits 0,1,4
	maskHOCOCR       uint8  = 0x01 // bit 0
	maskOSCSF        uint8  = 0x29 // bits 0,3,5
	maskMEMWAIT      uint8  = 0x01 // bit 0
	maskUSBFSSYSCFG  uint16 = 0x0579 // bits 0,3,4,5,6,8,10
	maskVBTCR1       uint8  = 0xFF // wholesale writable when unlocked
	retainVBTSR      uint8  = 0x10 // bit 4 always retained
	prcrKeyByte      uint16 = 0xA500
	prcrKeyMask      uint16 = 0xFF00
	prcrClockEnable  uint16 = 0x0001
	prcrBatteryEnable uint16 = 0x0002
)

// registerWidths gives each single-register offset's canonical access
// width in bytes (spec §6). RegisterFile.Read/Write reject any other
// width as BadWidth rather than silently reinterpreting the value.
var registerWidths = map[uint64]int{
	offVBTCR1:      1,
	offVBTSR:       1,
	offPRCR:        2,
	offFCACHEE:     2,
	offSCKDIVCR:    4,
	offSCKSCR:      1,
	offMOMCR:       1,
	offMOSCWTCR:    1,
	offSOSCCR:      1,
	offSOMCR:       1,
	offOPCCR:       1,
	offHOCOCR:      1,
	offOSCSF:       1,
	offMEMWAIT:     1,
	offUSBFSSYSCFG: 2,
}

// applyMask32 folds a guest write into the current register value: bits
// set in writable take the new value, bits set in retain always keep
// their previous value regardless of writable, and every other bit is
// simply preserved.
func applyMask32(old, val, writable, retain uint32) uint32 {
	return (val & writable &^ retain) | (old &^ writable) | (old & retain)
}

func applyMask16(old, val, writable, retain uint16) uint16 {
	return (val & writable &^ retain) | (old &^ writable) | (old & retain)
}

func applyMask8(old, val, writable, retain uint8) uint8 {
	return (val & writable &^ retain) | (old &^ writable) | (old & retain)
}
