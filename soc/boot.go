package soc

import (
	"encoding/binary"

	"github.com/arduino-uno-rev4/ra4m1soc/devices"
)

// vectorTableWords is the Cortex-M vector table length this board's
// default boot image uses: 16 core exception entries plus 32 IRQ entries
//.
const vectorTableWords = 16 + NumIRQ

// vectorTableBytes is the table's size in bytes, also the flash offset
// where the default reset handler is placed immediately afterward.
const vectorTableBytes = vectorTableWords * 4

// resetHandlerStub is the fixed 12-byte Thumb instruction sequence
// installed as a fixed byte string right after the default vector table,
// giving the CPU somewhere to execute when no real bootloader or kernel
// image was supplied. Lifted unchanged from
// original_source/hw/arm/ra4m1.c's default boot blob.
var resetHandlerStub = []byte{
	0x48, 0x01, 0x68, 0x01, 0xBF, 0x00, 0xE7, 0xFD, 0xE4, 0x1F, 0x40, 0x01,
}

// DefaultVectorTable builds the board's fallback flash image:
// a 48-entry Cortex-M vector table with a stack pointer into SRAM and a
// reset vector pointing just past the table, followed by the stub reset
// handler. Every other vector entry is set to 1 to keep the CPU in Thumb
// mode if it's ever (incorrectly) taken.
func DefaultVectorTable() []byte {
	vt := make([]byte, vectorTableBytes+len(resetHandlerStub))

	binary.LittleEndian.PutUint32(vt[0:4], uint32(devices.SRAMBase+0x400))
	binary.LittleEndian.PutUint32(vt[4:8], uint32(devices.FlashBase+vectorTableBytes))
	for i := 2; i < vectorTableWords; i++ {
		binary.LittleEndian.PutUint32(vt[i*4:i*4+4], 1)
	}

	copy(vt[vectorTableBytes:], resetHandlerStub)
	return vt
}
