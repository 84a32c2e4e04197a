package devices

// RegisterFile holds all peripheral register state for one RA4M1 SoC
// instance and enforces the interlock/mask/retention write path.
type RegisterFile struct {
	vbtcr1 uint8
	vbtsr  uint8
	prcr   uint16

	fcachee uint16

	sckdivcr     uint32
	sckscr       uint8
	momcr        uint8
	moscwtcr     uint8
	sosccr       uint8
	somcr        uint8
	opccr        uint8
	hococr       uint8
	oscsf        uint8
	memwait      uint8
	usbfsSyscfg  uint16

	ports [portCtlCount]PortControlBlock

	// Extended variant. Populated lazily by SoC assembly only
	// when the extended bank is requested, so a plain-core instance pays
	// nothing for it.
	Extended *ExtendedBank

	fault *FaultLog
}

// NewRegisterFile returns a RegisterFile at its post-reset state,
// logging rejected/unknown accesses to its own private fault log.
func NewRegisterFile() *RegisterFile {
	return NewRegisterFileWithLog(NewFaultLog())
}

// NewRegisterFileWithLog is like NewRegisterFile but logs to a fault log
// shared with the rest of the SoC assembly.
func NewRegisterFileWithLog(fault *FaultLog) *RegisterFile {
	rf := &RegisterFile{fault: fault}
	rf.Reset()
	return rf
}

// Reset restores every field to its documented reset value.
func (rf *RegisterFile) Reset() {
	rf.vbtcr1 = 0
	rf.vbtsr = resetVBTSR
	rf.prcr = 0
	rf.fcachee = 0
	rf.sckdivcr = resetSCKDIVCR
	rf.sckscr = resetSCKSCR
	rf.momcr = 0
	rf.moscwtcr = resetMOSCWTCR
	rf.sosccr = resetSOSCCR
	rf.somcr = 0
	rf.opccr = resetOPCCR
	rf.hococr = 0
	rf.oscsf = resetOSCSF
	rf.memwait = 0
	rf.usbfsSyscfg = 0
	for i := range rf.ports {
		rf.ports[i] = PortControlBlock{}
	}
	if rf.Extended != nil {
		rf.Extended.reset()
	}
	if rf.fault != nil {
		rf.fault.reset()
	}
}

func (rf *RegisterFile) clockUnlocked() bool { return rf.prcr&prcrClockEnable != 0 }
func (rf *RegisterFile) batteryUnlocked() bool { return rf.prcr&prcrBatteryEnable != 0 }

// Read returns the raw stored value of a known register at a canonical
// offset, or logs UnknownOffset and returns 0.
func (rf *RegisterFile) Read(offset uint64, width int) uint32 {
	if w, ok := registerWidths[offset]; ok && w != width {
		rf.fault.badWidth("RegisterFile.Read", offset, width)
		return 0
	}
	switch offset {
	case offVBTCR1:
		return uint32(rf.vbtcr1)
	case offVBTSR:
		return uint32(rf.vbtsr)
	case offPRCR:
		return uint32(rf.prcr)
	case offFCACHEE:
		return uint32(rf.fcachee)
	case offSCKDIVCR:
		return rf.sckdivcr
	case offSCKSCR:
		return uint32(rf.sckscr)
	case offMOMCR:
		return uint32(rf.momcr)
	case offMOSCWTCR:
		return uint32(rf.moscwtcr)
	case offSOSCCR:
		return uint32(rf.sosccr)
	case offSOMCR:
		return uint32(rf.somcr)
	case offOPCCR:
		return uint32(rf.opccr)
	case offHOCOCR:
		return uint32(rf.hococr)
	case offOSCSF:
		return uint32(rf.oscsf)
	case offMEMWAIT:
		return uint32(rf.memwait)
	case offUSBFSSYSCFG:
		return uint32(rf.usbfsSyscfg)
	default:
		rf.fault.unknownOffset("RegisterFile.Read", offset)
		return 0
	}
}

// Write applies a guest write to a known register, enforcing the
// interlock, writable-bit mask and retention mask.
func (rf *RegisterFile) Write(offset uint64, width int, val uint32) {
	if w, ok := registerWidths[offset]; ok && w != width {
		rf.fault.badWidth("RegisterFile.Write", offset, width)
		return
	}
	switch offset {
	case offVBTCR1:
		if !rf.batteryUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[1]")
			return
		}
		rf.vbtcr1 = applyMask8(rf.vbtcr1, uint8(val), maskVBTCR1, 0)
	case offVBTSR:
		if !rf.batteryUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[1]")
			return
		}
		rf.vbtsr = applyMask8(rf.vbtsr, uint8(val), 0xFF, retainVBTSR)
	case offPRCR:
		if uint16(val)&prcrKeyMask != prcrKeyByte {
			rf.fault.badKey("RegisterFile.Write", offset)
			return
		}
		rf.prcr = applyMask16(rf.prcr, uint16(val), maskPRCR, 0)
	case offFCACHEE:
		rf.fcachee = applyMask16(rf.fcachee, uint16(val), maskFCACHEE, 0)
	case offSCKDIVCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.sckdivcr = applyMask32(rf.sckdivcr, val, maskSCKDIVCR, retainSCKDIVCR)
	case offSCKSCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.sckscr = applyMask8(rf.sckscr, uint8(val), maskSCKSCR, 0)
	case offMOMCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.momcr = applyMask8(rf.momcr, uint8(val), maskMOMCR, 0)
	case offMOSCWTCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.moscwtcr = applyMask8(rf.moscwtcr, uint8(val), maskMOSCWTCR, 0)
	case offSOSCCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.sosccr = applyMask8(rf.sosccr, uint8(val), maskSOSCCR, 0)
	case offSOMCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.somcr = applyMask8(rf.somcr, uint8(val), maskSOMCR, 0)
	case offOPCCR:
		rf.opccr = applyMask8(rf.opccr, uint8(val), maskOPCCR, 0)
	case offHOCOCR:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.hococr = applyMask8(rf.hococr, uint8(val), maskHOCOCR, 0)
	case offOSCSF:
		if !rf.clockUnlocked() {
			rf.fault.interlocked("RegisterFile.Write", offset, "PRCR[0]")
			return
		}
		rf.oscsf = applyMask8(rf.oscsf, uint8(val), maskOSCSF, 0)
	case offMEMWAIT:
		rf.memwait = applyMask8(rf.memwait, uint8(val), maskMEMWAIT, 0)
	case offUSBFSSYSCFG:
		rf.usbfsSyscfg = applyMask16(rf.usbfsSyscfg, uint16(val), maskUSBFSSYSCFG, 0)
	default:
		rf.fault.unknownOffset("RegisterFile.Write", offset)
	}
}

// Port returns a pointer to Port Control block k (0..9), for the
// PortControllerBank to operate on directly.
func (rf *RegisterFile) Port(k int) *PortControlBlock {
	return &rf.ports[k]
}
