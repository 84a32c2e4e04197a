package devices

import "testing"

func unlockClock(rf *RegisterFile) {
	rf.Write(offPRCR, 2, uint32(prcrKeyByte|prcrClockEnable))
}

func unlockBattery(rf *RegisterFile) {
	rf.Write(offPRCR, 2, uint32(prcrKeyByte|prcrBatteryEnable))
}

func TestResetValues(t *testing.T) {
	rf := NewRegisterFile()
	cases := []struct {
		offset uint64
		width  int
		want   uint32
	}{
		{offSCKDIVCR, 4, resetSCKDIVCR},
		{offSCKSCR, 1, uint32(resetSCKSCR)},
		{offVBTSR, 1, uint32(resetVBTSR)},
		{offMOSCWTCR, 1, uint32(resetMOSCWTCR)},
		{offSOSCCR, 1, uint32(resetSOSCCR)},
		{offOPCCR, 1, uint32(resetOPCCR)},
		{offOSCSF, 1, uint32(resetOSCSF)},
		{offPRCR, 2, 0},
		{offFCACHEE, 2, 0},
	}
	for _, c := range cases {
		if got := rf.Read(c.offset, c.width); got != c.want {
			t.Errorf("offset %#x: got %#x want %#x", c.offset, got, c.want)
		}
	}
}

func TestBadWidthRejectedAndLogged(t *testing.T) {
	rf := NewRegisterFile()
	unlockClock(rf)
	rf.Write(offSCKSCR, 4, 0x05) // SCKSCR is canonically 1 byte wide
	if got := rf.Read(offSCKSCR, 1); got != uint32(resetSCKSCR) {
		t.Fatalf("4-byte write to 1-byte register should be rejected, got %#x", got)
	}
	if got := rf.Read(offSCKSCR, 4); got != 0 {
		t.Fatalf("mismatched-width read should return 0, got %#x", got)
	}
}

func TestPRCRRequiresKeyByte(t *testing.T) {
	rf := NewRegisterFile()
	rf.Write(offPRCR, 2, 0x0003) // no 0xA5 key byte
	if rf.Read(offPRCR, 2) != 0 {
		t.Fatalf("PRCR changed without key byte")
	}
	rf.Write(offPRCR, 2, uint32(prcrKeyByte|0x3))
	if got := rf.Read(offPRCR, 2); got != 0x3 {
		t.Fatalf("PRCR not set with valid key: got %#x", got)
	}
}

func TestClockGroupInterlocked(t *testing.T) {
	rf := NewRegisterFile()
	rf.Write(offSCKSCR, 1, 0x05)
	if rf.Read(offSCKSCR, 1) != uint32(resetSCKSCR) {
		t.Fatalf("SCKSCR write succeeded while clock group locked")
	}

	unlockClock(rf)
	rf.Write(offSCKSCR, 1, 0x05)
	if got := rf.Read(offSCKSCR, 1); got != 0x05 {
		t.Fatalf("SCKSCR write rejected after unlock: got %#x", got)
	}
}

func TestBatteryGroupInterlocked(t *testing.T) {
	rf := NewRegisterFile()
	rf.Write(offVBTCR1, 1, 0xFF)
	if rf.Read(offVBTCR1, 1) != 0 {
		t.Fatalf("VBTCR1 write succeeded while battery group locked")
	}

	unlockBattery(rf)
	rf.Write(offVBTCR1, 1, 0xFF)
	if got := rf.Read(offVBTCR1, 1); got != 0xFF {
		t.Fatalf("VBTCR1 write rejected after unlock: got %#x", got)
	}
}

func TestVBTSRRetainsBit4(t *testing.T) {
	rf := NewRegisterFile()
	unlockBattery(rf)
	rf.Write(offVBTSR, 1, 0x00)
	if got := rf.Read(offVBTSR, 1); got&uint32(retainVBTSR) == 0 {
		t.Fatalf("VBTSR bit 4 cleared despite being retained: got %#x", got)
	}
}

func TestUnknownOffsetReadsZero(t *testing.T) {
	rf := NewRegisterFile()
	if got := rf.Read(0xDEADBEEF, 4); got != 0 {
		t.Fatalf("unknown offset read non-zero: %#x", got)
	}
}

func TestResetRestoresLockedState(t *testing.T) {
	rf := NewRegisterFile()
	unlockClock(rf)
	rf.Write(offSCKSCR, 1, 0x05)
	rf.Reset()
	if rf.clockUnlocked() {
		t.Fatalf("clock group still unlocked after reset")
	}
	if got := rf.Read(offSCKSCR, 1); got != uint32(resetSCKSCR) {
		t.Fatalf("SCKSCR not restored to reset value: got %#x", got)
	}
}
