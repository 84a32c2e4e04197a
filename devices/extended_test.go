package devices

import "testing"

func TestExtendedBankSetPinFunctionTracksAnalogEnable(t *testing.T) {
	b := NewExtendedBank()
	b.SetPinFunction(1, 4, 1<<26) // ASEL bit set
	if !b.AnalogEnabled[1*16+4] {
		t.Fatalf("ASEL bit not mirrored into AnalogEnabled")
	}
	if b.Pmnpfs[1][4] != 1<<26 {
		t.Fatalf("PmnPFS value not stored")
	}

	b.SetPinFunction(1, 4, 0)
	if b.AnalogEnabled[1*16+4] {
		t.Fatalf("AnalogEnabled not cleared when ASEL bit cleared")
	}
}

func TestExtendedBankResetClearsState(t *testing.T) {
	b := NewExtendedBank()
	b.SetPinFunction(0, 0, 1<<26)
	b.GPT[0].Counter = 42
	b.reset()
	if b.Pmnpfs[0][0] != 0 || b.AnalogEnabled[0] {
		t.Fatalf("reset did not clear pin function state")
	}
	if b.GPT[0].Counter != 0 {
		t.Fatalf("reset did not clear GPT state")
	}
}
