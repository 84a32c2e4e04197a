package devices

// ExtendedBank holds the pin-function-select matrix, analog-enable flags
// and general PWM timer register blocks that sit alongside the core
// clock/port/interrupt registers on real silicon. It is deliberately a
// flat, mask-free bag of state: none of the core register file's
// interlock or retention rules apply here, so this gets plain load/store
// semantics rather than invented masks.
type ExtendedBank struct {
	// Pmnpfs is the per-pin function-select register, indexed
	// [port][pin]. Renesas calls this PmnPFS; the name is kept close to
	// the datasheet rather than invented.
	Pmnpfs [10][16]uint32

	// AnalogEnabled tracks whether each of the 27 ADC-capable pins has
	// its analog function enabled (PmnPFS.ASEL bit, tracked separately
	// here for simpler test assertions).
	AnalogEnabled [27]bool

	// GPT holds the 8 General PWM Timer channels' register blocks. Only
	// the fields a board-level consumer of this package is expected to
	// poke directly are modeled; the timer's own counting behavior is
	// out of scope (see SPEC_FULL.md Non-goals).
	GPT [8]GPTBlock
}

// GPTBlock is one General PWM Timer channel's minimal register state:
// the counter, the period register and the control/start bit.
type GPTBlock struct {
	Counter uint32
	Period  uint32
	Running bool
}

func NewExtendedBank() *ExtendedBank {
	b := &ExtendedBank{}
	b.reset()
	return b
}

func (b *ExtendedBank) reset() {
	for p := range b.Pmnpfs {
		for n := range b.Pmnpfs[p] {
			b.Pmnpfs[p][n] = 0
		}
	}
	for i := range b.AnalogEnabled {
		b.AnalogEnabled[i] = false
	}
	for i := range b.GPT {
		b.GPT[i] = GPTBlock{}
	}
}

// SetPinFunction stores a PmnPFS write and mirrors its ASEL bit (bit 26
// in the real register layout) into AnalogEnabled when pin indexes an
// ADC-capable pin.
func (b *ExtendedBank) SetPinFunction(port, pin int, val uint32) {
	if port < 0 || port >= len(b.Pmnpfs) || pin < 0 || pin >= len(b.Pmnpfs[0]) {
		return
	}
	b.Pmnpfs[port][pin] = val
	adcPin := port*16 + pin
	if adcPin >= 0 && adcPin < len(b.AnalogEnabled) {
		b.AnalogEnabled[adcPin] = val&(1<<26) != 0
	}
}
