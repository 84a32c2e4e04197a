package devices

import "fmt"

// SCILine names one of the four interrupt sources a Serial Communication
// Interface channel can raise.
type SCILine int

const (
	RXI SCILine = iota
	TXI
	TEI
	ERI
)

func (l SCILine) String() string {
	switch l {
	case RXI:
		return "RXI"
	case TXI:
		return "TXI"
	case TEI:
		return "TEI"
	case ERI:
		return "ERI"
	default:
		return "?"
	}
}

// sciRoute is one row of the fixed event-selector-to-peripheral-line
// table, lifted unchanged from
// original_source/hw/intc/ra4m1_icu.c's sci_int_table. Event byte 0xA4
// appears twice on purpose: channel 2's TXI and TEI share an event code
// in the original silicon table, and both rows are kept rather than
// silently deduped (see DESIGN.md). Write stops at the first matching
// row, so a write of 0xA4 always routes channel 2 TXI; the TEI row is
// never selected.
type sciRoute struct {
	event   uint8
	channel int
	line    SCILine
}

var sciIntTable = []sciRoute{
	{0x98, 0, RXI},
	{0x99, 0, TXI},
	{0x9A, 0, TEI},
	{0x9B, 0, ERI},
	{0x9E, 1, RXI},
	{0x9F, 1, TXI},
	{0xA0, 1, TEI},
	{0xA1, 1, ERI},
	{0xA3, 2, RXI},
	{0xA4, 2, TXI},
	{0xA4, 2, TEI},
	{0xA5, 2, ERI},
	{0xA8, 9, RXI},
	{0xA9, 9, TXI},
	{0xAA, 9, TEI},
	{0xAB, 9, ERI},
}

func init() {
	seen := make(map[sciRoute]bool, len(sciIntTable))
	for _, r := range sciIntTable {
		if seen[r] {
			panic(fmt.Sprintf("devices: duplicate sci_int_table row %+v", r))
		}
		seen[r] = true
	}
}

// IRQSink is the CPU-facing input pin an ISU slot drives. Matches
// host/arm.CPU's SetIRQ, narrowed to one line so the ISU doesn't need a
// full CPU reference.
type IRQSink interface {
	SetIRQ(level bool)
}

// SCIOutput is the peripheral-facing side of a route: each serial
// channel exposes one IRQSink-shaped output pin per SCILine, and the ISU
// wires the matching one to a slot's CPU input whenever that slot's
// event selector matches a table row.
type SCIOutput interface {
	// Connect attaches sink as channel's current destination for line,
	// replacing (and implicitly disconnecting) whatever was attached
	// before. Connect(channel, line, nil) disconnects without
	// reconnecting.
	Connect(channel int, line SCILine, sink IRQSink)
}

// InterruptSteeringUnit (C5) is the 32-entry IELSR array mapping serial
// peripheral interrupt sources to CPU IRQ lines. Grounded on
// core_engine/devices/pic.go's edge-triggered line-to-CPU wiring,
// generalized from a fixed 8-line PIC to a fixed static event-selector
// table driving a runtime rebind.
type InterruptSteeringUnit struct {
	ielsr  [ielsrCnt]uint32
	routed [ielsrCnt]*sciRoute // currently connected route per slot, or nil
	sci    SCIOutput
	cpu    func(slot int) IRQSink
	fault  *FaultLog
}

// NewInterruptSteeringUnit returns an ISU that wires matched peripheral
// lines through sci and CPU lines via cpuLine(slot).
func NewInterruptSteeringUnit(sci SCIOutput, cpuLine func(slot int) IRQSink, fault *FaultLog) *InterruptSteeringUnit {
	return &InterruptSteeringUnit{sci: sci, cpu: cpuLine, fault: fault}
}

func (u *InterruptSteeringUnit) Reset() {
	for i := range u.ielsr {
		u.ielsr[i] = 0
		if u.routed[i] != nil && u.sci != nil {
			u.sci.Connect(u.routed[i].channel, u.routed[i].line, nil)
		}
		u.routed[i] = nil
	}
}

func decodeIELSR(offset uint64) (slot int, ok bool) {
	if offset < ielsrLo || offset >= ielsrHi {
		return 0, false
	}
	rel := offset - ielsrLo
	if rel%4 != 0 {
		return 0, false
	}
	return int(rel / 4), true
}

func (u *InterruptSteeringUnit) Read(offset uint64, width int) uint32 {
	slot, ok := decodeIELSR(offset)
	if !ok {
		u.fault.unknownOffset("InterruptSteeringUnit.Read", offset)
		return 0
	}
	if width != 4 {
		u.fault.badWidth("InterruptSteeringUnit.Read", offset, width)
		return 0
	}
	return u.ielsr[slot]
}

// Write stores the new IELSR value and disconnects
// any previously routed peripheral line for this slot before wiring a
// new match. A slot whose event byte matches nothing is left
// unconnected, same as the original's fall-through-with-no-match.
func (u *InterruptSteeringUnit) Write(offset uint64, width int, val uint32) {
	slot, ok := decodeIELSR(offset)
	if !ok {
		u.fault.unknownOffset("InterruptSteeringUnit.Write", offset)
		return
	}
	if width != 4 {
		u.fault.badWidth("InterruptSteeringUnit.Write", offset, width)
		return
	}
	u.ielsr[slot] = val

	if u.routed[slot] != nil && u.sci != nil {
		u.sci.Connect(u.routed[slot].channel, u.routed[slot].line, nil)
		u.routed[slot] = nil
	}

	event := uint8(val & 0xFF)
	for i := range sciIntTable {
		r := sciIntTable[i]
		if r.event != event {
			continue
		}
		if u.sci != nil && u.cpu != nil {
			u.sci.Connect(r.channel, r.line, u.cpu(slot))
		}
		u.routed[slot] = &sciIntTable[i]
		break
	}
}
