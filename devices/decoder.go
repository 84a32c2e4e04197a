package devices

// regionWindow describes one of the two disjoint guest-address
// windows the Region Decoder collapses onto a single canonical offset
// space. Declared as a compile-time slice literal rather than individual
// package-scope globals.
type regionWindow struct {
	base  uint64
	size  uint64
	shift uint64
}

var regionWindows = []regionWindow{
	{base: peripheralLoBase, size: peripheralLoSize, shift: 0},
	{base: peripheralHiBase, size: peripheralHiSize, shift: peripheralHiShift},
}

// PeripheralLoBase, PeripheralLoSize, PeripheralHiBase and PeripheralHiSize
// expose the two guest-address windows a RegionDecoder must be registered
// against on the host bus.
func PeripheralLoBase() uint64 { return peripheralLoBase }
func PeripheralLoSize() uint64 { return peripheralLoSize }
func PeripheralHiBase() uint64 { return peripheralHiBase }
func PeripheralHiSize() uint64 { return peripheralHiSize }

// ISUBase, ISUSize, FlashRegsBase, FlashRegsSize, SerialBase and
// SerialSize expose the three peripheral windows that live outside the
// Region Decoder's two ra4m1_regs windows entirely, matching
// original_source/hw/arm/ra4m1_peripheral.c:28-59, which maps the ICU,
// the flash controller's registers, and each SCI channel as their own
// sysbus devices at their own absolute base addresses. A host bus must
// register the ISU, the Flash Register Stub and the Serial Channel Set
// directly at these addresses; the RegionDecoder never sees them.
func ISUBase() uint64       { return isuBase }
func ISUSize() uint64       { return isuSize }
func FlashRegsBase() uint64 { return flashRegsBase }
func FlashRegsSize() uint64 { return flashRegsSize }
func SerialBase() uint64    { return serialBase }
func SerialSize() uint64    { return serialSize }

// dispatchTarget is anything the decoder can hand a canonical-offset
// access to.
type dispatchTarget interface {
	Read(offset uint64, width int) uint32
	Write(offset uint64, width int, val uint32)
}

// RegionDecoder resolves a guest physical address against the two
// peripheral windows, producing one canonical offset, then
// dispatches it to the Port Control Bank or to a single-register
// handler. The ISU, Flash Register Stub and Serial Channel Set are not
// reachable through here: they own separate bus windows (see ISUBase
// etc.), the same way the original maps them as independent sysbus
// devices rather than ra4m1_regs sub-ranges.
type RegionDecoder struct {
	ports     *PortControllerBank
	registers *RegisterFile
	fault     *FaultLog
}

// NewRegionDecoder wires the decoder to the Port Control Bank and the
// single-register handler it dispatches into.
func NewRegionDecoder(registers *RegisterFile, ports *PortControllerBank, fault *FaultLog) *RegionDecoder {
	return &RegionDecoder{
		registers: registers,
		ports:     ports,
		fault:     fault,
	}
}

// canonicalize maps a guest address in one of the two peripheral windows
// to its canonical, shift-adjusted offset, reporting ok=false if addr
// falls in neither window.
func canonicalize(addr uint64) (offset uint64, ok bool) {
	for _, w := range regionWindows {
		if addr >= w.base && addr < w.base+w.size {
			return addr - w.base + w.shift, true
		}
	}
	return 0, false
}

// target resolves offset to a sub-component. It returns a literal nil
// interface (never a non-nil interface wrapping a nil pointer) so the
// caller's t == nil check is reliable when a sub-range isn't wired up.
func (d *RegionDecoder) target(offset uint64) dispatchTarget {
	if InPortControlRange(offset) {
		if d.ports == nil {
			return nil
		}
		return d.ports
	}
	if d.registers == nil {
		return nil
	}
	return d.registers
}

// Read resolves addr to a canonical offset and dispatches a read of
// width bytes, returning 0 and logging if addr falls outside both
// peripheral windows or the width is unsupported by the target.
func (d *RegionDecoder) Read(addr uint64, width int) uint32 {
	offset, ok := canonicalize(addr)
	if !ok {
		d.fault.unknownOffset("RegionDecoder.Read", addr)
		return 0
	}
	t := d.target(offset)
	if t == nil {
		d.fault.unknownOffset("RegionDecoder.Read", offset)
		return 0
	}
	return t.Read(offset, width)
}

// Write resolves addr to a canonical offset and dispatches a write,
// silently ignoring (but logging) accesses outside both windows. A
// decoder never faults the guest CPU; it only ever logs and no-ops.
func (d *RegionDecoder) Write(addr uint64, width int, val uint32) {
	offset, ok := canonicalize(addr)
	if !ok {
		d.fault.unknownOffset("RegionDecoder.Write", addr)
		return
	}
	t := d.target(offset)
	if t == nil {
		d.fault.unknownOffset("RegionDecoder.Write", offset)
		return
	}
	t.Write(offset, width, val)
}
