package devices

import (
	"fmt"
	"log"
)

// FaultLog records guest-visible register faults with a bounded map:
// each (component, offset, kind) triple is counted and only its first
// occurrence is logged in full, mirroring the teacher's
// plain log.Printf diagnostics (core_engine/devices/pic.go logs unknown
// OCW/ICW bytes the same way) rather than a structured-logging library,
// since nothing in the example corpus pulls one in.
type FaultLog struct {
	seen map[faultKey]int
}

type faultKey struct {
	component string
	offset    uint64
	kind      string
}

const faultLogCap = 4096

// NewFaultLog returns an empty fault log.
func NewFaultLog() *FaultLog {
	return &FaultLog{seen: make(map[faultKey]int)}
}

func (f *FaultLog) reset() {
	if f == nil {
		return
	}
	f.seen = make(map[faultKey]int)
}

// record logs msg the first time (component, offset, kind) is seen and
// silently counts it thereafter. The map stops growing at faultLogCap
// distinct keys; a key first seen after that is not counted and is logged
// on every occurrence.
func (f *FaultLog) record(component string, offset uint64, kind, msg string) {
	if f == nil {
		log.Printf("%s", msg)
		return
	}
	key := faultKey{component, offset, kind}
	n, ok := f.seen[key]
	if !ok && len(f.seen) >= faultLogCap {
		log.Printf("%s", msg)
		return
	}
	f.seen[key] = n + 1
	if !ok {
		log.Printf("%s", msg)
	}
}

func (f *FaultLog) unknownOffset(component string, offset uint64) {
	f.record(component, offset, "unknown", unknownOffsetMsg(component, offset))
}

func (f *FaultLog) badWidth(component string, offset uint64, width int) {
	f.record(component, offset, "badwidth", badWidthMsg(component, offset, width))
}

func (f *FaultLog) interlocked(component string, offset uint64, gate string) {
	f.record(component, offset, "interlocked", interlockedMsg(component, offset, gate))
}

func (f *FaultLog) badKey(component string, offset uint64) {
	f.record(component, offset, "badkey", badKeyMsg(component, offset))
}

func unknownOffsetMsg(component string, offset uint64) string {
	return fmt.Sprintf("%s: access to unmapped offset 0x%X", component, offset)
}

func badWidthMsg(component string, offset uint64, width int) string {
	return fmt.Sprintf("%s: unsupported access width at offset 0x%X (%d bytes)", component, offset, width)
}

func interlockedMsg(component string, offset uint64, gate string) string {
	return fmt.Sprintf("%s: write to offset 0x%X rejected: %s not set", component, offset, gate)
}

func badKeyMsg(component string, offset uint64) string {
	return fmt.Sprintf("%s: write to offset 0x%X rejected: bad PRCR key byte", component, offset)
}
