package devices

import "testing"

type fakeSink struct {
	level bool
	set   int
}

func (f *fakeSink) SetIRQ(level bool) {
	f.level = level
	f.set++
}

type fakeSCIOutput struct {
	connections map[int]map[SCILine]IRQSink
}

func newFakeSCIOutput() *fakeSCIOutput {
	return &fakeSCIOutput{connections: make(map[int]map[SCILine]IRQSink)}
}

func (f *fakeSCIOutput) Connect(channel int, line SCILine, sink IRQSink) {
	if f.connections[channel] == nil {
		f.connections[channel] = make(map[SCILine]IRQSink)
	}
	f.connections[channel][line] = sink
}

func TestISUDuplicateEventByteKeepsBothRoutes(t *testing.T) {
	count := 0
	for _, r := range sciIntTable {
		if r.event == 0xA4 {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 rows for event 0xA4, got %d", count)
	}
}

func TestISUWriteSharedEventRoutesFirstTableRow(t *testing.T) {
	sci := newFakeSCIOutput()
	sinks := map[int]*fakeSink{}
	isu := NewInterruptSteeringUnit(sci, func(slot int) IRQSink {
		s := &fakeSink{}
		sinks[slot] = s
		return s
	}, nil)

	isu.Write(ielsrLo+0, 4, 0xA4)
	if sci.connections[2][TXI] == nil {
		t.Fatalf("TXI not routed for shared event 0xA4")
	}

	isu.Write(ielsrLo+4, 4, 0xA4)
	if sci.connections[2][TXI] != IRQSink(sinks[1]) {
		t.Fatalf("second slot's 0xA4 write did not route channel 2 TXI")
	}
	if sci.connections[2][TEI] != nil {
		t.Fatalf("TEI routed for shared event 0xA4; the first matching row (TXI) wins")
	}
}

func TestISURemapDisconnectsPreviousRoute(t *testing.T) {
	sci := newFakeSCIOutput()
	isu := NewInterruptSteeringUnit(sci, func(slot int) IRQSink { return &fakeSink{} }, nil)

	isu.Write(ielsrLo, 4, 0x98) // channel 0 RXI
	if sci.connections[0][RXI] == nil {
		t.Fatalf("initial route not connected")
	}

	isu.Write(ielsrLo, 4, 0x99) // channel 0 TXI, same slot
	if sci.connections[0][RXI] != nil {
		t.Fatalf("previous route (RXI) not disconnected on remap")
	}
	if sci.connections[0][TXI] == nil {
		t.Fatalf("new route (TXI) not connected after remap")
	}
}

func TestISUReadReturnsStoredValue(t *testing.T) {
	isu := NewInterruptSteeringUnit(nil, nil, nil)
	isu.Write(ielsrLo+8, 4, 0xA8)
	if got := isu.Read(ielsrLo+8, 4); got != 0xA8 {
		t.Fatalf("read back wrong value: %#x", got)
	}
}

func TestISUUnmatchedEventLeavesSlotUnrouted(t *testing.T) {
	sci := newFakeSCIOutput()
	isu := NewInterruptSteeringUnit(sci, func(slot int) IRQSink { return &fakeSink{} }, nil)
	isu.Write(ielsrLo, 4, 0x00)
	if len(sci.connections) != 0 {
		t.Fatalf("unmatched event byte produced a route")
	}
}

func TestISUBadWidthRejected(t *testing.T) {
	sci := newFakeSCIOutput()
	isu := NewInterruptSteeringUnit(sci, func(slot int) IRQSink { return &fakeSink{} }, nil)
	isu.Write(ielsrLo, 2, 0x98)
	if len(sci.connections) != 0 {
		t.Fatalf("2-byte write to a 32-bit IELSR slot should be rejected")
	}
	if got := isu.Read(ielsrLo, 2); got != 0 {
		t.Fatalf("2-byte read should return 0, got %#x", got)
	}
}

func TestISUResetDisconnectsAllRoutes(t *testing.T) {
	sci := newFakeSCIOutput()
	isu := NewInterruptSteeringUnit(sci, func(slot int) IRQSink { return &fakeSink{} }, nil)
	isu.Write(ielsrLo, 4, 0x98)
	isu.Reset()
	if sci.connections[0][RXI] != nil {
		t.Fatalf("route survived reset")
	}
	if isu.Read(ielsrLo, 4) != 0 {
		t.Fatalf("IELSR not cleared on reset")
	}
}
