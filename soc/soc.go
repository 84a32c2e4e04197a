// Package soc assembles the RA4M1 peripheral model into a single Arduino
// Uno Rev4 machine: memory regions, the system clock, and the Region
// Decoder/ISU/Serial Channel Set wired to a host CPU and bus.
package soc

import (
	"github.com/arduino-uno-rev4/ra4m1soc/devices"
	"github.com/arduino-uno-rev4/ra4m1soc/host/arm"
	"github.com/arduino-uno-rev4/ra4m1soc/hostio"
)

// Machine identity constants: one Cortex-M4 core, 32 interrupt
// lines, no parallel port, floppy or CD-ROM.
const (
	MachineName    = "arduino-uno-rev4"
	NumCPUs        = 1
	NumIRQ         = 32
	SysClockHz     = 48_000_000
	BoardRAMSize   = devices.SRAMSize
)

// Config configures a SoC at construction time.
type Config struct {
	// CPU and Bus are the host collaborators this SoC wires into.
	CPU arm.CPU
	Bus arm.Bus

	// Boot supplies the initial flash image; if nil or it returns (nil,
	// nil), the SoC installs its own default vector table.
	Boot arm.BootLoader

	// SerialBackends maps a host backend slot (0..3, board ) to the
	// CharBackend that slot should be bound to. Unlisted slots get a
	// NullBackend.
	SerialBackends map[int]hostio.CharBackend

	// NewSerialPeripheral constructs the behavioral model behind SCI
	// channel idx. A nil func leaves every channel's peripheral nil,
	// which is valid for a configuration that only exercises the
	// register/interrupt plumbing.
	NewSerialPeripheral func(idx int) devices.SerialPeripheral

	// ExtendedRegisters requests the pin-function/analog/GPT
	// supplementary bank (SPEC_FULL.md "SUPPLEMENTED FEATURES").
	ExtendedRegisters bool

	// RAMSize is the board RAM size the host bus actually mapped; a
	// non-zero value must equal BoardRAMSize or construction fails
	// fatally. Zero skips the check.
	RAMSize uint64
}

// SoC (C7) is one assembled Arduino Uno Rev4 machine.
type SoC struct {
	Clock     arm.Clock
	Registers *devices.RegisterFile
	Ports     *devices.PortControllerBank
	Decoder   *devices.RegionDecoder
	ISU       *devices.InterruptSteeringUnit
	Flash     *devices.FlashRegisterStub
	Serial    *devices.SerialChannelSet

	cpu         arm.CPU
	bus         arm.Bus
	flashRegion arm.MemoryRegion
	sramRegion  arm.MemoryRegion
	otpRegion   arm.MemoryRegion
	fault       *devices.FaultLog
}

// New assembles a SoC per cfg, mapping memory regions onto cfg.Bus and
// returning a *arm.FatalError if board RAM doesn't match BoardRAMSize or
// if installing the default boot vector table fails.
func New(cfg Config) (*SoC, error) {
	if cfg.RAMSize != 0 && cfg.RAMSize != BoardRAMSize {
		return nil, &arm.FatalError{Reason: "board RAM size mismatch"}
	}

	fault := devices.NewFaultLog()
	clock := arm.NewFixedClock("sysclk", SysClockHz)

	registers := devices.NewRegisterFileWithLog(fault)
	if cfg.ExtendedRegisters {
		registers.Extended = devices.NewExtendedBank()
	}
	ports := devices.NewPortControllerBank(registers, fault)
	flash := devices.NewFlashRegisterStub(fault)

	serial := devices.NewSerialChannelSet(cfg.SerialBackends, cfg.NewSerialPeripheral, fault)

	var cpu arm.CPU = cfg.CPU
	isu := devices.NewInterruptSteeringUnit(serial, func(slot int) devices.IRQSink {
		return cpuIRQSink{cpu: cpu, line: arm.IRQLine(slot)}
	}, fault)

	decoder := devices.NewRegionDecoder(registers, ports, fault)

	s := &SoC{
		Clock:     clock,
		Registers: registers,
		Ports:     ports,
		Decoder:   decoder,
		ISU:       isu,
		Flash:     flash,
		Serial:    serial,
		cpu:       cfg.CPU,
		bus:       cfg.Bus,
		fault:     fault,
	}

	if cfg.Bus != nil {
		if err := s.mapMemory(cfg); err != nil {
			return nil, err
		}
		if err := s.installBoot(cfg.Boot); err != nil {
			return nil, err
		}
		if err := cfg.Bus.AddMMIOHandler(devices.PeripheralLoBase(), devices.PeripheralLoSize(), decoder); err != nil {
			return nil, &arm.FatalError{Reason: "failed to map peripheral low window: " + err.Error()}
		}
		if err := cfg.Bus.AddMMIOHandler(devices.PeripheralHiBase(), devices.PeripheralHiSize(), decoder); err != nil {
			return nil, &arm.FatalError{Reason: "failed to map peripheral high window: " + err.Error()}
		}
		// The ISU, flash register stub and serial channels are each their
		// own sysbus-style device in the original, mapped independently of
		// ra4m1_regs's two shifted windows (ra4m1_peripheral.c); they get
		// their own bus windows here for the same reason.
		if err := cfg.Bus.AddMMIOHandler(devices.ISUBase(), devices.ISUSize(), isu); err != nil {
			return nil, &arm.FatalError{Reason: "failed to map ISU window: " + err.Error()}
		}
		if err := cfg.Bus.AddMMIOHandler(devices.FlashRegsBase(), devices.FlashRegsSize(), flash); err != nil {
			return nil, &arm.FatalError{Reason: "failed to map flash register window: " + err.Error()}
		}
		if err := cfg.Bus.AddMMIOHandler(devices.SerialBase(), devices.SerialSize(), serial); err != nil {
			return nil, &arm.FatalError{Reason: "failed to map serial channel window: " + err.Error()}
		}
	}

	return s, nil
}

// Reset restores every peripheral to its post-reset state (I1) and drops
// every transient IRQ route the ISU wired up (I4). Called whenever the
// host CPU resets; flash/SRAM contents are untouched, matching real
// silicon where only the peripheral registers, not memory contents, are
// cleared by a core reset.
func (s *SoC) Reset() {
	s.Registers.Reset()
	s.ISU.Reset()
	s.Serial.Reset()
}

func (s *SoC) mapMemory(cfg Config) error {
	flashRegion := newRAMRegion("flash", devices.FlashSize)
	sramRegion := newRAMRegion("sram", devices.SRAMSize)
	otpRegion := newRAMRegion("factory-flash", devices.OnChipFlashSize)

	if err := cfg.Bus.AddMemoryRegion(devices.FlashBase, flashRegion); err != nil {
		return &arm.FatalError{Reason: "failed to map flash: " + err.Error()}
	}
	if err := cfg.Bus.AddMemoryRegion(devices.SRAMBase, sramRegion); err != nil {
		return &arm.FatalError{Reason: "failed to map sram: " + err.Error()}
	}
	if err := cfg.Bus.AddMemoryRegion(devices.OnChipFlashBase, otpRegion); err != nil {
		return &arm.FatalError{Reason: "failed to map factory flash: " + err.Error()}
	}

	s.flashRegion = flashRegion
	s.sramRegion = sramRegion
	s.otpRegion = otpRegion
	return nil
}

func (s *SoC) installBoot(boot arm.BootLoader) error {
	if boot != nil {
		img, err := boot.LoadBootImage()
		if err != nil {
			return &arm.FatalError{Reason: "boot image load failed: " + err.Error()}
		}
		if img != nil {
			if err := s.flashRegion.WriteAt(0, img); err != nil {
				return &arm.FatalError{Reason: "boot image install failed: " + err.Error()}
			}
			return nil
		}
	}
	vt := DefaultVectorTable()
	return s.flashRegion.WriteAt(0, vt)
}

type cpuIRQSink struct {
	cpu  arm.CPU
	line arm.IRQLine
}

func (s cpuIRQSink) SetIRQ(level bool) {
	if s.cpu != nil {
		s.cpu.SetIRQ(s.line, level)
	}
}

// ramRegion is a flat byte-slice-backed arm.MemoryRegion, used for the
// flash, SRAM and factory-flash regions this package owns directly.
type ramRegion struct {
	name string
	data []byte
}

func newRAMRegion(name string, size uint64) *ramRegion {
	return &ramRegion{name: name, data: make([]byte, size)}
}

func (r *ramRegion) Name() string { return r.name }
func (r *ramRegion) Size() uint64 { return uint64(len(r.data)) }

func (r *ramRegion) WriteAt(offset uint64, data []byte) error {
	if offset+uint64(len(data)) > uint64(len(r.data)) {
		return &arm.FatalError{Reason: r.name + ": write past end of region"}
	}
	copy(r.data[offset:], data)
	return nil
}

func (r *ramRegion) ReadAt(offset uint64, data []byte) error {
	if offset+uint64(len(data)) > uint64(len(r.data)) {
		return &arm.FatalError{Reason: r.name + ": read past end of region"}
	}
	copy(data, r.data[offset:])
	return nil
}
