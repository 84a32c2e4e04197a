// Package hostio provides host character backends for the serial channel
// set: the host-side end of a UART's RX/TX wire. A small interface lets a
// serial channel be backed interchangeably by the real console, a pipe
// (tests), or nothing at all.
package hostio

// CharBackend is a host-side source/sink of serial bytes. RecvByte must
// never block: it reports whether a byte was available. SendByte may
// block briefly on the underlying writer (a pipe or terminal) but must
// not be used from a context that cannot tolerate that.
type CharBackend interface {
	// RecvByte returns the next received byte and true, or (0, false) if
	// none is pending.
	RecvByte() (byte, bool)
	// SendByte transmits one byte to the backend.
	SendByte(b byte) error
	// Close releases any host resources (terminal mode, file handles).
	Close() error
}

// NullBackend discards everything written to it and never has input
// pending. It is the default backend for a channel index the host didn't
// wire to anything.
type NullBackend struct{}

func (NullBackend) RecvByte() (byte, bool) { return 0, false }
func (NullBackend) SendByte(byte) error    { return nil }
func (NullBackend) Close() error           { return nil }
