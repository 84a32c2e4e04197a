package hostio

import (
	"os"
	"sync"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

// ConsoleBackend backs a serial channel with the host's own terminal: RX
// bytes come from keypresses (via a non-blocking keyboard event stream),
// TX bytes go straight to stdout.
type ConsoleBackend struct {
	mu      sync.Mutex
	state   *term.State
	events  <-chan keyboard.KeyEvent
	pending []byte
	out     *os.File
	opened  bool
}

// NewConsoleBackend puts stdin into raw mode and opens a non-blocking
// keyboard event stream. It is an error to create more than one
// ConsoleBackend at a time, since raw mode and the keyboard event stream
// are both process-global host resources.
func NewConsoleBackend() (*ConsoleBackend, error) {
	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	if err := keyboard.Open(); err != nil {
		term.Restore(int(os.Stdin.Fd()), state)
		return nil, err
	}
	events, err := keyboard.GetKeys(64)
	if err != nil {
		keyboard.Close()
		term.Restore(int(os.Stdin.Fd()), state)
		return nil, err
	}
	return &ConsoleBackend{
		state:  state,
		events: events,
		out:    os.Stdout,
		opened: true,
	}, nil
}

// RecvByte takes at most one keyboard event waiting on the channel without
// blocking: a select with a default case, never a bare channel receive.
func (c *ConsoleBackend) RecvByte() (byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) > 0 {
		b := c.pending[0]
		c.pending = c.pending[1:]
		return b, true
	}

	select {
	case ev, ok := <-c.events:
		if !ok || ev.Err != nil {
			return 0, false
		}
		if ev.Rune != 0 {
			return byte(ev.Rune), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (c *ConsoleBackend) SendByte(b byte) error {
	_, err := c.out.Write([]byte{b})
	return err
}

func (c *ConsoleBackend) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.opened {
		return nil
	}
	c.opened = false
	keyboard.Close()
	return term.Restore(int(os.Stdin.Fd()), c.state)
}
