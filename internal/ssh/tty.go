// Package ssh adapts a gliderlabs SSH session into a terminal that tcell
// can draw on, so each connection gets its own screen.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// fallbackSize is reported until the client sends a usable window size.
var fallbackSize = tcell.WindowSize{Width: 80, Height: 24}

// SessionTty implements tcell.Tty over an SSH session's channel.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell

	stopOnce sync.Once
	done     chan struct{}
}

var _ tcell.Tty = (*SessionTty)(nil)

// NewSessionTty wraps s. pty holds the initial window size; winCh delivers
// later resizes and may be nil.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		done:    make(chan struct{}),
	}
}

// Read reads keyboard input from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close stops resize tracking and closes the SSH channel.
func (t *SessionTty) Close() error {
	t.halt()
	return t.session.Close()
}

// Start is a no-op: the SSH channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop ends resize tracking. The channel itself belongs to the handler.
func (t *SessionTty) Stop() error {
	t.halt()
	return nil
}

// Drain is a no-op: SSH flushes writes immediately.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the client's terminal size, or 80x24 while the
// client has not reported one.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.window.Width <= 0 || t.window.Height <= 0 {
		return fallbackSize, nil
	}
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. Only the first call starts
// the goroutine draining the window-change channel; later calls replace cb.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	first := t.cb == nil
	t.cb = cb
	t.mu.Unlock()

	if !first || t.winCh == nil {
		return
	}
	go t.watchResize()
}

func (t *SessionTty) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}

func (t *SessionTty) halt() {
	t.stopOnce.Do(func() { close(t.done) })
}
