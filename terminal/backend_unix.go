//go:build unix

package terminal

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when the output is not a tty
var ErrNotTerminal = errors.New("output is not a terminal")

type unixBackend struct {
	out   *os.File
	outFd int

	finalized bool

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

// NewBackend creates a backend writing to out (os.Stdout when nil)
func NewBackend(out *os.File) Backend {
	if out == nil {
		out = os.Stdout
	}
	return &unixBackend{
		out:   out,
		outFd: int(out.Fd()),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return ErrNotTerminal
	}
	return nil
}

func (b *unixBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.finalized {
		return
	}
	b.finalized = true

	// Best-effort restore, errors ignored on teardown
	b.out.Write(csiSGR0)
	b.out.Write(CursorShow)
	b.out.Write(CursorBlinkOn)
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *unixBackend) SetResizeHandler(handler func(width, height int)) {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
	}
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	stopCh, doneCh := b.resizeStopCh, b.resizeDoneCh
	go func() {
		defer close(doneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				handler(w, h)
			}
		}
	}()
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}
