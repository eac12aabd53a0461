//go:build !unix

package terminal

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by Init when the output is not a tty
var ErrNotTerminal = errors.New("output is not a terminal")

// fileBackend is a portable backend without resize notification
type fileBackend struct {
	out       *os.File
	finalized bool
}

// NewBackend creates a backend writing to out (os.Stdout when nil)
func NewBackend(out *os.File) Backend {
	if out == nil {
		out = os.Stdout
	}
	return &fileBackend{out: out}
}

func (b *fileBackend) Init() error {
	if !term.IsTerminal(int(b.out.Fd())) {
		return ErrNotTerminal
	}
	return nil
}

func (b *fileBackend) Fini() {
	if b.finalized {
		return
	}
	b.finalized = true
	b.out.Write(csiSGR0)
	b.out.Write(CursorShow)
	b.out.Write(CursorBlinkOn)
}

func (b *fileBackend) Size() (int, int) {
	w, h, err := term.GetSize(int(b.out.Fd()))
	if err != nil || w == 0 || h == 0 {
		return 80, 24
	}
	return w, h
}

func (b *fileBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *fileBackend) SetResizeHandler(func(width, height int)) {}
