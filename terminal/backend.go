package terminal

import "io"

// Backend abstracts the platform-specific terminal output device.
// The painter only needs io.Writer; the rest serves the hosting program.
type Backend interface {
	// Lifecycle
	// Init verifies the output is a terminal. Safe to skip when writing to a pipe.
	Init() error
	// Fini restores cursor visibility and attributes. Safe to call multiple times.
	Fini()

	// Capabilities
	Size() (width, height int)

	// I/O
	io.Writer

	// Callbacks
	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}
