// @focus: #sys { term }
// Package terminal provides the primitives for direct ANSI terminal output.
//
// Features:
//   - 24-bit RGB color with integer averaging and xterm-256 quantization
//   - COLORTERM based color capability detection
//   - Pre-allocated, byte-exact CSI fragments appended without allocation
//   - Unix tty backend with window size queries and SIGWINCH notification
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
