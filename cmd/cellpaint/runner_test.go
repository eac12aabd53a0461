package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/cellpaint/paint"
	"github.com/lixenwraith/cellpaint/terminal"
)

// flakyOutput fails the writes whose sequence number is in fail
type flakyOutput struct {
	bytes.Buffer
	writes int
	fail   map[int]bool
}

var errDevice = errors.New("device gone")

func (o *flakyOutput) Write(p []byte) (int, error) {
	n := o.writes
	o.writes++
	if o.fail[n] {
		return 0, errDevice
	}
	return o.Buffer.Write(p)
}

func (o *flakyOutput) Flush() error { return nil }

func newRunner(out io.Writer, frames int) *runner {
	s := &scene{}
	s.resize(4, 3)
	return &runner{
		painter: paint.New(out, terminal.ColorMode256),
		scene:   s,
		frames:  frames,
		rate:    time.Millisecond,
	}
}

func TestRunnerPaintsFrames(t *testing.T) {
	out := &flakyOutput{}
	r := newRunner(out, 3)

	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if n := strings.Count(got, "\x1b[?25l\x1b[?12l"); n != 3 {
		t.Errorf("got %d frames, want 3", n)
	}
	if !strings.HasSuffix(got, "\x1b[3;1H\x1b[?25h\x1b[?12h") {
		t.Errorf("missing cursor tail: %q", got[max(len(got)-24, 0):])
	}
}

func TestRunnerToleratesTransientFailures(t *testing.T) {
	// Frames 0 and 1 fail on their first write; frames 2 and 3 reach the device
	out := &flakyOutput{fail: map[int]bool{0: true, 1: true}}
	r := newRunner(out, 4)

	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if n := strings.Count(got, "\x1b[?25l\x1b[?12l"); n != 2 {
		t.Errorf("got %d frames, want 2", n)
	}
	if !strings.HasPrefix(got, "\x1b[?25l\x1b[?12l\x1b[1;1H") {
		t.Errorf("unexpected frame start %q", got[:min(len(got), 24)])
	}
}

// plainDevice has no Flush, like the terminal backend, and fails its first write
type plainDevice struct {
	writes int
	got    bytes.Buffer
}

func (d *plainDevice) Write(p []byte) (int, error) {
	d.writes++
	if d.writes == 1 {
		return 0, errDevice
	}
	return d.got.Write(p)
}

func TestRunnerRecoversUnflushableDevice(t *testing.T) {
	dev := &plainDevice{}
	r := newRunner(dev, 3)

	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if dev.writes != 3 {
		t.Errorf("device writes = %d, want 3", dev.writes)
	}
	if n := strings.Count(dev.got.String(), "\x1b[?25l\x1b[?12l"); n != 2 {
		t.Errorf("got %d frames on the device, want 2", n)
	}
}

func TestRunnerStopsAfterConsecutiveFailures(t *testing.T) {
	out := &flakyOutput{fail: map[int]bool{0: true, 1: true, 2: true, 3: true}}
	r := newRunner(out, 0)

	err := r.run(context.Background())
	if !errors.Is(err, errDevice) {
		t.Fatalf("got %v, want wrapped device error", err)
	}
	if !errors.Is(err, paint.ErrOutput) {
		t.Errorf("got %v, want paint.ErrOutput", err)
	}
	if out.writes != maxFailures {
		t.Errorf("got %d writes, want %d", out.writes, maxFailures)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRunner(&flakyOutput{}, 0)
	done := make(chan error, 1)
	go func() { done <- r.run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop on cancel")
	}
}

func TestRunnerAppliesResize(t *testing.T) {
	resize := make(chan [2]int, 1)
	resize <- [2]int{6, 5}

	r := newRunner(&flakyOutput{}, 2)
	r.resize = resize
	r.rate = time.Hour

	if err := r.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.scene.cols != 6 || r.scene.rows != 5 {
		t.Errorf("got %dx%d, want 6x5", r.scene.cols, r.scene.rows)
	}
}
