package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/cellpaint/paint"
)

// runner drives the painter one frame per tick
type runner struct {
	painter *paint.Painter
	scene   *scene
	frames  int // 0 runs until ctx is done
	rate    time.Duration
	resize  <-chan [2]int
}

// run paints frames until the frame count is reached or ctx is cancelled.
// A failed frame invalidates painter state; maxFailures in a row is fatal.
func (r *runner) run(ctx context.Context) error {
	ticker := time.NewTicker(r.rate)
	defer ticker.Stop()

	failures := 0
	for n := 0; r.frames == 0 || n < r.frames; n++ {
		if err := r.frame(n); err != nil {
			failures++
			log.Printf("frame %d: %v", n, err)
			r.painter.Invalidate()
			if failures >= maxFailures {
				return fmt.Errorf("%d consecutive frames failed: %w", failures, err)
			}
		} else {
			failures = 0
		}

		if r.frames != 0 && n+1 >= r.frames {
			break
		}

		select {
		case <-ctx.Done():
			return nil
		case size := <-r.resize:
			r.scene.resize(size[0], size[1])
			log.Printf("resize %dx%d", size[0], size[1])
		case <-ticker.C:
		}
	}
	return nil
}

// frame paints frame n and logs its size and duration
func (r *runner) frame(n int) error {
	start := time.Now()
	cells, cursor := r.scene.build(n)

	r.painter.Begin()
	for _, c := range cells {
		r.painter.Paint(c)
	}
	bytes := r.painter.Buffered()
	if err := r.painter.End(cursor); err != nil {
		return err
	}

	log.Printf("frame %d: %d cells, %d bytes, %v", n, len(cells), bytes, time.Since(start))
	return nil
}
