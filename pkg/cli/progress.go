package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// ProgressReporter reports progress for long-running operations.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
	Error(err error)
}

const barWidth = 30

// Bar redraws one line with a bar, the counts, the rate and, while running,
// the estimated time left.
type Bar struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	total int64
	done  int64
	start time.Time
	now   func() time.Time
}

// NewBar creates a bar labelled label that writes to w (os.Stderr if nil).
func NewBar(w io.Writer, label string) *Bar {
	if w == nil {
		w = os.Stderr
	}
	return &Bar{w: w, label: label, now: time.Now}
}

// NewProgressReporter returns a document-counting Bar.
func NewProgressReporter(w io.Writer) ProgressReporter {
	return NewBar(w, "Parsing")
}

// Start resets the bar for total items.
func (b *Bar) Start(total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total, b.done, b.start = total, 0, b.now()
	b.draw()
}

// Update moves the bar to current. It never moves backwards, since workers
// finish out of order.
func (b *Bar) Update(current int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = max(b.done, min(current, b.total))
	b.draw()
}

// Finish fills the bar and ends the line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done = b.total
	b.draw()
	fmt.Fprintln(b.w)
}

// Error ends the line with err.
func (b *Bar) Error(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.w, "\n%s failed: %v\n", b.label, err)
}

func (b *Bar) draw() {
	if b.total <= 0 {
		return
	}
	filled := int(b.done * barWidth / b.total)
	line := fmt.Sprintf("\r%s [%s%s] %3d%% %s/%s",
		b.label,
		strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled),
		b.done*100/b.total,
		humanize.Comma(b.done), humanize.Comma(b.total))

	if elapsed := b.now().Sub(b.start); elapsed > 0 && b.done > 0 {
		rate := float64(b.done) / elapsed.Seconds()
		line += fmt.Sprintf(" %.0f/s", rate)
		if b.done < b.total {
			left := time.Duration(float64(b.total-b.done) / rate * float64(time.Second))
			line += " eta " + left.Round(time.Second).String()
		}
	}
	fmt.Fprint(b.w, line)
}

// LoaderProgress adapts p to the loader's progress callback. The first call
// of a run starts the bar and the last one finishes it.
func LoaderProgress(p ProgressReporter) func(done, total int) {
	var mu sync.Mutex
	running := false
	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if !running {
			p.Start(int64(total))
			running = true
		}
		p.Update(int64(done))
		if done >= total {
			p.Finish()
			running = false
		}
	}
}
