// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar implements progress bar functionality that must be
// manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// Increment and Display may be called from multiple goroutines.
type ProgressBar struct {
	mu sync.Mutex

	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide, reaches
// 100% after max Increment() calls, and prints to out
func New(out io.Writer, width, max int) (*ProgressBar, error) {
	if width <= 0 {
		return nil, fmt.Errorf("new: width must be positive, got %v", width)
	}
	if max <= 0 {
		return nil, fmt.Errorf("new: max progress must be positive, got %v",
			max)
	}

	return &ProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}, nil
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the fraction of iterations completed
func (p *ProgressBar) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentProgress / p.maxProgress
}

// String returns the current progress bar without the elapsed time
func (p *ProgressBar) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.render()
}

// Display prints the progress bar, overwriting the last line printed
func (p *ProgressBar) Display() {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\n\033[1A\033[K%v [elapsed: %v]", p.render(),
		time.Since(p.startTime).Truncate(time.Second))
}

// Close moves output to the line after the progress bar
func (p *ProgressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}

func (p *ProgressBar) render() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.currentProgress / p.maxProgress * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| %.2f%%",
		p.currentProgress/p.maxProgress*100))

	return p.bar.String()
}
