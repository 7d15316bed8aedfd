// Package progress wraps schollz/progressbar/v3 with enabled/disabled
// handling, extended to expose a ProgressFunc-compatible callback
// driven by a (stage, current, total) reporting shape.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Bar wraps progressbar with enabled/disabled handling.
// All methods are no-ops when disabled.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New creates a progress bar.
// If enabled=false, returns a Bar where all methods are no-ops.
// Use total=-1 for spinner mode, or total>0 for determinate progress.
func New(enabled bool, total int64) *Bar {
	if !enabled {
		return &Bar{}
	}

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
	}

	if total < 0 {
		// Spinner mode
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetElapsedTime(false),
		)
		return &Bar{bar: progressbar.NewOptions(-1, opts...)}
	}

	// Progress bar mode
	opts = append(opts, progressbar.OptionSetWidth(40))
	return &Bar{bar: progressbar.NewOptions64(total, opts...)}
}

// Set sets the progress bar to a specific value.
func (b *Bar) Set(n uint64) {
	if b.bar != nil {
		_ = b.bar.Set64(int64(n))
	}
}

// Describe updates the progress bar description.
func (b *Bar) Describe(s fmt.Stringer) {
	if b.bar != nil {
		b.bar.Describe(s.String())
	}
}

// Finish completes the progress bar and prints a final message.
func (b *Bar) Finish(s fmt.Stringer) {
	if b.bar != nil {
		_ = b.bar.Finish()
		fmt.Fprintln(os.Stderr, "✔ "+s.String())
	}
}

// stageProgress adapts a (stage, current, total) triple to fmt.Stringer
// so Bar.Describe can render it.
type stageProgress struct {
	stage   string
	current int
	total   *int
}

func (p stageProgress) String() string {
	if p.total != nil {
		return fmt.Sprintf("%s: %d/%d", p.stage, p.current, *p.total)
	}
	return fmt.Sprintf("%s: %d", p.stage, p.current)
}

// Callback returns a closure matching types.ProgressFunc's signature,
// driving this bar from the scanner/pipeline's stage reports. Passing
// it straight into Scanner/Pipeline constructors keeps those packages
// free of any direct dependency on progressbar.
func (b *Bar) Callback() func(stage string, current int, total *int) {
	return func(stage string, current int, total *int) {
		p := stageProgress{stage: stage, current: current, total: total}
		if total != nil {
			b.Set(uint64(current))
		}
		b.Describe(p)
	}
}
