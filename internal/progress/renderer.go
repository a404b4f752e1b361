package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Renderer draws one snapshot at a time. Render is called on every poll
// tick and once more after shutdown; Close is called exactly once, last.
type Renderer interface {
	Render(snap Snapshot) error
	Close() error
}

// barRenderer drives a progressbar.ProgressBar. In bounded mode the bar is
// advanced by the delta since the previous render; in unbounded mode the
// bar is a spinner and every render advances its animation.
type barRenderer struct {
	bar  *progressbar.ProgressBar
	out  io.Writer
	mode Mode
	last uint64
}

// NewRenderer builds the default renderer for mode, writing to w.
// A nil writer means os.Stderr.
func NewRenderer(mode Mode, w io.Writer) Renderer {
	if w == nil {
		w = os.Stderr
	}

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(Snapshot{}.Message()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(true),
	}

	if mode.IsBounded() {
		opts = append(opts,
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[cyan]#[reset]",
				SaucerHead:    "[cyan]>[reset]",
				SaucerPadding: "-",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	} else {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
		)
	}

	return &barRenderer{
		bar:  progressbar.NewOptions64(mode.Total(), opts...),
		out:  w,
		mode: mode,
	}
}

func (r *barRenderer) Render(snap Snapshot) error {
	r.bar.Describe(snap.Message())

	current := snap.Processed
	if r.mode.IsBounded() {
		// The size hint may undercount a streaming source; never push the
		// bar past its max.
		current = min(current, uint64(r.mode.Total()))
	}

	if current <= r.last {
		return r.bar.RenderBlank()
	}

	delta := current - r.last
	r.last = current
	return r.bar.Add64(int64(delta))
}

func (r *barRenderer) Close() error {
	if r.mode.IsBounded() && r.last < uint64(r.mode.Total()) {
		// Finish would jump to 100%; leave the bar where it stopped.
		_, err := fmt.Fprintln(r.out)
		return err
	}
	return r.bar.Finish()
}
