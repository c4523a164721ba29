package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progress is a coarse activity indicator bracketing a blocking operation.
// Subprocess output is not parsed for completion percentages; the bar spins
// while the stage runs and finishes when it returns.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(out io.Writer, description string) *progress {
	if file, ok := out.(*os.File); ok {
		if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
			return &progress{}
		}
	} else {
		return &progress{}
	}
	return &progress{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSpinnerType(14),
		),
	}
}

func (p *progress) Done() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	_ = p.bar.Clear()
}
