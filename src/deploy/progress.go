package deploy

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Spinner shown while waiting for the chain, no-op when disabled
type spinner struct {
	bar *progressbar.ProgressBar
}

func newSpinner(w io.Writer, enabled bool, description string) *spinner {
	if !enabled || w == nil {
		return &spinner{}
	}
	return &spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (self *spinner) Tick() {
	if self.bar == nil {
		return
	}
	_ = self.bar.Add(1)
}

func (self *spinner) Finish() {
	if self.bar == nil {
		return
	}
	_ = self.bar.Finish()
}
