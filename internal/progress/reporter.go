// Package progress shows wait feedback while a model call is outstanding.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while the CLI waits on a model call.
type Reporter interface {
	Start(message string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// TerminalReporter displays a spinner in the terminal.
type TerminalReporter struct {
	Out io.Writer

	bar  *progressbar.ProgressBar
	stop chan struct{}
	wg   sync.WaitGroup
}

func (r *TerminalReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(message),
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)
	r.stop = make(chan struct{})
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				_ = r.bar.Add(1)
			}
		}
	}()
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	close(r.stop)
	r.wg.Wait()
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter prints plain lines suitable for CI logs.
type CIReporter struct {
	Out     io.Writer
	started time.Time
}

func (r *CIReporter) Start(message string) {
	r.started = time.Now()
	fmt.Fprintf(r.Out, "%s...\n", message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.Out, "done in %s\n", time.Since(r.started).Round(time.Millisecond))
}
