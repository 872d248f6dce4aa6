// Package progress reports build progress while pages are rendered.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives one Rendered call per output file written by a build.
type Reporter interface {
	Begin(pages, projects int)
	Rendered(done int, out string)
	End(err error)
}

// NewReporter returns a LineReporter when running under CI and a
// TerminalReporter otherwise, both writing to w.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: w}
	}
	return &TerminalReporter{Out: w}
}

// TerminalReporter draws a bar that is cleared once the build ends.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Begin(pages, projects int) {
	r.bar = progressbar.NewOptions(pages+projects,
		progressbar.OptionSetDescription("Rendering pages"),
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Rendered(done int, out string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(out)
	_ = r.bar.Set(done)
}

func (r *TerminalReporter) End(err error) {
	if r.bar == nil {
		return
	}
	if err != nil {
		_ = r.bar.Exit()
		return
	}
	_ = r.bar.Finish()
}

// LineReporter prints one line per rendered file, for CI logs.
type LineReporter struct {
	Out   io.Writer
	total int
	done  int
}

func (r *LineReporter) Begin(pages, projects int) {
	r.total = pages + projects
	fmt.Fprintf(r.Out, "Rendering %d pages and %d project pages\n", pages, projects)
}

func (r *LineReporter) Rendered(done int, out string) {
	r.done = done
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", done, r.total, out)
}

func (r *LineReporter) End(err error) {
	if err != nil {
		fmt.Fprintf(r.Out, "Build stopped after %d of %d files: %v\n", r.done, r.total, err)
		return
	}
	fmt.Fprintf(r.Out, "Rendered %d files\n", r.done)
}

// Nop discards progress.
type Nop struct{}

func (Nop) Begin(int, int)       {}
func (Nop) Rendered(int, string) {}
func (Nop) End(error)            {}
