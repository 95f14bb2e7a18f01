// Package progress provides progress reporting for downloads.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter is the interface for reporting transfer progress.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	Finish()
}

// NewReporter returns a progress bar reporter on interactive terminals and a
// no-op reporter otherwise, so piped or scripted runs produce clean output.
func NewReporter() Reporter {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return &barProgress{}
	}
	return &noOpProgress{}
}

// barProgress renders a terminal progress bar.
type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p *barProgress) Start(total int64, description string) {
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (p *barProgress) Update(current int64) {
	if p.bar != nil {
		_ = p.bar.Set64(current)
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// NewNoOpReporter returns a reporter that discards all updates, for silent
// operations and tests.
func NewNoOpReporter() Reporter {
	return &noOpProgress{}
}

// noOpProgress discards all progress updates.
type noOpProgress struct{}

func (p *noOpProgress) Start(total int64, description string) {}
func (p *noOpProgress) Update(current int64)                  {}
func (p *noOpProgress) Finish()                               {}

// Reader wraps an io.Reader to report progress as it is consumed.
type Reader struct {
	reader   io.Reader
	reporter Reporter
	current  int64
}

// NewReader creates a progress-reporting reader.
func NewReader(reader io.Reader, reporter Reporter) *Reader {
	return &Reader{reader: reader, reporter: reporter}
}

// Read implements io.Reader with progress reporting.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.current += int64(n)
	r.reporter.Update(r.current)
	return n, err
}
