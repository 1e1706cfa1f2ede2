package uploader

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rdmup/rdmup/internal/utils"
)

// Sink receives per-file upload progress. Advance is only called after
// a part has been confirmed by the storage endpoint, so the byte count
// grows monotonically and never runs ahead of the server.
type Sink interface {
	Start(key string, total int64)
	Advance(key string, n int64)
	Done(key string)
	Fail(key string, err error)
}

type nopSink struct{}

func (nopSink) Start(string, int64)   {}
func (nopSink) Advance(string, int64) {}
func (nopSink) Done(string)           {}
func (nopSink) Fail(string, error)    {}

// NopSink discards all progress events.
func NopSink() Sink {
	return nopSink{}
}

const (
	barWidth     = 32
	renderPeriod = 120 * time.Millisecond
	doneMarker   = " ✓"
	failedMarker = " ✗"
)

// ConsoleSink redraws a single-line progress bar for the file
// currently uploading. The engine is strictly sequential, so one
// active line is enough; each finished file leaves a completed line
// behind.
type ConsoleSink struct {
	w io.Writer

	mu         sync.Mutex
	key        string
	total      int64
	current    int64
	lastRender time.Time
	lastWidth  int
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Start(key string, total int64) {
	s.mu.Lock()
	s.key = key
	s.total = total
	s.current = 0
	s.lastRender = time.Time{}
	s.mu.Unlock()
	s.render(true, "")
}

func (s *ConsoleSink) Advance(key string, n int64) {
	s.mu.Lock()
	if key == s.key {
		s.current += n
	}
	s.mu.Unlock()
	s.render(false, "")
}

func (s *ConsoleSink) Done(key string) {
	s.render(true, doneMarker+"\n")
}

func (s *ConsoleSink) Fail(key string, err error) {
	suffix := failedMarker
	if err != nil {
		suffix = fmt.Sprintf("%s %v", failedMarker, err)
	}
	s.render(true, suffix+"\n")
}

func (s *ConsoleSink) render(force bool, suffix string) {
	s.mu.Lock()
	now := time.Now()
	if !force && now.Sub(s.lastRender) < renderPeriod {
		s.mu.Unlock()
		return
	}
	line := s.line()
	prevWidth := s.lastWidth
	s.lastWidth = len(line) + len(suffix)
	if strings.HasSuffix(suffix, "\n") {
		s.lastWidth = 0
	}
	s.lastRender = now
	s.mu.Unlock()

	padding := ""
	if prevWidth > len(line)+len(suffix) {
		padding = strings.Repeat(" ", prevWidth-len(line)-len(suffix))
	}
	fmt.Fprintf(s.w, "\r%s%s%s", line, suffix, padding)
}

func (s *ConsoleSink) line() string {
	var b strings.Builder
	b.WriteString(s.key)
	b.WriteByte(' ')

	if s.total > 0 {
		ratio := float64(s.current) / float64(s.total)
		if ratio > 1 {
			ratio = 1
		}
		filled := int(ratio*barWidth + 0.5)
		if filled > barWidth {
			filled = barWidth
		}
		b.WriteByte('[')
		b.WriteString(strings.Repeat("=", filled))
		b.WriteString(strings.Repeat(" ", barWidth-filled))
		b.WriteString("] ")
		fmt.Fprintf(&b, "%3d%% ", int(ratio*100+0.5))
		b.WriteString(utils.FormatSize(s.current))
		b.WriteByte('/')
		b.WriteString(utils.FormatSize(s.total))
	} else {
		b.WriteString(utils.FormatSize(s.current))
		b.WriteString(" transferred")
	}
	return b.String()
}
