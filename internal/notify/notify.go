// Package notify delivers the transient success/failure messages every
// mutation produces. The server logs them; the CLI prints them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

type Notifier interface {
	Success(title, message string)
	Failure(title, message string)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Success(string, string) {}
func (Nop) Failure(string, string) {}

// Log sends notifications to a zap logger.
type Log struct {
	Logger *zap.Logger
}

func (n Log) Success(title, message string) {
	n.Logger.Info(message, zap.String("notice", title))
}

func (n Log) Failure(title, message string) {
	n.Logger.Warn(message, zap.String("notice", title))
}

// Writer prints one line per notification, e.g. to stderr.
type Writer struct {
	mu  sync.Mutex
	Out io.Writer
}

func NewWriter(out io.Writer) *Writer { return &Writer{Out: out} }

func (w *Writer) Success(title, message string) { w.line("✓", title, message) }
func (w *Writer) Failure(title, message string) { w.line("✗", title, message) }

func (w *Writer) line(mark, title, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.Out, "%s %s: %s\n", mark, title, message)
}

// Notice is one recorded notification.
type Notice struct {
	OK      bool
	Title   string
	Message string
}

// Recorder keeps notifications in memory, for tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Success(title, message string) { r.add(Notice{true, title, message}) }
func (r *Recorder) Failure(title, message string) { r.add(Notice{false, title, message}) }

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
