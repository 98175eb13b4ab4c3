// Package notify holds the user-facing collaborators the core reports to:
// a sink for non-fatal notifications and a yes/no confirmation prompt.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Notifier receives non-fatal, user-visible messages.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

// Console writes notifications to a terminal stream.
type Console struct {
	Out io.Writer
}

// NewConsole returns a Console writing to color.Error.
func NewConsole() *Console {
	return &Console{Out: color.Error}
}

func (c *Console) Info(msg string) {
	_, _ = color.New(color.Faint).Fprintln(c.out(), msg)
}

func (c *Console) Warn(msg string) {
	_, _ = color.New(color.FgYellow, color.Bold).Fprint(c.out(), "warning: ")
	_, _ = fmt.Fprintln(c.out(), msg)
}

func (c *Console) out() io.Writer {
	if c.Out == nil {
		return color.Error
	}
	return c.Out
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu       sync.Mutex
	Infos    []string
	Warnings []string
}

func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

func (r *Recorder) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, msg)
}

// Warned reports how many warnings were recorded.
func (r *Recorder) Warned() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Warnings)
}

type discard struct{}

func (discard) Info(string) {}
func (discard) Warn(string) {}

// Discard drops every notification.
var Discard Notifier = discard{}
