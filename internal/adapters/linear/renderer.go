// Package linear provides a synchronous, line-buffered renderer for step output.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/cmakekit/internal/ui/output"
	"go.trai.ch/cmakekit/internal/ui/style"
)

// Renderer implements ports.Renderer.
// Step output goes to stdout, one prefixed line at a time; progress goes to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	plan  []string
	next  int              // first plan position not yet started
	steps map[string]*step // keyed by span ID
}

type step struct {
	name    string
	ordinal int // 1-based plan position, 0 when the step was not planned
	started time.Time
	pending []byte // output after the last newline
}

func (s *step) prefix() string {
	return "[" + s.name + "]"
}

// NewRenderer creates a new Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, output.ColorProfileANSI),
		steps:  make(map[string]*step),
	}
}

// Start does nothing; the renderer writes synchronously.
func (r *Renderer) Start(context.Context) error { return nil }

// Wait does nothing; the renderer writes synchronously.
func (r *Renderer) Wait() error { return nil }

// Stop writes out any partial lines still held.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.steps {
		r.flushLocked(s)
	}
	return nil
}

// OnPlanEmit prints the pipeline and remembers its steps for numbering.
func (r *Renderer) OnPlanEmit(pipeline string, steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plan = append([]string(nil), steps...)
	r.next = 0

	name := r.output.String(pipeline).Bold().String()
	_, _ = fmt.Fprintf(r.stderr, "Running %s: %s\n", name, strings.Join(steps, " "+style.Arrow+" "))
}

// OnTaskStart announces a step, numbered by its position in the plan.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &step{name: name, ordinal: r.claimLocked(name), started: startTime}
	r.steps[spanID] = s

	progress := "Starting..."
	if s.ordinal > 0 {
		progress = fmt.Sprintf("Starting (%d/%d)...", s.ordinal, len(r.plan))
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", r.output.String(s.prefix()).Faint().String(), progress)
}

// claimLocked returns the plan position of the next step called name, or 0.
func (r *Renderer) claimLocked(name string) int {
	for i := r.next; i < len(r.plan); i++ {
		if r.plan[i] == name {
			r.next = i + 1
			return i + 1
		}
	}
	return 0
}

// OnTaskLog prints every complete line of data and holds the rest.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.steps[spanID]
	if !ok {
		return
	}

	s.pending = append(s.pending, data...)
	for {
		line, rest, found := bytes.Cut(s.pending, []byte{'\n'})
		if !found {
			break
		}
		r.writeLineLocked(s, line)
		s.pending = rest
	}
}

// OnTaskComplete prints the held output and the outcome of the step.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.steps[spanID]
	if !ok {
		return
	}
	delete(r.steps, spanID)
	r.flushLocked(s)

	elapsed := endTime.Sub(s.started).Round(time.Millisecond)
	if err != nil {
		mark := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", s.prefix(), mark, elapsed, err)
		return
	}
	mark := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", s.prefix(), mark, elapsed)
}

func (r *Renderer) flushLocked(s *step) {
	if len(s.pending) > 0 {
		r.writeLineLocked(s, s.pending)
		s.pending = nil
	}
}

func (r *Renderer) writeLineLocked(s *step, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", s.prefix(), line)
}
