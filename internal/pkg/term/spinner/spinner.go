// Package spinner wraps briandowns/spinner with the small Start/Stop
// contract semdiff's CLI uses to show progress during a (potentially
// long-running) tree comparison, adapted from the teacher's
// internal/pkg/term/spinner package (recovered from its surviving test
// file; the teacher's tips-rotation feature is dropped).
package spinner

import (
	"os"
	"time"

	spin "github.com/briandowns/spinner"
)

// internal is the subset of *spin.Spinner's API this package depends on,
// so tests can substitute a mock instead of driving a real terminal
// spinner.
type internal interface {
	Start()
	Stop()
}

// Spinner shows an animation on stderr while a traversal runs. The label
// given to Start and Stop is kept in the Spinner only: it is not passed to
// the animation, so no status text is printed beside it and no final message
// is left behind once it stops.
type Spinner struct {
	internal internal
	label    string
}

// New returns a Spinner writing to os.Stderr with the teacher's familiar
// 125ms frame delay.
func New() *Spinner {
	s := spin.New(spin.CharSets[14], 125*time.Millisecond)
	s.Writer = os.Stderr
	return &Spinner{internal: s}
}

// Start begins the animation and records label.
func (s *Spinner) Start(label string) {
	s.label = label
	s.internal.Start()
}

// Stop halts the animation. label, if non-empty, replaces the recorded
// label (e.g. "done" after "comparing...").
func (s *Spinner) Stop(label string) {
	s.internal.Stop()
	if label != "" {
		s.label = label
	}
}
