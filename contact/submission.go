package contact

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultSubmitDelay = 1500 * time.Millisecond
	DefaultResetDelay  = 3 * time.Second
)

var (
	ErrBusy   = errors.New("a message is already being sent")
	ErrClosed = errors.New("submission closed")
)

type State int

const (
	Idle State = iota
	Submitting
	Submitted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "submitting":
		*s = Submitting
	case "submitted":
		*s = Submitted
	default:
		return fmt.Errorf("unknown contact state %q", text)
	}
	return nil
}

type Snapshot struct {
	State State `json:"state"`
	Form  Form  `json:"form"`
}

// Submission fakes sending the contact form. A valid Submit moves it from
// Idle to Submitting; after SubmitDelay it reports Submitted, and after a
// further ResetDelay it returns to Idle with the form cleared. There are no
// failure transitions.
type Submission struct {
	submitDelay time.Duration
	resetDelay  time.Duration

	mu     sync.Mutex
	state  State
	form   Form
	timer  *time.Timer
	closed bool
}

func NewSubmission(submitDelay, resetDelay time.Duration) *Submission {
	if submitDelay <= 0 {
		submitDelay = DefaultSubmitDelay
	}
	if resetDelay <= 0 {
		resetDelay = DefaultResetDelay
	}
	return &Submission{
		submitDelay: submitDelay,
		resetDelay:  resetDelay,
	}
}

// Submit starts sending f. It fails with ErrBusy unless the form is idle and
// with a FieldErrors value if a required field is empty; in both cases the
// state is unchanged.
func (s *Submission) Submit(f Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.state != Idle {
		return ErrBusy
	}
	if err := f.Validate(); err != nil {
		return err
	}

	s.state = Submitting
	s.form = f
	s.timer = time.AfterFunc(s.submitDelay, s.markSubmitted)
	slog.Debug("contact form submitting", "subject", f.Subject)
	return nil
}

func (s *Submission) markSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != Submitting {
		return
	}
	s.state = Submitted
	s.timer = time.AfterFunc(s.resetDelay, s.reset)
	slog.Debug("contact form submitted", "subject", s.form.Subject)
}

func (s *Submission) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != Submitted {
		return
	}
	s.state = Idle
	s.form = Form{}
	s.timer = nil
	slog.Debug("contact form reset")
}

func (s *Submission) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Form: s.form}
}

// Close stops any pending transition. The submission can't be used again.
func (s *Submission) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
