package texrun

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// State is a compilation job's lifecycle position.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateTimedOut
)

var stateNames = [...]string{
	StateCreated:   "created",
	StateRunning:   "running",
	StateSucceeded: "succeeded",
	StateFailed:    "failed",
	StateTimedOut:  "timed_out",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateTimedOut
}

// Job is one compilation of a source file inside a private directory.
// A job runs at most once: Created → Running → Succeeded|Failed|TimedOut.
type Job struct {
	ID     string
	Dir    string
	Source string

	mu    sync.Mutex
	state State
}

// NewJob returns a job in StateCreated.
func NewJob(id, dir, source string) *Job {
	return &Job{ID: id, Dir: dir, Source: source}
}

// State returns the current state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// ArtifactPath is the PDF the compiler derives from Source.
func (j *Job) ArtifactPath() string {
	base := strings.TrimSuffix(filepath.Base(j.Source), filepath.Ext(j.Source))
	return filepath.Join(j.Dir, base+".pdf")
}

func (j *Job) start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state != StateCreated {
		return fmt.Errorf("%w: job %s is %s", ErrNotRunnable, j.ID, j.state)
	}
	j.state = StateRunning
	return nil
}

func (j *Job) finish(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = s
}
