// Package pipeline provides the sequential execution engine for itinerary
// generation: a typed state bag threaded stage to stage, a Stage contract,
// and a Runner with per-stage timeout enforcement and first-failure-wins
// error propagation.
package pipeline

import (
	"context"

	"github.com/tripgenie/tripgenie/trip"
)

// State is the data bag threaded through the pipeline. Each stage receives
// the previous stage's output and returns a state that carries everything it
// received plus the fields it owns; a stage only replaces a field it is
// documented to replace (the validate stage swaps Raw for Preferences).
//
// One State belongs to exactly one run. It is created when the run starts
// and discarded when the result is extracted.
type State struct {
	// Raw is the caller-supplied preferences record. Consumed by the
	// validate stage, which replaces it with the validated Preferences.
	Raw *trip.PreferencesInput

	Preferences *trip.Preferences
	Destination *trip.Location
	Origin      *trip.Location // nil when origin was absent or could not be resolved
	Places      []trip.Place
	Forecast    []trip.Weather
	Itinerary   *trip.Itinerary
}

// NewState creates the initial state for a run from raw preferences
func NewState(raw trip.PreferencesInput) *State {
	return &State{Raw: &raw}
}

// Clone returns a shallow copy of the state. Stages copy before extending so
// a timed-out stage's late writes can never reach the run's result.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Metadata is the side-channel annotation map carried alongside the state.
// Entries are informational (counts, flags) and never feed back into
// downstream business logic. Stages only add keys.
type Metadata map[string]any

// Merge copies all entries of other into m
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// Stage is one self-contained transformation step in the pipeline.
//
// Process must be safe to invoke once per run and must not accumulate state
// across invocations: one stage instance is shared by all concurrent runs.
// A well-behaved stage converts anticipated faults (missing upstream field,
// malformed value, collaborator failure) into an error return or a degraded
// result; the Runner's recovery boundary is reserved for unexpected panics.
type Stage interface {
	Name() string
	Process(ctx context.Context, st *State, meta Metadata) (*State, error)
}

// Status describes where a run is in its lifecycle
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one pipeline run.
//
// When Err is non-nil the run failed and State carries no guarantees; it
// must not be consumed further.
type Result struct {
	RunID       string
	Status      Status
	State       *State
	Meta        Metadata
	FailedStage string // name of the stage that failed, empty on success
	Err         error
}

// Success reports whether the run completed all stages
func (r *Result) Success() bool {
	return r.Err == nil && r.Status == StatusCompleted
}
