package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
)

// DefaultStageTimeout bounds a single stage invocation when no timeout is
// configured
const DefaultStageTimeout = 12 * time.Second

// Runner executes stages sequentially in declaration order, feeding each
// stage's output state to the next. The first stage failure halts the run;
// there is no retry or skip-and-continue. Each stage invocation runs under a
// bounded-time guard.
//
// A Runner is immutable after construction and safe for concurrent runs;
// every run owns its own State and Metadata.
type Runner struct {
	name    string
	stages  []Stage
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewRunner creates a sequential runner for the given stages.
// A timeout of zero selects DefaultStageTimeout.
func NewRunner(name string, stages []Stage, timeout time.Duration, logger *zap.SugaredLogger) *Runner {
	if timeout <= 0 {
		timeout = DefaultStageTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{
		name:    name,
		stages:  stages,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes all stages against a fresh state built from the raw input.
// The returned Result carries the final state on success, or the first
// failure unmodified. Timeout failures satisfy errors.Is(err, errors.ErrTimeout).
func (r *Runner) Run(ctx context.Context, initial *State) *Result {
	result := &Result{
		RunID:  uuid.NewString(),
		Status: StatusPending,
		Meta:   Metadata{},
	}

	log := r.logger.With("run_id", result.RunID, "workflow", r.name)
	log.Infow("Starting pipeline run", "stages", len(r.stages))

	result.Status = StatusRunning
	current := initial

	for i, stage := range r.stages {
		log.Infow("Running stage", "step", i+1, "of", len(r.stages), "stage", stage.Name())
		started := time.Now()

		next, err := r.invoke(ctx, stage, current, result.Meta)
		if err != nil {
			log.Errorw("Pipeline failed",
				"stage", stage.Name(),
				"elapsed", time.Since(started),
				"error", err)
			result.Status = StatusFailed
			result.FailedStage = stage.Name()
			result.Err = err
			result.State = nil
			return result
		}

		log.Debugw("Stage completed", "stage", stage.Name(), "elapsed", time.Since(started))

		// Only the most recent stage's output matters; earlier states are
		// not retained.
		current = next
	}

	log.Infow("Pipeline run completed")
	result.Status = StatusCompleted
	result.State = current
	return result
}

// stageOutcome carries a stage's return values across the guard goroutine
type stageOutcome struct {
	state *State
	err   error
}

// invoke runs one stage under the bounded-time execution guard. When the
// guard elapses first the in-flight work is abandoned (best-effort: the
// stage's context is cancelled, but a collaborator call may not observe it)
// and a timeout error is returned.
//
// The stage writes annotations to a private copy of the run metadata; the
// copy is merged back only when the outcome arrives within the guard, so an
// abandoned goroutine can never touch the map callers see as Result.Meta.
func (r *Runner) invoke(parent context.Context, stage Stage, st *State, meta Metadata) (*State, error) {
	ctx, cancel := context.WithTimeout(parent, r.timeout)
	defer cancel()

	stageMeta := Metadata{}
	stageMeta.Merge(meta)

	outcome := make(chan stageOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				outcome <- stageOutcome{err: errors.Newf("stage %q panicked: %v", stage.Name(), rec)}
			}
		}()
		next, err := stage.Process(ctx, st, stageMeta)
		outcome <- stageOutcome{state: next, err: err}
	}()

	select {
	case out := <-outcome:
		meta.Merge(stageMeta)
		if out.err != nil {
			return nil, out.err
		}
		if out.state == nil {
			return nil, errors.Newf("stage %q returned no state", stage.Name())
		}
		return out.state, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.Wrapf(errors.ErrTimeout, "stage %q exceeded %s", stage.Name(), r.timeout)
		}
		// Parent context cancelled: surface the cancellation as-is
		return nil, errors.Wrapf(ctx.Err(), "stage %q cancelled", stage.Name())
	}
}
