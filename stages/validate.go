package stages

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// DefaultStartDateOffset is applied when the traveler gives no start date
const DefaultStartDateOffset = 7 * 24 * time.Hour

// Validate normalizes the raw preferences and geocodes the destination and,
// when present, the origin. It replaces State.Raw with the validated
// Preferences; this is the pipeline's one documented replace-in-place.
type Validate struct {
	geocoder Geocoder
	logger   *zap.SugaredLogger
	now      func() time.Time // injectable for tests
}

// NewValidate creates the validation stage
func NewValidate(geocoder Geocoder, logger *zap.SugaredLogger) *Validate {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Validate{geocoder: geocoder, logger: logger, now: time.Now}
}

func (s *Validate) Name() string { return "validate" }

// Process validates preferences and resolves locations. Re-running against
// an already-validated state is a no-op beyond re-asserting the metadata
// flags.
func (s *Validate) Process(ctx context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	next := st.Clone()

	if next.Preferences == nil {
		if next.Raw == nil {
			return nil, errors.Mark(errors.New("no preferences provided"), errors.ErrInvalidRequest)
		}
		prefs, err := trip.NewPreferences(*next.Raw)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "invalid preferences"), errors.ErrInvalidRequest)
		}
		next.Preferences = prefs
		next.Raw = nil
	}

	if next.Preferences.StartDate.IsZero() {
		next.Preferences.StartDate = s.now().Add(DefaultStartDateOffset).Truncate(24 * time.Hour)
	}

	if next.Destination == nil {
		dest, err := s.geocoder.Geocode(ctx, next.Preferences.Destination)
		if err != nil {
			return nil, errors.Wrapf(err, "could not geocode destination %q", next.Preferences.Destination)
		}
		next.Destination = dest
	}

	// Origin resolution is best-effort: a trip without a resolvable origin
	// is still plannable.
	if next.Origin == nil && next.Preferences.Origin != "" {
		origin, err := s.geocoder.Geocode(ctx, next.Preferences.Origin)
		if err != nil {
			s.logger.Warnw("Could not geocode origin, continuing without it",
				"origin", next.Preferences.Origin, "error", err)
		} else {
			next.Origin = origin
		}
	}

	meta["validated"] = true
	meta["geocoded"] = true
	return next, nil
}
