package trip

import (
	"strings"
	"time"

	"github.com/tripgenie/tripgenie/errors"
)

// Budget is the traveler's budget tier
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// TravelStyle is the traveler's pace preference
type TravelStyle string

const (
	StyleRelaxed  TravelStyle = "relaxed"
	StyleModerate TravelStyle = "moderate"
	StylePacked   TravelStyle = "packed"
)

// Trip duration bounds, in days
const (
	MinDurationDays = 1
	MaxDurationDays = 30
)

// DefaultInterests is applied when the traveler supplies no interests
var DefaultInterests = []string{"sightseeing", "culture", "food"}

// DateLayout is the wire format for trip dates
const DateLayout = "2006-01-02"

// PreferencesInput is the raw preferences record as received from callers,
// before validation. The validate stage replaces it with a Preferences.
type PreferencesInput struct {
	Destination  string   `json:"destination"`
	Origin       string   `json:"origin,omitempty"`
	DurationDays int      `json:"duration_days"`
	Interests    []string `json:"interests,omitempty"`
	Budget       string   `json:"budget,omitempty"`
	TravelStyle  string   `json:"travel_style,omitempty"`
	StartDate    string   `json:"start_date,omitempty"` // "YYYY-MM-DD"
}

// Preferences is the validated, normalized preferences record
type Preferences struct {
	Destination  string      `json:"destination"`
	Origin       string      `json:"origin,omitempty"`
	DurationDays int         `json:"duration_days"`
	Interests    []string    `json:"interests"`
	Budget       Budget      `json:"budget"`
	TravelStyle  TravelStyle `json:"travel_style"`
	StartDate    time.Time   `json:"start_date,omitempty"` // zero = not set yet
}

// ParseBudget validates a budget string, defaulting to medium when empty
func ParseBudget(s string) (Budget, error) {
	switch Budget(strings.ToLower(strings.TrimSpace(s))) {
	case BudgetLow:
		return BudgetLow, nil
	case BudgetMedium, "":
		return BudgetMedium, nil
	case BudgetHigh:
		return BudgetHigh, nil
	default:
		return "", errors.Newf("invalid budget %q (valid: low, medium, high)", s)
	}
}

// ParseTravelStyle validates a travel style string, defaulting to moderate when empty
func ParseTravelStyle(s string) (TravelStyle, error) {
	switch TravelStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleRelaxed:
		return StyleRelaxed, nil
	case StyleModerate, "":
		return StyleModerate, nil
	case StylePacked:
		return StylePacked, nil
	default:
		return "", errors.Newf("invalid travel style %q (valid: relaxed, moderate, packed)", s)
	}
}

// NewPreferences validates and normalizes a raw preferences record.
// Normalization is idempotent: feeding a validated record's fields back
// through produces an identical result.
func NewPreferences(in PreferencesInput) (*Preferences, error) {
	destination := strings.TrimSpace(in.Destination)
	if destination == "" {
		return nil, errors.New("destination is required")
	}

	if in.DurationDays < MinDurationDays || in.DurationDays > MaxDurationDays {
		return nil, errors.Newf("duration_days must be between %d and %d, got %d",
			MinDurationDays, MaxDurationDays, in.DurationDays)
	}

	budget, err := ParseBudget(in.Budget)
	if err != nil {
		return nil, err
	}

	style, err := ParseTravelStyle(in.TravelStyle)
	if err != nil {
		return nil, err
	}

	interests := NormalizeInterests(in.Interests)

	var startDate time.Time
	if in.StartDate != "" {
		startDate, err = time.Parse(DateLayout, in.StartDate)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid start_date %q (want YYYY-MM-DD)", in.StartDate)
		}
	}

	return &Preferences{
		Destination:  destination,
		Origin:       strings.TrimSpace(in.Origin),
		DurationDays: in.DurationDays,
		Interests:    interests,
		Budget:       budget,
		TravelStyle:  style,
		StartDate:    startDate,
	}, nil
}

// NormalizeInterests lowercases and trims interests, applying the default
// set when none remain
func NormalizeInterests(interests []string) []string {
	normalized := make([]string, 0, len(interests))
	for _, interest := range interests {
		cleaned := strings.ToLower(strings.TrimSpace(interest))
		if cleaned != "" {
			normalized = append(normalized, cleaned)
		}
	}
	if len(normalized) == 0 {
		return append([]string(nil), DefaultInterests...)
	}
	return normalized
}

// Input converts validated preferences back into the raw record shape.
// Used by the validate stage to re-check a bag that already carries
// normalized preferences.
func (p *Preferences) Input() PreferencesInput {
	in := PreferencesInput{
		Destination:  p.Destination,
		Origin:       p.Origin,
		DurationDays: p.DurationDays,
		Interests:    append([]string(nil), p.Interests...),
		Budget:       string(p.Budget),
		TravelStyle:  string(p.TravelStyle),
	}
	if !p.StartDate.IsZero() {
		in.StartDate = p.StartDate.Format(DateLayout)
	}
	return in
}

// StyleMultiplier returns the distance-cap multiplier for a travel style
func (s TravelStyle) StyleMultiplier() float64 {
	switch s {
	case StyleRelaxed:
		return 0.8
	case StylePacked:
		return 1.3
	default:
		return 1.0
	}
}

// CostMultiplier returns the activity-cost multiplier for a budget tier
func (b Budget) CostMultiplier() float64 {
	switch b {
	case BudgetLow:
		return 0.8
	case BudgetHigh:
		return 1.4
	default:
		return 1.0
	}
}
