package trip

import (
	"reflect"
	"testing"
)

func TestNewPreferences(t *testing.T) {
	t.Run("valid full input", func(t *testing.T) {
		prefs, err := NewPreferences(PreferencesInput{
			Destination:  "Paris, France",
			Origin:       "London, UK",
			DurationDays: 5,
			Interests:    []string{" Art ", "FOOD"},
			Budget:       "high",
			TravelStyle:  "packed",
			StartDate:    "2026-09-15",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prefs.Destination != "Paris, France" {
			t.Errorf("unexpected destination: %q", prefs.Destination)
		}
		if !reflect.DeepEqual(prefs.Interests, []string{"art", "food"}) {
			t.Errorf("interests not normalized: %v", prefs.Interests)
		}
		if prefs.Budget != BudgetHigh || prefs.TravelStyle != StylePacked {
			t.Errorf("enum parse failed: %s/%s", prefs.Budget, prefs.TravelStyle)
		}
		if prefs.StartDate.Format(DateLayout) != "2026-09-15" {
			t.Errorf("start date not parsed: %v", prefs.StartDate)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		prefs, err := NewPreferences(PreferencesInput{
			Destination:  "Kyoto",
			DurationDays: 3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(prefs.Interests, DefaultInterests) {
			t.Errorf("expected default interests, got %v", prefs.Interests)
		}
		if prefs.Budget != BudgetMedium {
			t.Errorf("expected medium budget, got %s", prefs.Budget)
		}
		if prefs.TravelStyle != StyleModerate {
			t.Errorf("expected moderate style, got %s", prefs.TravelStyle)
		}
		if !prefs.StartDate.IsZero() {
			t.Error("start date should stay unset here; the validate stage fills it")
		}
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name  string
			input PreferencesInput
		}{
			{"empty destination", PreferencesInput{DurationDays: 3}},
			{"zero duration", PreferencesInput{Destination: "Rome", DurationDays: 0}},
			{"duration too long", PreferencesInput{Destination: "Rome", DurationDays: 31}},
			{"bad budget", PreferencesInput{Destination: "Rome", DurationDays: 3, Budget: "lavish"}},
			{"bad style", PreferencesInput{Destination: "Rome", DurationDays: 3, TravelStyle: "frantic"}},
			{"bad start date", PreferencesInput{Destination: "Rome", DurationDays: 3, StartDate: "15/09/2026"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := NewPreferences(tc.input); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		first, err := NewPreferences(PreferencesInput{
			Destination:  "Lisbon",
			DurationDays: 4,
			Interests:    []string{"  Beaches ", "Nightlife"},
			StartDate:    "2026-10-01",
		})
		if err != nil {
			t.Fatal(err)
		}

		second, err := NewPreferences(first.Input())
		if err != nil {
			t.Fatalf("re-validating normalized preferences failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical preferences, got %+v vs %+v", first, second)
		}
	})
}

func TestStyleMultiplier(t *testing.T) {
	cases := map[TravelStyle]float64{
		StyleRelaxed:  0.8,
		StyleModerate: 1.0,
		StylePacked:   1.3,
	}
	for style, want := range cases {
		if got := style.StyleMultiplier(); got != want {
			t.Errorf("%s multiplier: got %f, want %f", style, got, want)
		}
	}
}

func TestCostMultiplier(t *testing.T) {
	cases := map[Budget]float64{
		BudgetLow:    0.8,
		BudgetMedium: 1.0,
		BudgetHigh:   1.4,
	}
	for budget, want := range cases {
		if got := budget.CostMultiplier(); got != want {
			t.Errorf("%s multiplier: got %f, want %f", budget, got, want)
		}
	}
}
