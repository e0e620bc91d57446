package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/ai"
	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// Ranking tuning
const (
	// MaxRankedPlaces limits how many candidates are sent to the reasoning
	// collaborator
	MaxRankedPlaces = 30

	DefaultRelevanceWeight  = 0.6
	DefaultPopularityWeight = 0.4
)

// scoreArrayPattern extracts a bare JSON number array from a chatty LLM
// response
var scoreArrayPattern = regexp.MustCompile(`\[[\d,\s]+\]`)

// RankWeights combines the two score axes into the composite used for
// ordering
type RankWeights struct {
	Relevance  float64
	Popularity float64
}

func (w RankWeights) withDefaults() RankWeights {
	if w.Relevance == 0 && w.Popularity == 0 {
		return RankWeights{Relevance: DefaultRelevanceWeight, Popularity: DefaultPopularityWeight}
	}
	return w
}

// Rank scores candidates via the reasoning collaborator and sorts them by a
// weighted composite of relevance and popularity. The stage never fails: a
// collaborator fault or an unparseable response falls back to deterministic
// rating-derived scores.
type Rank struct {
	client  ai.Client
	weights RankWeights
	logger  *zap.SugaredLogger
}

// NewRank creates the place ranking stage
func NewRank(client ai.Client, weights RankWeights, logger *zap.SugaredLogger) *Rank {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Rank{client: client, weights: weights.withDefaults(), logger: logger}
}

func (s *Rank) Name() string { return "rank" }

const rankSystemPrompt = `You are a travel expert. Score tourist places based on:
1. Popularity and ratings
2. Relevance to user interests
3. Uniqueness and must-see factor

Return ONLY a JSON array of scores (0-100) in the same order as the input places.`

func (s *Rank) Process(ctx context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	if st.Preferences == nil {
		return nil, errors.New("ranking requires validated preferences")
	}

	next := st.Clone()
	next.Places = append([]trip.Place(nil), st.Places...)

	candidates := next.Places
	if len(candidates) > MaxRankedPlaces {
		candidates = candidates[:MaxRankedPlaces]
	}

	scores, err := s.requestScores(ctx, st, candidates)
	if err != nil {
		s.logger.Warnw("Ranking collaborator failed, falling back to rating-derived scores", "error", err)
		for i := range next.Places {
			popularity := ratingScore(next.Places[i].Rating)
			next.Places[i].PopularityScore = popularity
			next.Places[i].RelevanceScore = popularity
		}
	} else {
		for i := range candidates {
			if i >= len(scores) {
				break
			}
			candidates[i].RelevanceScore = scores[i]
			candidates[i].PopularityScore = ratingScore(candidates[i].Rating)
		}
	}

	sort.SliceStable(next.Places, func(i, j int) bool {
		return s.composite(next.Places[i]) > s.composite(next.Places[j])
	})

	meta["ranked"] = true
	return next, nil
}

func (s *Rank) composite(p trip.Place) float64 {
	return p.RelevanceScore*s.weights.Relevance + p.PopularityScore*s.weights.Popularity
}

// requestScores asks the reasoning collaborator for one 0-100 score per
// candidate, in input order
func (s *Rank) requestScores(ctx context.Context, st *pipeline.State, candidates []trip.Place) ([]float64, error) {
	if s.client == nil {
		return nil, errors.New("no reasoning collaborator configured")
	}

	var listing strings.Builder
	for i, p := range candidates {
		rating := "N/A"
		if p.Rating != nil {
			rating = fmt.Sprintf("%.1f", *p.Rating)
		}
		fmt.Fprintf(&listing, "%d. %s - %s (Rating: %s)\n", i+1, p.Name, p.Category, rating)
	}

	userPrompt := fmt.Sprintf(`User interests: %s
Travel style: %s
Budget: %s

Places to rank:
%s
Return a JSON array of scores (0-100) for each place, in order.`,
		strings.Join(st.Preferences.Interests, ", "),
		st.Preferences.TravelStyle,
		st.Preferences.Budget,
		listing.String())

	resp, err := s.client.Chat(ctx, ai.ChatRequest{
		SystemPrompt: rankSystemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		return nil, err
	}

	match := scoreArrayPattern.FindString(resp.Content)
	if match == "" {
		return nil, errors.New("no score array in response")
	}
	var scores []float64
	if err := json.Unmarshal([]byte(match), &scores); err != nil {
		return nil, errors.Wrap(err, "malformed score array")
	}
	return scores, nil
}

// ratingScore maps a 0-5 star rating onto the 0-100 score scale
func ratingScore(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return *rating * 20
}
