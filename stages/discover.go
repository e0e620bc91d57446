package stages

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// Default discovery limits
const (
	DefaultMaxSearchQueries   = 5
	DefaultMaxResultsPerQuery = 10
	DefaultMaxTotalPlaces     = 60
)

// DiscoverLimits caps how much of the places collaborator a single run may
// consume
type DiscoverLimits struct {
	MaxQueries  int
	MaxPerQuery int
	MaxTotal    int
}

func (l DiscoverLimits) withDefaults() DiscoverLimits {
	if l.MaxQueries <= 0 {
		l.MaxQueries = DefaultMaxSearchQueries
	}
	if l.MaxPerQuery <= 0 {
		l.MaxPerQuery = DefaultMaxResultsPerQuery
	}
	if l.MaxTotal <= 0 {
		l.MaxTotal = DefaultMaxTotalPlaces
	}
	return l
}

// Discover finds candidate places near the destination: one query per
// traveler interest plus two generic queries, de-duplicated by place ID.
type Discover struct {
	searcher PlaceSearcher
	limits   DiscoverLimits
	logger   *zap.SugaredLogger
}

// NewDiscover creates the place discovery stage
func NewDiscover(searcher PlaceSearcher, limits DiscoverLimits, logger *zap.SugaredLogger) *Discover {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Discover{searcher: searcher, limits: limits.withDefaults(), logger: logger}
}

func (s *Discover) Name() string { return "discover" }

func (s *Discover) Process(ctx context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	if st.Preferences == nil || st.Destination == nil {
		return nil, errors.New("discovery requires validated preferences and a geocoded destination")
	}

	queries := buildQueries(st.Preferences.Interests, st.Destination.Name)
	if len(queries) > s.limits.MaxQueries {
		queries = queries[:s.limits.MaxQueries]
	}

	places := make([]trip.Place, 0, s.limits.MaxTotal)
	seen := make(map[string]struct{})

	for _, query := range queries {
		if len(places) >= s.limits.MaxTotal {
			break
		}

		hits, err := s.searcher.SearchPlaces(ctx, query, *st.Destination)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			// One failing query does not sink discovery; later queries may
			// still produce candidates.
			s.logger.Warnw("Place search failed, skipping query", "query", query, "error", err)
			continue
		}

		if len(hits) > s.limits.MaxPerQuery {
			hits = hits[:s.limits.MaxPerQuery]
		}
		for _, hit := range hits {
			if len(places) >= s.limits.MaxTotal {
				break
			}
			if _, dup := seen[hit.PlaceID]; dup {
				continue
			}
			seen[hit.PlaceID] = struct{}{}
			places = append(places, placeFromHit(hit))
		}
	}

	s.logger.Infow("Discovered candidate places", "count", len(places), "queries", len(queries))

	next := st.Clone()
	next.Places = places
	meta["places_count"] = len(places)
	return next, nil
}

// buildQueries derives the search queries from interests plus two generic
// catch-alls
func buildQueries(interests []string, destination string) []string {
	queries := make([]string, 0, len(interests)+2)
	for _, interest := range interests {
		queries = append(queries, fmt.Sprintf("%s in %s", interest, destination))
	}
	queries = append(queries,
		fmt.Sprintf("tourist attractions in %s", destination),
		fmt.Sprintf("things to do in %s", destination),
	)
	return queries
}

// placeFromHit maps a collaborator hit into the domain Place record
func placeFromHit(hit trip.PlaceHit) trip.Place {
	types := hit.Types
	if len(types) > 3 {
		types = types[:3]
	}
	return trip.Place{
		Name: hit.Name,
		Location: trip.Location{
			Name:      hit.Name,
			Address:   hit.Address,
			Latitude:  hit.Latitude,
			Longitude: hit.Longitude,
			PlaceID:   hit.PlaceID,
		},
		Category:    strings.Join(types, ", "),
		Rating:      hit.Rating,
		Description: hit.Vicinity,
	}
}
