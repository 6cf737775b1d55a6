package usecase

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	marketsdomain "github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/matcher"
)

// testNow is a fixed Sunday so cohort-week arithmetic is exact in tests.
var testNow = time.Date(2025, time.November, 30, 12, 0, 0, 0, time.UTC)

// fakeRowSource implements ports.RowSourcePort over in-memory rows.
type fakeRowSource struct {
	profiles     []domain.UserProfile
	friendships  []domain.Friendship
	interactions []domain.Interaction
	reviews      []domain.Review
	events       []domain.Event

	err        error
	fetchDelay time.Duration
	fetches    atomic.Int64
}

func (f *fakeRowSource) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	f.fetches.Add(1)
	if f.fetchDelay > 0 {
		time.Sleep(f.fetchDelay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles, nil
}

func (f *fakeRowSource) ListFriendships(ctx context.Context) ([]domain.Friendship, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.friendships, nil
}

func (f *fakeRowSource) ListInteractions(ctx context.Context, since time.Time) ([]domain.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.interactions, nil
}

func (f *fakeRowSource) ListReviews(ctx context.Context) ([]domain.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews, nil
}

func (f *fakeRowSource) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func testTargets() []marketsdomain.CityTarget {
	return []marketsdomain.CityTarget{
		{Name: "Austin", Aliases: []string{"Austin, TX"}, TargetMAU: 10, Phase: 1},
		{Name: "Denver", Aliases: []string{"Denver, CO"}, TargetMAU: 10, Phase: 1},
		{Name: "Portland", Aliases: []string{"Portland, OR"}, TargetMAU: 20, Phase: 2},
		{Name: "International", TargetMAU: 0, Phase: ReservedPhase},
	}
}

// newTestEngine wires a loader and engine against the fake source with a
// fixed clock.
func newTestEngine(src *fakeRowSource, targets []marketsdomain.CityTarget) (*Engine, *BatchLoader) {
	cities := matcher.New(targets)
	loader := NewBatchLoader(src, cities, time.Minute, zerolog.Nop())
	loader.SetClock(func() time.Time { return testNow })
	engine := NewEngine(loader, cities, zerolog.Nop())
	engine.SetClock(func() time.Time { return testNow })
	return engine, loader
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
