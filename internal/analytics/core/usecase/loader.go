package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/ports"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/matcher"
)

const (
	// DefaultCacheTTL bounds how stale a served snapshot may be.
	DefaultCacheTTL = 60 * time.Second

	// interactionWindowDays is the trailing window of interaction rows
	// loaded per batch.
	interactionWindowDays = 60

	batchKey = "batch"
)

// BatchLoader fetches the five row sets in one pass, builds the per-city
// indices and caches the result for the TTL. Concurrent callers during a
// cache miss share one in-flight fetch.
type BatchLoader struct {
	source ports.RowSourcePort
	cities *matcher.Matcher
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current *domain.BatchDataset

	group singleflight.Group
}

func NewBatchLoader(source ports.RowSourcePort, cities *matcher.Matcher, ttl time.Duration, log zerolog.Logger) *BatchLoader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &BatchLoader{
		source: source,
		cities: cities,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// SetClock replaces the loader's clock. Tests only.
func (l *BatchLoader) SetClock(now func() time.Time) {
	l.now = now
}

// Load returns the cached snapshot when it is younger than the TTL, and
// refetches otherwise. Misses are coalesced: every caller racing the same
// miss awaits the same fetch.
func (l *BatchLoader) Load(ctx context.Context) (*domain.BatchDataset, error) {
	if ds := l.fresh(); ds != nil {
		return ds, nil
	}

	v, err, _ := l.group.Do(batchKey, func() (any, error) {
		// A racer that entered the flight first may already have
		// refreshed the cache.
		if ds := l.fresh(); ds != nil {
			return ds, nil
		}

		ds, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.current = ds
		l.mu.Unlock()

		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.BatchDataset), nil
}

// Invalidate drops the cached snapshot; the next Load refetches.
func (l *BatchLoader) Invalidate() {
	l.mu.Lock()
	l.current = nil
	l.mu.Unlock()
}

// Refresh forces a refetch regardless of TTL.
func (l *BatchLoader) Refresh(ctx context.Context) (*domain.BatchDataset, error) {
	l.Invalidate()
	return l.Load(ctx)
}

// Current returns the cached snapshot without loading. May be nil.
func (l *BatchLoader) Current() *domain.BatchDataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *BatchLoader) fresh() *domain.BatchDataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current != nil && l.now().Sub(l.current.LoadedAt) < l.ttl {
		return l.current
	}
	return nil
}

func (l *BatchLoader) fetch(ctx context.Context) (*domain.BatchDataset, error) {
	now := l.now()
	since := now.AddDate(0, 0, -interactionWindowDays)

	ds := &domain.BatchDataset{
		SnapshotID: uuid.NewString(),
		LoadedAt:   now,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.Profiles, err = l.source.ListProfiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Friendships, err = l.source.ListFriendships(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Interactions, err = l.source.ListInteractions(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Reviews, err = l.source.ListReviews(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ds.Events, err = l.source.ListEvents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.log.Error().Err(err).Msg("batch load failed")
		return nil, err
	}

	l.index(ds)

	l.log.Info().
		Str("snapshot_id", ds.SnapshotID).
		Int("profiles", len(ds.Profiles)).
		Int("friendships", len(ds.Friendships)).
		Int("interactions", len(ds.Interactions)).
		Int("reviews", len(ds.Reviews)).
		Int("events", len(ds.Events)).
		Msg("batch loaded")

	return ds, nil
}

// index builds the per-city lookups once per load so metric functions stay
// index reads instead of full-row rescans.
func (l *BatchLoader) index(ds *domain.BatchDataset) {
	ds.UsersByCity = make(map[string]map[string]struct{})
	for _, t := range l.cities.Targets() {
		ds.UsersByCity[t.Name] = make(map[string]struct{})
	}
	ds.CityByUser = make(map[string]string)
	ds.ProfilesByUser = make(map[string]domain.UserProfile)
	ds.InteractionsByUser = make(map[string][]time.Time)
	ds.FriendCount = make(map[string]int)
	ds.EventsByCity = make(map[string][]string)
	ds.ReviewsByEvent = make(map[string]int)

	for _, p := range ds.Profiles {
		if p.CreatedAt.IsZero() {
			continue
		}
		target := l.cities.Match(p.City)
		if target == nil {
			l.log.Debug().
				Str("city", p.City).
				Strs("closest", l.cities.Suggest(p.City, 3)).
				Msg("profile city matched no target")
			continue
		}
		ds.UsersByCity[target.Name][p.UserID] = struct{}{}
		ds.CityByUser[p.UserID] = target.Name
		ds.ProfilesByUser[p.UserID] = p
	}

	for _, in := range ds.Interactions {
		if in.OccurredAt.IsZero() {
			continue
		}
		ds.InteractionsByUser[in.UserID] = append(ds.InteractionsByUser[in.UserID], in.OccurredAt)
	}

	for _, f := range ds.Friendships {
		ds.FriendCount[f.User1ID]++
		ds.FriendCount[f.User2ID]++
	}

	for _, r := range ds.Reviews {
		ds.ReviewsByEvent[r.EventID]++
	}

	for _, e := range ds.Events {
		target := l.cities.Match(e.VenueCity)
		if target == nil {
			continue
		}
		ds.EventsByCity[target.Name] = append(ds.EventsByCity[target.Name], e.ID)
	}
}
