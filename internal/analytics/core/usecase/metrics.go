package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	marketsdomain "github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/matcher"
)

const (
	mauWindowDays   = 30
	friendTarget    = 5
	reviewThreshold = 3

	// Placeholder activation latencies. Real values need timestamped
	// friend-request history that the row source does not carry; the
	// ActivationMetrics doc notes the seam.
	placeholderDaysTo3Friends = 4.0
	placeholderDaysTo5Friends = 9.0
	placeholderDaysTo7Friends = 16.0
)

var ErrUnknownCity = errors.New("unknown city")

// Engine computes all per-market analytics from a loaded snapshot. Every
// exported method is safe for concurrent use: the engine only reads the
// immutable-once-loaded dataset.
type Engine struct {
	loader *BatchLoader
	cities *matcher.Matcher
	log    zerolog.Logger
	now    func() time.Time
}

func NewEngine(loader *BatchLoader, cities *matcher.Matcher, log zerolog.Logger) *Engine {
	return &Engine{
		loader: loader,
		cities: cities,
		log:    log,
		now:    time.Now,
	}
}

// SetClock replaces the engine's clock. Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

func (e *Engine) resolve(city string) (*marketsdomain.CityTarget, error) {
	target := e.cities.Match(city)
	if target == nil {
		return nil, ErrUnknownCity
	}
	return target, nil
}

// CityMetrics composes the full metric bundle for one market. A data-store
// failure degrades to zero-valued metrics rather than an error so one bad
// load never breaks a dashboard; only an unresolvable city name errors.
func (e *Engine) CityMetrics(ctx context.Context, city string) (domain.CityMetrics, error) {
	target, err := e.resolve(city)
	if err != nil {
		return domain.CityMetrics{}, err
	}

	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Str("city", target.Name).Msg("degrading to zero-valued metrics")
		return domain.CityMetrics{
			City:      target.Name,
			TargetMAU: target.TargetMAU,
			Status:    domain.StatusBelow,
		}, nil
	}

	return e.cityMetrics(ds, target), nil
}

func (e *Engine) cityMetrics(ds *domain.BatchDataset, target *marketsdomain.CityTarget) domain.CityMetrics {
	mau := e.cityMAU(ds, target.Name, mauWindowDays)
	wow := e.wowGrowth(ds, target.Name)
	retention := e.avgWeek2Retention(ds, target.Name)

	percentComplete := 0.0
	if target.TargetMAU > 0 {
		percentComplete = float64(mau) / float64(target.TargetMAU) * 100
	}

	m := domain.CityMetrics{
		City:                target.Name,
		CurrentMAU:          mau,
		TargetMAU:           target.TargetMAU,
		PercentComplete:     percentComplete,
		WowGrowth:           wow,
		AvgWeek2Retention:   retention,
		NetworkCompleteness: e.networkCompleteness(ds, target.Name),
		EventCoverage:       e.eventCoverage(ds, target.Name),
		OrganicGrowthRate:   math.Max(wow, 0),
		TotalUsers:          len(ds.UsersByCity[target.Name]),
		ActiveUsers:         mau,
	}
	m.Status = ClassifyStatus(percentComplete, wow, retention, mau)
	return m
}

// cityMAU counts the market's users with at least one interaction in the
// trailing daysBack window.
func (e *Engine) cityMAU(ds *domain.BatchDataset, city string, daysBack int) int {
	cutoff := e.now().AddDate(0, 0, -daysBack)

	active := 0
	for userID := range ds.UsersByCity[city] {
		for _, ts := range ds.InteractionsByUser[userID] {
			if !ts.Before(cutoff) {
				active++
				break
			}
		}
	}
	return active
}

// wowGrowth compares distinct active users in [now-7d, now) against
// [now-14d, now-7d). With an empty last week the result snaps to 100 when
// this week has any activity and 0 otherwise.
func (e *Engine) wowGrowth(ds *domain.BatchDataset, city string) float64 {
	now := e.now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	thisWeek, lastWeek := 0, 0
	for userID := range ds.UsersByCity[city] {
		var inThis, inLast bool
		for _, ts := range ds.InteractionsByUser[userID] {
			switch {
			case !ts.Before(weekAgo) && ts.Before(now):
				inThis = true
			case !ts.Before(twoWeeksAgo) && ts.Before(weekAgo):
				inLast = true
			}
		}
		if inThis {
			thisWeek++
		}
		if inLast {
			lastWeek++
		}
	}

	if lastWeek == 0 {
		if thisWeek > 0 {
			return 100
		}
		return 0
	}
	return float64(thisWeek-lastWeek) / float64(lastWeek) * 100
}

// networkCompleteness is the average friend count across the market's users
// relative to the friend target, capped at 100.
func (e *Engine) networkCompleteness(ds *domain.BatchDataset, city string) float64 {
	users := ds.UsersByCity[city]
	if len(users) == 0 {
		return 0
	}

	total := 0
	for userID := range users {
		total += ds.FriendCount[userID]
	}

	avg := float64(total) / float64(len(users))
	return math.Min(avg/friendTarget*100, 100)
}

// eventCoverage is the percentage of the market's events carrying at least
// reviewThreshold non-draft reviews.
func (e *Engine) eventCoverage(ds *domain.BatchDataset, city string) float64 {
	events := ds.EventsByCity[city]
	if len(events) == 0 {
		return 0
	}

	covered := 0
	for _, eventID := range events {
		if ds.ReviewsByEvent[eventID] >= reviewThreshold {
			covered++
		}
	}
	return float64(covered) / float64(len(events)) * 100
}

// ActivationMetrics counts users at the 3/5/7 friend milestones. The
// average-days fields are fixed placeholders, not computed.
func (e *Engine) ActivationMetrics(ctx context.Context, city string) (domain.ActivationMetrics, error) {
	target, err := e.resolve(city)
	if err != nil {
		return domain.ActivationMetrics{}, err
	}

	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Str("city", target.Name).Msg("degrading to zero-valued activation metrics")
		return domain.ActivationMetrics{City: target.Name}, nil
	}

	m := domain.ActivationMetrics{
		City:              target.Name,
		AvgDaysTo3Friends: placeholderDaysTo3Friends,
		AvgDaysTo5Friends: placeholderDaysTo5Friends,
		AvgDaysTo7Friends: placeholderDaysTo7Friends,
	}
	for userID := range ds.UsersByCity[target.Name] {
		friends := ds.FriendCount[userID]
		if friends >= 3 {
			m.UsersWith3Friends++
		}
		if friends >= 5 {
			m.UsersWith5Friends++
		}
		if friends >= 7 {
			m.UsersWith7Friends++
		}
	}
	return m, nil
}
