package usecase

import (
	"context"
	"fmt"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	marketsdomain "github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
)

const (
	organicGrowthFloor    = 0.2
	eventCoverageFloor    = 30.0
	stalledPercentCeiling = 50.0
	decliningCohortSpan   = 3
)

// RedFlags scans one market for warning conditions. A data-store failure
// degrades to no flags.
func (e *Engine) RedFlags(ctx context.Context, city string) ([]domain.RedFlag, error) {
	target, err := e.resolve(city)
	if err != nil {
		return nil, err
	}

	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Str("city", target.Name).Msg("degrading to empty red-flag list")
		return []domain.RedFlag{}, nil
	}

	return e.redFlags(ds, target), nil
}

// AllRedFlags scans every non-reserved market.
func (e *Engine) AllRedFlags(ctx context.Context) ([]domain.RedFlag, error) {
	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("degrading to empty red-flag list")
		return []domain.RedFlag{}, nil
	}

	flags := []domain.RedFlag{}
	targets := e.cities.Targets()
	for i := range targets {
		if targets[i].Phase == ReservedPhase {
			continue
		}
		flags = append(flags, e.redFlags(ds, &targets[i])...)
	}
	return flags, nil
}

func (e *Engine) redFlags(ds *domain.BatchDataset, target *marketsdomain.CityTarget) []domain.RedFlag {
	m := e.cityMetrics(ds, target)
	flags := []domain.RedFlag{}

	// Strictly declining week-2 retention across the three most recent
	// eligible cohorts: newest worse than middle, middle worse than oldest.
	cohorts := e.retentionCurve(ds, target.Name, decliningCohortSpan)
	if len(cohorts) == decliningCohortSpan &&
		cohorts[0].Week2Retention < cohorts[1].Week2Retention &&
		cohorts[1].Week2Retention < cohorts[2].Week2Retention {
		flags = append(flags, domain.RedFlag{
			City:      target.Name,
			Severity:  domain.SeverityHigh,
			Message:   fmt.Sprintf("Week-2 retention declining across the last %d cohorts", decliningCohortSpan),
			Metric:    "week2_retention",
			Value:     cohorts[0].Week2Retention,
			Threshold: cohorts[1].Week2Retention,
		})
	}

	if m.OrganicGrowthRate < organicGrowthFloor {
		flags = append(flags, domain.RedFlag{
			City:      target.Name,
			Severity:  domain.SeverityMedium,
			Message:   fmt.Sprintf("Organic growth rate %.2f below %.1f", m.OrganicGrowthRate, organicGrowthFloor),
			Metric:    "organic_growth_rate",
			Value:     m.OrganicGrowthRate,
			Threshold: organicGrowthFloor,
		})
	}

	if m.EventCoverage < eventCoverageFloor {
		flags = append(flags, domain.RedFlag{
			City:      target.Name,
			Severity:  domain.SeverityMedium,
			Message:   fmt.Sprintf("Only %.1f%% of events have %d or more reviews", m.EventCoverage, reviewThreshold),
			Metric:    "event_coverage",
			Value:     m.EventCoverage,
			Threshold: eventCoverageFloor,
		})
	}

	if m.WowGrowth <= 0 && m.PercentComplete < stalledPercentCeiling {
		flags = append(flags, domain.RedFlag{
			City:      target.Name,
			Severity:  domain.SeverityHigh,
			Message:   fmt.Sprintf("Growth stalled at %.1f%% of target MAU", m.PercentComplete),
			Metric:    "wow_growth",
			Value:     m.WowGrowth,
			Threshold: 0,
		})
	}

	return flags
}
