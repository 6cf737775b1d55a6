package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	marketsdomain "github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
)

const (
	// ReservedPhase is the future/international placeholder phase,
	// excluded from snapshots and cross-city scans.
	ReservedPhase = 4

	readinessPercentComplete = 60.0
	readinessWeek2Retention  = 60.0

	snapshotConcurrency = 8
)

// PhaseProgress evaluates one expansion phase. The phase is ready to unlock
// the next only when every city clears all readiness thresholds; each unmet
// condition contributes one blocking-issue string. City failures are
// isolated: a broken city blocks the phase but never aborts the evaluation.
func (e *Engine) PhaseProgress(ctx context.Context, phase int) (domain.PhaseStatus, error) {
	status := domain.PhaseStatus{
		Phase:          phase,
		Cities:         []domain.CityMetrics{},
		BlockingIssues: []string{},
	}

	var targets []marketsdomain.CityTarget
	for _, t := range e.cities.Targets() {
		if t.Phase == phase {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		status.BlockingIssues = append(status.BlockingIssues,
			fmt.Sprintf("No target cities configured for phase %d", phase))
		return status, nil
	}

	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Int("phase", phase).Msg("phase progress degraded: batch unavailable")
		status.BlockingIssues = append(status.BlockingIssues, "Batch data unavailable")
		return status, nil
	}

	ready := true
	for i := range targets {
		m, ok := e.safeCityMetrics(ds, &targets[i])
		if !ok {
			status.BlockingIssues = append(status.BlockingIssues,
				fmt.Sprintf("%s: Metrics unavailable", targets[i].Name))
			ready = false
			continue
		}
		status.Cities = append(status.Cities, m)

		if m.PercentComplete < readinessPercentComplete {
			status.BlockingIssues = append(status.BlockingIssues,
				fmt.Sprintf("%s: Below 60%% of target MAU (%.1f%%)", m.City, m.PercentComplete))
			ready = false
		}
		if m.AvgWeek2Retention < readinessWeek2Retention {
			status.BlockingIssues = append(status.BlockingIssues,
				fmt.Sprintf("%s: Week-2 retention under 60%% (%.1f%%)", m.City, m.AvgWeek2Retention))
			ready = false
		}
		if m.Status == domain.StatusBelow {
			status.BlockingIssues = append(status.BlockingIssues,
				fmt.Sprintf("%s: Still below critical mass", m.City))
			ready = false
		}
	}

	status.ReadyToLaunchNext = ready
	return status, nil
}

// AllCitiesSnapshot computes metrics for every target outside the reserved
// phase. Cities are computed concurrently over the shared snapshot; a failed
// city is logged and dropped rather than aborting the whole snapshot.
func (e *Engine) AllCitiesSnapshot(ctx context.Context) ([]domain.CityMetrics, error) {
	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("degrading to empty snapshot")
		return []domain.CityMetrics{}, nil
	}

	var targets []marketsdomain.CityTarget
	for _, t := range e.cities.Targets() {
		if t.Phase == ReservedPhase {
			continue
		}
		targets = append(targets, t)
	}

	results := make([]*domain.CityMetrics, len(targets))
	var g errgroup.Group
	g.SetLimit(snapshotConcurrency)
	for i := range targets {
		i := i
		g.Go(func() error {
			if m, ok := e.safeCityMetrics(ds, &targets[i]); ok {
				results[i] = &m
			}
			return nil
		})
	}
	_ = g.Wait()

	snapshot := make([]domain.CityMetrics, 0, len(targets))
	for _, m := range results {
		if m != nil {
			snapshot = append(snapshot, *m)
		}
	}
	return snapshot, nil
}

// safeCityMetrics isolates per-city failures so a single market can never
// take down a snapshot or phase evaluation.
func (e *Engine) safeCityMetrics(ds *domain.BatchDataset, target *marketsdomain.CityTarget) (m domain.CityMetrics, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Str("city", target.Name).Interface("panic", r).Msg("city metrics computation failed")
			m, ok = domain.CityMetrics{}, false
		}
	}()
	return e.cityMetrics(ds, target), true
}
