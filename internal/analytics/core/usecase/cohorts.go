package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
)

const (
	// minCohortAgeWeeks keeps cohorts out of the curve until their week-8
	// retention window has fully elapsed.
	minCohortAgeWeeks = 8

	// retentionAvgCohorts is how many recent cohorts feed the average
	// week-2 retention inside CityMetrics.
	retentionAvgCohorts = 3

	defaultWeeksBack = 12
)

// CityRetentionCurve groups the market's users into Sunday-aligned signup
// weeks and reports week-2/4/8 retention per cohort, newest first, at most
// weeksBack cohorts. Cohorts younger than eight weeks are skipped.
func (e *Engine) CityRetentionCurve(ctx context.Context, city string, weeksBack int) ([]domain.RetentionCohort, error) {
	target, err := e.resolve(city)
	if err != nil {
		return nil, err
	}

	ds, err := e.loader.Load(ctx)
	if err != nil {
		e.log.Warn().Err(err).Str("city", target.Name).Msg("degrading to empty retention curve")
		return []domain.RetentionCohort{}, nil
	}

	return e.retentionCurve(ds, target.Name, weeksBack), nil
}

func (e *Engine) retentionCurve(ds *domain.BatchDataset, city string, weeksBack int) []domain.RetentionCohort {
	if weeksBack <= 0 {
		weeksBack = defaultWeeksBack
	}

	members := make(map[time.Time][]string)
	for userID := range ds.UsersByCity[city] {
		profile, ok := ds.ProfilesByUser[userID]
		if !ok || profile.CreatedAt.IsZero() {
			continue
		}
		week := cohortWeekStart(profile.CreatedAt)
		members[week] = append(members[week], userID)
	}

	now := e.now()
	cohorts := make([]domain.RetentionCohort, 0, len(members))
	for week, userIDs := range members {
		weeksSince := int(now.Sub(week) / (7 * 24 * time.Hour))
		if weeksSince < minCohortAgeWeeks {
			continue
		}
		cohorts = append(cohorts, domain.RetentionCohort{
			WeekStart:      week,
			CohortSize:     len(userIDs),
			Week2Retention: windowRetention(ds, userIDs, week, 2),
			Week4Retention: windowRetention(ds, userIDs, week, 4),
			Week8Retention: windowRetention(ds, userIDs, week, 8),
		})
	}

	sort.Slice(cohorts, func(i, j int) bool {
		return cohorts[i].WeekStart.After(cohorts[j].WeekStart)
	})
	if len(cohorts) > weeksBack {
		cohorts = cohorts[:weeksBack]
	}
	return cohorts
}

// avgWeek2Retention averages week-2 retention over the most recent eligible
// cohorts.
func (e *Engine) avgWeek2Retention(ds *domain.BatchDataset, city string) float64 {
	cohorts := e.retentionCurve(ds, city, retentionAvgCohorts)
	if len(cohorts) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range cohorts {
		sum += c.Week2Retention
	}
	return sum / float64(len(cohorts))
}

// windowRetention is the share of cohort members with at least one
// interaction in the 7-day window starting weekN weeks after the cohort week.
func windowRetention(ds *domain.BatchDataset, userIDs []string, week time.Time, weekN int) float64 {
	if len(userIDs) == 0 {
		return 0
	}

	lo := week.AddDate(0, 0, weekN*7)
	hi := lo.AddDate(0, 0, 7)

	retained := 0
	for _, userID := range userIDs {
		for _, ts := range ds.InteractionsByUser[userID] {
			if !ts.Before(lo) && ts.Before(hi) {
				retained++
				break
			}
		}
	}
	return float64(retained) / float64(len(userIDs)) * 100
}

// cohortWeekStart is the Sunday-aligned UTC start of the week containing t.
func cohortWeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
