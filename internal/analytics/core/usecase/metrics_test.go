package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
)

// ------------------------------------------------------------
// WOW GROWTH
// ------------------------------------------------------------

func TestWowGrowth_BothWeeksEmpty(t *testing.T) {
	src := &fakeRowSource{
		profiles: []domain.UserProfile{
			{UserID: "u1", City: "Austin", CreatedAt: daysAgo(70)},
		},
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.wowGrowth(ds, "Austin"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestWowGrowth_EmptyLastWeekSnapsTo100(t *testing.T) {
	src := &fakeRowSource{}
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("u%d", i)
		src.profiles = append(src.profiles, domain.UserProfile{UserID: id, City: "Austin", CreatedAt: daysAgo(70)})
		src.interactions = append(src.interactions, domain.Interaction{UserID: id, OccurredAt: daysAgo(2)})
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.wowGrowth(ds, "Austin"); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestWowGrowth_TenPercent(t *testing.T) {
	// 40 users active both weeks plus 4 active this week only:
	// thisWeek=44, lastWeek=40 -> 10.0.
	src := &fakeRowSource{}
	for i := 0; i < 44; i++ {
		id := fmt.Sprintf("u%d", i)
		src.profiles = append(src.profiles, domain.UserProfile{UserID: id, City: "Austin", CreatedAt: daysAgo(70)})
		src.interactions = append(src.interactions, domain.Interaction{UserID: id, OccurredAt: daysAgo(2)})
		if i < 40 {
			src.interactions = append(src.interactions, domain.Interaction{UserID: id, OccurredAt: daysAgo(10)})
		}
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.wowGrowth(ds, "Austin"); !almostEqual(got, 10.0) {
		t.Fatalf("expected 10.0, got %v", got)
	}
}

// ------------------------------------------------------------
// MAU WINDOW
// ------------------------------------------------------------

func TestCityMAU_TrailingWindow(t *testing.T) {
	src := &fakeRowSource{
		profiles: []domain.UserProfile{
			{UserID: "in", City: "Austin", CreatedAt: daysAgo(70)},
			{UserID: "out", City: "Austin", CreatedAt: daysAgo(70)},
			{UserID: "idle", City: "Austin", CreatedAt: daysAgo(70)},
		},
		interactions: []domain.Interaction{
			{UserID: "in", OccurredAt: daysAgo(29)},
			{UserID: "out", OccurredAt: daysAgo(31)},
		},
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.cityMAU(ds, "Austin", 30); got != 1 {
		t.Fatalf("expected MAU 1, got %d", got)
	}
}

// ------------------------------------------------------------
// NETWORK COMPLETENESS CAP
// ------------------------------------------------------------

func TestNetworkCompleteness_CappedAt100(t *testing.T) {
	// Two users averaging 12 friends each: completeness stays 100, not 240.
	src := &fakeRowSource{
		profiles: []domain.UserProfile{
			{UserID: "a", City: "Austin", CreatedAt: daysAgo(70)},
			{UserID: "b", City: "Austin", CreatedAt: daysAgo(70)},
		},
	}
	for i := 0; i < 12; i++ {
		src.friendships = append(src.friendships,
			domain.Friendship{User1ID: "a", User2ID: fmt.Sprintf("xa%d", i), CreatedAt: daysAgo(10)},
			domain.Friendship{User1ID: fmt.Sprintf("xb%d", i), User2ID: "b", CreatedAt: daysAgo(10)},
		)
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.networkCompleteness(ds, "Austin"); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestNetworkCompleteness_CountsBothSides(t *testing.T) {
	// One user with one friendship on each side: 2 friends / target 5 = 40%.
	src := &fakeRowSource{
		profiles: []domain.UserProfile{
			{UserID: "a", City: "Austin", CreatedAt: daysAgo(70)},
		},
		friendships: []domain.Friendship{
			{User1ID: "a", User2ID: "x", CreatedAt: daysAgo(10)},
			{User1ID: "y", User2ID: "a", CreatedAt: daysAgo(10)},
		},
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.networkCompleteness(ds, "Austin"); !almostEqual(got, 40) {
		t.Fatalf("expected 40, got %v", got)
	}
}

// ------------------------------------------------------------
// EVENT COVERAGE
// ------------------------------------------------------------

func TestEventCoverage(t *testing.T) {
	src := &fakeRowSource{
		events: []domain.Event{
			{ID: "e1", VenueCity: "Austin"},
			{ID: "e2", VenueCity: "Austin, TX"}, // alias-matched to the same target
		},
		reviews: []domain.Review{
			{EventID: "e1", UserID: "u1"},
			{EventID: "e1", UserID: "u2"},
			{EventID: "e1", UserID: "u3"},
			{EventID: "e2", UserID: "u1"},
		},
	}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.eventCoverage(ds, "Austin"); !almostEqual(got, 50) {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestEventCoverage_NoEvents(t *testing.T) {
	src := &fakeRowSource{}
	engine, loader := newTestEngine(src, testTargets())
	ds, _ := loader.Load(context.Background())

	if got := engine.eventCoverage(ds, "Austin"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

// ------------------------------------------------------------
// COMPOSED CITY METRICS
// ------------------------------------------------------------

func TestCityMetrics_PercentCompleteUncapped(t *testing.T) {
	// Target MAU is 10; 12 active users push percentComplete to 120.
	src := &fakeRowSource{}
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("u%d", i)
		src.profiles = append(src.profiles, domain.UserProfile{UserID: id, City: "Austin", CreatedAt: daysAgo(70)})
		src.interactions = append(src.interactions, domain.Interaction{UserID: id, OccurredAt: daysAgo(2)})
	}
	engine, _ := newTestEngine(src, testTargets())

	m, err := engine.CityMetrics(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(m.PercentComplete, 120) {
		t.Fatalf("expected percentComplete 120, got %v", m.PercentComplete)
	}
	if m.CurrentMAU != 12 || m.ActiveUsers != 12 || m.TotalUsers != 12 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.OrganicGrowthRate != m.WowGrowth {
		t.Fatalf("positive wow growth should pass through as organic rate")
	}
}

func TestCityMetrics_OrganicGrowthFloorsAtZero(t *testing.T) {
	// Activity only last week: wow growth -100, organic growth clamps to 0.
	src := &fakeRowSource{
		profiles: []domain.UserProfile{
			{UserID: "u1", City: "Austin", CreatedAt: daysAgo(70)},
		},
		interactions: []domain.Interaction{
			{UserID: "u1", OccurredAt: daysAgo(10)},
		},
	}
	engine, _ := newTestEngine(src, testTargets())

	m, err := engine.CityMetrics(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(m.WowGrowth, -100) {
		t.Fatalf("expected wow growth -100, got %v", m.WowGrowth)
	}
	if m.OrganicGrowthRate != 0 {
		t.Fatalf("expected organic growth 0, got %v", m.OrganicGrowthRate)
	}
}

func TestCityMetrics_UnknownCity(t *testing.T) {
	engine, _ := newTestEngine(&fakeRowSource{}, testTargets())

	_, err := engine.CityMetrics(context.Background(), "Reykjavik")
	if !errors.Is(err, ErrUnknownCity) {
		t.Fatalf("expected ErrUnknownCity, got %v", err)
	}
}

func TestCityMetrics_DegradesOnLoadFailure(t *testing.T) {
	src := &fakeRowSource{err: errors.New("store unavailable")}
	engine, _ := newTestEngine(src, testTargets())

	m, err := engine.CityMetrics(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("load failure must degrade, not error: %v", err)
	}
	if m.City != "Austin" || m.CurrentMAU != 0 || m.Status != domain.StatusBelow {
		t.Fatalf("expected zero-valued metrics, got %+v", m)
	}
}

// ------------------------------------------------------------
// ACTIVATION
// ------------------------------------------------------------

func TestActivationMetrics(t *testing.T) {
	src := &fakeRowSource{
		profiles: []domain.UserProfile{
			{UserID: "a", City: "Austin", CreatedAt: daysAgo(70)},
			{UserID: "b", City: "Austin", CreatedAt: daysAgo(70)},
			{UserID: "c", City: "Austin", CreatedAt: daysAgo(70)},
		},
	}
	addFriends := func(id string, n int) {
		for i := 0; i < n; i++ {
			src.friendships = append(src.friendships, domain.Friendship{
				User1ID: id, User2ID: fmt.Sprintf("%s-f%d", id, i), CreatedAt: daysAgo(10),
			})
		}
	}
	addFriends("a", 7)
	addFriends("b", 4)
	addFriends("c", 1)

	engine, _ := newTestEngine(src, testTargets())

	m, err := engine.ActivationMetrics(context.Background(), "Austin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.UsersWith3Friends != 2 || m.UsersWith5Friends != 1 || m.UsersWith7Friends != 1 {
		t.Fatalf("unexpected milestone counts: %+v", m)
	}
	if m.AvgDaysTo3Friends == 0 || m.AvgDaysTo5Friends == 0 || m.AvgDaysTo7Friends == 0 {
		t.Fatalf("placeholder latencies must be populated: %+v", m)
	}
}
