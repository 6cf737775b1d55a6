package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	marketsdomain "github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
)

// phaseOneSource builds a phase-1 scenario: Austin holds a 70% week-2 cohort
// but only 5 of 10 target MAU; Denver clears every readiness threshold.
func phaseOneSource() *fakeRowSource {
	src := &fakeRowSource{}
	week := weeksAgo(8)

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("aus%d", i)
		src.profiles = append(src.profiles, domain.UserProfile{UserID: id, City: "Austin", CreatedAt: week.Add(time.Hour)})
		if i < 7 {
			src.interactions = append(src.interactions, domain.Interaction{UserID: id, OccurredAt: week.AddDate(0, 0, 15)})
		}
		if i < 5 {
			src.interactions = append(src.interactions, domain.Interaction{UserID: id, OccurredAt: daysAgo(2)})
		}
	}

	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("den%d", i)
		src.profiles = append(src.profiles, domain.UserProfile{UserID: id, City: "Denver", CreatedAt: week.Add(time.Hour)})
		src.interactions = append(src.interactions,
			domain.Interaction{UserID: id, OccurredAt: week.AddDate(0, 0, 15)},
			domain.Interaction{UserID: id, OccurredAt: daysAgo(2)},
		)
	}
	return src
}

// ------------------------------------------------------------
// PHASE READINESS
// ------------------------------------------------------------

func TestPhaseProgress_BlockedByOneCity(t *testing.T) {
	engine, _ := newTestEngine(phaseOneSource(), testTargets())

	status, err := engine.PhaseProgress(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.Phase != 1 {
		t.Fatalf("expected phase 1, got %d", status.Phase)
	}
	if len(status.Cities) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(status.Cities))
	}
	if status.ReadyToLaunchNext {
		t.Fatalf("phase with a lagging city must not be ready")
	}
	if len(status.BlockingIssues) != 1 {
		t.Fatalf("expected exactly 1 blocking issue, got %v", status.BlockingIssues)
	}
	want := "Austin: Below 60% of target MAU (50.0%)"
	if status.BlockingIssues[0] != want {
		t.Fatalf("expected %q, got %q", want, status.BlockingIssues[0])
	}
}

func TestPhaseProgress_AllThresholdsMet(t *testing.T) {
	targets := []marketsdomain.CityTarget{
		{Name: "Denver", TargetMAU: 10, Phase: 1},
	}
	engine, _ := newTestEngine(phaseOneSource(), targets)

	status, err := engine.PhaseProgress(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.ReadyToLaunchNext {
		t.Fatalf("expected phase ready, issues: %v", status.BlockingIssues)
	}
	if len(status.BlockingIssues) != 0 {
		t.Fatalf("expected no blocking issues, got %v", status.BlockingIssues)
	}
}

func TestPhaseProgress_NoTargetsConfigured(t *testing.T) {
	engine, _ := newTestEngine(&fakeRowSource{}, testTargets())

	status, err := engine.PhaseProgress(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.ReadyToLaunchNext {
		t.Fatalf("an unconfigured phase must not be ready")
	}
	want := "No target cities configured for phase 3"
	if len(status.BlockingIssues) != 1 || status.BlockingIssues[0] != want {
		t.Fatalf("expected %q, got %v", want, status.BlockingIssues)
	}
}

func TestPhaseProgress_DegradesOnLoadFailure(t *testing.T) {
	src := &fakeRowSource{err: errors.New("store unavailable")}
	engine, _ := newTestEngine(src, testTargets())

	status, err := engine.PhaseProgress(context.Background(), 1)
	if err != nil {
		t.Fatalf("load failure must degrade, not error: %v", err)
	}
	if status.ReadyToLaunchNext {
		t.Fatalf("phase without data must not be ready")
	}
	if len(status.BlockingIssues) != 1 || status.BlockingIssues[0] != "Batch data unavailable" {
		t.Fatalf("expected availability issue, got %v", status.BlockingIssues)
	}
}

// ------------------------------------------------------------
// CROSS-CITY SNAPSHOT
// ------------------------------------------------------------

func TestAllCitiesSnapshot_ExcludesReservedPhase(t *testing.T) {
	engine, _ := newTestEngine(phaseOneSource(), testTargets())

	snapshot, err := engine.AllCitiesSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot) != 3 {
		t.Fatalf("expected 3 cities, got %d", len(snapshot))
	}
	wantOrder := []string{"Austin", "Denver", "Portland"}
	for i, name := range wantOrder {
		if snapshot[i].City != name {
			t.Fatalf("expected %s at position %d, got %s", name, i, snapshot[i].City)
		}
	}
	if snapshot[0].CurrentMAU != 5 || snapshot[1].CurrentMAU != 8 {
		t.Fatalf("unexpected MAU values: %d / %d", snapshot[0].CurrentMAU, snapshot[1].CurrentMAU)
	}
	if snapshot[2].CurrentMAU != 0 || snapshot[2].Status != domain.StatusBelow {
		t.Fatalf("empty market should report zeros: %+v", snapshot[2])
	}
}

func TestAllCitiesSnapshot_DegradesOnLoadFailure(t *testing.T) {
	src := &fakeRowSource{err: errors.New("store unavailable")}
	engine, _ := newTestEngine(src, testTargets())

	snapshot, err := engine.AllCitiesSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load failure must degrade, not error: %v", err)
	}
	if snapshot == nil || len(snapshot) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}
}
