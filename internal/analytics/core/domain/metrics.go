package domain

import "time"

// Status is the maturity classification of a market. The classifier
// evaluates the states in this order and the first match wins.
type Status string

const (
	StatusSustainable  Status = "sustainable"
	StatusNearCritical Status = "near_critical"
	StatusBuilding     Status = "building"
	StatusBelow        Status = "below"
)

// CityMetrics is the per-market metric bundle. Recomputed on demand from a
// snapshot, never persisted. PercentComplete is deliberately uncapped and
// can exceed 100; NetworkCompleteness is capped at 100.
type CityMetrics struct {
	City                string
	CurrentMAU          int
	TargetMAU           int
	PercentComplete     float64
	WowGrowth           float64
	AvgWeek2Retention   float64
	NetworkCompleteness float64
	EventCoverage       float64
	// OrganicGrowthRate is an approximation (non-negative WoW growth)
	// standing in for real invite attribution. Callers must not treat it
	// as a true organic/paid split.
	OrganicGrowthRate float64
	Status            Status
	TotalUsers        int
	ActiveUsers       int
}

// RetentionCohort is one Sunday-aligned signup week. Only cohorts at least
// eight weeks old are ever produced, so all three retention windows have
// fully elapsed. Retention percentages are always in [0, 100].
type RetentionCohort struct {
	WeekStart      time.Time
	CohortSize     int
	Week2Retention float64
	Week4Retention float64
	Week8Retention float64
}

// ActivationMetrics counts users who reached friend-count milestones. The
// average-days fields are fixed placeholders; computing them needs
// timestamped friend-request history the row source does not carry yet.
type ActivationMetrics struct {
	City              string
	UsersWith3Friends int
	UsersWith5Friends int
	UsersWith7Friends int
	AvgDaysTo3Friends float64
	AvgDaysTo5Friends float64
	AvgDaysTo7Friends float64
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// RedFlag is one warning condition detected for a market.
type RedFlag struct {
	City      string
	Severity  Severity
	Message   string
	Metric    string
	Value     float64
	Threshold float64
}

// PhaseStatus is the readiness evaluation of one expansion phase.
type PhaseStatus struct {
	Phase             int
	Cities            []CityMetrics
	ReadyToLaunchNext bool
	BlockingIssues    []string
}
