package fiber

type CityMetricsResponse struct {
	City                string  `json:"city"`
	CurrentMAU          int     `json:"current_mau"`
	TargetMAU           int     `json:"target_mau"`
	PercentComplete     float64 `json:"percent_complete"`
	WowGrowth           float64 `json:"wow_growth"`
	AvgWeek2Retention   float64 `json:"avg_week2_retention"`
	NetworkCompleteness float64 `json:"network_completeness"`
	EventCoverage       float64 `json:"event_coverage"`
	OrganicGrowthRate   float64 `json:"organic_growth_rate"`
	Status              string  `json:"status"`
	TotalUsers          int     `json:"total_users"`
	ActiveUsers         int     `json:"active_users"`
}

type RetentionCohortResponse struct {
	WeekStart      string  `json:"week_start"`
	CohortSize     int     `json:"cohort_size"`
	Week2Retention float64 `json:"week2_retention"`
	Week4Retention float64 `json:"week4_retention"`
	Week8Retention float64 `json:"week8_retention"`
}

type ActivationMetricsResponse struct {
	City              string  `json:"city"`
	UsersWith3Friends int     `json:"users_with_3_friends"`
	UsersWith5Friends int     `json:"users_with_5_friends"`
	UsersWith7Friends int     `json:"users_with_7_friends"`
	AvgDaysTo3Friends float64 `json:"avg_days_to_3_friends"`
	AvgDaysTo5Friends float64 `json:"avg_days_to_5_friends"`
	AvgDaysTo7Friends float64 `json:"avg_days_to_7_friends"`
}

type RedFlagResponse struct {
	City      string  `json:"city"`
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

type PhaseStatusResponse struct {
	Phase             int                   `json:"phase"`
	Cities            []CityMetricsResponse `json:"cities"`
	ReadyToLaunchNext bool                  `json:"ready_to_launch_next"`
	BlockingIssues    []string              `json:"blocking_issues"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	LoadedAt   string `json:"loaded_at,omitempty"`
	AgeSeconds int64  `json:"age_seconds,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"unknown_city"`
	Message string `json:"message" example:"no configured target matches this city"`
}
