package usecase

import "github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"

// ClassifyStatus maps a market's metric bundle to its maturity status. The
// rules are evaluated in priority order and the first match wins; a city
// satisfying both the sustainable and near_critical predicates reports
// sustainable.
func ClassifyStatus(percentComplete, wowGrowth, avgWeek2Retention float64, currentMAU int) domain.Status {
	switch {
	case percentComplete >= 100 && wowGrowth > 0 && avgWeek2Retention >= 60:
		return domain.StatusSustainable
	case percentComplete >= 75 || (percentComplete >= 60 && wowGrowth > 10):
		return domain.StatusNearCritical
	case percentComplete >= 25 || currentMAU > 50:
		return domain.StatusBuilding
	default:
		return domain.StatusBelow
	}
}
