package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/domain"
	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/analytics/core/usecase"
)

// AnalyticsUseCase is the engine surface the handler depends on.
type AnalyticsUseCase interface {
	CityMetrics(ctx context.Context, city string) (domain.CityMetrics, error)
	AllCitiesSnapshot(ctx context.Context) ([]domain.CityMetrics, error)
	CityRetentionCurve(ctx context.Context, city string, weeksBack int) ([]domain.RetentionCohort, error)
	ActivationMetrics(ctx context.Context, city string) (domain.ActivationMetrics, error)
	PhaseProgress(ctx context.Context, phase int) (domain.PhaseStatus, error)
	RedFlags(ctx context.Context, city string) ([]domain.RedFlag, error)
	AllRedFlags(ctx context.Context) ([]domain.RedFlag, error)
}

// SnapshotSource exposes the loader's cached snapshot for health checks.
type SnapshotSource interface {
	Current() *domain.BatchDataset
}

type AnalyticsHandler struct {
	uc       AnalyticsUseCase
	snapshot SnapshotSource
}

func NewAnalyticsHandler(uc AnalyticsUseCase, snapshot SnapshotSource) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, snapshot: snapshot}
}

// GetAllCities godoc
// @Summary City metrics snapshot
// @Description Returns metrics for every configured target market excluding the reserved phase
// @Tags Cities
// @Produce json
// @Success 200 {array} CityMetricsResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities [get]
func (h *AnalyticsHandler) GetAllCities(c *fiber.Ctx) error {
	snapshot, err := h.uc.AllCitiesSnapshot(c.UserContext())
	if err != nil {
		return internalError(c)
	}

	resp := make([]CityMetricsResponse, 0, len(snapshot))
	for _, m := range snapshot {
		resp = append(resp, toCityMetricsResponse(m))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetCityMetrics godoc
// @Summary Metrics for one city
// @Description Returns the full metric bundle for one target market
// @Tags Cities
// @Produce json
// @Param city path string true "City name or alias"
// @Success 200 {object} CityMetricsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities/{city}/metrics [get]
func (h *AnalyticsHandler) GetCityMetrics(c *fiber.Ctx) error {
	m, err := h.uc.CityMetrics(c.UserContext(), c.Params("city"))
	if err != nil {
		return mapCityError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toCityMetricsResponse(m))
}

// GetCityRetention godoc
// @Summary Retention curve for one city
// @Description Weekly signup cohorts with week-2/4/8 retention, newest first
// @Tags Cities
// @Produce json
// @Param city path string true "City name or alias"
// @Param weeks_back query int false "Max cohorts to return (default 12)"
// @Success 200 {array} RetentionCohortResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities/{city}/retention [get]
func (h *AnalyticsHandler) GetCityRetention(c *fiber.Ctx) error {
	weeksBack := c.QueryInt("weeks_back", 0)

	cohorts, err := h.uc.CityRetentionCurve(c.UserContext(), c.Params("city"), weeksBack)
	if err != nil {
		return mapCityError(c, err)
	}

	resp := make([]RetentionCohortResponse, 0, len(cohorts))
	for _, cohort := range cohorts {
		resp = append(resp, RetentionCohortResponse{
			WeekStart:      cohort.WeekStart.Format("2006-01-02"),
			CohortSize:     cohort.CohortSize,
			Week2Retention: cohort.Week2Retention,
			Week4Retention: cohort.Week4Retention,
			Week8Retention: cohort.Week8Retention,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetCityActivation godoc
// @Summary Activation metrics for one city
// @Description Friend-count milestone counts; average-days fields are placeholders
// @Tags Cities
// @Produce json
// @Param city path string true "City name or alias"
// @Success 200 {object} ActivationMetricsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities/{city}/activation [get]
func (h *AnalyticsHandler) GetCityActivation(c *fiber.Ctx) error {
	m, err := h.uc.ActivationMetrics(c.UserContext(), c.Params("city"))
	if err != nil {
		return mapCityError(c, err)
	}
	return c.Status(http.StatusOK).JSON(ActivationMetricsResponse{
		City:              m.City,
		UsersWith3Friends: m.UsersWith3Friends,
		UsersWith5Friends: m.UsersWith5Friends,
		UsersWith7Friends: m.UsersWith7Friends,
		AvgDaysTo3Friends: m.AvgDaysTo3Friends,
		AvgDaysTo5Friends: m.AvgDaysTo5Friends,
		AvgDaysTo7Friends: m.AvgDaysTo7Friends,
	})
}

// GetCityRedFlags godoc
// @Summary Red flags for one city
// @Tags RedFlags
// @Produce json
// @Param city path string true "City name or alias"
// @Success 200 {array} RedFlagResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cities/{city}/red-flags [get]
func (h *AnalyticsHandler) GetCityRedFlags(c *fiber.Ctx) error {
	flags, err := h.uc.RedFlags(c.UserContext(), c.Params("city"))
	if err != nil {
		return mapCityError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toRedFlagResponses(flags))
}

// GetAllRedFlags godoc
// @Summary Red flags across all cities
// @Tags RedFlags
// @Produce json
// @Success 200 {array} RedFlagResponse
// @Failure 500 {object} ErrorResponse
// @Router /red-flags [get]
func (h *AnalyticsHandler) GetAllRedFlags(c *fiber.Ctx) error {
	flags, err := h.uc.AllRedFlags(c.UserContext())
	if err != nil {
		return internalError(c)
	}
	return c.Status(http.StatusOK).JSON(toRedFlagResponses(flags))
}

// GetPhaseProgress godoc
// @Summary Expansion-phase readiness
// @Description Evaluates whether a phase may unlock the next one
// @Tags Phases
// @Produce json
// @Param phase path int true "Phase number"
// @Success 200 {object} PhaseStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /phases/{phase} [get]
func (h *AnalyticsHandler) GetPhaseProgress(c *fiber.Ctx) error {
	phase, err := c.ParamsInt("phase")
	if err != nil || phase < 1 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_phase",
			Message: "phase must be a positive integer",
		})
	}

	status, err := h.uc.PhaseProgress(c.UserContext(), phase)
	if err != nil {
		return internalError(c)
	}

	cities := make([]CityMetricsResponse, 0, len(status.Cities))
	for _, m := range status.Cities {
		cities = append(cities, toCityMetricsResponse(m))
	}
	return c.Status(http.StatusOK).JSON(PhaseStatusResponse{
		Phase:             status.Phase,
		Cities:            cities,
		ReadyToLaunchNext: status.ReadyToLaunchNext,
		BlockingIssues:    status.BlockingIssues,
	})
}

// GetHealth godoc
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *AnalyticsHandler) GetHealth(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok"}
	if ds := h.snapshot.Current(); ds != nil {
		resp.SnapshotID = ds.SnapshotID
		resp.LoadedAt = ds.LoadedAt.UTC().Format(time.RFC3339)
		resp.AgeSeconds = int64(ds.Age(time.Now()).Seconds())
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func mapCityError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrUnknownCity) {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "unknown_city",
			Message: "no configured target matches this city",
		})
	}
	return internalError(c)
}

func internalError(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal_server_error",
	})
}

func toCityMetricsResponse(m domain.CityMetrics) CityMetricsResponse {
	return CityMetricsResponse{
		City:                m.City,
		CurrentMAU:          m.CurrentMAU,
		TargetMAU:           m.TargetMAU,
		PercentComplete:     m.PercentComplete,
		WowGrowth:           m.WowGrowth,
		AvgWeek2Retention:   m.AvgWeek2Retention,
		NetworkCompleteness: m.NetworkCompleteness,
		EventCoverage:       m.EventCoverage,
		OrganicGrowthRate:   m.OrganicGrowthRate,
		Status:              string(m.Status),
		TotalUsers:          m.TotalUsers,
		ActiveUsers:         m.ActiveUsers,
	}
}

func toRedFlagResponses(flags []domain.RedFlag) []RedFlagResponse {
	resp := make([]RedFlagResponse, 0, len(flags))
	for _, f := range flags {
		resp = append(resp, RedFlagResponse{
			City:      f.City,
			Severity:  string(f.Severity),
			Message:   f.Message,
			Metric:    f.Metric,
			Value:     f.Value,
			Threshold: f.Threshold,
		})
	}
	return resp
}
