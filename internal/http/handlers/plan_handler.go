// README: Plan handlers: generate, fetch and reset the current itinerary, plus place and route lookups.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/maps"
	"wanderbot/internal/plan"
	"wanderbot/internal/service"
	"wanderbot/internal/trip"
)

const generateFailurePrefix = "failed to generate travel plan"

// PlaceEnricher resolves activity locations; *maps.PlacesService satisfies it.
type PlaceEnricher interface {
	Enrich(ctx context.Context, it *plan.Itinerary, destination string) ([]maps.ActivityPlace, error)
}

// LegEstimator estimates travel between activities; *maps.RouteService satisfies it.
type LegEstimator interface {
	DayLegs(ctx context.Context, it *plan.Itinerary, destination string) ([]maps.Leg, error)
}

type PlanHandler struct {
	planner *service.TripPlanner
	places  PlaceEnricher
	routes  LegEstimator
	timeout time.Duration
}

func NewPlanHandler(planner *service.TripPlanner, places PlaceEnricher, routes LegEstimator, timeout time.Duration) *PlanHandler {
	return &PlanHandler{planner: planner, places: places, routes: routes, timeout: timeout}
}

type planReq struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Budget      float64  `json:"budget"`
	Travelers   int      `json:"travelers"`
	Interests   []string `json:"interests"`
}

type tripResp struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Days        int      `json:"days"`
	DateRange   string   `json:"dateRange"`
	Budget      float64  `json:"budget"`
	Travelers   int      `json:"travelers"`
	Interests   []string `json:"interests"`
}

type planResp struct {
	Plan        *plan.Itinerary `json:"plan"`
	Warnings    []plan.Warning  `json:"warnings"`
	Trip        tripResp        `json:"trip"`
	TotalBudget float64         `json:"totalBudget"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toPlanResp(r *service.PlanResult) planResp {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []plan.Warning{}
	}
	return planResp{
		Plan:     r.Plan,
		Warnings: warnings,
		Trip: tripResp{
			Source:      r.Trip.Source,
			Destination: r.Trip.Destination,
			StartDate:   r.Trip.StartDate.Format(trip.DateLayout),
			EndDate:     r.Trip.EndDate.Format(trip.DateLayout),
			Days:        r.Trip.Days,
			DateRange:   r.DateRange,
			Budget:      r.Request.Budget,
			Travelers:   r.Request.Travelers,
			Interests:   r.Request.Interests,
		},
		TotalBudget: r.TotalBudget,
		CreatedAt:   r.CreatedAt,
	}
}

// toRequest converts the body, collecting every malformed date.
func (req planReq) toRequest() (trip.Request, []trip.FieldError) {
	out := trip.Request{
		Source:      req.Source,
		Destination: req.Destination,
		Budget:      req.Budget,
		Travelers:   req.Travelers,
		Interests:   req.Interests,
	}
	var bad []trip.FieldError
	for _, d := range []struct {
		field string
		raw   string
		dst   *time.Time
	}{
		{"startDate", req.StartDate, &out.StartDate},
		{"endDate", req.EndDate, &out.EndDate},
	} {
		if strings.TrimSpace(d.raw) == "" {
			continue
		}
		t, err := trip.ParseDate(d.raw)
		if err != nil {
			bad = append(bad, trip.FieldError{Field: d.field, Message: d.field + " must be a date in YYYY-MM-DD format"})
			continue
		}
		*d.dst = t
	}
	return out, bad
}

// Generate handles POST /api/plans.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	tr, bad := req.toRequest()
	if len(bad) > 0 {
		verr := &trip.ValidationError{Fields: bad}
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: bad})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.planner.GeneratePlan(ctx, tr)
	if err != nil {
		writeServiceError(c, generateFailurePrefix, err)
		return
	}
	writeJSON(c, http.StatusOK, toPlanResp(res))
}

// Current handles GET /api/plans/current.
func (h *PlanHandler) Current(c *gin.Context) {
	res := h.planner.Current()
	if res == nil {
		writeError(c, http.StatusNotFound, "no travel plan yet")
		return
	}
	writeJSON(c, http.StatusOK, toPlanResp(res))
}

// Reset handles DELETE /api/plans/current.
func (h *PlanHandler) Reset(c *gin.Context) {
	h.planner.Reset()
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// Places handles GET /api/plans/current/places.
func (h *PlanHandler) Places(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "place lookup is not configured")
		return
	}
	res := h.planner.Current()
	if res == nil {
		writeError(c, http.StatusNotFound, "no travel plan yet")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	places, err := h.places.Enrich(ctx, res.Plan, res.Trip.Destination)
	if err != nil {
		writeError(c, http.StatusBadGateway, "failed to look up places: "+err.Error())
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}

// Routes handles GET /api/plans/current/routes.
func (h *PlanHandler) Routes(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "route estimates are not configured")
		return
	}
	res := h.planner.Current()
	if res == nil {
		writeError(c, http.StatusNotFound, "no travel plan yet")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	legs, err := h.routes.DayLegs(ctx, res.Plan, res.Trip.Destination)
	if err != nil {
		writeError(c, http.StatusBadGateway, "failed to estimate routes: "+err.Error())
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"legs": legs})
}
