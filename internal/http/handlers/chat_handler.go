// README: Follow-up chat handlers over the planner's transcript.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/service"
	"wanderbot/internal/trip"
)

const askFailurePrefix = "failed to get an answer"

type ChatHandler struct {
	planner *service.TripPlanner
	timeout time.Duration
}

func NewChatHandler(planner *service.TripPlanner, timeout time.Duration) *ChatHandler {
	return &ChatHandler{planner: planner, timeout: timeout}
}

type chatTrip struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Days        int    `json:"days"`
}

type chatReq struct {
	Question string    `json:"question"`
	Trip     *chatTrip `json:"trip"`
}

func (t chatTrip) context() (trip.Context, error) {
	tc := trip.Context{Source: strings.TrimSpace(t.Source), Destination: strings.TrimSpace(t.Destination), Days: t.Days}
	var err error
	if strings.TrimSpace(t.StartDate) != "" {
		if tc.StartDate, err = trip.ParseDate(t.StartDate); err != nil {
			return tc, err
		}
	}
	if strings.TrimSpace(t.EndDate) != "" {
		if tc.EndDate, err = trip.ParseDate(t.EndDate); err != nil {
			return tc, err
		}
	}
	return tc, nil
}

// Messages handles GET /api/chat.
func (h *ChatHandler) Messages(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"messages": h.planner.Messages()})
}

// Ask handles POST /api/chat. Without an explicit trip the current plan's trip is used.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		answer string
		err    error
	)
	if req.Trip != nil {
		tc, perr := req.Trip.context()
		if perr != nil {
			writeError(c, http.StatusBadRequest, perr.Error())
			return
		}
		answer, err = h.planner.Ask(ctx, tc, req.Question)
	} else {
		answer, err = h.planner.AskCurrent(ctx, req.Question)
	}
	if err != nil {
		writeServiceError(c, askFailurePrefix, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"answer": answer, "messages": h.planner.Messages()})
}
