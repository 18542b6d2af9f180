// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/ai"
	"wanderbot/internal/plan"
	"wanderbot/internal/service"
	"wanderbot/internal/trip"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields []trip.FieldError `json:"fields,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps planner errors to HTTP responses. prefix is prepended
// to upstream generation failures.
func writeServiceError(c *gin.Context, prefix string, err error) {
	var (
		verr *trip.ValidationError
		gerr *ai.GatewayError
		perr *plan.ParseError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, service.ErrMissingCredential):
		writeError(c, http.StatusPreconditionRequired, err.Error())
	case errors.Is(err, service.ErrEmptyQuestion):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoActiveTrip):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, prefix+": request timed out")
	case errors.As(err, &perr):
		// never echo the raw completion
		writeError(c, http.StatusBadGateway, prefix+": "+perr.Msg)
	case errors.As(err, &gerr), errors.Is(err, ai.ErrEmptyResponse):
		writeError(c, http.StatusBadGateway, prefix+": "+err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
