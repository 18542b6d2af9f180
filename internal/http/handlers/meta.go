package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/trip"
)

func interestList() []string {
	out := make([]string, len(trip.DefaultInterests))
	copy(out, trip.DefaultInterests)
	return out
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Interests handles GET /api/interests.
func Interests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"interests": interestList()})
}
