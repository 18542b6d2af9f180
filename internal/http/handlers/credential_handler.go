// README: Credential handlers; the stored key is never echoed back.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/credential"
	"wanderbot/internal/service"
)

type CredentialHandler struct {
	planner *service.TripPlanner
}

func NewCredentialHandler(planner *service.TripPlanner) *CredentialHandler {
	return &CredentialHandler{planner: planner}
}

type setKeyReq struct {
	APIKey string `json:"apiKey"`
}

// Status handles GET /api/credential.
func (h *CredentialHandler) Status(c *gin.Context) {
	ok, err := h.planner.HasCredential(c.Request.Context())
	if err != nil {
		log.Printf("credential status: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"configured": ok})
}

// Set handles PUT /api/credential.
func (h *CredentialHandler) Set(c *gin.Context) {
	var req setKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.planner.SetCredential(c.Request.Context(), req.APIKey); err != nil {
		if errors.Is(err, credential.ErrEmptyKey) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("credential set: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
