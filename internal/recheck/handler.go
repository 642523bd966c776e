package recheck

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler exposes the re-check as GET /cron/update-airing, protected by a
// shared secret. The scheduler platform injects the bearer header; local
// development may bypass the check.
type Handler struct {
	Checker *Checker
	Secret  string
	DevMode bool
}

func NewHandler(checker *Checker, secret string, devMode bool) *Handler {
	return &Handler{Checker: checker, Secret: secret, DevMode: devMode}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/cron/update-airing", h.updateAiring)
}

func (h *Handler) updateAiring(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+h.Secret && !h.DevMode {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rep, err := h.Checker.Run(c.Request.Context())
	if err != nil {
		// This is the one place provider problems surface to an operator.
		log.Printf("[cron] update-airing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checked":   rep.Checked,
		"updates":   rep.Updates,
	})
}
