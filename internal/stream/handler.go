package stream

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aniflux/pkg/models"
)

// EpisodeStore looks up episode rows so admin manual-source overrides can be
// honored before provider resolution.
type EpisodeStore interface {
	GetByProviderID(ctx context.Context, providerID string) (*models.Episode, error)
}

type Handler struct {
	Resolver *Resolver
	Episodes EpisodeStore
}

func NewHandler(resolver *Resolver, episodes EpisodeStore) *Handler {
	return &Handler{Resolver: resolver, Episodes: episodes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/episodes/:provider_id/sources", h.sources)
}

// sources is the getStreamUrl entry point. It always answers 200 with at
// least one source.
func (h *Handler) sources(c *gin.Context) {
	providerID := strings.TrimSpace(c.Param("provider_id"))
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider_id required"})
		return
	}

	if h.Episodes != nil {
		ep, err := h.Episodes.GetByProviderID(c.Request.Context(), providerID)
		if err == nil && ep != nil && ep.UseManualSource && ep.ManualSourceURL != "" {
			c.JSON(http.StatusOK, models.SourceData{
				Sources: []models.VideoSource{{
					URL:     ep.ManualSourceURL,
					Quality: "default",
					IsM3U8:  strings.EqualFold(ep.SourceType, "HLS"),
				}},
			})
			return
		}
	}

	c.JSON(http.StatusOK, h.Resolver.Resolve(c.Request.Context(), providerID))
}
