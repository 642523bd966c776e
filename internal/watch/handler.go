package watch

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aniflux/internal/auth"
	"aniflux/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes mounts per-user watch state under an auth-protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.listProgress)
	rg.PUT("/history/:anime_id", h.upsertProgress)
	rg.DELETE("/history/:anime_id", h.removeProgress)

	rg.GET("/watchlist", h.listKind(models.ListWatchlist))
	rg.PUT("/watchlist/:anime_id", h.upsertKind(models.ListWatchlist))
	rg.DELETE("/watchlist/:anime_id", h.removeKind(models.ListWatchlist))

	rg.GET("/favorites", h.listKind(models.ListFavorites))
	rg.PUT("/favorites/:anime_id", h.upsertKind(models.ListFavorites))
	rg.DELETE("/favorites/:anime_id", h.removeKind(models.ListFavorites))
}

type progressReq struct {
	Episode  int     `json:"episode"`
	Position float64 `json:"position_seconds"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
}

func (h *Handler) upsertProgress(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	animeID := strings.TrimSpace(c.Param("anime_id"))
	if animeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id required"})
		return
	}

	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Episode < 0 || req.Position < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "episode and position must be >= 0"})
		return
	}

	p := models.WatchProgress{
		UserID:   claims.UserID,
		AnimeID:  animeID,
		Episode:  req.Episode,
		Position: req.Position,
		Title:    req.Title,
		ImageURL: req.ImageURL,
	}
	if err := h.Repo.UpsertProgress(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

func (h *Handler) listProgress(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.Repo.ListProgress(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if items == nil {
		items = []models.WatchProgress{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) removeProgress(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ok, err := h.Repo.DeleteProgress(c.Request.Context(), claims.UserID, c.Param("anime_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type listItemReq struct {
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Type     string  `json:"type"`
	Rating   float64 `json:"rating"`
}

func (h *Handler) upsertKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		animeID := strings.TrimSpace(c.Param("anime_id"))
		if animeID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id required"})
			return
		}

		var req listItemReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		item := models.ListItem{
			UserID:   claims.UserID,
			AnimeID:  animeID,
			Kind:     kind,
			Title:    req.Title,
			ImageURL: req.ImageURL,
			Type:     req.Type,
			Rating:   req.Rating,
		}
		if err := h.Repo.UpsertListItem(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "saved"})
	}
}

func (h *Handler) listKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		items, err := h.Repo.ListItems(c.Request.Context(), claims.UserID, kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}
		if items == nil {
			items = []models.ListItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func (h *Handler) removeKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ok, err := h.Repo.DeleteListItem(c.Request.Context(), claims.UserID, c.Param("anime_id"), kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
