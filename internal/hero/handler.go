package hero

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aniflux/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/hero", h.listActive)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/hero", h.listAll)
	rg.POST("/hero", h.create)
	rg.PUT("/hero/:id", h.update)
	rg.PATCH("/hero/:id/active", h.toggle)
	rg.DELETE("/hero/:id", h.remove)
}

func (h *Handler) listActive(c *gin.Context) {
	slides, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if slides == nil {
		slides = []models.HeroSlide{}
	}
	c.JSON(http.StatusOK, gin.H{"items": slides})
}

func (h *Handler) listAll(c *gin.Context) {
	slides, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if slides == nil {
		slides = []models.HeroSlide{}
	}
	c.JSON(http.StatusOK, gin.H{"items": slides})
}

func (h *Handler) create(c *gin.Context) {
	var s models.HeroSlide
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(s.AnimeID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anime_id required"})
		return
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	if err := h.Repo.Upsert(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) update(c *gin.Context) {
	var s models.HeroSlide
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	s.ID = strings.TrimSpace(c.Param("id"))
	if s.ID == "" || strings.TrimSpace(s.AnimeID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and anime_id required"})
		return
	}

	if err := h.Repo.Upsert(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

type toggleReq struct {
	IsActive bool `json:"is_active"`
}

func (h *Handler) toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ok, err := h.Repo.SetActive(c.Request.Context(), c.Param("id"), req.IsActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_active": req.IsActive})
}

func (h *Handler) remove(c *gin.Context) {
	ok, err := h.Repo.Delete(c.Request.Context(), c.Param("id"))
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
