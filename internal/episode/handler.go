package episode

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aniflux/internal/events"
	"aniflux/pkg/models"
)

// Syncer is the orchestrator entry point; results are persisted here.
type Syncer interface {
	SyncEpisodes(ctx context.Context, animeID, title string) (models.SyncResult, error)
}

// AnimeStore is the slice of the anime repo the handler needs.
type AnimeStore interface {
	GetByID(ctx context.Context, id string) (*models.Anime, error)
	UpdateEpisodeCount(ctx context.Context, id string, episodes int) error
}

type Handler struct {
	Repo   *Repo
	Anime  AnimeStore
	Syncer Syncer
	Hub    *events.Hub
}

func NewHandler(repo *Repo, animeStore AnimeStore, syncer Syncer, hub *events.Hub) *Handler {
	return &Handler{Repo: repo, Anime: animeStore, Syncer: syncer, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/anime/:id/episodes", h.listByAnime)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/anime/:id/sync", h.sync)
	rg.POST("/anime/:id/episodes", h.create)
	rg.POST("/anime/:id/episodes/reassign-season", h.reassignSeason)
	rg.PUT("/episodes/:id", h.update)
	rg.DELETE("/episodes/:id", h.remove)
}

func (h *Handler) listByAnime(c *gin.Context) {
	animeID := strings.TrimSpace(c.Param("id"))
	eps, err := h.Repo.ListByAnime(c.Request.Context(), animeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if eps == nil {
		eps = []models.Episode{}
	}
	c.JSON(http.StatusOK, gin.H{"items": eps, "total": len(eps)})
}

// sync is the syncEpisodes entry point: run the orchestrator, persist the
// resulting list and return the envelope untouched.
func (h *Handler) sync(c *gin.Context) {
	animeID := strings.TrimSpace(c.Param("id"))

	a, err := h.Anime.GetByID(c.Request.Context(), animeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	result, err := h.Syncer.SyncEpisodes(c.Request.Context(), a.ID, a.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.Repo.ReplaceForAnime(c.Request.Context(), a.ID, result.Episodes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	_ = h.Anime.UpdateEpisodeCount(c.Request.Context(), a.ID, len(result.Episodes))

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(events.AnimeEvent{
			Type:     events.TypeEpisodesSynced,
			AnimeID:  a.ID,
			Title:    a.Title,
			Episodes: len(result.Episodes),
			Message:  result.Message,
			At:       time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, result)
}

type createReq struct {
	Number          int    `json:"number"`
	SeasonNumber    int    `json:"season_number"`
	Title           string `json:"title"`
	Image           string `json:"image"`
	IsFiller        bool   `json:"is_filler"`
	ProviderID      string `json:"provider_id"`
	ManualSourceURL string `json:"manual_source_url"`
	SourceType      string `json:"source_type"`
	UseManualSource bool   `json:"use_manual_source"`
}

func (h *Handler) create(c *gin.Context) {
	animeID := strings.TrimSpace(c.Param("id"))

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be >= 1"})
		return
	}
	if req.SeasonNumber <= 0 {
		req.SeasonNumber = 1
	}

	ep := models.Episode{
		ID:              uuid.NewString(),
		AnimeID:         animeID,
		Number:          req.Number,
		SeasonNumber:    req.SeasonNumber,
		Title:           req.Title,
		Image:           req.Image,
		IsFiller:        req.IsFiller,
		ProviderID:      req.ProviderID,
		ManualSourceURL: req.ManualSourceURL,
		SourceType:      req.SourceType,
		UseManualSource: req.UseManualSource,
	}
	if ep.Title == "" {
		ep.Title = "Episode " + strconv.Itoa(ep.Number)
	}

	if err := h.Repo.Upsert(c.Request.Context(), ep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, ep)
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var ep models.Episode
	if err := c.ShouldBindJSON(&ep); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ep.ID = id
	if ep.AnimeID == "" {
		ep.AnimeID = existing.AnimeID
	}
	if ep.Number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be >= 1"})
		return
	}
	if ep.SeasonNumber <= 0 {
		ep.SeasonNumber = 1
	}

	if err := h.Repo.Upsert(c.Request.Context(), ep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, ep)
}

func (h *Handler) remove(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ok, err := h.Repo.Delete(c.Request.Context(), id)
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

type reassignReq struct {
	FromNumber int `json:"from_number"`
	ToNumber   int `json:"to_number"`
	Season     int `json:"season"`
}

// reassignSeason is the bulk season tool. It changes season_number only and
// may create duplicate (season, number) pairs; see the schema note.
func (h *Handler) reassignSeason(c *gin.Context) {
	animeID := strings.TrimSpace(c.Param("id"))

	var req reassignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.FromNumber <= 0 || req.ToNumber < req.FromNumber || req.Season <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range or season"})
		return
	}

	n, err := h.Repo.ReassignSeason(c.Request.Context(), animeID, req.FromNumber, req.ToNumber, req.Season)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reassign failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
