package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"aniflux/internal/anime"
	"aniflux/internal/auth"
	"aniflux/internal/episode"
	"aniflux/internal/events"
	"aniflux/internal/hero"
	"aniflux/internal/provider"
	"aniflux/internal/recheck"
	"aniflux/internal/stream"
	"aniflux/internal/syncer"
	"aniflux/internal/watch"
	"aniflux/pkg/database"
	"aniflux/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": hub.Stats().Clients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": hub.Stats().Clients,
		})
	})

	// Provider + sync pipeline
	provCfg := utils.LoadProviderConfig()
	provClient := provider.NewClient(provCfg)
	syncSvc := syncer.NewService(provClient, provCfg.FallbackEpisodes)
	resolver := stream.NewResolver(provClient)

	// Catalog (public)
	animeRepo := anime.NewRepo(db)
	animeHandler := anime.NewHandler(animeRepo)
	animeHandler.RegisterRoutes(router.Group("/anime"))

	episodeRepo := episode.NewRepo(db)
	episodeHandler := episode.NewHandler(episodeRepo, animeRepo, syncSvc, hub)
	episodeHandler.RegisterRoutes(router.Group(""))

	heroRepo := hero.NewRepo(db)
	heroHandler := hero.NewHandler(heroRepo)
	heroHandler.RegisterRoutes(router.Group(""))

	streamHandler := stream.NewHandler(resolver, episodeRepo)
	streamHandler.RegisterRoutes(router.Group(""))

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Per-user watch state (protected)
	users := router.Group("/users")
	users.Use(auth.AuthMiddleware(tokenSvc))

	users.GET("/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"role":     claims.Role,
		})
	})

	watchRepo := watch.NewRepo(db)
	watchHandler := watch.NewHandler(watchRepo)
	watchHandler.RegisterRoutes(users)

	// Admin CMS (protected + admin role)
	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware(tokenSvc), auth.RequireAdmin())
	animeHandler.RegisterAdminRoutes(admin)
	episodeHandler.RegisterAdminRoutes(admin)
	heroHandler.RegisterAdminRoutes(admin)

	// Scheduled re-check trigger
	cronCfg := utils.LoadCronConfig()
	checker := recheck.NewChecker(animeRepo, syncSvc, hub)
	recheck.NewHandler(checker, cronCfg.Secret, cronCfg.DevMode).RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Println("HTTP API server listening on :8080")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
