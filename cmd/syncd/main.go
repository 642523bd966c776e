// syncd runs the airing re-check on a cron schedule, for deployments where
// no external scheduler hits the /cron/update-airing endpoint.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"aniflux/internal/anime"
	"aniflux/internal/provider"
	"aniflux/internal/recheck"
	"aniflux/internal/syncer"
	"aniflux/pkg/database"
	"aniflux/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	provCfg := utils.LoadProviderConfig()
	cronCfg := utils.LoadCronConfig()

	provClient := provider.NewClient(provCfg)
	syncSvc := syncer.NewService(provClient, provCfg.FallbackEpisodes)

	// no websocket hub here; deltas go to the log
	checker := recheck.NewChecker(anime.NewRepo(db), syncSvc, nil)

	sched := recheck.NewScheduler(checker, cronCfg.Schedule)
	c, err := sched.Start()
	if err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	log.Printf("syncd started (schedule %q, runs immediately)", cronCfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("shutdown signal received: %s", sig)

	<-c.Stop().Done()
	log.Println("syncd stopped")
}
