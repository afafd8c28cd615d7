// @title IELTS Mock API
// @version 1.0
// @description Backend for the IELTS mock test platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/Shibo14/ielts-mock/internal/app"
	"github.com/Shibo14/ielts-mock/internal/config"
	"github.com/Shibo14/ielts-mock/pkg/configwatcher"
	"github.com/Shibo14/ielts-mock/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup")
	seed := flag.Bool("seed", false, "insert demo accounts and sample tests on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.Seed = *seed

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	if cfg.Seed {
		if err := application.Seed(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// hot-reload for the tunables that are read per request
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(c)
		}
	})

	application.Run()
}
