package main

import (
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/config"
	"github.com/drushti-surkar/hashgait-demo/internal/database"
	"github.com/drushti-surkar/hashgait-demo/internal/history"
	"github.com/drushti-surkar/hashgait-demo/internal/logging"
	"github.com/drushti-surkar/hashgait-demo/internal/repository"
	"github.com/drushti-surkar/hashgait-demo/internal/router"
	"github.com/drushti-surkar/hashgait-demo/internal/store"
)

func main() {
	log, err := logging.Init("logs")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	var (
		patterns store.PatternStore
		users    repository.Users
	)
	threshold := config.Conf.Behavioral.MatchThreshold
	if config.Conf.Database.Enabled {
		database.Init(log)
		patterns = store.NewGormStore(database.DB, threshold)
		users = repository.NewGormUsers()
		log.Info("Using database-backed pattern store")
	} else {
		patterns = store.NewMemoryStore(threshold)
		users = repository.NewMemoryUsers()
		log.Info("Database disabled, using in-memory stores")
	}

	ring := history.NewRing(config.Conf.History.MaxEntries)

	r := router.Setup(log, users, patterns, ring)

	addr := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to run server", zap.Error(err))
	}
}
