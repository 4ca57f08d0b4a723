// main.go
package main

import (
	"context"
	"log"
	"time"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/internal/wire"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/metrics"
	"cinema-reservation/pkg/queue"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(database.ConnString(config.Database)); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Database migrations applied")
	}

	deps := usecase.Deps{
		Cache:     cache.Noop{},
		Metrics:   metrics.New(),
		Publisher: queue.Noop{},
	}

	if config.Redis.Addr != "" {
		client := cache.NewClient(config.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(ctx, client); err != nil {
			logger.Warn("Redis unavailable, movie session cache disabled",
				zap.String("addr", config.Redis.Addr), zap.Error(err))
			_ = client.Close()
		} else {
			deps.Cache = cache.NewRedisCache(client, config.Redis.CacheTTL)
			defer client.Close()
			logger.Info("Redis cache enabled", zap.Duration("ttl", config.Redis.CacheTTL))
		}
		cancel()
	}

	if config.Queue.URL != "" {
		deps.Publisher = queue.NewAMQPPublisher(config.Queue.URL, config.Queue.OrderEventQueue, logger)
		logger.Info("Order events enabled", zap.String("queue", config.Queue.OrderEventQueue))
	}

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(db, repos, deps, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}
