package cmd

import (
	"context"
	"fmt"
	"log"

	"movie-booking/internal/data/schema"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// Runtime bundles what every command needs: config, logger and a database
// pool.
type Runtime struct {
	Config *utils.Config
	Logger *zap.Logger
	DB     database.PgxIface
	Schema *schema.Manager
}

// Bootstrap loads envFile, builds the logger and connects to the database.
func Bootstrap(ctx context.Context, envFile string) (*Runtime, error) {
	config, err := utils.LoadConfigFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.Connect(ctx, database.ConnString(config.Database), config.Database.MaxConns)
	if err != nil {
		logger.Error("Failed to connect to database",
			zap.Error(err),
			zap.String("host", config.Database.Host),
			zap.String("database", config.Database.Name),
		)
		logger.Sync()
		return nil, err
	}

	logger.Info("Database connected successfully")

	return &Runtime{
		Config: config,
		Logger: logger,
		DB:     db,
		Schema: schema.NewManager(db, logger),
	}, nil
}

func (rt *Runtime) Close() {
	rt.DB.Close()
	rt.Logger.Sync()
}
