package setup

import (
	"backoffice/app"
	"backoffice/config"
	"backoffice/database"
	"log/slog"
)

// InitDatabase opens the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp wires all repositories into the application
func InitApp(db *database.DB, cfg *config.Config, logger *slog.Logger) *app.App {
	application := app.New(db, cfg, logger)
	logger.Info("application initialized with dependency injection")
	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
