package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/report-triage/internal/config"
	"github.com/jonesrussell/report-triage/internal/database"
	"github.com/jonesrussell/report-triage/internal/logger"
)

// DatabaseComponents holds the database connection and repositories.
type DatabaseComponents struct {
	DB          *sqlx.DB
	HistoryRepo *database.TriageHistoryRepository
}

// SetupDatabase creates the database connection and repositories. Returns
// nil components when history persistence is disabled.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*DatabaseComponents, error) {
	if !cfg.Database.Enabled {
		log.Info("Triage history persistence disabled")
		return nil, nil
	}

	log.Info("Connecting to PostgreSQL database",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connected successfully")

	return &DatabaseComponents{
		DB:          db,
		HistoryRepo: database.NewTriageHistoryRepository(db),
	}, nil
}
