package storage

import (
	"fmt"

	"brokerage-client/src/interfaces"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"
)

// -----------------------------------------------------------------------------

// NewDatabase selects the storage backend from the configured db_type.
func NewDatabase(cfg *models.MConfig, log *logger.Logger) (interfaces.IDatabase, error) {
	switch cfg.Storage.DBType {
	case "sqlite":
		return NewSQLiteDB(cfg, log)
	case "postgres":
		return NewPostgresDB(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported db_type: %s", cfg.Storage.DBType)
	}
}
