// Package datasources opens the storage backend selected by configuration.
package datasources

import (
	"fmt"

	"gorm.io/gorm"

	"complianceconnect.backend/internal/config"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/datasources/postgres"
	"complianceconnect.backend/internal/infrastructure/datasources/sqlite"
	"complianceconnect.backend/internal/infrastructure/memory"
	gormrepos "complianceconnect.backend/internal/infrastructure/repositories"
)

var (
	openPostgres = postgres.NewConnection
	openSQLite   = sqlite.NewConnection
)

// CloseFunc releases the backend's connections.
type CloseFunc func() error

func nopClose() error { return nil }

// OpenStorage returns the configured store. Relational backends are migrated
// before they are returned; none are seeded.
func OpenStorage(cfg config.DatabaseConfig) (repositories.Storage, CloseFunc, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewEmptyStorage(), nopClose, nil
	case config.DriverPostgres:
		db, err = openPostgres(cfg.URL)
	case config.DriverSQLite:
		db, err = openSQLite(cfg.URL)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get generic database object: %w", err)
	}
	if err := gormrepos.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return gormrepos.NewStorage(db), sqlDB.Close, nil
}
