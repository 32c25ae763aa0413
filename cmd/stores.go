package cmd

import (
	"errors"
	"fmt"

	"github.com/shazabdullakc/Attendence-monitoring-system/internal/config"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database/mariadb"
	"github.com/shazabdullakc/Attendence-monitoring-system/internal/database/postgres"
)

// stores bundles the opened repositories and the connection they share.
type stores struct {
	students database.StudentWriter
	events   database.AttendanceWriter
	close    func() error
}

// openStores connects to the configured database and runs migrations.
// PostgreSQL (DATABASE_URL) is the primary backend; MARIADB_DSN selects
// the MariaDB backend instead when DATABASE_URL is not set.
func openStores(cfg *config.Config) (*stores, error) {
	switch {
	case cfg.Database.URL != "":
		pool, err := postgres.Initialize(&cfg.Database, cfg.Extractor.Dim)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		return &stores{
			students: postgres.NewStudentRepository(pool),
			events:   postgres.NewAttendanceRepository(pool),
			close:    pool.Close,
		}, nil

	case cfg.Database.MariaDBDSN != "":
		pool, err := mariadb.Initialize(cfg.Database.MariaDBDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MariaDB: %w", err)
		}
		return &stores{
			students: mariadb.NewStudentRepository(pool),
			events:   mariadb.NewAttendanceRepository(pool),
			close:    pool.Close,
		}, nil

	default:
		return nil, errors.New("DATABASE_URL or MARIADB_DSN environment variable is required")
	}
}
