// Package mariadb provides a MySQL/MariaDB storage backend for deployments
// that cannot run PostgreSQL. Embeddings are stored as JSON text, the same
// flat-array format the attendance system has always used on disk.
package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool manages a MariaDB connection pool.
type Pool struct {
	db *sql.DB
}

// NewPool creates a new MariaDB connection pool.
// The DSN must include parseTime=true so timestamps scan into time.Time.
func NewPool(dsn string) (*Pool, error) {
	if dsn == "" {
		return nil, errors.New("MariaDB DSN is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MariaDB: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MariaDB: %w", err)
	}

	return &Pool{db: db}, nil
}

// Close closes the connection pool.
func (p *Pool) Close() error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

// QueryRow executes a query that returns a single row.
func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return p.db.QueryRowContext(ctx, query, args...)
}

// Query executes a query that returns rows.
func (p *Pool) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return rows, nil
}

// Exec executes a query that doesn't return rows.
func (p *Pool) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing statement: %w", err)
	}
	return result, nil
}

// Initialize creates a connection pool and runs migrations.
func Initialize(dsn string) (*Pool, error) {
	pool, err := NewPool(dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Migrate(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return pool, nil
}

// Migrate creates the schema. Changes are additive only.
func (p *Pool) Migrate(ctx context.Context) error {
	createStudents := `
		CREATE TABLE IF NOT EXISTS students (
			id           BIGINT AUTO_INCREMENT PRIMARY KEY,
			name         VARCHAR(100) NOT NULL,
			embedding    TEXT NOT NULL,
			dim          INT NOT NULL,
			created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`

	if _, err := p.Exec(ctx, createStudents); err != nil {
		return fmt.Errorf("failed to create students table: %w", err)
	}

	createEvents := `
		CREATE TABLE IF NOT EXISTS attendance_events (
			id           BIGINT AUTO_INCREMENT PRIMARY KEY,
			uid          VARCHAR(36) NOT NULL,
			student_id   BIGINT NOT NULL,
			created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX attendance_events_student_id_idx (student_id),
			CONSTRAINT fk_attendance_student FOREIGN KEY (student_id) REFERENCES students(id)
		)
	`

	if _, err := p.Exec(ctx, createEvents); err != nil {
		return fmt.Errorf("failed to create attendance_events table: %w", err)
	}

	return nil
}
