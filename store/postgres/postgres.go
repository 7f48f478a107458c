package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/logger"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Store keeps users, appointments, prescriptions and system_logs in
// PostgreSQL. Every statement is built by goqu in prepared mode, so values
// never reach the SQL text.
type Store struct {
	db   *sql.DB
	goqu *goqu.Database
	log  *logger.Logger
}

// Open connects with lib/pq and verifies the connection.
func Open(ctx context.Context, dsn string, log *logger.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithComponent("postgres").Info("Database connection established")
	return New(db, log), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB, log *logger.Logger) *Store {
	return &Store{
		db:   db,
		goqu: goqu.New("postgres", db),
		log:  log,
	}
}

// DB exposes the pool to the schema migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

func (s *Store) exec(ctx context.Context, query string, args []interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func buildErr(what string, err error) error {
	return apperrors.NewInternalError("failed to build "+what+" query", err)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return n, nil
}
