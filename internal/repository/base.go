// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"postapi/internal/database"
	"postapi/internal/models"
	"postapi/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// run executes fn on a scoped connection, recording a span and the query latency.
// fn must issue exactly one statement.
func run(ctx context.Context, db *gorm.DB, operation, table string, fn func(tx *gorm.DB) error) error {
	ctx, finish := observability.StartRepositorySpan(ctx, operation, table)
	done := observability.TrackQuery(operation, table)

	err := database.WithConn(ctx, db, fn)

	done()
	finish(err)
	return err
}

// classify maps a store failure onto the error taxonomy. Only unique
// violations get their own kind, and only when conflict is non-empty.
func classify(operation, table string, err error, conflict string) error {
	var appErr *models.AppError
	switch {
	case conflict != "" && isUniqueConstraintError(err):
		appErr = models.NewConflictError(conflict, err)
	default:
		appErr = models.NewInternalError(err)
	}
	observability.CountQueryError(operation, table, appErr.Code)
	return appErr
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
