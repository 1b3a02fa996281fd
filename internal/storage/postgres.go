package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-menu/internal/database"
)

// pgExecutor is the part of database.DB the store needs.
type pgExecutor interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) error
}

// PostgresStore keeps documents as JSONB rows in menu_documents.
type PostgresStore struct {
	db pgExecutor
}

func NewPostgresStore(db pgExecutor) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Read(ctx context.Context, location string) ([]byte, error) {
	var document []byte
	err := s.db.QueryRow(ctx, database.GetMenuDocumentSQL, location).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return document, nil
}

// Write upserts the document in a single statement.
func (s *PostgresStore) Write(ctx context.Context, location string, document []byte) error {
	if err := s.db.Exec(ctx, database.UpsertMenuDocumentSQL, location, document); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}
