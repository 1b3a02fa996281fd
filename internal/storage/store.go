// Package storage provides durable document stores for the menu catalog.
// A document is an opaque byte slice addressed by a location string; every
// backend writes a document all-or-nothing.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no document exists at the location.
var ErrNotFound = errors.New("document not found")

// DocumentStore reads and writes whole documents.
type DocumentStore interface {
	Read(ctx context.Context, location string) ([]byte, error)
	Write(ctx context.Context, location string, document []byte) error
}
