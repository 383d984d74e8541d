// Package storage reads precomputed document embeddings from persistent storage.
package storage

import (
	"context"

	"github.com/hyperjump/kotae/internal/models"
)

// RecordSource yields the raw embedding rows loaded into the record store at startup.
type RecordSource interface {
	// ListRecords returns all rows in storage order.
	ListRecords(ctx context.Context) ([]*models.RecordRow, error)
	CountRecords(ctx context.Context) (int64, error)
	Close() error
}
