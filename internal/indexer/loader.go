// Package indexer loads stored embeddings into the in-memory record store.
package indexer

import (
	"context"
	"fmt"

	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// Rejection describes a row that was dropped during loading.
type Rejection struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// LoadReport summarizes a load.
type LoadReport struct {
	Rows     int         `json:"rows"`
	Loaded   int         `json:"loaded"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// Loader reads rows from a record source and fills a record store.
type Loader struct {
	source    storage.RecordSource
	store     *vector.Store
	logger    *zap.Logger
	showNames bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for rejected rows and, with WithShowNames, loaded names.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithShowNames logs the name of every loaded document.
func WithShowNames(show bool) LoaderOption {
	return func(ld *Loader) { ld.showNames = show }
}

// NewLoader creates a loader writing into store.
func NewLoader(source storage.RecordSource, store *vector.Store, opts ...LoaderOption) *Loader {
	ld := &Loader{source: source, store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load adds every row with a parseable, non-empty vector to the store and then freezes
// it. A bad row is logged, reported and skipped; only a failing source aborts the load.
func (ld *Loader) Load(ctx context.Context) (*LoadReport, error) {
	rows, err := ld.source.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	report := &LoadReport{Rows: len(rows)}
	for _, row := range rows {
		if ld.showNames {
			ld.logger.Info("loading embedding", zap.String("document", row.ID))
		}
		vec, err := vector.ParseVector(row.VectorJSON)
		if err == nil {
			err = ld.store.Add(row.ID, vec, row.Content)
		}
		if err != nil {
			ld.logger.Warn("embedding rejected", zap.String("document", row.ID), zap.Error(err))
			report.Rejected = append(report.Rejected, Rejection{ID: row.ID, Reason: err.Error()})
			continue
		}
		report.Loaded++
	}
	ld.store.Freeze()
	ld.logger.Info("embeddings loaded",
		zap.Int("rows", report.Rows),
		zap.Int("loaded", report.Loaded),
		zap.Int("rejected", len(report.Rejected)))
	return report, nil
}
