package main

import (
	"context"
	"fmt"

	"github.com/hyperjump/kotae/internal/answer"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/memory"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// Components is everything one running kotae process owns.
type Components struct {
	Config  *config.Config
	Source  *storage.SQLiteStorage
	Store   *vector.Store
	Report  *indexer.LoadReport
	Engine  *search.Engine
	Service *answer.Service
}

// Close releases the database and the model clients.
func (c *Components) Close() {
	if c.Service != nil {
		_ = c.Service.Close()
	}
	if c.Source != nil {
		_ = c.Source.Close()
	}
}

// Status reports database and store counts plus the retrieval settings.
func (c *Components) Status(ctx context.Context) (*models.Status, error) {
	rows, err := c.Source.CountRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	ranker := c.Engine.Ranker()
	entries, capacity := c.Service.Memory()
	return &models.Status{
		DatabasePath: c.Config.Storage.DatabasePath,
		Rows:         rows,
		Loaded:       c.Store.Size(),
		Rejected:     len(c.Report.Rejected),
		Dimensions:   c.Store.DimensionCounts(),
		Ranker:       ranker.Strategy().String(),
		Threshold:    ranker.Threshold(),
		NameBoost:    c.Config.Retrieval.NameBoost,
		Workers:      c.Config.Retrieval.Workers,
		Memory:       models.MemoryStatus{Capacity: capacity, Entries: entries},
	}, nil
}

// initializeComponents opens the database, loads every stored embedding and wires the
// query pipeline. The record store is sealed before this returns.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	schema := storage.Schema{
		Table:         cfg.Storage.Table,
		IDColumn:      cfg.Storage.IDColumn,
		VectorColumn:  cfg.Storage.VectorColumn,
		ContentColumn: cfg.Storage.ContentColumn,
	}
	source, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c := &Components{Config: cfg, Source: source, Store: vector.NewStore()}

	loader := indexer.NewLoader(source, c.Store,
		indexer.WithLogger(logger),
		indexer.WithShowNames(cfg.Retrieval.ShowDocumentNames))
	c.Report, err = loader.Load(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load embeddings: %w", err)
	}

	rankCfg, err := cfg.Retrieval.Ranking()
	if err != nil {
		c.Close()
		return nil, err
	}
	mem, err := memory.NewQueryMemory(cfg.Retrieval.MemoryLimit)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Engine = search.NewEngine(c.Store, ranking.NewRanker(rankCfg, ranking.WithLogger(logger)), mem,
		search.WithWorkers(cfg.Retrieval.Workers),
		search.WithLogger(logger))

	embedder, err := embedding.NewEmbedder(cfg.Embedding, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	generator, err := generation.NewGenerator(cfg.Generation, logger)
	if err != nil {
		_ = embedder.Close()
		c.Close()
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	c.Service = answer.NewService(embedder, c.Engine, generator,
		answer.WithLogger(logger),
		answer.WithPromptStyle(cfg.Generation.PromptStyle))

	logger.Info("components initialized",
		zap.Int("records", c.Store.Size()),
		zap.Int("rejected", len(c.Report.Rejected)),
		zap.String("ranker", rankCfg.Strategy.String()),
		zap.Int("memory_limit", cfg.Retrieval.MemoryLimit))
	return c, nil
}
