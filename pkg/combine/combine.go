// Package combine wires traversal, extraction and assembly into one
// export run.
package combine

import (
	"context"
	"fmt"
	"time"

	"repodoc/pkg/document"
	"repodoc/pkg/extract"
	"repodoc/pkg/filter"

	"go.uber.org/zap"
)

// Run scans roots and assembles the document. Each root's .gitignore is
// honoured; files are read and split concurrently.
func Run(ctx context.Context, roots []string, opts Options, logger *zap.Logger) (document.Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	startTime := time.Now()
	logger.Info("Starting export", zap.Strings("roots", roots))

	f := filter.New(filter.Options{
		Rules:       opts.Rules,
		MaxFileSize: opts.MaxFileSize,
		Debug:       opts.Debug,
	}, logger)

	collected, err := CollectFiles(roots, f, logger)
	if err != nil {
		logger.Error("Failed to collect files", zap.Error(err))
		return document.Document{}, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(collected.Candidates) == 0 {
		logger.Warn("No files to process after filtering")
	}

	records, err := ProcessFilesConcurrently(ctx, collected.Candidates, opts.MaxWorkers, extract.NewRegistry(logger), f, logger)
	if err != nil {
		logger.Error("Failed to process files", zap.Error(err))
		return document.Document{}, fmt.Errorf("failed to process files: %w", err)
	}

	doc, err := document.Assemble(records)
	if err != nil {
		logger.Error("Failed to assemble document", zap.Error(err))
		return document.Document{}, fmt.Errorf("failed to assemble document: %w", err)
	}

	logger.Info("Export assembled",
		zap.Int("files", len(doc.Files)),
		zap.Int("skipped", collected.Skipped+len(collected.Candidates)-len(records)),
		zap.Duration("elapsed", time.Since(startTime)))
	return doc, nil
}
