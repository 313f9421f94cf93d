// File: pkg/combine/worker.go
package combine

import (
	"context"
	"runtime"
	"sync"

	"repodoc/pkg/document"
	"repodoc/pkg/extract"
	"repodoc/pkg/filter"

	"go.uber.org/zap"
)

// result is the outcome of processing one candidate.
type result struct {
	candidate Candidate
	record    document.FileRecord
	err       error
}

// ProcessFilesConcurrently reads and extracts candidates using a worker pool.
// Records come back in completion order; the assembler imposes the final
// order. Files dropped while reading are reported through f.
func ProcessFilesConcurrently(ctx context.Context, candidates []Candidate, maxWorkers int, reg *extract.Registry, f *filter.Filter, logger *zap.Logger) ([]document.FileRecord, error) {
	jobs := make(chan Candidate, len(candidates))
	results := make(chan result, len(candidates))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(ctx, jobs, results, reg, f.MaxFileSize(), &wg, logger.With(zap.Int("workerID", w)))
	}

	for _, c := range candidates {
		jobs <- c
	}
	close(jobs)
	logger.Debug("All files distributed to workers", zap.Int("files", len(candidates)))

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]document.FileRecord, 0, len(candidates))
	for r := range results {
		if r.err != nil {
			f.Report(r.candidate.Entry, filter.Exclude(skipReason(r.err)))
			continue
		}
		records = append(records, r.record)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Debug("All files processed", zap.Int("processedFiles", len(records)))
	return records, nil
}

// worker processes candidates from the jobs channel until it is drained or
// ctx is cancelled.
func worker(ctx context.Context, jobs <-chan Candidate, results chan<- result, reg *extract.Registry, maxSize int64, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for c := range jobs {
		if ctx.Err() != nil {
			return
		}
		record, err := ProcessSingleFile(c, reg, maxSize, logger)
		if err != nil {
			logger.Debug("Worker skipped file",
				zap.String("filePath", c.Entry.AbsolutePath),
				zap.Error(err))
		}
		results <- result{candidate: c, record: record, err: err}
	}
}
