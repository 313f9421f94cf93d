// File: pkg/combine/execute.go
package combine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"repodoc/pkg/config"
	"repodoc/pkg/document"
	"repodoc/pkg/filter"
	"repodoc/pkg/ignore"
	"repodoc/pkg/output"
	"repodoc/pkg/training"

	"go.uber.org/zap"
)

// Export runs a full export described by args: load the config file, merge
// the exclusion rules, assemble the document, and write every requested
// output. A malformed config file aborts before any traversal.
func Export(ctx context.Context, args Arguments, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Starting export", zap.Strings("paths", args.Paths))

	cfg, err := config.Load(".", args.ConfigFile)
	if err != nil {
		logger.Error("Failed to load config file", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}
	var configPatterns []string
	if cfg != nil {
		configPatterns = cfg.IgnorePatterns
		logger.Debug("Loaded config file",
			zap.String("path", cfg.Path),
			zap.Int("ignorePatterns", len(configPatterns)))
	}

	opts := Options{
		Rules:       ignore.Merge(configPatterns, args.IgnorePatterns),
		MaxFileSize: filter.DefaultMaxFileSize,
		MaxWorkers:  args.MaxWorkers,
		Debug:       args.Debug,
	}

	doc, err := Run(ctx, args.Paths, opts, logger)
	if err != nil {
		return err
	}

	outputPath := args.Output
	if outputPath == "" {
		outputPath = DefaultOutput
	}

	if err := writeMarkdown(args, outputPath, doc, logger); err != nil {
		return err
	}

	if args.PDF {
		pdfPath := pdfPathFor(outputPath)
		if err := writeOutput(pdfPath, logger, func(w io.Writer) error { return output.PDF(w, doc) }); err != nil {
			return fmt.Errorf("failed to write pdf: %w", err)
		}
		logger.Info("Wrote pdf", zap.String("outputFile", pdfPath))
	}

	if args.Training != "" {
		tok, err := training.NewTiktoken(training.DefaultEncoding)
		if err != nil {
			logger.Error("Failed to initialize tokenizer", zap.Error(err))
			return fmt.Errorf("failed to initialize tokenizer: %w", err)
		}
		records := training.GenerateAll(doc, tok, logger)
		if err := writeOutput(args.Training, logger, func(w io.Writer) error { return output.TrainingJSON(w, records) }); err != nil {
			return fmt.Errorf("failed to write training samples: %w", err)
		}
		logger.Info("Wrote training samples",
			zap.String("outputFile", args.Training),
			zap.Int("samples", len(records)))
	}

	return nil
}

// writeMarkdown streams the markdown rendering to args.Stdout when
// streaming, and writes it to path otherwise.
func writeMarkdown(args Arguments, path string, doc document.Document, logger *zap.Logger) error {
	if args.Stream && args.Stdout != nil {
		if err := output.Markdown(args.Stdout, doc); err != nil {
			logger.Error("Failed to stream markdown", zap.Error(err))
			return err
		}
		logger.Debug("Streamed markdown to stdout", zap.Int("files", len(doc.Files)))
		return nil
	}

	if err := ensureDirectory(filepath.Dir(path), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := output.WriteFile(path, doc); err != nil {
		logger.Error("Failed to write markdown", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Info("Successfully exported repository",
		zap.String("outputFile", path),
		zap.Int("totalFiles", len(doc.Files)))
	return nil
}

// writeOutput renders into memory with render and writes the result to path.
func writeOutput(path string, logger *zap.Logger, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.Error("Failed to render output", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := ensureDirectory(filepath.Dir(path), logger); err != nil {
		return err
	}
	return writeToFile(path, buf.Bytes(), 0o644, logger)
}

// pdfPathFor replaces the extension of the markdown path with .pdf.
func pdfPathFor(markdownPath string) string {
	return strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".pdf"
}
