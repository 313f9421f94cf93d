package combine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"repodoc/pkg/document"
	"repodoc/pkg/extract"
	"repodoc/pkg/filter"

	"go.uber.org/zap"
)

// skipError marks a file that was dropped after reading, with the reason
// reported for it.
type skipError struct {
	reason string
	err    error
}

func (e *skipError) Error() string {
	if e.err == nil {
		return e.reason
	}
	return fmt.Sprintf("%s: %v", e.reason, e.err)
}

func (e *skipError) Unwrap() error { return e.err }

// skipReason returns the exclusion reason carried by err, or
// filter.ReasonUnreadable for any other error.
func skipReason(err error) string {
	var se *skipError
	if errors.As(err, &se) {
		return se.reason
	}
	return filter.ReasonUnreadable
}

// ProcessSingleFile reads one candidate and splits it into segments. Files
// that grew past maxSize since traversal or that turn out to be binary are
// returned as errors carrying their skip reason.
func ProcessSingleFile(c Candidate, reg *extract.Registry, maxSize int64, logger *zap.Logger) (document.FileRecord, error) {
	logger.Debug("Processing file", zap.String("filePath", c.Entry.AbsolutePath))

	file, err := os.Open(c.Entry.AbsolutePath)
	if err != nil {
		return document.FileRecord{}, &skipError{reason: filter.ReasonUnreadable, err: err}
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return document.FileRecord{}, &skipError{reason: filter.ReasonUnreadable, err: err}
	}
	if int64(len(content)) > maxSize {
		return document.FileRecord{}, &skipError{reason: filter.ReasonTooLarge}
	}
	if isBinaryContent(content) {
		return document.FileRecord{}, &skipError{reason: filter.ReasonBinaryContent}
	}

	segments := reg.Extract(extract.Source{
		Name:     c.RecordPath,
		Language: c.Language,
		Content:  content,
	})

	logger.Debug("Successfully processed file",
		zap.String("filePath", c.Entry.AbsolutePath),
		zap.Int("contentSizeBytes", len(content)),
		zap.Int("segments", len(segments)))

	return document.FileRecord{
		RelativePath: c.RecordPath,
		Language:     c.Language,
		Segments:     segments,
	}, nil
}
