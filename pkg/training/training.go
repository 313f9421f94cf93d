// Package training derives prompt/completion samples from exported files
// for language-model fine-tuning.
package training

import (
	"fmt"

	"repodoc/pkg/document"

	"go.uber.org/zap"
)

// MinTokens is the smallest token count that yields a sample with a
// non-empty prompt and completion.
const MinTokens = 2

// Tokenizer converts text to token ids and back.
type Tokenizer interface {
	ID() string
	Version() string
	Encode(text string) ([]int, error)
	Decode(tokens []int) (string, error)
}

// Sample is one prompt/completion split of a file's tokens.
type Sample struct {
	Path             string
	PromptTokens     []int
	CompletionTokens []int
	TokenizerID      string
	TokenizerVersion string
}

// Total returns the number of tokens in the sample.
func (s Sample) Total() int {
	return len(s.PromptTokens) + len(s.CompletionTokens)
}

// Record is the serialized form of a sample.
type Record struct {
	Prompt           string `json:"prompt"`
	Completion       string `json:"completion"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	Tokenizer        string `json:"tokenizer"`
	TokenizerVersion string `json:"tokenizer_version"`
}

// SplitIndex returns floor(0.8*n).
func SplitIndex(n int) int {
	return n * 4 / 5
}

// Generate tokenizes the file's reconstructed content and splits it 80/20.
// It returns false when tokenization fails or the file has fewer than
// MinTokens tokens.
func Generate(file document.FileRecord, tok Tokenizer) (Sample, bool) {
	tokens, err := tok.Encode(string(file.Content()))
	if err != nil || len(tokens) < MinTokens {
		return Sample{}, false
	}
	k := SplitIndex(len(tokens))
	return Sample{
		Path:             file.RelativePath,
		PromptTokens:     tokens[:k:k],
		CompletionTokens: tokens[k:],
		TokenizerID:      tok.ID(),
		TokenizerVersion: tok.Version(),
	}, true
}

// ToRecord decodes both halves of s into text.
func ToRecord(s Sample, tok Tokenizer) (Record, error) {
	prompt, err := tok.Decode(s.PromptTokens)
	if err != nil {
		return Record{}, fmt.Errorf("decode prompt of %s: %w", s.Path, err)
	}
	completion, err := tok.Decode(s.CompletionTokens)
	if err != nil {
		return Record{}, fmt.Errorf("decode completion of %s: %w", s.Path, err)
	}
	return Record{
		Prompt:           prompt,
		Completion:       completion,
		PromptTokens:     len(s.PromptTokens),
		CompletionTokens: len(s.CompletionTokens),
		Tokenizer:        s.TokenizerID,
		TokenizerVersion: s.TokenizerVersion,
	}, nil
}

// GenerateAll builds records for every file of doc in document order.
// Files that yield no sample or fail to decode are skipped.
func GenerateAll(doc document.Document, tok Tokenizer, logger *zap.Logger) []Record {
	if logger == nil {
		logger = zap.NewNop()
	}
	records := make([]Record, 0, len(doc.Files))
	for _, f := range doc.Files {
		sample, ok := Generate(f, tok)
		if !ok {
			logger.Debug("Skipping training sample", zap.String("file", f.RelativePath))
			continue
		}
		rec, err := ToRecord(sample, tok)
		if err != nil {
			logger.Warn("Failed to decode training sample", zap.String("file", f.RelativePath), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	logger.Debug("Generated training samples",
		zap.Int("files", len(doc.Files)),
		zap.Int("samples", len(records)))
	return records
}
