package output

import (
	"fmt"
	"io"

	"repodoc/pkg/training"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TrainingJSON writes records as a pretty-printed JSON array.
func TrainingJSON(w io.Writer, records []training.Record) error {
	if records == nil {
		records = []training.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode training samples: %w", err)
	}
	return nil
}
