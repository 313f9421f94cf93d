package training

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the tokenizer used for training samples.
const DefaultEncoding = "cl100k_base"

// tiktokenVersion identifies the tokenizer implementation in sample records.
const tiktokenVersion = "tiktoken-go/v0.1.6"

func init() {
	// BPE ranks are embedded; never fetch them over the network.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Tiktoken adapts a tiktoken encoding to Tokenizer.
type Tiktoken struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", encoding, err)
	}
	return &Tiktoken{encoding: encoding, enc: enc}, nil
}

// ID returns the encoding name.
func (t *Tiktoken) ID() string { return t.encoding }

// Version returns the tokenizer implementation version.
func (t *Tiktoken) Version() string { return tiktokenVersion }

// Encode tokenizes text without special-token handling.
func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.EncodeOrdinary(text), nil
}

// Decode converts tokens back to text.
func (t *Tiktoken) Decode(tokens []int) (string, error) {
	return t.enc.Decode(tokens), nil
}
