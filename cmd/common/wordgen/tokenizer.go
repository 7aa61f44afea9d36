package wordgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/segment"
)

// ErrTokenizerUnavailable is returned by tokenizers that cannot run.
var ErrTokenizerUnavailable = errors.New("tokenizer unavailable")

// Tokenizer splits free text into word tokens. The engine treats any error as
// "no extra tokens".
type Tokenizer interface {
	Tokenize(s string) ([]string, error)
}

// NoTokenizer is the disabled tokenizer.
type NoTokenizer struct{}

func (NoTokenizer) Tokenize(string) ([]string, error) {
	return nil, ErrTokenizerUnavailable
}

// SegmentTokenizer splits text on Unicode word boundaries (UAX #29) and
// returns every segment that is not pure whitespace.
type SegmentTokenizer struct{}

func (SegmentTokenizer) Tokenize(s string) ([]string, error) {
	seg := segment.NewWordSegmenterDirect([]byte(s))

	var tokens []string
	for seg.Segment() {
		text := seg.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		tokens = append(tokens, text)
	}
	if err := seg.Err(); err != nil {
		return nil, fmt.Errorf("segmenting %d bytes: %w", len(s), err)
	}
	return tokens, nil
}
