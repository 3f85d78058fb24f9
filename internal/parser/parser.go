// Package parser turns raw dataset files into tabular records. Formats are
// matched by filename extension through a small registry; each parser returns
// the same record shape so the pipeline never cares where data came from.
package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
)

// Parser defines a dataset format implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(data []byte) (dataset.RecordSet, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates no registered parser matches the filename.
var ErrUnsupported = errors.New("unsupported dataset format")

// Parse selects a parser by filename and decodes the raw bytes into records.
func Parse(filename string, data []byte) (dataset.RecordSet, error) {
	for _, p := range registry {
		if p.CanParse(filename) {
			return p.Parse(data)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
}

// ParseFile reads a file from disk and parses it by extension.
func ParseFile(path string) (dataset.RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(path, data)
}

func init() {
	Register(csvParser{})
	Register(jsonParser{})
	Register(xlsxParser{})
}
