package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/datacleaner-cli/internal/dataset"
)

// Parser turns raw file content into a dataset.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) (*dataset.Dataset, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// Lookup returns the registered parser for filename.
func Lookup(filename string) (Parser, error) {
	for _, p := range registry {
		if p.CanParse(filename) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(filename), ErrUnsupported)
}

// ParseFile selects a parser based on filename and returns the parsed dataset.
func ParseFile(path string) (*dataset.Dataset, error) {
	chosen, err := Lookup(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return chosen.Parse(data)
}

func init() {
	Register(csvParser{})
}

// ErrUnsupported indicates a format is not supported yet.
var ErrUnsupported = errors.New("unsupported file format")
