package rtyaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadFile loads every document of the YAML file at path.
func ReadFile(path string) ([]*yaml.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	docs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return docs, nil
}

// WriteFile writes text to path, replacing any existing file.
func WriteFile(path string, text []byte) error {
	return os.WriteFile(path, text, 0o644)
}
