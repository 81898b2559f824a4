package lsp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bennypowers.dev/tickify/lsp/types"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are the workspace-root config files, in lookup order
var ConfigFileNames = []string{".tickify.yaml", ".tickify.yml"}

// ReadConfigFile reads the first of ConfigFileNames found in rootPath.
// Returns nil if none exists (not an error). Unknown keys are rejected.
func ReadConfigFile(rootPath string) (*types.ConfigOverlay, error) {
	if rootPath == "" {
		return nil, nil
	}

	for _, name := range ConfigFileNames {
		path := filepath.Join(rootPath, name)
		data, err := os.ReadFile(path) //nolint:gosec // G304: Reading workspace config - local trusted environment
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return decodeConfigFile(name, data)
	}

	return nil, nil
}

func decodeConfigFile(name string, data []byte) (*types.ConfigOverlay, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var overlay types.ConfigOverlay
	if err := decoder.Decode(&overlay); err != nil {
		if errors.Is(err, io.EOF) {
			// empty file
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &overlay, nil
}
