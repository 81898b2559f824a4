package lsp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/tickify/lsp/types"
	"github.com/tidwall/jsonc"
)

// readPackageJsonFile reads and parses package.json from the given root path.
// Returns the parsed JSON as a map, or nil if the file doesn't exist.
func readPackageJsonFile(rootPath string) (map[string]any, error) {
	packageJSONPath := filepath.Join(rootPath, "package.json")

	data, err := os.ReadFile(packageJSONPath) //nolint:gosec // G304: Reading workspace package.json - local trusted environment
	if os.IsNotExist(err) {
		return nil, nil // Not an error, just no config
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments and trailing commas)
	data = jsonc.ToJSON(data)

	var pkgJSON map[string]any
	if err := json.Unmarshal(data, &pkgJSON); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	return pkgJSON, nil
}

// ReadPackageJsonConfig reads the "tickify" configuration from package.json.
// Returns nil if there is no package.json or it has no tickify key (not an error).
func ReadPackageJsonConfig(rootPath string) (*types.ConfigOverlay, error) {
	if rootPath == "" {
		return nil, nil
	}

	pkgJSON, err := readPackageJsonFile(rootPath)
	if err != nil || pkgJSON == nil {
		return nil, err
	}

	section, ok := pkgJSON[types.ConfigKey]
	if !ok {
		return nil, nil
	}

	overlay, err := types.DecodeOverlay(section)
	if err != nil {
		return nil, fmt.Errorf("package.json: %w", err)
	}
	return overlay, nil
}
