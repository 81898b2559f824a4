package lsp

import (
	"errors"
	"path/filepath"
	"strings"

	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/uriutil"
	"bennypowers.dev/tickify/lsp/types"
	"github.com/bmatcuk/doublestar/v4"
)

// GetConfig returns the current effective configuration
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the effective configuration and applies it to the
// logger and the processor. Invalid fields are logged and fall back to
// their defaults where they are used.
func (s *Server) SetConfig(config types.ServerConfig) {
	if err := config.Validate(); err != nil {
		log.Warn("Invalid configuration: %v", err)
	}

	s.configMu.Lock()
	s.config = config
	s.configMu.Unlock()

	if level, err := log.ParseLevel(config.LogLevel); err == nil {
		log.SetLevel(level)
	}
	s.processor.SetStrategy(config.ParsedStrategy())
}

// SetClientSettings replaces the client's configuration layer, which takes
// precedence over workspace files. nil clears it.
func (s *Server) SetClientSettings(overlay *types.ConfigOverlay) {
	s.configMu.Lock()
	s.clientSettings = overlay
	s.configMu.Unlock()
	s.applyLayers()
}

// SetCommandLineSettings sets the layer given by command line flags. It sits
// directly above the defaults, so workspace files and the client override it.
func (s *Server) SetCommandLineSettings(overlay *types.ConfigOverlay) {
	s.configMu.Lock()
	s.commandLine = overlay
	s.configMu.Unlock()
	s.applyLayers()
}

// LoadWorkspaceConfig reads package.json and .tickify.yaml from the
// workspace root and rebuilds the effective configuration.
// Layers are applied lowest first: defaults, command line, package.json,
// .tickify.yaml, client settings. A file that fails to parse is skipped and reported.
func (s *Server) LoadWorkspaceConfig() error {
	rootPath := s.RootPath()

	var layers []*types.ConfigOverlay
	var errs []error

	pkgConfig, err := ReadPackageJsonConfig(rootPath)
	if err != nil {
		errs = append(errs, err)
	} else if pkgConfig != nil {
		log.Info("Loaded configuration from package.json")
		layers = append(layers, pkgConfig)
	}

	fileConfig, err := ReadConfigFile(rootPath)
	if err != nil {
		errs = append(errs, err)
	} else if fileConfig != nil {
		log.Info("Loaded configuration from workspace config file")
		layers = append(layers, fileConfig)
	}

	s.configMu.Lock()
	s.fileLayers = layers
	s.configMu.Unlock()
	s.applyLayers()

	return errors.Join(errs...)
}

func (s *Server) applyLayers() {
	s.configMu.RLock()
	config := types.DefaultConfig().Merge(s.commandLine)
	for _, layer := range s.fileLayers {
		config = config.Merge(layer)
	}
	config = config.Merge(s.clientSettings)
	s.configMu.RUnlock()

	s.SetConfig(config)
}

// ShouldProcess reports whether automatic conversion applies to a document
func (s *Server) ShouldProcess(uri, languageID string) bool {
	config := s.GetConfig()
	if !config.Enabled || !config.HandlesLanguage(languageID) {
		return false
	}
	return !s.IsExcluded(uri)
}

// IsExcluded reports whether uri matches a configured exclude glob.
// Paths inside the workspace are matched relative to its root; others are
// matched as absolute slash-separated paths. Documents without a file path,
// such as untitled buffers, are never excluded.
func (s *Server) IsExcluded(uri string) bool {
	if !uriutil.IsFileURI(uri) {
		return false
	}
	return matchesAny(s.GetConfig().Exclude, relativePath(s.RootPath(), uriutil.URIToPath(uri)))
}

func relativePath(rootPath, path string) string {
	if rootPath != "" {
		if rel, err := filepath.Rel(rootPath, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			log.Debug("Ignoring invalid exclude pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
