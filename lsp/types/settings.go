package types

import (
	"encoding/json"
	"fmt"
)

// DecodeOverlay converts a generic JSON value, as produced by unmarshalling
// into any, to a ConfigOverlay
func DecodeOverlay(value any) (*ConfigOverlay, error) {
	if _, ok := value.(map[string]any); !ok {
		return nil, fmt.Errorf("%s settings must be an object, got %T", ConfigKey, value)
	}

	// Convert to JSON and back to parse into struct
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	var overlay ConfigOverlay
	if err := json.Unmarshal(jsonBytes, &overlay); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &overlay, nil
}

// ParseSettings extracts tickify settings from client settings or
// initialization options, which nest them as { "tickify": { ... } }.
// Returns nil if the settings hold no tickify section (not an error).
func ParseSettings(settings any) (*ConfigOverlay, error) {
	if settings == nil {
		return nil, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings is not a map")
	}

	ours, exists := settingsMap[ConfigKey]
	if !exists || ours == nil {
		return nil, nil
	}
	return DecodeOverlay(ours)
}
