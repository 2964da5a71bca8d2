package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveToFile writes validated settings as indented JSON. The file is
// staged alongside the target and renamed into place so a crash mid-write
// never leaves a truncated settings file behind.
func SaveToFile(settings *RadioSettings, path string) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid settings: %w", err)
	}

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	staging := path + ".tmp"
	if err := os.WriteFile(staging, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(staging, path); err != nil {
		os.Remove(staging)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}

func LoadFromFile(path string) (*RadioSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var settings RadioSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return &settings, nil
}

func DefaultPath(name string) string {
	return filepath.Join("etc", "radios", fmt.Sprintf("%s.json", name))
}
