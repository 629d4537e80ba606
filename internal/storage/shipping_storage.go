package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tagadou/backend/internal/models"
)

// FileShippingStore persists the shipping tariffs as a JSON file on
// disk. The file is the single source of truth; clients only read
// through it. Writes go through a temp file and rename so a crash
// never leaves a half-written settings file.
type FileShippingStore struct {
	mu   sync.Mutex
	path string
}

// NewFileShippingStore creates a store backed by the given file path.
func NewFileShippingStore(path string) *FileShippingStore {
	return &FileShippingStore{path: path}
}

// Load reads the settings from disk. A missing file yields the default
// tariffs.
func (s *FileShippingStore) Load() (models.ShippingSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultShippingSettings(), nil
		}
		return models.ShippingSettings{}, fmt.Errorf("failed to read shipping settings: %w", err)
	}

	var settings models.ShippingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.ShippingSettings{}, fmt.Errorf("failed to parse shipping settings: %w", err)
	}

	return settings, nil
}

// Save replaces the settings on disk.
func (s *FileShippingStore) Save(settings models.ShippingSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode shipping settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "shipping_settings_*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write shipping settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace shipping settings: %w", err)
	}

	return nil
}
