package config

import (
	"log"
	"os"
	"path/filepath"
)

// Initialize seeds dir with the default configuration, leaving an
// existing config.yaml untouched, and returns the loaded result.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Printf("wrote %s", configPath)
	} else {
		logger.Printf("%s already exists, leaving it alone", configPath)
	}

	return Load(dir)
}
