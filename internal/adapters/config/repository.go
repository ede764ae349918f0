package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

const dotfileBase = ".github-issue-upsert"

var _ ports.ConfigRepository = (*Repository)(nil)

// Repository implements the ConfigRepository interface
type Repository struct {
	homeDir string
}

// NewRepository creates a new config repository
func NewRepository() *Repository {
	home, _ := os.UserHomeDir()
	return &Repository{homeDir: home}
}

// LoadConfig loads configuration from a JSON or YAML file
func (r *Repository) LoadConfig(configPath string) (*entity.Config, error) {
	if configPath == "" {
		configPath = "config.json"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config entity.Config
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	return &config, nil
}

// GenerateExampleConfig generates an example configuration file
func (r *Repository) GenerateExampleConfig(filePath string) error {
	config := entity.Config{}
	config.GitHub.Repository = "your-org/your-repo"
	config.GitHub.TimeoutSec = 30
	config.GitHub.MaxRetries = 3
	config.Defaults.Labels = []string{"automated", "ci-failure"}
	config.Defaults.Assignees = []string{"your-github-login"}
	config.Output.Format = "text"

	var data []byte
	var err error
	if isYAML(filePath) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error marshaling example config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing example config: %v", err)
	}

	return nil
}

// FindConfigFile looks for config files in standard locations
func (r *Repository) FindConfigFile() string {
	candidates := []string{
		"config.json",
		"config.yaml",
		dotfileBase + ".json",
		dotfileBase + ".yaml",
	}
	if r.homeDir != "" {
		candidates = append(candidates,
			filepath.Join(r.homeDir, dotfileBase+".json"),
			filepath.Join(r.homeDir, dotfileBase+".yaml"),
		)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
