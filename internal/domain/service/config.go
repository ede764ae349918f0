package service

import (
	"fmt"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

const (
	defaultTimeoutSec       = 30
	defaultRateLimit        = 5000
	defaultMaxRetries       = 3
	defaultPageSize         = 100
	defaultMaxSearchResults = 1000
)

var _ ports.ConfigService = (*ConfigService)(nil)

// ConfigService implements configuration management business logic
type ConfigService struct {
	configRepo ports.ConfigRepository
}

// NewConfigService creates a new configuration service
func NewConfigService(configRepo ports.ConfigRepository) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
	}
}

// GetConfig retrieves configuration with fallbacks and validation
func (s *ConfigService) GetConfig(configPath string) (*entity.Config, error) {
	if configPath == "" {
		configPath = s.configRepo.FindConfigFile()
	}

	config, err := s.configRepo.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config = s.SetDefaults(config)

	if err := s.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfig validates configuration values
func (s *ConfigService) ValidateConfig(config *entity.Config) error {
	gh := config.GitHub
	if gh.TimeoutSec < 0 || gh.RateLimit < 0 || gh.MaxRetries < 0 || gh.PageSize < 0 || gh.MaxSearchResults < 0 {
		return fmt.Errorf("github numeric settings must not be negative")
	}
	if gh.PageSize > 100 {
		return fmt.Errorf("github.page_size must be at most 100, got %d", gh.PageSize)
	}

	if gh.Repository != "" {
		if _, err := entity.ParseRepositoryRef(gh.Repository); err != nil {
			return fmt.Errorf("github.repository: %w", err)
		}
	}

	switch config.Output.Format {
	case "", string(ports.OutputFormatText), string(ports.OutputFormatJSON):
	default:
		return fmt.Errorf("unsupported output format %q", config.Output.Format)
	}

	return nil
}

// SetDefaults applies default values to configuration
func (s *ConfigService) SetDefaults(config *entity.Config) *entity.Config {
	if config.Output.Format == "" {
		config.Output.Format = string(ports.OutputFormatText)
	}

	if config.GitHub.TimeoutSec == 0 {
		config.GitHub.TimeoutSec = defaultTimeoutSec
	}

	if config.GitHub.RateLimit == 0 {
		config.GitHub.RateLimit = defaultRateLimit
	}

	if config.GitHub.MaxRetries == 0 {
		config.GitHub.MaxRetries = defaultMaxRetries
	}

	if config.GitHub.PageSize == 0 {
		config.GitHub.PageSize = defaultPageSize
	}

	if config.GitHub.MaxSearchResults == 0 {
		config.GitHub.MaxSearchResults = defaultMaxSearchResults
	}

	return config
}

// ResolveRepository picks the target repository: flag > config > environment
func (s *ConfigService) ResolveRepository(config *entity.Config, flagValue, envValue string) (entity.RepositoryRef, error) {
	candidates := []struct {
		source string
		value  string
	}{
		{"--repo flag", flagValue},
		{"github.repository", config.GitHub.Repository},
		{"GITHUB_REPOSITORY", envValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		ref, err := entity.ParseRepositoryRef(c.value)
		if err != nil {
			return entity.RepositoryRef{}, fmt.Errorf("%s: %w", c.source, err)
		}
		return ref, nil
	}

	return entity.RepositoryRef{}, fmt.Errorf("target repository required. Use --repo, github.repository in config, or GITHUB_REPOSITORY")
}
