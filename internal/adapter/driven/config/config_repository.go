package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/repository"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg types.Config

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".toml":
		if err := toml.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err := normalize(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// normalize trims whitespace and rejects environments without a region.
func normalize(cfg *types.Config) error {
	cfg.Profile = strings.TrimSpace(cfg.Profile)
	cfg.Account = strings.TrimSpace(cfg.Account)
	for i := range cfg.Regions {
		cfg.Regions[i] = strings.TrimSpace(cfg.Regions[i])
	}

	for i := range cfg.Environments {
		env := &cfg.Environments[i]
		env.Account = strings.TrimSpace(env.Account)
		env.Region = strings.TrimSpace(env.Region)
		env.Profile = strings.TrimSpace(env.Profile)
		if env.Region == "" {
			return fmt.Errorf("environment %d: region is required", i+1)
		}
	}

	if _, err := types.ParseFailurePolicy(cfg.Policy); err != nil {
		return err
	}
	if _, err := types.ParseIdentitySource(cfg.IdentitySource); err != nil {
		return err
	}
	return nil
}
