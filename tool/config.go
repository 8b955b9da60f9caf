package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fogify-ai/fogify-go/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

// DefaultMaxUploadSize is the upload ceiling the Fogify backend enforces (500 MiB).
const DefaultMaxUploadSize = 500 * 1024 * 1024

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		BackendURL:     "http://localhost:8000",
		Port:           53320,
		MaxUploadSize:  DefaultMaxUploadSize,
		HealthInterval: 15,
		NotifyWS:       true,
	}
}

func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, create with default values
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	var configChanged bool
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaultConfig().BackendURL
		configChanged = true
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultConfig().Port
		configChanged = true
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
		configChanged = true
	}
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = defaultConfig().HealthInterval
		configChanged = true
	}
	if configChanged {
		if writeErr := writeConfig(path, cfg); writeErr != nil {
			DefaultLogger.Warnf("Failed to update config file: %v", writeErr)
		}
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

// PersistAppConfig updates in-memory AppConfig and writes the config file.
func PersistAppConfig(cfg *types.AppConfig) {
	if cfg == nil {
		return
	}
	CurrentConfig = *cfg
	if err := writeConfig(ConfigPath, CurrentConfig); err != nil {
		DefaultLogger.Warnf("Failed to persist config: %v", err)
	}
}
