package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory
// when no explicit path is given.
const DefaultFile = "config.yaml"

type Config struct {
	Scan struct {
		Root             string `yaml:"root"`
		Workers          int    `yaml:"workers"` // 0 picks a pool size from NumCPU
		Refine           bool   `yaml:"refine"`
		IgnoreCache      bool   `yaml:"ignore_cache"`
		ContextSignature bool   `yaml:"context_signature"`
	} `yaml:"scan"`
	AI struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"` // empty picks the provider default
		APIKey   string `yaml:"api_key"`
		Endpoint string `yaml:"endpoint"`
	} `yaml:"ai"`
	Guardrails struct {
		StayUnderRoot    bool    `yaml:"stay_under_root"`
		PinTerraform     bool    `yaml:"pin_terraform"`
		PreferFolderMove bool    `yaml:"prefer_folder_move"`
		NamingConvention string  `yaml:"naming_convention"` // auto | kebab | snake | off
		SnapCutoff       float64 `yaml:"snap_cutoff"`
	} `yaml:"guardrails"`
	History struct {
		Backend string `yaml:"backend"` // json | sqlite
		Path    string `yaml:"path"`
	} `yaml:"history"`
}

// Default returns a config with every knob at its shipped value.
func Default() *Config {
	var cfg Config
	cfg.Scan.Refine = true
	cfg.AI.Provider = "ollama"
	cfg.Guardrails.StayUnderRoot = true
	cfg.Guardrails.PinTerraform = true
	cfg.Guardrails.PreferFolderMove = true
	cfg.Guardrails.NamingConvention = "auto"
	cfg.Guardrails.SnapCutoff = 0.8
	cfg.History.Backend = "json"
	return &cfg
}

// Load reads the configuration, layering yaml over defaults and
// environment variables over yaml. A missing DefaultFile is fine; a
// missing explicit path is an error.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	// 2. Load YAML config over the defaults
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// run on defaults
	default:
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if apiKey := os.Getenv("SORTD_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if provider := os.Getenv("SORTD_AI_PROVIDER"); provider != "" {
		cfg.AI.Provider = provider
	}
	if model := os.Getenv("SORTD_AI_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if endpoint := os.Getenv("SORTD_AI_ENDPOINT"); endpoint != "" {
		cfg.AI.Endpoint = endpoint
	}

	return cfg, nil
}

// HistoryPath resolves the cache file location, deriving a per-backend
// default when none is configured.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	if strings.EqualFold(c.History.Backend, "sqlite") {
		return "sortd_history.db"
	}
	return "sortd_history.json"
}
