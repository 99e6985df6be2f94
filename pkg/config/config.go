package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds tool settings persisted between runs. API keys are
// deliberately not part of it: the augmenter reads credentials from
// the environment only.
type Config struct {
	SelectedProvider string   `yaml:"selected_provider"`
	SelectedModel    string   `yaml:"selected_model"`
	AssetsDir        string   `yaml:"assets_dir"`
	KnownCategories  []string `yaml:"known_categories"`
}

// DefaultCategories is the category set used when no config file exists.
var DefaultCategories = []string{
	"appetizers",
	"soups",
	"salads",
	"mains",
	"sides",
	"baking",
	"desserts",
	"drinks",
}

func defaultConfig() *Config {
	return &Config{
		SelectedProvider: "gemini",
		SelectedModel:    "",
		AssetsDir:        filepath.Join("assets", "images"),
		KnownCategories:  append([]string(nil), DefaultCategories...),
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".draftcheck")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Return default config
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.SelectedProvider == "" {
		cfg.SelectedProvider = "gemini"
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = filepath.Join("assets", "images")
	}
	if len(cfg.KnownCategories) == 0 {
		cfg.KnownCategories = append([]string(nil), DefaultCategories...)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AddCategory appends a category if it is not already known
// (case-insensitive). Returns true if the set changed.
func (c *Config) AddCategory(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, k := range c.KnownCategories {
		if strings.EqualFold(k, name) {
			return false
		}
	}
	c.KnownCategories = append(c.KnownCategories, strings.ToLower(name))
	return true
}

// APIKey resolves the augmenter credential from the environment.
// DRAFTCHECK_API_KEY wins; provider-specific variables are a fallback.
func APIKey(provider string) string {
	if key := strings.TrimSpace(os.Getenv("DRAFTCHECK_API_KEY")); key != "" {
		return key
	}
	switch provider {
	case "gemini":
		return strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	case "openai":
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case "anthropic":
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	}
	return ""
}
