package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tracker holds issue-tracker connection settings.
type Tracker struct {
	BaseURL  string `yaml:"base-url"`
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
}

// Git holds source-control settings. Username and Token are only used when
// cloning a fresh workspace; an existing checkout authenticates however its
// remote is already configured.
type Git struct {
	URL           string `yaml:"url"`
	Username      string `yaml:"username"`
	Token         string `yaml:"token"`
	Remote        string `yaml:"remote"`
	DefaultBranch string `yaml:"default-branch"`
	BranchPrefix  string `yaml:"branch-prefix"`
}

// Backend holds text-generation backend settings.
type Backend struct {
	BaseURL     string `yaml:"base-url"`
	APIKey      string `yaml:"api-key"`
	Model       string `yaml:"model"`
	MaxExamples int    `yaml:"max-examples"`
}

// Prompts holds locations of the prompt template file and examples directory.
type Prompts struct {
	File        string `yaml:"file"`
	ExamplesDir string `yaml:"examples-dir"`
}

type Config struct {
	Tracker Tracker `yaml:"tracker"`
	Git     Git     `yaml:"git"`
	Backend Backend `yaml:"backend"`
	Prompts Prompts `yaml:"prompts"`
}

// Dir returns the autodoc configuration directory (~/.autodoc).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locating home directory: %w", err)
	}
	return filepath.Join(home, ".autodoc"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads a YAML config file and returns a validated Config with
// defaults applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config: %s not found — run 'autodoc init' first", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	expandHome(&cfg)
	return &cfg, nil
}

// Save writes the config to path, creating the directory as needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: creating %s: %w", filepath.Dir(path), err)
	}
	// 0600: the file carries credentials.
	return os.WriteFile(path, data, 0600)
}

// expandHome rewrites leading "~/" in prompt paths after validation.
func expandHome(cfg *Config) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for _, p := range []*string{&cfg.Prompts.File, &cfg.Prompts.ExamplesDir} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}
}
