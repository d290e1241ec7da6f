package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the config for errors and sets defaults. The git URL is
// optional: it is only required for runs that clone a fresh workspace, and
// that requirement is enforced at the point of use.
func Validate(cfg *Config) error {
	if cfg.Tracker.BaseURL == "" {
		return fmt.Errorf("config: 'tracker.base-url' is required")
	}
	if _, err := url.ParseRequestURI(cfg.Tracker.BaseURL); err != nil {
		return fmt.Errorf("config: 'tracker.base-url' %q is not a valid URL", cfg.Tracker.BaseURL)
	}
	cfg.Tracker.BaseURL = strings.TrimRight(cfg.Tracker.BaseURL, "/")
	if cfg.Tracker.Username == "" {
		return fmt.Errorf("config: 'tracker.username' is required")
	}
	if cfg.Tracker.Token == "" {
		return fmt.Errorf("config: 'tracker.token' is required")
	}

	if cfg.Backend.APIKey == "" {
		return fmt.Errorf("config: 'backend.api-key' is required")
	}
	if cfg.Backend.BaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.Backend.BaseURL); err != nil {
			return fmt.Errorf("config: 'backend.base-url' %q is not a valid URL", cfg.Backend.BaseURL)
		}
		cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	}
	if cfg.Backend.MaxExamples < 0 {
		return fmt.Errorf("config: 'backend.max-examples' must be >= 0")
	}

	if cfg.Git.Remote == "" {
		cfg.Git.Remote = "origin"
	}
	if cfg.Git.BranchPrefix == "" {
		cfg.Git.BranchPrefix = "feature/"
	}
	if !strings.HasSuffix(cfg.Git.BranchPrefix, "/") {
		return fmt.Errorf("config: 'git.branch-prefix' must end with '/'")
	}

	if cfg.Prompts.File == "" {
		cfg.Prompts.File = "~/.autodoc/prompts.md"
	}
	if cfg.Prompts.ExamplesDir == "" {
		cfg.Prompts.ExamplesDir = "~/.autodoc/examples"
	}

	return nil
}
