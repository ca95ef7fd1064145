// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GitHubRepo    string `yaml:"github_repo"`
	ShorthandBase string `yaml:"shorthand_base"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:       "agentboot",
			DisplayName:   "AgentBoot",
			Description:   "Bootstrap repositories with agent configuration files",
			HomeDir:       ".agentboot",
			EnvPrefix:     "AGENTBOOT",
			GitHubRepo:    "agentx-labs/agentboot",
			ShorthandBase: "https://github.com",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "agentboot").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "AgentBoot").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".agentboot").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "AGENTBOOT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of this project.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// ShorthandBase returns the URL prefix used to expand "owner/name" references.
func ShorthandBase() string { load(); return defaults.ShorthandBase }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("config") → "AGENTBOOT_CONFIG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
