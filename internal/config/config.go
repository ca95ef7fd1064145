package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentx-labs/agentboot/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by agentboot.
const (
	KeyTemplateDir      = "template_dir"
	KeyTemplateRepo     = "template_repo"
	KeyShorthandBase    = "shorthand_base"
	KeyPromptFile       = "prompt_file"
	KeySystemPromptFile = "system_prompt_file"
	KeyAllowedTools     = "allowed_tools"
	KeyCommitMessage    = "commit_message"
	KeyInitScript       = "init_script"
	KeyGitMinVersion    = "git_min_version"
)

// Defaults for every key. Empty values mean "unset".
var defaults = map[string]string{
	KeyTemplateDir:      "",
	KeyTemplateRepo:     "",
	KeyShorthandBase:    branding.ShorthandBase(),
	KeyPromptFile:       ".automation/update-agents.prompt.txt",
	KeySystemPromptFile: ".automation/claude-system.txt",
	KeyAllowedTools:     "Read,Edit,Bash",
	KeyCommitMessage:    "Add agent bootstrap files",
	KeyInitScript:       ".agents/init.sh",
	KeyGitMinVersion:    "2.25.0",
}

// Default returns the built-in default for key.
func Default(key string) string {
	return defaults[key]
}

// Keys returns every known key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns the path to the agentboot config directory (~/.agentboot/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the config file path: $AGENTBOOT_CONFIG when set,
// ~/.agentboot/config.yaml otherwise.
func FilePath() string {
	if p := os.Getenv(branding.EnvVar("config")); p != "" {
		return p
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Config is a loaded settings view.
type Config struct {
	v    *viper.Viper
	path string
}

// Load reads the config file at path (FilePath() when empty) together with
// the environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	return &Config{v: v, path: path}, nil
}

// Path returns the config file backing c.
func (c *Config) Path() string {
	return c.path
}

// BindFlag makes flag override key whenever the flag is set on the command line.
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %q: flag not defined", key)
	}
	return c.v.BindPFlag(key, flag)
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return strings.TrimSpace(c.v.GetString(key))
}

// Set writes a config key-value pair and saves the config file.
func (c *Config) Set(key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(c.path), err)
	}

	// Only persist what the file already holds plus the new key, so defaults
	// and environment overrides never leak into the file.
	file := viper.New()
	file.SetConfigFile(c.path)
	file.SetConfigType(fileType)
	if _, err := os.Stat(c.path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", c.path, err)
		}
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	c.v.Set(key, value)
	return nil
}
