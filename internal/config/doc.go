// Package config manages user-level settings stored at ~/.agentboot/config.yaml
// and AGENTBOOT_* environment variables: the template repository, template
// directory, prompt files, allowed tools and commit defaults. Command-line
// flags bound with BindFlag take precedence over both.
package config
