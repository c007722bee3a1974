package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/options"
	"gopkg.in/yaml.v3"
)

// Config represents the fetchquest configuration file
type Config struct {
	UserAgent       string   `yaml:"userAgent,omitempty" json:"userAgent,omitempty"`
	FollowRedirects *bool    `yaml:"followRedirects,omitempty" json:"followRedirects,omitempty"`
	ValidateSSL     *bool    `yaml:"validateSSL,omitempty" json:"validateSSL,omitempty"`
	Timeout         string   `yaml:"timeout,omitempty" json:"timeout,omitempty"` // duration, e.g. "30s"
	Headers         []string `yaml:"headers,omitempty" json:"headers,omitempty"` // "Name: Value", sent before -H headers
	NoColor         *bool    `yaml:"noColor,omitempty" json:"noColor,omitempty"`

	// Path is the file the config was loaded from, empty for defaults
	Path string `yaml:"-" json:"-"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to false
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, false)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetTimeout parses the timeout setting. An empty value means no timeout.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config: %w", c.Timeout, err)
	}
	return d, nil
}

// ConfigFilenames contains the possible config file names, in lookup order
var ConfigFilenames = []string{
	".fetchquest.yaml",
	".fetchquest.yml",
	".fetchquest.json",
	".fetchquestrc",
}

// LoadConfig loads configuration from the specified path, or layers the config found in
// the home directory under the one found in the working directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		fileConfig, err := loadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		return DefaultConfig().Merge(fileConfig), nil
	}

	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return FindAndLoadConfig(dirs...)
}

// FindAndLoadConfig merges the first config file found in each of dirs over the
// defaults. Earlier dirs take precedence; headers from every file are kept, later
// dirs first.
func FindAndLoadConfig(dirs ...string) (*Config, error) {
	result := DefaultConfig()
	seen := make(map[string]bool)

	for i := len(dirs) - 1; i >= 0; i-- {
		configPath := findConfigFile(dirs[i])
		if configPath == "" {
			continue
		}
		abs, err := filepath.Abs(configPath)
		if err == nil {
			if seen[abs] {
				continue
			}
			seen[abs] = true
		}

		fileConfig, err := loadConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
		result = result.Merge(fileConfig)
	}

	return result, nil
}

func findConfigFile(dir string) string {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

// loadConfigFromFile parses YAML, which also accepts JSON documents. Only the keys
// present in the file are set.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	config.Path = path

	if _, err := config.GetTimeout(); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c

	if other.UserAgent != "" {
		result.UserAgent = other.UserAgent
	}
	if other.Timeout != "" {
		result.Timeout = other.Timeout
	}
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if len(other.Headers) > 0 {
		result.Headers = append(append([]string{}, c.Headers...), other.Headers...)
	}
	if other.Path != "" {
		result.Path = other.Path
	}

	return &result
}

// Apply copies file settings into o for every setting the user did not pass
// explicitly. changed reports whether a CLI flag was set by name.
func (c *Config) Apply(o *options.Options, changed func(flag string) bool) error {
	if c.UserAgent != "" && !changed("user-agent") {
		o.UserAgent = c.UserAgent
	}
	if c.FollowRedirects != nil && !changed("follow-redirects") {
		o.FollowRedirects = *c.FollowRedirects
	}
	if c.ValidateSSL != nil && !changed("disable-ssl-verification") {
		o.DisableSSLVerification = !*c.ValidateSSL
	}
	if c.Timeout != "" && !changed("timeout") {
		d, err := c.GetTimeout()
		if err != nil {
			return err
		}
		o.Timeout = d
	}
	if len(c.Headers) > 0 {
		o.Headers = append(append([]string{}, c.Headers...), o.Headers...)
	}
	return nil
}
