package config

import "github.com/abdul-hamid-achik/fetchquest/packages/core/options"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		UserAgent:       options.DefaultUserAgent,
		FollowRedirects: BoolPtr(false),
		ValidateSSL:     BoolPtr(true),
		Timeout:         "",
		Headers:         nil,
		NoColor:         BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.UserAgent == defaults.UserAgent &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.Timeout == defaults.Timeout &&
		len(c.Headers) == 0
}
