package networkingx

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the immutable base settings shared by every request: the base
// address plus default headers and default query parameters. Create it once
// at application start and share it; the services never mutate it.
type Config struct {
	baseURL        string
	defaultHeaders map[string]string
	defaultQuery   map[string]string
}

// ConfigOption configures a Config during construction.
type ConfigOption func(*Config)

// WithDefaultHeaders sets headers applied to every request. Endpoint headers
// with the same key take precedence.
func WithDefaultHeaders(headers map[string]string) ConfigOption {
	return func(c *Config) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithDefaultQuery sets query parameters appended to every request. They are
// appended after endpoint parameters and never replace them.
func WithDefaultQuery(query map[string]string) ConfigOption {
	return func(c *Config) {
		for k, v := range query {
			c.defaultQuery[k] = v
		}
	}
}

// NewConfig builds a Config for the given base URL. The URL must be parseable
// and carry a scheme and host.
func NewConfig(baseURL string, options ...ConfigOption) (*Config, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("networkingx: invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("networkingx: base URL %q must include scheme and host", baseURL)
	}

	config := &Config{
		baseURL:        baseURL,
		defaultHeaders: make(map[string]string),
		defaultQuery:   make(map[string]string),
	}
	for _, option := range options {
		option(config)
	}
	return config, nil
}

// BaseURL returns the configured base address.
func (c *Config) BaseURL() string { return c.baseURL }

// DefaultHeaders returns a copy of the default headers.
func (c *Config) DefaultHeaders() map[string]string {
	out := make(map[string]string, len(c.defaultHeaders))
	for k, v := range c.defaultHeaders {
		out[k] = v
	}
	return out
}

// DefaultQuery returns a copy of the default query parameters.
func (c *Config) DefaultQuery() map[string]string {
	out := make(map[string]string, len(c.defaultQuery))
	for k, v := range c.defaultQuery {
		out[k] = v
	}
	return out
}

// configFile is the YAML document shape accepted by LoadConfig.
type configFile struct {
	BaseURL string            `yaml:"base_url"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Query   map[string]string `yaml:"query,omitempty"`
}

// LoadConfig reads and parses a YAML configuration file.
//
// Example document:
//
//	base_url: https://api.example.com
//	headers:
//	  Authorization: Bearer TOKEN
//	query:
//	  locale: en
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("networkingx: failed to read config file: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("networkingx: failed to parse config file: %w", err)
	}
	if file.BaseURL == "" {
		return nil, fmt.Errorf("networkingx: config file %s: base_url is required", path)
	}

	return NewConfig(file.BaseURL,
		WithDefaultHeaders(file.Headers),
		WithDefaultQuery(file.Query),
	)
}
