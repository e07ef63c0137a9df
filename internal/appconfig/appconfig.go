package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/EO-DataHub/eodhp-users-dashboard/internal/dashboard"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

const (
	DefaultSourceURL = "https://jsonplaceholder.typicode.com"
	DefaultTitle     = "Users & Posts Dashboard"
	DefaultBasePath  = "/"
)

// Config holds all configuration details
type Config struct {
	Host      string          `yaml:"host"` // listen address unless --host/--port are set
	BasePath  string          `yaml:"basePath"`
	Source    SourceConfig    `yaml:"source"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// SourceConfig defines the remote users and posts API
type SourceConfig struct {
	URL string `yaml:"url"`
	// Timeout bounds each fetch; zero leaves fetches unbounded.
	Timeout time.Duration `yaml:"timeout"`
}

// DashboardConfig defines how the directory is presented
type DashboardConfig struct {
	Title    string `yaml:"title"`
	PageSize int    `yaml:"pageSize"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	config.applyDefaults()

	if config.Dashboard.PageSize < 0 {
		err := errors.New("dashboard.pageSize must not be negative")
		log.Error().Err(err).Int("pageSize", config.Dashboard.PageSize).Msg("invalid config")
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Source.URL == "" {
		c.Source.URL = DefaultSourceURL
	}
	if c.Dashboard.Title == "" {
		c.Dashboard.Title = DefaultTitle
	}
	if c.Dashboard.PageSize == 0 {
		c.Dashboard.PageSize = dashboard.DefaultPageSize
	}
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
