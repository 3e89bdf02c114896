package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
	Web    WebConfig    `yaml:"web"`
	NATS   NATSConfig   `yaml:"nats"`
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// APIConfig represents API configuration
type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WebConfig represents web UI configuration
type WebConfig struct {
	StaticDir string `yaml:"static_dir"`
}

// NATSConfig represents NATS configuration. An empty URL disables NATS
// and the server runs standalone.
type NATSConfig struct {
	URL               string        `yaml:"url"`
	Username          string        `yaml:"username"`
	Password          string        `yaml:"password"`
	MaxReconnects     int           `yaml:"max_reconnects"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig represents report pipeline configuration
type ReportConfig struct {
	CompaniesFile string        `yaml:"companies_file"`
	UsersFile     string        `yaml:"users_file"`
	OutputFile    string        `yaml:"output_file"`
	Webhook       WebhookConfig `yaml:"webhook"`
}

// WebhookConfig configures the optional forwarder that POSTs completed
// reports to an external endpoint. An empty URL disables it.
type WebhookConfig struct {
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Timeout time.Duration     `yaml:"timeout"`
}

// Load loads configuration from file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.setDefaults()

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		c.NATS.URL = natsURL
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Log.Level = logLevel
	}

	if webhookURL := os.Getenv("WEBHOOK_URL"); webhookURL != "" {
		c.Report.Webhook.URL = webhookURL
	}

	if webDir := os.Getenv("WEB_DIR"); webDir != "" {
		c.Web.StaticDir = webDir
	}
}

// setDefaults fills unset fields
func (c *Config) setDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "topup-report-server"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Web.StaticDir == "" {
		c.Web.StaticDir = "web"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.NATS.MaxReconnects == 0 {
		c.NATS.MaxReconnects = 10
	}
	if c.NATS.ReconnectInterval == 0 {
		c.NATS.ReconnectInterval = 2 * time.Second
	}
	if c.Report.OutputFile == "" {
		c.Report.OutputFile = "output.txt"
	}
	if c.Report.Webhook.Timeout == 0 {
		c.Report.Webhook.Timeout = 30 * time.Second
	}
}
