// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Dashboard     DashboardConfig    `mapstructure:"dashboard"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Webhooks      WebhookConfig      `mapstructure:"webhooks"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Launcher      LauncherConfig     `mapstructure:"launcher"`
	Publish       PublishConfig      `mapstructure:"publish"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Observability struct {
		JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	} `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP API server settings. The dashboard has always
// been served on 8501, so that stays the default.
type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// DashboardConfig holds settings for the live data document and refresh cycle.
type DashboardConfig struct {
	DataFile        string `mapstructure:"data_file"`
	RefreshInterval int    `mapstructure:"refresh_interval"` // milliseconds
	CacheTTL        int    `mapstructure:"cache_ttl"`        // milliseconds
	ActivityIndex   string `mapstructure:"activity_index"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WebhookConfig holds settings for the n8n command channel and the Make.com
// webhook set. Make webhooks that have not been provisioned yet keep the
// "pending" placeholder value.
type WebhookConfig struct {
	N8N struct {
		BaseURL string `mapstructure:"base_url"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"n8n"`
	Make map[string]string `mapstructure:"make"`
}

// NotificationConfig holds settings for high-severity alert delivery.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled           bool   `mapstructure:"enabled"`
		PhoneNumber       string `mapstructure:"phone_number"`
		PriorityThreshold string `mapstructure:"priority_threshold"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LauncherConfig holds settings for the dashboard launcher command.
type LauncherConfig struct {
	Dir     string   `mapstructure:"dir"`
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Port    int      `mapstructure:"port"`
}

// PublishConfig holds settings for the repository publishing command.
type PublishConfig struct {
	Remote           string `mapstructure:"remote"`
	Branch           string `mapstructure:"branch"`
	CredentialHelper string `mapstructure:"credential_helper"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
