// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Seed          SeedConfig         `mapstructure:"seed"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StorageConfig selects and configures the remote store adapter. Driver is
// one of "memory", "file", "redis", "postgres", "github".
type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	File     FileConfig     `mapstructure:"file"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	GitHub   GitHubConfig   `mapstructure:"github"`
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
	Channel  string `mapstructure:"channel"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	Channel  string `mapstructure:"channel"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// GitHubConfig points the contents-API adapter at the data file inside a
// repository. Token comes from the environment in every deployment.
type GitHubConfig struct {
	Owner   string `mapstructure:"owner"`
	Repo    string `mapstructure:"repo"`
	Path    string `mapstructure:"path"`
	Branch  string `mapstructure:"branch"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// --- Seed Configuration ---

// ActorSeed describes one fixed directory entry. The first super-admin is
// mandatory and undeletable at runtime.
type ActorSeed struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	Email      string `mapstructure:"email"`
	Password   string `mapstructure:"password"`
	Phone      string `mapstructure:"phone"`
	BusinessID string `mapstructure:"business_id"`
}

type SeedConfig struct {
	SuperAdmin ActorSeed   `mapstructure:"super_admin"`
	Admins     []ActorSeed `mapstructure:"admins"`
	Businesses []ActorSeed `mapstructure:"businesses"`
}

// --- Notification Delivery ---

// NotificationConfig holds settings for the delivery channels layered on
// top of the in-memory notification feed.
type NotificationConfig struct {
	Toast bool `mapstructure:"toast"`
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		Region    string `mapstructure:"region"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
		Region   string `mapstructure:"region"`
	} `mapstructure:"sms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
