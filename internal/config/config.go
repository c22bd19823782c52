package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequired is returned by Load when a required setting is absent.
var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Slack      SlackConfig      `mapstructure:"slack"`
	Completion CompletionConfig `mapstructure:"completion"`
	Summary    SummaryConfig    `mapstructure:"summary"`
	History    HistoryConfig    `mapstructure:"history"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type SlackConfig struct {
	SigningSecret string `mapstructure:"signing_secret"`
	BotToken      string `mapstructure:"bot_token"`
	// ResponseType is the response_url visibility: "ephemeral" or "in_channel".
	ResponseType string `mapstructure:"response_type"`
}

type CompletionConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

type SummaryConfig struct {
	CompanyName        string `mapstructure:"company_name"`
	CompanyDescription string `mapstructure:"company_description"`
	StripTags          bool   `mapstructure:"strip_tags"`
}

type HistoryConfig struct {
	Lookback  time.Duration `mapstructure:"lookback"`
	PageLimit int           `mapstructure:"page_limit"`
	Timezone  string        `mapstructure:"timezone"`
}

// Location resolves Timezone, falling back to the process local zone.
func (h HistoryConfig) Location() (*time.Location, error) {
	if h.Timezone == "" || strings.EqualFold(h.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(h.Timezone)
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitConfig struct {
	CommandsPerMinute int `mapstructure:"commands_per_minute"`
}

// legacyEnv maps setting keys to the environment variable names the bot has
// always been deployed with.
var legacyEnv = map[string]string{
	"slack.signing_secret": "SLACK_SIGNING_SECRET",
	"slack.bot_token":      "SLACK_BOT_TOKEN",
	"completion.api_key":   "CENTML_API_KEY",
	"database.host":        "POSTGRES_HOST",
	"database.port":        "POSTGRES_PORT",
	"database.user":        "POSTGRES_USER",
	"database.password":    "POSTGRES_PASSWORD",
	"database.database":    "POSTGRES_DB",
}

// Load reads configuration from defaults, an optional config file, a .env
// file and the environment, then validates it.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".slack-summarizer"))
	}

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

// loadDotEnv loads .env (or filenames) into the environment. A missing file is
// the normal case in production; a malformed one is an error.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)

	v.SetDefault("slack.signing_secret", "")
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.response_type", "ephemeral")

	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.base_url", "https://api.centml.com/openai/v1")
	v.SetDefault("completion.model", "meta-llama/Llama-3.3-70B-Instruct")
	v.SetDefault("completion.max_tokens", 30000)
	v.SetDefault("completion.temperature", 0.7)

	v.SetDefault("summary.company_name", "CentML")
	v.SetDefault("summary.company_description", "a machine learning company specializing in optimizing inference and training workloads")
	v.SetDefault("summary.strip_tags", true)

	v.SetDefault("history.lookback", 7*24*time.Hour)
	v.SetDefault("history.page_limit", 1000)
	v.SetDefault("history.timezone", "Local")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "summarizer")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "summarizer")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ratelimit.commands_per_minute", 5)
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix("SUMMARIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "SUMMARIZER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required settings and value ranges.
func (c *Config) Validate() error {
	var missing []string
	if c.Slack.SigningSecret == "" {
		missing = append(missing, "SLACK_SIGNING_SECRET")
	}
	if c.Slack.BotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if c.Completion.APIKey == "" {
		missing = append(missing, "CENTML_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	switch c.Slack.ResponseType {
	case "ephemeral", "in_channel":
	default:
		return fmt.Errorf("invalid slack.response_type %q", c.Slack.ResponseType)
	}
	if c.History.PageLimit <= 0 {
		return fmt.Errorf("history.page_limit must be positive, got %d", c.History.PageLimit)
	}
	if c.History.Lookback <= 0 {
		return fmt.Errorf("history.lookback must be positive, got %s", c.History.Lookback)
	}
	if _, err := c.History.Location(); err != nil {
		return fmt.Errorf("invalid history.timezone: %w", err)
	}
	if c.Completion.MaxTokens <= 0 {
		return fmt.Errorf("completion.max_tokens must be positive, got %d", c.Completion.MaxTokens)
	}
	return nil
}
