// Package config loads careerpath settings from an optional YAML file,
// a .env file and CAREERPATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/telemetry"
)

const (
	envPrefix  = "CAREERPATH"
	configName = "careerpath"
)

type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Database store.Config      `mapstructure:"database"`
	Redis    store.RedisConfig `mapstructure:"redis"`
	Log      logger.Config     `mapstructure:"log"`
	Tracing  telemetry.Config  `mapstructure:"tracing"`
	LLM      llm.Config        `mapstructure:"llm"`
	Pipeline PipelineConfig    `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// Mode is the gin mode: debug, release or test.
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PipelineConfig struct {
	DefaultRole string `mapstructure:"default_role"`

	// ChatHistoryLimit caps each stored conversation log.
	ChatHistoryLimit int `mapstructure:"chat_history_limit"`

	// ChatModel optionally overrides the provider model for chat.
	ChatModel string `mapstructure:"chat_model"`
}

// credentialEnv binds each secret to the CAREERPATH_ name first and the
// vendor-standard variable second.
var credentialEnv = map[string][]string{
	"llm.provider":           {"CAREERPATH_LLM_PROVIDER", "LLM_PROVIDER"},
	"llm.anthropic.api_key":  {"CAREERPATH_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	"llm.openai.api_key":     {"CAREERPATH_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"llm.gemini.api_key":     {"CAREERPATH_GEMINI_API_KEY", "GEMINI_API_KEY"},
	"llm.openrouter.api_key": {"CAREERPATH_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	"llm.mistral.api_key":    {"CAREERPATH_MISTRAL_API_KEY", "MISTRAL_API_KEY"},
	"database.dsn":           {"CAREERPATH_DATABASE_DSN", "CAREERPATH_DB"},
	"redis.addr":             {"CAREERPATH_REDIS_ADDR", "REDIS_ADDR"},
	"redis.password":         {"CAREERPATH_REDIS_PASSWORD", "REDIS_PASSWORD"},
}

// Load reads configuration. An explicit path must exist; otherwise
// careerpath.yaml is looked up in the working directory and the user config
// directory, and its absence is not an error. Values in .env never override
// variables already set in the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range credentialEnv {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late. A missing LLM key
// is allowed; AI features then use their fallbacks.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case store.DriverSQLite, store.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == store.DriverPostgres && c.Database.DSN == "" {
		return errors.New("database.dsn is required for postgres")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Server.Mode)
	}
	if c.Pipeline.ChatHistoryLimit <= 0 {
		return errors.New("pipeline.chat_history_limit must be positive")
	}
	var unconfigured *llm.ErrProviderUnconfigured
	if err := c.LLM.Validate(); err != nil && !errors.As(err, &unconfigured) {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.timeout", 5*time.Second)

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	tr := telemetry.DefaultConfig()
	v.SetDefault("tracing.enabled", tr.Enabled)
	v.SetDefault("tracing.service_name", tr.ServiceName)
	v.SetDefault("tracing.sample_ratio", tr.SampleRatio)
	v.SetDefault("tracing.output", tr.Output)

	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	vendors := map[string]string{
		"anthropic":  l.Anthropic.Model,
		"openai":     l.OpenAI.Model,
		"gemini":     l.Gemini.Model,
		"openrouter": l.OpenRouter.Model,
		"mistral":    l.Mistral.Model,
	}
	for name, model := range vendors {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".base_url", "")
	}

	v.SetDefault("pipeline.default_role", "Full Stack Developer")
	v.SetDefault("pipeline.chat_history_limit", 20)
	v.SetDefault("pipeline.chat_model", "")
}

// DatabaseConfig returns the store settings, resolving the default sqlite
// file when no DSN is configured.
func (c *Config) DatabaseConfig() (store.Config, error) {
	db := c.Database
	if db.Driver == store.DriverSQLite && db.DSN == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return db, err
		}
		db.DSN = p
	}
	return db, nil
}
