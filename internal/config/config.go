package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/dsolovey/passguard/internal/model"
)

// Config is the full configuration document. The [policy] table is the only
// required one and maps 1:1 to model.PasswordPolicy; the rest configure the
// HTTP surface and the breach-lookup client.
type Config struct {
	Policy    model.PasswordPolicy `mapstructure:"policy"`
	Server    ServerConfig         `mapstructure:"server"`
	Pwned     PwnedConfig          `mapstructure:"pwned"`
	Blocklist BlocklistConfig      `mapstructure:"blocklist"`
	Log       LogConfig            `mapstructure:"log"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" envconfig:"PORT"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	Burst             int           `mapstructure:"burst" envconfig:"BURST"`
}

type PwnedConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	UserAgent       string        `mapstructure:"user_agent"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures int           `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// BlocklistConfig tunes the HTTP server's denylist cache. The CLI always
// reads the file fresh.
type BlocklistConfig struct {
	CacheFor time.Duration `mapstructure:"cache_for"`
}

type LogConfig struct {
	Level string `mapstructure:"level" envconfig:"LOG_LEVEL"`
}

func setDefaults(v *viper.Viper) {
	def := model.ModernDefaultPolicy()
	v.SetDefault("policy.min_length", def.MinLength)
	v.SetDefault("policy.max_length", def.MaxLength)
	v.SetDefault("policy.allow_spaces", def.AllowSpaces)
	v.SetDefault("policy.allow_unicode", def.AllowUnicode)
	v.SetDefault("policy.forbid_context_words", def.ForbidContextWords)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.requests_per_second", 50.0)
	v.SetDefault("server.burst", 100)

	v.SetDefault("pwned.timeout", 3*time.Second)
	v.SetDefault("pwned.breaker_failures", 3)
	v.SetDefault("pwned.breaker_cooldown", 30*time.Second)

	v.SetDefault("blocklist.cache_for", 5*time.Minute)

	v.SetDefault("log.level", "info")
}

// Load reads a TOML config file. A missing or non-table [policy] is a hard
// error; unknown keys inside recognized tables are ignored.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if !v.InConfig("policy") {
		return nil, fmt.Errorf("invalid config: missing [policy] table")
	}
	if _, ok := v.Get("policy").(map[string]interface{}); !ok {
		return nil, fmt.Errorf("invalid config: [policy] must be a table")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; this cannot fail at runtime.
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return &cfg
}

// ApplyEnv overlays PASSGUARD_* environment variables on the server and log
// sections, for container deployments where editing the file is awkward.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process("passguard", &c.Server); err != nil {
		return fmt.Errorf("failed to apply server env overrides: %w", err)
	}
	if err := envconfig.Process("passguard", &c.Log); err != nil {
		return fmt.Errorf("failed to apply log env overrides: %w", err)
	}
	return nil
}
