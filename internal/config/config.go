package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	WS      WSConfig      `mapstructure:"ws"`
	Sim     SimConfig     `mapstructure:"sim"`
	Store   StoreConfig   `mapstructure:"store"`
	Content ContentConfig `mapstructure:"content"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type HTTPConfig struct {
	Addr      string  `mapstructure:"addr"`
	RateLimit float64 `mapstructure:"rateLimit"`
	Burst     int     `mapstructure:"burst"`

	// CORSOrigins lists browser origins allowed to call the API; "*" allows any.
	CORSOrigins []string `mapstructure:"corsOrigins"`
}

type WSConfig struct {
	Addr string `mapstructure:"addr"`
	// PushInterval caps how often state is pushed to sockets.
	PushInterval time.Duration `mapstructure:"pushInterval"`
}

type SimConfig struct {
	TickInterval     time.Duration `mapstructure:"tickInterval"`
	MaxStep          time.Duration `mapstructure:"maxStep"`
	AutosaveInterval time.Duration `mapstructure:"autosaveInterval"`
	Seed             uint64        `mapstructure:"seed"`
	DebugCommands    bool          `mapstructure:"debugCommands"`
}

type StoreConfig struct {
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
	Slot string `mapstructure:"slot"`
}

type ContentConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.rateLimit", 20)
	v.SetDefault("http.burst", 40)
	v.SetDefault("http.corsOrigins", []string{"*"})

	v.SetDefault("ws.addr", ":8081")
	v.SetDefault("ws.pushInterval", "100ms")

	v.SetDefault("sim.tickInterval", "50ms")
	v.SetDefault("sim.maxStep", "1s")
	v.SetDefault("sim.autosaveInterval", "30s")
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.debugCommands", false)

	v.SetDefault("store.type", StoreMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.slot", "warped_save")

	v.SetDefault("content.path", "")
}

// Load reads warped.{yaml,json} from configDir or the working directory when
// present, then applies WARPED_* environment overrides.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("warped")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("WARPED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Type {
	case StoreMemory:
	case StoreSQLite, StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: store.dsn is required for %s", ErrInvalidConfig, c.Store.Type)
		}
	default:
		return fmt.Errorf("%w: unknown store.type %q", ErrInvalidConfig, c.Store.Type)
	}
	if c.Sim.TickInterval <= 0 {
		return fmt.Errorf("%w: sim.tickInterval must be positive", ErrInvalidConfig)
	}
	if c.Sim.MaxStep <= 0 {
		return fmt.Errorf("%w: sim.maxStep must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Store.Slot) == "" {
		return fmt.Errorf("%w: store.slot is empty", ErrInvalidConfig)
	}
	return nil
}
