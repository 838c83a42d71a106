// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Registry RegistryConfig `mapstructure:"registry"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	GinMode     string   `mapstructure:"gin_mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// RegistryConfig holds settings for the public building-registry API.
type RegistryConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
	TitleRows int    `mapstructure:"title_rows"`
	FloorRows int    `mapstructure:"floor_rows"`
	AreaRows  int    `mapstructure:"area_rows"`
	UnitRows  int    `mapstructure:"unit_rows"`

	CacheEnabled bool `mapstructure:"cache_enabled"`
	CacheTTL     int  `mapstructure:"cache_ttl"` // seconds
}

// GetTimeout returns the registry HTTP timeout as a duration.
func (r RegistryConfig) GetTimeout() time.Duration {
	if r.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(r.Timeout) * time.Millisecond
}

// GetCacheTTL returns the registry cache TTL as a duration.
func (r RegistryConfig) GetCacheTTL() time.Duration {
	if r.CacheTTL <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(r.CacheTTL) * time.Second
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
