// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	// The registry API key is issued per deployment and always comes from
	// the environment when present.
	if key := os.Getenv("BUILDING_API_KEY"); key != "" {
		viper.Set("registry.api_key", key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.App.Environment = env

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "disclosure-server")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.gin_mode", "release")
	viper.SetDefault("registry.base_url", "https://apis.data.go.kr/1613000/BldRgstHubService")
	viper.SetDefault("registry.timeout", 10000)
	viper.SetDefault("registry.title_rows", 10)
	viper.SetDefault("registry.floor_rows", 50)
	viper.SetDefault("registry.area_rows", 100)
	viper.SetDefault("registry.unit_rows", 100)
	viper.SetDefault("registry.cache_enabled", true)
	viper.SetDefault("registry.cache_ttl", 600)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

func loadEnvFile() {
	candidates := []string{".env", "../../.env", "../.env"}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			_ = godotenv.Load(c)
			return
		}
	}
	if wd, err := os.Getwd(); err == nil {
		_ = godotenv.Load(filepath.Join(wd, ".env"))
	}
}
