package config

import (
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DataConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path"`
	UploadsDir   string `mapstructure:"uploads_dir"`
}

type DatabaseConfig struct {
	URL  string `mapstructure:"url"`
	Path string `mapstructure:"path"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type AIConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	AI       AIConfig       `mapstructure:"ai"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load reads config.yaml (or the given path) with environment overrides,
// e.g. BOK_SERVER_PORT=9000. A missing config file is fine; defaults and
// environment variables carry the whole configuration on their own.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("server.address", "0.0.0.0")
		v.SetDefault("server.port", 8080)
		v.SetDefault("server.mode", "debug")
		v.SetDefault("data.snapshot_path", "data/snapshot.json")
		v.SetDefault("data.uploads_dir", "uploads")
		v.SetDefault("database.path", "data/admin.db")
		v.SetDefault("jwt.expire_hours", 72)

		v.SetEnvPrefix("BOK")
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = readErr
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the configuration loaded by Load.
func Get() *Config {
	return appConfig
}
