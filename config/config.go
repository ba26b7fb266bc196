package config

import (
	"strings"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

const (
	DefaultImageStoragePath = "wwwroot/images"
	DefaultRetryAttempts    = 3
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseDSN          string `mapstructure:"DB_DSN"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseRetries      int    `mapstructure:"DB_RETRY_ATTEMPTS"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	ImageStoragePath     string `mapstructure:"IMAGE_STORAGE_PATH"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
}

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
	"DB_DSN", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_RETRY_ATTEMPTS",
	"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
	"CORS_ALLOW_ORIGINS", "IMAGE_STORAGE_PATH", "SCHEDULER_ENABLED",
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("DB_RETRY_ATTEMPTS", DefaultRetryAttempts)
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("IMAGE_STORAGE_PATH", DefaultImageStoragePath)

	envVarsSet := viper.IsSet("SERVER_PORT") && (viper.IsSet("DB_HOST") || viper.IsSet("DB_DSN"))

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"cacheEnabled", config.CacheEnabled(),
		"schedulerEnabled", config.SchedulerEnabled,
	)

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

// CacheEnabled reports whether a valkey address was configured. The cache is
// optional; every read path works without it.
func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != "" && c.DatabaseCachePort > 0
}

// AllowedOrigins returns the trimmed CORS allow-list.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CorsAllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.DatabaseDSN == "" {
		if config.DatabaseHost == "" || config.DatabaseName == "" || config.DatabaseUser == "" {
			return log.ErrMsg("Fatal error: DB_DSN or DB_HOST, DB_NAME and DB_USER are required")
		}
	}

	if config.DatabaseRetries < 0 {
		return log.Error(
			"Fatal error: DB_RETRY_ATTEMPTS cannot be negative",
			"retries", config.DatabaseRetries,
		)
	}

	if config.DatabaseCacheAddress != "" && config.DatabaseCachePort <= 0 {
		return log.Error(
			"Fatal error: DB_CACHE_PORT required when DB_CACHE_ADDRESS is set",
			"address", config.DatabaseCacheAddress,
		)
	}

	if config.ImageStoragePath == "" {
		config.ImageStoragePath = DefaultImageStoragePath
	}

	ConfigInstance = config
	return nil
}
