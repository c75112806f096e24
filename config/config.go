package config

import (
	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion         string `mapstructure:"GENERAL_VERSION"`
	Environment            string `mapstructure:"ENVIRONMENT"`
	ServerPort             int    `mapstructure:"SERVER_PORT"`
	DatabaseHost           string `mapstructure:"DB_HOST"`
	DatabasePort           int    `mapstructure:"DB_PORT"`
	DatabaseName           string `mapstructure:"DB_NAME"`
	DatabaseUser           string `mapstructure:"DB_USER"`
	DatabasePassword       string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress   string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort      int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins       string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	JWTExpiryHours         int    `mapstructure:"JWT_EXPIRY_HOURS"`
	SchedulerEnabled       bool   `mapstructure:"SCHEDULER_ENABLED"`
	ArchiveIntervalSeconds int    `mapstructure:"ARCHIVE_INTERVAL_SECONDS"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	// Enable automatic environment variable reading first
	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS",
		"JWT_SECRET", "JWT_EXPIRY_HOURS",
		"SCHEDULER_ENABLED", "ARCHIVE_INTERVAL_SECONDS",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

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

		// Load .env.local overrides if it exists
		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	viper.SetDefault("JWT_EXPIRY_HOURS", 72)
	viper.SetDefault("ARCHIVE_INTERVAL_SECONDS", 60)
	viper.SetDefault("SCHEDULER_ENABLED", true)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if config.ArchiveIntervalSeconds <= 0 {
		return log.Error(
			"Fatal error: invalid archive interval",
			"seconds", config.ArchiveIntervalSeconds,
		)
	}

	ConfigInstance = config
	return nil
}
