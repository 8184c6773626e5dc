package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App     App     `mapstructure:",squash"`
	Server  Server  `mapstructure:",squash"`
	Storage Storage `mapstructure:",squash"`
	Backup  Backup  `mapstructure:",squash"`
	Events  Events  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"app_version"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Storage struct {
	Path string `mapstructure:"storage_path"`
}

type Backup struct {
	IntervalMinutes int  `mapstructure:"backup_interval_minutes"`
	Enabled         bool `mapstructure:"backup_enabled"`
}

type Events struct {
	RetentionDays int `mapstructure:"event_retention_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("STORAGE_PATH", "data/hms.db")

	viper.SetDefault("BACKUP_INTERVAL_MINUTES", 30) // snapshot every half hour
	viper.SetDefault("BACKUP_ENABLED", true)

	viper.SetDefault("EVENT_RETENTION_DAYS", 90) // processed events kept this long

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_VERSION", "2.1.0")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using environment variables only (no .env read by viper): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded environment from ", location)
			return
		}
	}
}
