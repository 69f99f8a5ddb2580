package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Vision   VisionConfig   `mapstructure:"vision"`
	Yandex   YandexConfig   `mapstructure:"yandex"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	Schema          string `mapstructure:"schema"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// VisionConfig configures the external image classifier.
type VisionConfig struct {
	APIEndpoint string `mapstructure:"api_endpoint"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	MaxTokens   int    `mapstructure:"max_tokens"`
	Timeout     int    `mapstructure:"timeout"`
}

// YandexConfig configures the Yandex ID OAuth integration.
type YandexConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AuthURL      string `mapstructure:"auth_url"`
	TokenURL     string `mapstructure:"token_url"`
	ProfileURL   string `mapstructure:"profile_url"`
	Timeout      int    `mapstructure:"timeout"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The deployed handlers historically read these exact variable names.
	viper.BindEnv("database.schema", "MAIN_DB_SCHEMA")
	viper.BindEnv("vision.api_key", "OPENAI_API_KEY")
	viper.BindEnv("yandex.client_id", "YANDEX_CLIENT_ID")
	viper.BindEnv("yandex.client_secret", "YANDEX_CLIENT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "scanlens")
	viper.SetDefault("database.schema", "public")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 300)

	viper.SetDefault("vision.api_endpoint", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("vision.api_key", "")
	viper.SetDefault("vision.model", "gpt-4o-mini")
	viper.SetDefault("vision.max_tokens", 300)
	viper.SetDefault("vision.timeout", 30)

	viper.SetDefault("yandex.client_id", "")
	viper.SetDefault("yandex.client_secret", "")
	viper.SetDefault("yandex.auth_url", "https://oauth.yandex.ru/authorize")
	viper.SetDefault("yandex.token_url", "https://oauth.yandex.ru/token")
	viper.SetDefault("yandex.profile_url", "https://login.yandex.ru/info?format=json")
	viper.SetDefault("yandex.timeout", 30)
}
