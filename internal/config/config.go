/**
 * @description
 * This package handles the configuration management for the service. It
 * uses the Viper library to read configuration from environment
 * variables, providing a centralized and straightforward way to manage
 * application settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the
// instruction-service. These values are loaded from environment
// variables.
type Config struct {
	ServerPort                string `mapstructure:"SERVER_PORT"`
	RabbitMQURL               string `mapstructure:"RABBITMQ_URL"`
	OutcomeEventExchange      string `mapstructure:"OUTCOME_EVENT_EXCHANGE"`
	RedisURL                  string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix      string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	ProcessRateLimitPerMinute int    `mapstructure:"PROCESS_RATE_LIMIT_PER_MINUTE"`
	InternalAPIKey            string `mapstructure:"INTERNAL_API_KEY"`
	AuthJWKSURL               string `mapstructure:"AUTH_JWKS_URL"`
}

// LoadConfig reads configuration from environment variables and the
// optional .env file at the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("OUTCOME_EVENT_EXCHANGE", "payment_events")
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "instruction:rate_limit")
	viper.SetDefault("PROCESS_RATE_LIMIT_PER_MINUTE", 120)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("OUTCOME_EVENT_EXCHANGE")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("PROCESS_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("INTERNAL_API_KEY", "INTERNAL_API_KEY", "INSTRUCTION_SERVICE_INTERNAL_API_KEY")
	_ = viper.BindEnv("AUTH_JWKS_URL")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RedisRateLimitPrefix == "" {
		config.RedisRateLimitPrefix = "instruction:rate_limit"
	}
	config.OutcomeEventExchange = strings.TrimSpace(config.OutcomeEventExchange)
	if config.OutcomeEventExchange == "" {
		config.OutcomeEventExchange = "payment_events"
	}
	if config.ProcessRateLimitPerMinute < 0 {
		log.Printf("level=warn component=config msg=\"negative rate limit configured; disabling throttling\" limit=%d", config.ProcessRateLimitPerMinute)
		config.ProcessRateLimitPerMinute = 0
	}

	return
}
