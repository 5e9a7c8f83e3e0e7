package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment parsing. Pointer fields distinguish
// "unset" from "set to the zero value".
type envConfig struct {
	APIBaseURL       *string        `env:"RECTRADE_API_URL"`
	CredentialDBPath *string        `env:"RECTRADE_CREDENTIALS_DB"`
	RequestTimeout   *time.Duration `env:"RECTRADE_REQUEST_TIMEOUT"`
	LogLevel         *string        `env:"RECTRADE_LOG_LEVEL"`
}

// parseEnv overlays Config with values from RECTRADE_* environment
// variables. Unset variables leave the config untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != nil {
		cfg.APIBaseURL = *ec.APIBaseURL
	}
	if ec.CredentialDBPath != nil {
		cfg.CredentialDBPath = *ec.CredentialDBPath
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
}
