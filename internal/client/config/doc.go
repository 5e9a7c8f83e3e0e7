// Package config loads runtime configuration for the rectrade CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. RECTRADE_* environment variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the platform API
//	-d string   path of the local credential database
//	-t int      request timeout (seconds)
//	-l string   log level (debug|info|warn|error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "12s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.rectrade.ae",
//	  "credential_db_path": "rectrade.db",
//	  "request_timeout": "12s",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                     — holds the resolved settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
