package config

import "time"

// Config holds runtime settings for the rectrade terminal client.
//
// Fields:
//   - APIBaseURL: base URL of the platform API, e.g. "https://api.rectrade.ae".
//   - CredentialDBPath: path of the local sqlite file holding the session token.
//   - RequestTimeout: per-call deadline applied to remote operations.
//   - LogLevel: debug|info|warn|error.
type Config struct {
	APIBaseURL       string
	CredentialDBPath string
	RequestTimeout   time.Duration
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.CredentialDBPath = "rectrade.db"
	c.RequestTimeout = 12 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if one is given), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
