package telegram

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// BotConfig holds all configuration needed to create and run an App.
// Use NewBotConfigFromEnv() to load from environment variables (.env
// file supported).
type BotConfig struct {
	// Token is the bot token.
	Token string `env:"TELEGRAM_BOT_TOKEN"`
	// APIBaseURL points at a self-hosted Bot API server, e.g.
	// "https://bots.example.com/bot". Empty selects the official API.
	APIBaseURL string `env:"TELEGRAM_API_BASE_URL"`
	// RuntimeMode: "polling" or "webhook"
	RuntimeMode string `env:"RUNTIME_MODE" envDefault:"polling"`
	// WebhookURL is the public base URL for webhook mode
	WebhookURL string `env:"WEBHOOK_URL"`
	// WebhookPath is the URL path suffix; empty derives one from the token
	WebhookPath string `env:"WEBHOOK_PATH"`
	// WebhookHost is the listen address
	WebhookHost string `env:"WEBAPP_HOST" envDefault:"0.0.0.0"`
	// WebhookPort is the listen port
	WebhookPort int `env:"WEBAPP_PORT" envDefault:"8443"`
	// WebhookSecret is the secret token echoed on every delivery
	WebhookSecret string `env:"WEBHOOK_SECRET_TOKEN"`
	// PollTimeout is the long-poll timeout in seconds
	PollTimeout int `env:"POLL_TIMEOUT" envDefault:"60"`
	// PollLimit caps the updates per batch, 1-100 (0 = server default)
	PollLimit int `env:"POLL_LIMIT"`
	// Debug enables verbose logging
	Debug bool `env:"DEBUG"`
	// LogFile path for file logging (empty = stdout only)
	LogFile string `env:"LOG_FILE"`
}

// NewBotConfigFromEnv loads configuration from environment variables,
// reading a .env file from the working directory first when present
// (existing variables win over the file).
func NewBotConfigFromEnv() (*BotConfig, error) {
	loadDotEnv()

	cfg, err := env.ParseAs[BotConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.RuntimeMode = strings.ToLower(strings.TrimSpace(cfg.RuntimeMode))
	if cfg.RuntimeMode != "webhook" {
		cfg.RuntimeMode = "polling"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values App cannot run with.
func (c *BotConfig) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("bot token not configured: set TELEGRAM_BOT_TOKEN in environment")
	}
	if c.RuntimeMode == "webhook" && c.WebhookURL == "" {
		return fmt.Errorf("webhook mode requires WEBHOOK_URL")
	}
	if c.WebhookPort < 1 || c.WebhookPort > 65535 {
		return fmt.Errorf("webhook port %d out of range", c.WebhookPort)
	}
	if c.PollLimit < 0 || c.PollLimit > 100 {
		return fmt.Errorf("poll limit %d out of range (1-100, 0 for server default)", c.PollLimit)
	}
	return nil
}

// Summary returns a one-line description of the configuration with the
// token masked, suitable for the startup log.
func (c *BotConfig) Summary() string {
	token := c.Token
	if len(token) > 10 {
		token = token[:10] + "..."
	}
	api := c.APIBaseURL
	if api == "" {
		api = "Telegram Official"
	}
	return fmt.Sprintf("Token: %s | Mode: %s | API: %s | Debug: %v",
		token, c.RuntimeMode, api, c.Debug)
}

// loadDotEnv reads KEY=VALUE pairs from a .env file in the working
// directory into the environment. Variables that are already set win
// over the file. A missing or malformed file is not an error.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, strings.Trim(strings.TrimSpace(val), `"'`))
	}
}
