package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DefaultProfile    = "default"
	DefaultQuotaBytes = 5 * 1024 * 1024
	DefaultListenAddr = "127.0.0.1:8090"
	DefaultLogLevel   = "info"
)

type Config struct {
	// Vault storage
	VaultDBPath string `env:"VAULT_DB_PATH"`
	Profile     string `env:"VAULT_PROFILE"`
	QuotaBytes  int64  `env:"VAULT_QUOTA_BYTES"`

	// HTTP front end
	ListenAddr string `env:"LISTEN_ADDR"`

	// Shared settings
	LogLevel     string        `env:"LOG_LEVEL"`
	SummaryDelay time.Duration `env:"ASSISTANT_SUMMARY_DELAY" envDefault:"1s"`
	AnswerDelay  time.Duration `env:"ASSISTANT_ANSWER_DELAY" envDefault:"800ms"`

	Version bool `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags перекрывают значения из env
	flag.StringVar(&cfg.VaultDBPath, "vault-db", cfg.VaultDBPath, "base directory for per-profile vault databases")
	flag.StringVar(&cfg.Profile, "profile", cfg.Profile, "vault profile (one vault per student)")
	flag.Int64Var(&cfg.QuotaBytes, "quota", cfg.QuotaBytes, "storage quota in bytes")
	flag.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address host:port")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.DurationVar(&cfg.SummaryDelay, "summary-delay", cfg.SummaryDelay, "artificial delay of the document summary")
	flag.DurationVar(&cfg.AnswerDelay, "answer-delay", cfg.AnswerDelay, "artificial delay of assistant answers")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Profile) == "" {
		c.Profile = DefaultProfile
	}
	if c.QuotaBytes <= 0 {
		c.QuotaBytes = DefaultQuotaBytes
	}
	// ListenAddr: только "address:port" (без схемы и пути), иначе значение по умолчанию
	if !hostPortRe.MatchString(c.ListenAddr) {
		c.ListenAddr = DefaultListenAddr
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = DefaultLogLevel
	}
	if c.SummaryDelay < 0 {
		c.SummaryDelay = 0
	}
	if c.AnswerDelay < 0 {
		c.AnswerDelay = 0
	}
	if c.VaultDBPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.VaultDBPath = filepath.Join(dir, "Saarthi", "profiles")
		} else {
			home, _ := os.UserHomeDir()
			c.VaultDBPath = filepath.Join(home, ".saarthi", "profiles")
		}
	}
}
