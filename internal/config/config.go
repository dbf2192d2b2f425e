package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "1080"
	DefaultArcPayURL   = "https://arcpay.online/api/v1/arcpay/order"
	DefaultArcTimeout  = 10 * time.Second
	defaultDotEnvFile  = ".env"
	defaultLogLevelStr = "info"
)

type Config struct {
	RunAddress    string
	Port          string
	WebhookSecret string
	ArcKey        string
	ArcPayURL     string
	ArcTimeout    time.Duration
	LogLevel      slog.Level
}

// New builds the configuration from flag defaults, .env, explicit flags and
// the environment, in increasing order of precedence. It does not validate;
// call Validate before use.
func New() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load is New with an explicit flag set and arguments.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	dotenv, err := godotenv.Read(defaultDotEnvFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultDotEnvFile, err)
	}

	cfg := &Config{}
	var logLevel, timeout string

	fs.StringVar(&cfg.RunAddress, "a", "", "server address and port (overrides -p)")
	fs.StringVar(&cfg.Port, "p", DefaultPort, "server port")
	fs.StringVar(&cfg.WebhookSecret, "k", "", "webhook HMAC secret")
	fs.StringVar(&cfg.ArcKey, "arc-key", "", "ArcPay API key")
	fs.StringVar(&cfg.ArcPayURL, "u", DefaultArcPayURL, "ArcPay order endpoint")
	fs.StringVar(&timeout, "t", DefaultArcTimeout.String(), "ArcPay request timeout")
	fs.StringVar(&logLevel, "log-level", defaultLogLevelStr, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// An explicit -p must not lose to a RUN_ADDRESS that only .env provides.
	if set["p"] && !set["a"] {
		delete(dotenv, "RUN_ADDRESS")
	}

	// environment > explicit flag > .env > flag default
	resolve := func(key, name, current string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		if set[name] {
			return current
		}
		if v, ok := dotenv[key]; ok {
			return v
		}
		return current
	}

	cfg.RunAddress = resolve("RUN_ADDRESS", "a", cfg.RunAddress)
	cfg.Port = resolve("PORT", "p", cfg.Port)
	cfg.WebhookSecret = resolve("PRIVATE_KEY", "k", cfg.WebhookSecret)
	cfg.ArcKey = resolve("ARC_KEY", "arc-key", cfg.ArcKey)
	cfg.ArcPayURL = resolve("ARC_API_URL", "u", cfg.ArcPayURL)
	logLevel = resolve("LOG_LEVEL", "log-level", logLevel)

	cfg.ArcTimeout, err = time.ParseDuration(resolve("ARC_TIMEOUT", "t", timeout))
	if err != nil {
		return nil, fmt.Errorf("parse ARC_TIMEOUT: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = net.JoinHostPort("", cfg.Port)
	}

	return cfg, nil
}

// Validate reports every missing or unusable setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.WebhookSecret) == "" {
		errs = append(errs, errors.New("PRIVATE_KEY is required"))
	}
	if strings.TrimSpace(c.ArcKey) == "" {
		errs = append(errs, errors.New("ARC_KEY is required"))
	}
	if c.ArcPayURL == "" {
		errs = append(errs, errors.New("ARC_API_URL must not be empty"))
	}
	if c.ArcTimeout <= 0 {
		errs = append(errs, errors.New("ARC_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
