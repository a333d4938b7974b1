package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string `validate:"required"`
	DatabaseURI          string `validate:"required"`
	AuthSecret           string `validate:"required"`
	PaymentAPIBase       string `validate:"required,url"`
	PaymentSecretKey     string `validate:"required"`
	PaymentWebhookSecret string `validate:"required"`
	Currency             string `validate:"required,len=3"`
	PaymentTimeout       time.Duration
	RetryPollInterval    time.Duration
	RetryBatchSize       int
	RetryMaxAttempts     int
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultAuthSecret        = "change-me-in-production"
	defaultPaymentAPIBase    = "https://api.stripe.com"
	defaultCurrency          = "usd"
	defaultPaymentTimeout    = 10 * time.Second
	defaultRetryPollInterval = 30 * time.Second
	defaultRetryBatchSize    = 16
	defaultRetryMaxAttempts  = 5
	defaultWorkerPoolSize    = 2
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		AuthSecret:           getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		PaymentAPIBase:       getString(lookup, "PAYMENT_API_BASE", defaultPaymentAPIBase),
		PaymentSecretKey:     getString(lookup, "PAYMENT_SECRET_KEY", ""),
		PaymentWebhookSecret: getString(lookup, "PAYMENT_WEBHOOK_SECRET", ""),
		Currency:             getString(lookup, "CURRENCY", defaultCurrency),
		PaymentTimeout:       getDuration(lookup, "PAYMENT_TIMEOUT", defaultPaymentTimeout),
		RetryPollInterval:    getDuration(lookup, "RETRY_POLL_INTERVAL", defaultRetryPollInterval),
		RetryBatchSize:       getInt(lookup, "RETRY_BATCH_SIZE", defaultRetryBatchSize),
		RetryMaxAttempts:     getInt(lookup, "RETRY_MAX_ATTEMPTS", defaultRetryMaxAttempts),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("blackbox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.RetryPollInterval.String()
		paymentTimeoutStr  = cfg.PaymentTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentAPIBase, "p", cfg.PaymentAPIBase, "Payment provider API base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Checkout currency code")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent retry workers")
	fs.IntVar(&cfg.RetryBatchSize, "retry-batch", cfg.RetryBatchSize, "Maximum reconciliation failures per retry batch")
	fs.IntVar(&cfg.RetryMaxAttempts, "retry-attempts", cfg.RetryMaxAttempts, "Retry attempts before a failure is escalated")
	fs.StringVar(&pollIntervalStr, "retry-interval", pollIntervalStr, "Interval between reconciliation retry sweeps")
	fs.StringVar(&paymentTimeoutStr, "payment-timeout", paymentTimeoutStr, "Timeout for payment provider calls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RetryPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid retry interval: %w", err)
	}

	if cfg.PaymentTimeout, err = time.ParseDuration(paymentTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid payment timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.RetryBatchSize <= 0 {
		cfg.RetryBatchSize = defaultRetryBatchSize
	}

	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = defaultRetryMaxAttempts
	}

	if cfg.RetryPollInterval <= 0 {
		cfg.RetryPollInterval = defaultRetryPollInterval
	}

	if cfg.PaymentTimeout <= 0 {
		cfg.PaymentTimeout = defaultPaymentTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
