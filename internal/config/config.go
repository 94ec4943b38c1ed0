package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"artisan_escrow/internal/domain/entities"

	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"

	LockRedis = "redis"
	LockLocal = "local"

	NotifierSNS   = "sns"
	NotifierRedis = "redis"
	NotifierLog   = "log"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Lock     LockConfig
	Notifier NotifierConfig
	Journal  JournalConfig
	Payment  PaymentConfig
	Fees     entities.FeePolicy
	Projects ProjectsConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig selects the persistence backend. DynamoDB settings mirror the
// local-friendly env vars (DYNAMODB_ENDPOINT for dynamodb-local).
type StorageConfig struct {
	Driver           string
	AWSRegion        string
	AWSAccessKeyID   string
	AWSSecretKey     string
	DynamoDBEndpoint string
	ProjectsTable    string
	QuotesTable      string
	EscrowsTable     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LockConfig struct {
	Driver string
	TTL    time.Duration
	Wait   time.Duration
}

type NotifierConfig struct {
	Driver      string
	SNSTopicARN string
	Channel     string
}

// JournalConfig enables the Postgres ledger journal when DSN is set.
type JournalConfig struct {
	DSN string
}

type PaymentConfig struct {
	Mock                   bool
	MercadoPagoAccessToken string
	Timeout                time.Duration
	RateLimit              float64
	RateBurst              int
	SimulatedSuccessRate   float64
	SimulatedFeePercent    int64
	SimulatedLatency       time.Duration
}

type ProjectsConfig struct {
	QuoteWindow time.Duration
}

// Load reads configuration from the environment (a .env file is loaded by
// cmd/api through godotenv/autoload before this runs).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Storage: StorageConfig{
			Driver:           strings.ToLower(v.GetString("STORAGE_DRIVER")),
			AWSRegion:        v.GetString("AWS_REGION"),
			AWSAccessKeyID:   v.GetString("AWS_ACCESS_KEY_ID"),
			AWSSecretKey:     v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
			ProjectsTable:    v.GetString("PROJECTS_TABLE"),
			QuotesTable:      v.GetString("QUOTES_TABLE"),
			EscrowsTable:     v.GetString("ESCROWS_TABLE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Lock: LockConfig{
			Driver: strings.ToLower(v.GetString("LOCK_DRIVER")),
			TTL:    v.GetDuration("LOCK_TTL"),
			Wait:   v.GetDuration("LOCK_WAIT"),
		},
		Notifier: NotifierConfig{
			Driver:      strings.ToLower(v.GetString("NOTIFIER_DRIVER")),
			SNSTopicARN: v.GetString("SNS_TOPIC_ARN"),
			Channel:     v.GetString("NOTIFICATIONS_CHANNEL"),
		},
		Journal: JournalConfig{
			DSN: v.GetString("JOURNAL_DSN"),
		},
		Payment: PaymentConfig{
			Mock:                   v.GetBool("PAYMENT_GATEWAY_MOCK") || v.GetBool("MERCADOPAGO_MOCK"),
			MercadoPagoAccessToken: v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
			Timeout:                v.GetDuration("PAYMENT_TIMEOUT"),
			RateLimit:              v.GetFloat64("PAYMENT_RATE_LIMIT"),
			RateBurst:              v.GetInt("PAYMENT_RATE_BURST"),
			SimulatedSuccessRate:   v.GetFloat64("SIMULATED_SUCCESS_RATE"),
			SimulatedFeePercent:    v.GetInt64("SIMULATED_FEE_PERCENT"),
			SimulatedLatency:       v.GetDuration("SIMULATED_LATENCY"),
		},
		Fees: entities.FeePolicy{
			CommissionPercent:      v.GetInt64("COMMISSION_PERCENT"),
			TVAPercent:             v.GetInt64("TVA_PERCENT"),
			UrgentSurchargePercent: v.GetInt64("URGENT_SURCHARGE_PERCENT"),
			AdvancePercent:         v.GetInt64("ADVANCE_PERCENT"),
		},
		Projects: ProjectsConfig{
			QuoteWindow: v.GetDuration("QUOTE_WINDOW"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORAGE_DRIVER", StorageDynamoDB)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("PROJECTS_TABLE", "projects")
	v.SetDefault("QUOTES_TABLE", "quotes")
	v.SetDefault("ESCROWS_TABLE", "escrows")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOCK_DRIVER", LockLocal)
	v.SetDefault("LOCK_TTL", "30s")
	v.SetDefault("LOCK_WAIT", "5s")
	v.SetDefault("NOTIFIER_DRIVER", NotifierLog)
	v.SetDefault("NOTIFICATIONS_CHANNEL", "marketplace.notifications")
	v.SetDefault("PAYMENT_TIMEOUT", "15s")
	v.SetDefault("PAYMENT_RATE_LIMIT", 20)
	v.SetDefault("PAYMENT_RATE_BURST", 5)
	v.SetDefault("SIMULATED_SUCCESS_RATE", 0.9)
	v.SetDefault("SIMULATED_FEE_PERCENT", 2)
	v.SetDefault("SIMULATED_LATENCY", "300ms")
	v.SetDefault("COMMISSION_PERCENT", entities.DefaultCommissionPercent)
	v.SetDefault("TVA_PERCENT", entities.DefaultTVAPercent)
	v.SetDefault("URGENT_SURCHARGE_PERCENT", entities.DefaultUrgentSurchargePercent)
	v.SetDefault("ADVANCE_PERCENT", entities.DefaultAdvancePercent)
	v.SetDefault("QUOTE_WINDOW", entities.DefaultQuoteWindow.String())
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.Storage.Driver {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.Lock.Driver {
	case LockRedis, LockLocal:
	default:
		return fmt.Errorf("unsupported LOCK_DRIVER %q", c.Lock.Driver)
	}
	switch c.Notifier.Driver {
	case NotifierSNS:
		if c.Notifier.SNSTopicARN == "" {
			return errors.New("SNS_TOPIC_ARN is required when NOTIFIER_DRIVER=sns")
		}
	case NotifierRedis, NotifierLog:
	default:
		return fmt.Errorf("unsupported NOTIFIER_DRIVER %q", c.Notifier.Driver)
	}
	if c.Payment.Timeout <= 0 {
		return errors.New("PAYMENT_TIMEOUT must be positive")
	}
	if c.Lock.TTL <= c.Payment.Timeout {
		return fmt.Errorf("LOCK_TTL (%s) must exceed PAYMENT_TIMEOUT (%s)", c.Lock.TTL, c.Payment.Timeout)
	}
	if c.Payment.SimulatedSuccessRate < 0 || c.Payment.SimulatedSuccessRate > 1 {
		return errors.New("SIMULATED_SUCCESS_RATE must be between 0 and 1")
	}
	if _, err := entities.CalculateFees(c.Fees.Input(100, true, true)); err != nil {
		return fmt.Errorf("invalid fee policy: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
