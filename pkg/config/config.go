package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Sanity   SanityConfig
	Paystack PaystackConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Admin    AdminConfig
	Cart     CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HANNIEFOODS_APP_ENV" required:"true"`
	Port         string `envconfig:"HANNIEFOODS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HANNIEFOODS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HANNIEFOODS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SanityConfig describes the headless CMS project that owns the
// product, category, order, and review documents.
type SanityConfig struct {
	ProjectID  string        `envconfig:"HANNIEFOODS_SANITY_PROJECT_ID" required:"true"`
	Dataset    string        `envconfig:"HANNIEFOODS_SANITY_DATASET" default:"production"`
	APIVersion string        `envconfig:"HANNIEFOODS_SANITY_API_VERSION" default:"2024-01-01"`
	Token      string        `envconfig:"HANNIEFOODS_SANITY_API_TOKEN" required:"true"`
	Timeout    time.Duration `envconfig:"HANNIEFOODS_SANITY_TIMEOUT" default:"15s"`
}

// PaystackConfig carries the payment gateway credentials plus the
// deployment-specific currency conversion settings. The minor unit
// factor converts display prices into gateway subunits (naira to kobo
// when left at the default).
type PaystackConfig struct {
	PublicKey       string        `envconfig:"HANNIEFOODS_PAYSTACK_PUBLIC_KEY"`
	SecretKey       string        `envconfig:"HANNIEFOODS_PAYSTACK_SECRET_KEY"`
	BaseURL         string        `envconfig:"HANNIEFOODS_PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	MerchantTag     string        `envconfig:"HANNIEFOODS_PAYSTACK_MERCHANT_TAG" default:"HANNIESFOOD"`
	CurrencyCode    string        `envconfig:"HANNIEFOODS_PAYSTACK_CURRENCY" default:"NGN"`
	MinorUnitFactor int           `envconfig:"HANNIEFOODS_PAYSTACK_MINOR_UNIT_FACTOR" default:"100"`
	SessionTimeout  time.Duration `envconfig:"HANNIEFOODS_PAYSTACK_SESSION_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HANNIEFOODS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HANNIEFOODS_REDIS_ADDR"`
	Password     string        `envconfig:"HANNIEFOODS_REDIS_PASSWORD"`
	DB           int           `envconfig:"HANNIEFOODS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HANNIEFOODS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HANNIEFOODS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HANNIEFOODS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HANNIEFOODS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HANNIEFOODS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig verifies session tokens minted by the external identity
// provider. The service never issues tokens itself.
type AuthConfig struct {
	Secret string `envconfig:"HANNIEFOODS_AUTH_SECRET" required:"true"`
	Issuer string `envconfig:"HANNIEFOODS_AUTH_ISSUER" required:"true"`
}

// AdminConfig is the shared-secret gate for the back-office endpoints.
type AdminConfig struct {
	Key string `envconfig:"HANNIEFOODS_ADMIN_KEY" required:"true"`
}

// CartConfig controls the persisted cart storage.
type CartConfig struct {
	TTL time.Duration `envconfig:"HANNIEFOODS_CART_TTL" default:"720h"`
}
