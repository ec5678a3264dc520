package payments

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

var ErrMissingDarajaCredentials = errors.New("missing daraja shortcode/passkey")
var ErrMissingCallbackURL = errors.New("missing daraja callback url")

// DarajaConfig holds the merchant credential material and endpoints for the
// M-Pesa Daraja STK push integration.
//
// Sandbox note: when no consumer key/secret pair is configured the gateway
// falls back to using the derived request password as bearer token, which
// is what the sandbox accepts for test shortcodes.

type DarajaConfig struct {
	BaseURL           string        `env:"MPESA_BASE_URL" envDefault:"https://sandbox.safaricom.co.ke"`
	BusinessShortCode string        `env:"MPESA_SHORTCODE"`
	Passkey           string        `env:"MPESA_PASSKEY"`
	ConsumerKey       string        `env:"MPESA_CONSUMER_KEY"`
	ConsumerSecret    string        `env:"MPESA_CONSUMER_SECRET"`
	CallbackURL       string        `env:"MPESA_CALLBACK_URL"`
	CallbackToken     string        `env:"MPESA_CALLBACK_TOKEN"`
	PartyB            string        `env:"MPESA_PARTY_B"`
	TransactionType   string        `env:"MPESA_TRANSACTION_TYPE" envDefault:"CustomerPayBillOnline"`
	HTTPTimeout       time.Duration `env:"MPESA_HTTP_TIMEOUT" envDefault:"15s"`

	// TimeoutWindow bounds how long an attempt may stay PENDING before the
	// sweeper is allowed to close it. STK prompts expire on the handset
	// after roughly a minute; two gives slow callbacks room.
	TimeoutWindow time.Duration `env:"MPESA_TIMEOUT_WINDOW" envDefault:"2m"`

	// LateSuccessResolves switches the late-callback policy: when true, a
	// success callback arriving on an attempt already TIMED_OUT resolves it
	// to SUCCEEDED and fires the downstream effect; when false (default)
	// the timeout stays authoritative and the callback is kept for audit.
	LateSuccessResolves bool `env:"MPESA_LATE_SUCCESS_RESOLVES" envDefault:"false"`
}

func NewDarajaConfigFromEnv() (DarajaConfig, error) {
	var cfg DarajaConfig
	if err := env.Parse(&cfg); err != nil {
		return DarajaConfig{}, err
	}
	if cfg.BusinessShortCode == "" || cfg.Passkey == "" {
		return DarajaConfig{}, ErrMissingDarajaCredentials
	}
	if cfg.CallbackURL == "" {
		return DarajaConfig{}, ErrMissingCallbackURL
	}
	if cfg.PartyB == "" {
		cfg.PartyB = cfg.BusinessShortCode
	}
	return cfg, nil
}
