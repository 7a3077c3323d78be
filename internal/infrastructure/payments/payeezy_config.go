package payments

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PayeezyEnvironmentSandbox    = "sandbox"
	PayeezyEnvironmentProduction = "production"

	payeezySandboxBaseURL    = "https://api-cert.payeezy.com/v1"
	payeezyProductionBaseURL = "https://api.payeezy.com/v1"
)

// PayeezyConfig holds the credentials of one merchant account. APISecret only
// keys the request signature and is never transmitted.
type PayeezyConfig struct {
	APIKey        string
	APISecret     string
	MerchantToken string
	Environment   string
	// BaseURL overrides the URL selected by Environment.
	BaseURL string
	// Mock short-circuits every call with a synthetic approved result.
	Mock bool
}

// PayeezyOption customizes a gateway at construction.
type PayeezyOption func(*PayeezyGateway)

func WithHTTPClient(client *http.Client) PayeezyOption {
	return func(g *PayeezyGateway) {
		if client != nil {
			g.httpClient = client
		}
	}
}

func WithLogger(logger *zap.Logger) PayeezyOption {
	return func(g *PayeezyGateway) {
		if logger != nil {
			g.log = logger
		}
	}
}

// WithClock replaces the time source used for the signed timestamp header.
func WithClock(now func() time.Time) PayeezyOption {
	return func(g *PayeezyGateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithMerchantRefGenerator replaces the generator used when the caller gives no
// order id.
func WithMerchantRefGenerator(gen func() string) PayeezyOption {
	return func(g *PayeezyGateway) {
		if gen != nil {
			g.newMerchantRef = gen
		}
	}
}

func (c PayeezyConfig) validate() error {
	if c.Mock {
		return nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return &ConfigurationError{Field: "api_key", Reason: "is required"}
	}
	if strings.TrimSpace(c.APISecret) == "" {
		return &ConfigurationError{Field: "api_secret", Reason: "is required"}
	}
	if strings.TrimSpace(c.MerchantToken) == "" {
		return &ConfigurationError{Field: "merchant_token", Reason: "is required"}
	}
	return nil
}

func (c PayeezyConfig) resolveBaseURL() (string, error) {
	if u := strings.TrimSpace(c.BaseURL); u != "" {
		return strings.TrimRight(u, "/"), nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", PayeezyEnvironmentSandbox:
		return payeezySandboxBaseURL, nil
	case PayeezyEnvironmentProduction:
		return payeezyProductionBaseURL, nil
	default:
		return "", &ConfigurationError{Field: "environment", Reason: "must be sandbox or production"}
	}
}

func defaultMerchantRef() string {
	return uuid.NewString()
}
