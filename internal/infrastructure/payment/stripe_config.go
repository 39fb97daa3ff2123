package payment

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
)

// StripeConfig holds configuration for the Stripe gateway
type StripeConfig struct {
	// SecretKey is the Stripe secret API key (sk_test_xxx or sk_live_xxx)
	SecretKey string `json:"secret_key" mapstructure:"secret_key"`

	// Currency is the ISO currency code used for checkout sessions
	Currency string `json:"currency" mapstructure:"currency"`
}

// Validate validates the Stripe configuration
func (c *StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("stripe: secret key is required")
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") {
		return fmt.Errorf("stripe: secret key must start with sk_")
	}
	if c.Currency == "" {
		return fmt.Errorf("stripe: currency is required")
	}
	return nil
}

// InitStripeClient sets the global Stripe API key
func (c *StripeConfig) InitStripeClient() {
	stripe.Key = c.SecretKey
}
