package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// USD is the only currency the storefront bills in
const USD Currency = "USD"

// Money is a value object representing a monetary amount. It exists to
// carry catalog prices across the payment gateway boundary, where amounts
// are billed in minor units rather than decimals.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoneyUSD creates Money in USD
func NewMoneyUSD(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: USD}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// MinorUnits returns the amount in the currency's minor units (cents),
// rounded to the nearest unit. Payment gateways bill in minor units.
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// String returns a human-readable representation
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
