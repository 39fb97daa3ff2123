package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// SessionLineItem is one product entry on a gateway checkout session
type SessionLineItem struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateSessionRequest describes the checkout session to open
type CreateSessionRequest struct {
	OrderID    string
	SuccessURL string
	CancelURL  string
	Items      []SessionLineItem
}

// SessionInfo is the gateway's view of a checkout session
type SessionInfo struct {
	ID              string
	URL             string
	PaymentIntentID string
	Paid            bool
}

// PaymentGateway abstracts the hosted payment provider. The Stripe
// implementation lives in infrastructure/payment.
type PaymentGateway interface {
	// CreateSession opens a hosted checkout session for an order
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)

	// GetSession fetches the current state of a session
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Refund returns a captured payment to the buyer
	Refund(ctx context.Context, paymentIntentID string) error
}
