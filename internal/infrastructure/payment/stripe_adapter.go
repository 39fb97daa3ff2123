package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/refund"
	"go.uber.org/zap"

	"github.com/bulky/backend/internal/application/order"
	"github.com/bulky/backend/internal/domain/shared/valueobject"
)

// StripeAdapter implements the order.PaymentGateway interface using Stripe
// hosted checkout sessions
type StripeAdapter struct {
	config *StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe payment adapter
func NewStripeAdapter(config *StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stripe config: %w", err)
	}

	config.InitStripeClient()

	return &StripeAdapter{
		config: config,
		logger: logger,
	}, nil
}

// CreateSession opens a hosted checkout session for an order. Line prices
// are converted to the currency's minor units as Stripe requires.
func (a *StripeAdapter) CreateSession(ctx context.Context, req order.CreateSessionRequest) (*order.SessionInfo, error) {
	a.logger.Debug("creating stripe checkout session",
		zap.String("order_id", req.OrderID),
		zap.Int("line_items", len(req.Items)))

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		unitAmount := valueobject.NewMoneyUSD(item.UnitPrice).MinorUnits()
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(a.config.Currency),
				UnitAmount: stripe.Int64(unitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems:  lineItems,
		Metadata: map[string]string{
			"order_id": req.OrderID,
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		a.logger.Error("failed to create stripe checkout session",
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	a.logger.Info("stripe checkout session created",
		zap.String("order_id", req.OrderID),
		zap.String("session_id", sess.ID))

	return sessionInfo(sess), nil
}

// GetSession fetches the current state of a checkout session, expanding the
// payment intent so the caller can record it once payment completes.
func (a *StripeAdapter) GetSession(ctx context.Context, sessionID string) (*order.SessionInfo, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	sess, err := session.Get(sessionID, params)
	if err != nil {
		a.logger.Error("failed to fetch stripe checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to fetch checkout session: %w", err)
	}

	return sessionInfo(sess), nil
}

// Refund returns a captured payment to the buyer
func (a *StripeAdapter) Refund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	ref, err := refund.New(params)
	if err != nil {
		a.logger.Error("failed to create stripe refund",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return fmt.Errorf("stripe: failed to create refund: %w", err)
	}

	a.logger.Info("stripe refund created",
		zap.String("payment_intent_id", paymentIntentID),
		zap.String("refund_id", ref.ID),
		zap.String("status", string(ref.Status)))

	return nil
}

func sessionInfo(sess *stripe.CheckoutSession) *order.SessionInfo {
	info := &order.SessionInfo{
		ID:   sess.ID,
		URL:  sess.URL,
		Paid: sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if sess.PaymentIntent != nil {
		info.PaymentIntentID = sess.PaymentIntent.ID
	}
	return info
}

var _ order.PaymentGateway = (*StripeAdapter)(nil)
