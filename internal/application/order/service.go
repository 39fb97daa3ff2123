package order

import (
	"context"

	"github.com/bulky/backend/internal/domain/cart"
	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/order"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles order placement and lifecycle operations
type Service struct {
	orderRepo   order.Repository
	cartRepo    cart.Repository
	accountRepo identity.AccountRepository
	gateway     PaymentGateway
	logger      *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, cartRepo cart.Repository, accountRepo identity.AccountRepository, gateway PaymentGateway, logger *zap.Logger) *Service {
	return &Service{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		accountRepo: accountRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// Checkout places an order from the requester's cart. Line prices are
// frozen at the cart quantities and the cart is cleared in the same
// transaction as the order insert. Individual buyers get a hosted
// payment session; company buyers go to deferred net-30 billing.
func (s *Service) Checkout(ctx context.Context, requester identity.RequesterContext, req CheckoutRequest) (*OrderResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, requester.AccountID)
	if err != nil {
		return nil, err
	}

	lines, err := s.cartRepo.FindAllByAccount(ctx, requester.AccountID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	newOrder, err := order.NewOrder(requester.AccountID, order.ShippingDetails{
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
	}, account.IsCompanyBuyer())
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].Product == nil {
			return nil, shared.NewDomainError("PRODUCT_NOT_LOADED", "Cart line product is not loaded")
		}
		if _, err := newOrder.AddLine(lines[i].Product, lines[i].Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveCheckout(ctx, newOrder); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", newOrder.ID.String()),
		zap.String("account_id", requester.AccountID.String()),
		zap.String("total", newOrder.Total.String()),
		zap.String("payment_status", newOrder.PaymentStatus.String()))

	resp := ToOrderResponse(newOrder)

	// Company buyers pay on invoice terms, no session is opened
	if newOrder.PaymentStatus != order.PaymentStatusPending {
		return &resp, nil
	}

	session, err := s.openPaymentSession(ctx, newOrder, req.SuccessURL, req.CancelURL)
	if err != nil {
		return nil, err
	}
	resp.PaymentURL = session.URL

	return &resp, nil
}

// RetryPayment opens a fresh payment session for an order that still
// owes payment, replacing any stale session reference.
func (s *Service) RetryPayment(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID, successURL, cancelURL string) (*OrderResponse, error) {
	o, err := s.authorizedOrder(ctx, requester, orderID)
	if err != nil {
		return nil, err
	}
	if !o.RequiresPayment() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order does not owe a payment")
	}

	session, err := s.openPaymentSession(ctx, o, successURL, cancelURL)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	resp.PaymentURL = session.URL
	return &resp, nil
}

// ConfirmPayment checks the order's gateway session and, if the session
// was paid, approves the order. Safe to call repeatedly.
func (s *Service) ConfirmPayment(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.authorizedOrder(ctx, requester, orderID)
	if err != nil {
		return nil, err
	}

	if o.PaymentStatus == order.PaymentStatusApproved {
		resp := ToOrderResponse(o)
		return &resp, nil
	}
	if o.SessionID == "" {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has no payment session")
	}

	session, err := s.gateway.GetSession(ctx, o.SessionID)
	if err != nil {
		s.logger.Error("payment session lookup failed",
			zap.String("order_id", o.ID.String()),
			zap.String("session_id", o.SessionID),
			zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}
	if !session.Paid {
		return nil, shared.NewDomainError("PAYMENT_INCOMPLETE", "Payment has not completed")
	}

	if err := o.ConfirmPayment(session.PaymentIntentID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("payment confirmed",
		zap.String("order_id", o.ID.String()),
		zap.String("payment_intent_id", session.PaymentIntentID))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByID retrieves an order. Buyers see only their own orders.
func (s *Service) GetByID(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.authorizedOrder(ctx, requester, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List returns orders. Staff see all orders, buyers see their own.
func (s *Service) List(ctx context.Context, requester identity.RequesterContext, filter OrderListFilter) (*OrderListResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	var page *shared.Paginated[*order.Order]
	var err error
	if requester.IsStaff() {
		page, err = s.orderRepo.FindAll(ctx, domainFilter)
	} else {
		page, err = s.orderRepo.FindAllByAccount(ctx, requester.AccountID, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	items := make([]OrderListItemResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, ToOrderListItemResponse(o))
	}

	return &OrderListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// StartProcessing moves an order into fulfillment. Staff only.
func (s *Service) StartProcessing(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID) (*OrderResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.StartProcessing(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Ship marks an order as shipped. Staff only.
func (s *Service) Ship(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Ship(req.Carrier, req.TrackingNumber); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order shipped",
		zap.String("order_id", o.ID.String()),
		zap.String("carrier", o.Carrier),
		zap.String("tracking_number", o.TrackingNumber))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateShippingDetails corrects the delivery details on an order that
// has not shipped yet. Staff only.
func (s *Service) UpdateShippingDetails(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID, req UpdateShippingRequest) (*OrderResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.UpdateShippingDetails(order.ShippingDetails{
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
	}); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Cancel cancels an order. Staff may cancel any unshipped order; buyers
// may cancel their own order while it is still pending. A captured
// payment is refunded through the gateway.
func (s *Service) Cancel(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.authorizedOrder(ctx, requester, orderID)
	if err != nil {
		return nil, err
	}
	if !requester.IsStaff() && o.Status != order.OrderStatusPending {
		return nil, shared.ErrForbidden
	}

	refund := o.PaymentStatus == order.PaymentStatusApproved && o.PaymentIntentID != ""

	if err := o.Cancel(); err != nil {
		return nil, err
	}

	if refund {
		if err := s.gateway.Refund(ctx, o.PaymentIntentID); err != nil {
			s.logger.Error("refund failed",
				zap.String("order_id", o.ID.String()),
				zap.String("payment_intent_id", o.PaymentIntentID),
				zap.Error(err))
			return nil, shared.ErrUpstreamFailure
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", o.ID.String()),
		zap.Bool("refunded", refund))

	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *Service) openPaymentSession(ctx context.Context, o *order.Order, successURL, cancelURL string) (*SessionInfo, error) {
	items := make([]SessionLineItem, 0, len(o.Lines))
	for i := range o.Lines {
		items = append(items, SessionLineItem{
			Name:      o.Lines[i].Title,
			Quantity:  o.Lines[i].Quantity,
			UnitPrice: o.Lines[i].UnitPrice,
		})
	}

	session, err := s.gateway.CreateSession(ctx, CreateSessionRequest{
		OrderID:    o.ID.String(),
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Items:      items,
	})
	if err != nil {
		s.logger.Error("payment session creation failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return nil, shared.ErrUpstreamFailure
	}

	o.RecordPaymentSession(session.ID, session.PaymentIntentID)
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) authorizedOrder(ctx context.Context, requester identity.RequesterContext, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !requester.CanAccessOrder(o.AccountID) {
		return nil, shared.ErrForbidden
	}
	return o, nil
}
