package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyPaymentTermDays is the net payment term granted to company buyers
const CompanyPaymentTermDays = 30

// ShippingDetails holds the delivery address captured on the order header
type ShippingDetails struct {
	Name          string `gorm:"column:ship_name;type:varchar(200);not null"`
	PhoneNumber   string `gorm:"column:ship_phone;type:varchar(30)"`
	StreetAddress string `gorm:"column:ship_street;type:varchar(200)"`
	City          string `gorm:"column:ship_city;type:varchar(100)"`
	State         string `gorm:"column:ship_state;type:varchar(100)"`
	PostalCode    string `gorm:"column:ship_postal_code;type:varchar(20)"`
}

// Validate checks the minimum required shipping fields
func (d ShippingDetails) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Recipient name is required")
	}
	return nil
}

// OrderLine is a product entry frozen into an order at checkout time.
// UnitPrice is the resolved tier price at freeze time and never changes
// afterwards, regardless of later catalog price edits.
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
	Title     string           `gorm:"type:varchar(200);not null"`
	Author    string           `gorm:"type:varchar(200)"`
	Quantity  int              `gorm:"not null"`
	UnitPrice decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// Amount returns quantity times the frozen unit price
func (l *OrderLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the aggregate root for a placed order. Created once at
// checkout, mutated only through status transitions, never deleted.
type Order struct {
	shared.BaseAggregateRoot
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate       time.Time       `gorm:"not null"`
	ShippingDate    *time.Time      ``
	Lines           []OrderLine     `gorm:"foreignKey:OrderID"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(30);not null"`
	Shipping        ShippingDetails `gorm:"embedded"`
	Carrier         string          `gorm:"type:varchar(50)"`
	TrackingNumber  string          `gorm:"type:varchar(100)"`
	SessionID       string          `gorm:"type:varchar(255)"`
	PaymentIntentID string          `gorm:"type:varchar(255)"`
	PaymentDate     *time.Time      ``
	PaymentDueDate  *time.Time      ``
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order for an account. Company buyers are
// granted deferred billing: payment is marked delayed for approval and a
// net-30 due date is set. Individual buyers owe payment immediately.
func NewOrder(accountID uuid.UUID, shipping ShippingDetails, companyBuyer bool) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		OrderDate:         now,
		Lines:             make([]OrderLine, 0),
		Total:             decimal.Zero,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		Shipping:          shipping,
	}

	if companyBuyer {
		order.PaymentStatus = PaymentStatusDelayedForApproval
		due := now.AddDate(0, 0, CompanyPaymentTermDays)
		order.PaymentDueDate = &due
	}

	return order, nil
}

// AddLine freezes a product into the order at the tier price resolved for
// the given quantity. Only allowed while the order is still pending.
func (o *Order) AddLine(product *catalog.Product, quantity int) (*OrderLine, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-pending order")
	}
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	for _, line := range o.Lines {
		if line.ProductID == product.ID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already frozen into order")
		}
	}

	line := OrderLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  product.ID,
		Title:      product.Title,
		Author:     product.Author,
		Quantity:   quantity,
		UnitPrice:  product.UnitPriceFor(quantity),
	}

	o.Lines = append(o.Lines, line)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return &o.Lines[len(o.Lines)-1], nil
}

// StartProcessing moves the order into fulfillment.
// Allowed from PENDING or APPROVED.
func (o *Order) StartProcessing() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusApproved {
		return o.transitionError(OrderStatusInProcess)
	}

	o.Status = OrderStatusInProcess
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Ship marks the order as shipped with carrier and tracking information.
// Deferred company payment is considered approved once goods leave.
func (o *Order) Ship(carrier, trackingNumber string) error {
	if o.Status != OrderStatusInProcess {
		return o.transitionError(OrderStatusShipped)
	}
	if strings.TrimSpace(carrier) == "" {
		return shared.NewDomainError("INVALID_CARRIER", "Carrier is required")
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return shared.NewDomainError("INVALID_TRACKING", "Tracking number is required")
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippingDate = &now
	o.Carrier = strings.TrimSpace(carrier)
	o.TrackingNumber = strings.TrimSpace(trackingNumber)
	if o.PaymentStatus == PaymentStatusDelayedForApproval {
		o.PaymentStatus = PaymentStatusApproved
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels the order. Shipped orders cannot be cancelled. A payment
// already collected is flagged for refund.
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return o.transitionError(OrderStatusCancelled)
	}

	o.Status = OrderStatusCancelled
	if o.PaymentStatus == PaymentStatusApproved {
		o.PaymentStatus = PaymentStatusRefunded
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ConfirmPayment applies a confirmed gateway payment to an order that still
// owes payment, whether immediately (individual buyers) or on deferred terms
// (company buyers paying before the invoice falls due). A pending order is
// promoted to approved; an order already in fulfillment keeps its status and
// only the payment is settled. Re-confirming an already paid order only
// re-records the same payment intent id; it is idempotent and has no further
// side effects.
func (o *Order) ConfirmPayment(paymentIntentID string) error {
	if o.PaymentStatus == PaymentStatusApproved {
		if paymentIntentID != "" {
			o.PaymentIntentID = paymentIntentID
		}
		return nil
	}
	if !o.RequiresPayment() {
		return o.transitionError(OrderStatusApproved)
	}

	now := time.Now()
	if o.Status == OrderStatusPending {
		o.Status = OrderStatusApproved
	}
	o.PaymentStatus = PaymentStatusApproved
	if paymentIntentID != "" {
		o.PaymentIntentID = paymentIntentID
	}
	o.PaymentDate = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// RecordPaymentSession stores the gateway session reference on the header.
// The payment date is only stamped once an intent id is known.
func (o *Order) RecordPaymentSession(sessionID, paymentIntentID string) {
	if sessionID != "" {
		o.SessionID = sessionID
	}
	if paymentIntentID != "" {
		o.PaymentIntentID = paymentIntentID
		now := time.Now()
		o.PaymentDate = &now
	}
	o.UpdatedAt = time.Now()
}

// UpdateShippingDetails replaces the delivery details on the header
func (o *Order) UpdateShippingDetails(details ShippingDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	if o.Status == OrderStatusShipped || o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot update shipping details on a closed order")
	}

	o.Shipping = details
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RequiresPayment reports whether the order still owes payment and can
// accept a new payment session.
func (o *Order) RequiresPayment() bool {
	if o.Status == OrderStatusCancelled {
		return false
	}
	return o.PaymentStatus == PaymentStatusPending || o.PaymentStatus == PaymentStatusDelayedForApproval
}

// BelongsTo reports whether the order is owned by the given account
func (o *Order) BelongsTo(accountID uuid.UUID) bool {
	return o.AccountID == accountID
}

// IsTerminal returns true if the order is shipped or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusShipped || o.Status == OrderStatusCancelled
}

// LineCount returns the number of order lines
func (o *Order) LineCount() int {
	return len(o.Lines)
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for idx := range o.Lines {
		total = total.Add(o.Lines[idx].Amount())
	}
	o.Total = total
}

func (o *Order) transitionError(target OrderStatus) error {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
}
