package order

import (
	"time"

	"github.com/bulky/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest represents a request to place an order from the cart
type CheckoutRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string `json:"phone_number" binding:"omitempty,max=30"`
	StreetAddress string `json:"street_address" binding:"required,max=200"`
	City          string `json:"city" binding:"required,max=100"`
	State         string `json:"state" binding:"required,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,max=20"`
	SuccessURL    string `json:"success_url" binding:"required,url"`
	CancelURL     string `json:"cancel_url" binding:"required,url"`
}

// ShipOrderRequest represents a request to ship an order
type ShipOrderRequest struct {
	Carrier        string `json:"carrier" binding:"required,min=1,max=50"`
	TrackingNumber string `json:"tracking_number" binding:"required,min=1,max=100"`
}

// UpdateShippingRequest represents a correction of the delivery details
// on an order header
type UpdateShippingRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber   string `json:"phone_number" binding:"omitempty,max=30"`
	StreetAddress string `json:"street_address" binding:"required,max=200"`
	City          string `json:"city" binding:"required,max=100"`
	State         string `json:"state" binding:"required,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,max=20"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   *order.OrderStatus `form:"status"`
	Page     int                `form:"page"`
	PageSize int                `form:"page_size"`
	OrderBy  string             `form:"order_by"`
	OrderDir string             `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// ShippingDetailsResponse represents the shipping block of an order
type ShippingDetailsResponse struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID               `json:"id"`
	AccountID      uuid.UUID               `json:"account_id"`
	OrderDate      time.Time               `json:"order_date"`
	ShippingDate   *time.Time              `json:"shipping_date,omitempty"`
	Lines          []OrderLineResponse     `json:"lines"`
	Total          decimal.Decimal         `json:"total"`
	Status         string                  `json:"status"`
	PaymentStatus  string                  `json:"payment_status"`
	Shipping       ShippingDetailsResponse `json:"shipping"`
	Carrier        string                  `json:"carrier,omitempty"`
	TrackingNumber string                  `json:"tracking_number,omitempty"`
	PaymentDate    *time.Time              `json:"payment_date,omitempty"`
	PaymentDueDate *time.Time              `json:"payment_due_date,omitempty"`
	PaymentURL     string                  `json:"payment_url,omitempty"`
}

// OrderListItemResponse is the compact order representation for lists
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	AccountID     uuid.UUID       `json:"account_id"`
	OrderDate     time.Time       `json:"order_date"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	LineCount     int             `json:"line_count"`
}

// OrderListResponse is a paginated list of orders
type OrderListResponse struct {
	Items      []OrderListItemResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int                     `json:"total_pages"`
}

// ToOrderResponse converts an order to its response representation
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		lines = append(lines, OrderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Title:     line.Title,
			Author:    line.Author,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount(),
		})
	}

	return OrderResponse{
		ID:           o.ID,
		AccountID:    o.AccountID,
		OrderDate:    o.OrderDate,
		ShippingDate: o.ShippingDate,
		Lines:        lines,
		Total:        o.Total,
		Status:       o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		Shipping: ShippingDetailsResponse{
			Name:          o.Shipping.Name,
			PhoneNumber:   o.Shipping.PhoneNumber,
			StreetAddress: o.Shipping.StreetAddress,
			City:          o.Shipping.City,
			State:         o.Shipping.State,
			PostalCode:    o.Shipping.PostalCode,
		},
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		PaymentDate:    o.PaymentDate,
		PaymentDueDate: o.PaymentDueDate,
	}
}

// ToOrderListItemResponse converts an order to its list representation
func ToOrderListItemResponse(o *order.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:            o.ID,
		AccountID:     o.AccountID,
		OrderDate:     o.OrderDate,
		Total:         o.Total,
		Status:        o.Status.String(),
		PaymentStatus: o.PaymentStatus.String(),
		LineCount:     o.LineCount(),
	}
}
