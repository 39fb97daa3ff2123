package order

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusInProcess OrderStatus = "IN_PROCESS"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusInProcess, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusInProcess || target == OrderStatusCancelled
	case OrderStatusApproved:
		return target == OrderStatusInProcess || target == OrderStatusCancelled
	case OrderStatusInProcess:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentStatusPending            PaymentStatus = "PENDING"
	PaymentStatusDelayedForApproval PaymentStatus = "DELAYED_FOR_APPROVAL"
	PaymentStatusApproved           PaymentStatus = "APPROVED"
	PaymentStatusRejected           PaymentStatus = "REJECTED"
	PaymentStatusRefunded           PaymentStatus = "REFUNDED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusDelayedForApproval, PaymentStatusApproved, PaymentStatusRejected, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}
