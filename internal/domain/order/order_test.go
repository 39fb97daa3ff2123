package order

import (
	"testing"

	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipping() ShippingDetails {
	return ShippingDetails{
		Name:          "Ada Lovelace",
		PhoneNumber:   "555-0100",
		StreetAddress: "12 Analytical Way",
		City:          "London",
		State:         "LDN",
		PostalCode:    "SW1A",
	}
}

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("SICP", "Abelson & Sussman", "978-0262510875", catalog.ProductPrices{
		ListPrice: decimal.NewFromInt(30),
		Price:     decimal.NewFromInt(25),
		Price50:   decimal.NewFromInt(22),
		Price100:  decimal.NewFromInt(20),
	}, uuid.New())
	require.NoError(t, err)
	return product
}

func pendingOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), testShipping(), false)
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("individual buyer starts pending payment", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), testShipping(), false)
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
		assert.Nil(t, order.PaymentDueDate)
		assert.True(t, order.Total.IsZero())
		assert.True(t, order.RequiresPayment())
	})

	t.Run("company buyer gets deferred billing", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), testShipping(), true)
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentStatusDelayedForApproval, order.PaymentStatus)
		require.NotNil(t, order.PaymentDueDate)
		assert.WithinDuration(t, order.OrderDate.AddDate(0, 0, CompanyPaymentTermDays), *order.PaymentDueDate, 0)
	})

	t.Run("fails with empty account", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, testShipping(), false)
		require.Error(t, err)
	})

	t.Run("fails without recipient name", func(t *testing.T) {
		shipping := testShipping()
		shipping.Name = "  "
		_, err := NewOrder(uuid.New(), shipping, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestOrderAddLine(t *testing.T) {
	t.Run("freezes tier price at checkout quantity", func(t *testing.T) {
		order := pendingOrder(t)
		product := testProduct(t)

		line, err := order.AddLine(product, 60)
		require.NoError(t, err)

		assert.Equal(t, product.ID, line.ProductID)
		assert.Equal(t, "SICP", line.Title)
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(22)))
		assert.True(t, line.Amount().Equal(decimal.NewFromInt(1320)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(1320)))
	})

	t.Run("later catalog price edits do not change frozen lines", func(t *testing.T) {
		order := pendingOrder(t)
		product := testProduct(t)

		line, err := order.AddLine(product, 10)
		require.NoError(t, err)

		product.Price = decimal.NewFromInt(99)
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(25)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(250)))
	})

	t.Run("sums totals across lines", func(t *testing.T) {
		order := pendingOrder(t)

		_, err := order.AddLine(testProduct(t), 100)
		require.NoError(t, err)
		other := testProduct(t)
		_, err = order.AddLine(other, 2)
		require.NoError(t, err)

		// 100*20 + 2*25
		assert.True(t, order.Total.Equal(decimal.NewFromInt(2050)))
		assert.Equal(t, 2, order.LineCount())
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		order := pendingOrder(t)
		product := testProduct(t)

		_, err := order.AddLine(product, 1)
		require.NoError(t, err)
		_, err = order.AddLine(product, 2)
		require.Error(t, err)
	})

	t.Run("rejects invalid quantity", func(t *testing.T) {
		order := pendingOrder(t)
		_, err := order.AddLine(testProduct(t), 0)
		require.Error(t, err)
	})

	t.Run("rejects lines after order leaves pending", func(t *testing.T) {
		order := pendingOrder(t)
		_, err := order.AddLine(testProduct(t), 1)
		require.NoError(t, err)
		require.NoError(t, order.StartProcessing())

		_, err = order.AddLine(testProduct(t), 1)
		require.Error(t, err)
	})
}

func TestOrderTransitions(t *testing.T) {
	t.Run("pending to in process", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.StartProcessing())
		assert.Equal(t, OrderStatusInProcess, order.Status)
	})

	t.Run("approved to in process", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.ConfirmPayment("pi_123"))
		require.NoError(t, order.StartProcessing())
		assert.Equal(t, OrderStatusInProcess, order.Status)
	})

	t.Run("ship requires in process", func(t *testing.T) {
		order := pendingOrder(t)
		err := order.Ship("UPS", "1Z999")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot move order")
	})

	t.Run("ship records carrier and tracking", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.StartProcessing())
		require.NoError(t, order.Ship("UPS", "1Z999"))

		assert.Equal(t, OrderStatusShipped, order.Status)
		assert.Equal(t, "UPS", order.Carrier)
		assert.Equal(t, "1Z999", order.TrackingNumber)
		require.NotNil(t, order.ShippingDate)
		assert.True(t, order.IsTerminal())
	})

	t.Run("ship requires carrier and tracking number", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.StartProcessing())

		require.Error(t, order.Ship("", "1Z999"))
		require.Error(t, order.Ship("UPS", "  "))
	})

	t.Run("shipping approves deferred company payment", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), testShipping(), true)
		require.NoError(t, err)
		require.NoError(t, order.StartProcessing())
		require.NoError(t, order.Ship("FedEx", "FX-42"))

		assert.Equal(t, PaymentStatusApproved, order.PaymentStatus)
	})

	t.Run("shipped order cannot transition further", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.StartProcessing())
		require.NoError(t, order.Ship("UPS", "1Z999"))

		require.Error(t, order.Cancel())
		require.Error(t, order.StartProcessing())
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels pending order without refund", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.Cancel())

		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
		assert.False(t, order.RequiresPayment())
	})

	t.Run("cancelling a paid order flags refund", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.ConfirmPayment("pi_123"))
		require.NoError(t, order.Cancel())

		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, PaymentStatusRefunded, order.PaymentStatus)
	})

	t.Run("cancels in process order", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.StartProcessing())
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})
}

func TestOrderConfirmPayment(t *testing.T) {
	t.Run("approves pending payment", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.ConfirmPayment("pi_abc"))

		assert.Equal(t, OrderStatusApproved, order.Status)
		assert.Equal(t, PaymentStatusApproved, order.PaymentStatus)
		assert.Equal(t, "pi_abc", order.PaymentIntentID)
		require.NotNil(t, order.PaymentDate)
		assert.False(t, order.RequiresPayment())
	})

	t.Run("is idempotent for an already approved order", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.ConfirmPayment("pi_abc"))
		versionAfterFirst := order.GetVersion()
		firstPaymentDate := order.PaymentDate

		require.NoError(t, order.ConfirmPayment("pi_abc"))
		assert.Equal(t, versionAfterFirst, order.GetVersion())
		assert.Equal(t, firstPaymentDate, order.PaymentDate)
	})

	t.Run("settles deferred billing when a company pays early", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), testShipping(), true)
		require.NoError(t, err)
		require.NoError(t, order.ConfirmPayment("pi_abc"))

		assert.Equal(t, OrderStatusApproved, order.Status)
		assert.Equal(t, PaymentStatusApproved, order.PaymentStatus)
		assert.Equal(t, "pi_abc", order.PaymentIntentID)
	})

	t.Run("keeps the fulfillment status of an in-process order", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), testShipping(), true)
		require.NoError(t, err)
		require.NoError(t, order.StartProcessing())
		require.NoError(t, order.ConfirmPayment("pi_abc"))

		assert.Equal(t, OrderStatusInProcess, order.Status)
		assert.Equal(t, PaymentStatusApproved, order.PaymentStatus)
	})

	t.Run("rejects confirmation on cancelled order", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.Cancel())
		require.Error(t, order.ConfirmPayment("pi_abc"))
	})
}

func TestOrderRecordPaymentSession(t *testing.T) {
	order := pendingOrder(t)
	order.RecordPaymentSession("cs_test_1", "")
	assert.Equal(t, "cs_test_1", order.SessionID)
	assert.Nil(t, order.PaymentDate)

	order.RecordPaymentSession("", "pi_1")
	assert.Equal(t, "cs_test_1", order.SessionID)
	assert.Equal(t, "pi_1", order.PaymentIntentID)
	require.NotNil(t, order.PaymentDate)
}

func TestOrderUpdateShippingDetails(t *testing.T) {
	t.Run("replaces details on open order", func(t *testing.T) {
		order := pendingOrder(t)
		details := testShipping()
		details.City = "Cambridge"

		require.NoError(t, order.UpdateShippingDetails(details))
		assert.Equal(t, "Cambridge", order.Shipping.City)
	})

	t.Run("rejects update on shipped order", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.StartProcessing())
		require.NoError(t, order.Ship("UPS", "1Z999"))

		require.Error(t, order.UpdateShippingDetails(testShipping()))
	})
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusInProcess, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusApproved, OrderStatusInProcess, true},
		{OrderStatusApproved, OrderStatusShipped, false},
		{OrderStatusInProcess, OrderStatusShipped, true},
		{OrderStatusInProcess, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
