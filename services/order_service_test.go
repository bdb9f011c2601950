package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golden-elegance/models"
	"golden-elegance/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOrders struct {
	repositories.OrderRepository
}

func (failingOrders) Create(context.Context, *models.Order) error {
	return errors.New("db down")
}

func newTestOrderService(t *testing.T) (*OrderService, *CartService, *repositories.MemoryOrderRepository) {
	t.Helper()
	cart, _ := newTestCartService(t)
	orders := repositories.NewMemoryOrderRepository()
	svc := NewOrderService(cart, orders, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, cart, orders
}

func checkoutRequest() models.PlaceOrderRequest {
	return models.PlaceOrderRequest{
		FullName: " Asha Rao ",
		Email:    "Asha@Example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []models.CartItem
		want  models.CartTotals
	}{
		{"below threshold", []models.CartItem{{Price: 899, Quantity: 1}}, models.CartTotals{Subtotal: 899, Shipping: 50, Total: 949}},
		{"at threshold", []models.CartItem{{Price: 333, Quantity: 3}}, models.CartTotals{Subtotal: 999, Shipping: 0, Total: 999}},
		{"above threshold", []models.CartItem{{Price: 899, Quantity: 2}}, models.CartTotals{Subtotal: 1798, Shipping: 0, Total: 1798}},
		{"empty", nil, models.CartTotals{Subtotal: 0, Shipping: 50, Total: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTotals(tt.items))
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number, err := generateOrderNumber()
		require.NoError(t, err)
		assert.Regexp(t, `^QO[A-Z0-9]{8}$`, number)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	svc, cart, orders := newTestOrderService(t)

	_, err := cart.AddToCart(ctx, "user:a@b.co", 1, "M", 2)
	require.NoError(t, err)
	_, err = cart.AddToCart(ctx, "user:a@b.co", 2, "S", 1)
	require.NoError(t, err)

	order, err := svc.PlaceOrder(ctx, "user:a@b.co", "a@b.co", checkoutRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^QO[A-Z0-9]{8}$`, order.OrderNumber)
	assert.Equal(t, "a@b.co", order.UserEmail)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, 2*899+749, order.Subtotal)
	assert.Equal(t, 0, order.Shipping)
	assert.Equal(t, 2*899+749, order.Total)
	assert.Equal(t, models.Payment{Method: models.PaymentCOD, Status: models.PaymentStatusPending, Amount: order.Total}, order.Payment)
	assert.Equal(t, models.Address{
		FullName:    "Asha Rao",
		Phone:       "9876543210",
		Email:       "asha@example.com",
		AddressLine: "12 MG Road",
		City:        "Bengaluru",
		State:       "Karnataka",
		Pincode:     "560001",
	}, order.Address)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Elegant Cotton Full Nighty", order.Items[0].ProductName)
	assert.Equal(t, "M", order.Items[0].VariantSnapshot)
	assert.Equal(t, 899, order.Items[0].UnitPrice)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), order.CreatedAt)

	// the cart is emptied
	view, err := cart.GetCart(ctx, "user:a@b.co")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	stored, err := orders.ByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)
}

func TestOrderService_PlaceOrder_ShippingAndPayment(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newTestOrderService(t)

	_, err := cart.AddToCart(ctx, "s1", 2, "S", 1)
	require.NoError(t, err)

	req := checkoutRequest()
	req.Payment = "WhatsApp"
	order, err := svc.PlaceOrder(ctx, "s1", "a@b.co", req)
	require.NoError(t, err)
	assert.Equal(t, FlatShippingFee, order.Shipping)
	assert.Equal(t, 749+FlatShippingFee, order.Total)
	assert.Equal(t, models.PaymentWhatsApp, order.Payment.Method)
	assert.Equal(t, order.Total, order.Payment.Amount)
}

func TestOrderService_PlaceOrder_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newTestOrderService(t)

	_, err := svc.PlaceOrder(ctx, "s1", "a@b.co", checkoutRequest())
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Equal(t, "Cart is empty.", UserMessage(err))

	_, err = cart.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)

	req := checkoutRequest()
	req.Payment = "card"
	_, err = svc.PlaceOrder(ctx, "s1", "a@b.co", req)
	assert.ErrorIs(t, err, ErrPaymentMethod)

	// nothing was consumed
	count, err := cart.GetCartCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOrderService_PlaceOrder_RetriesCollisions(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newTestOrderService(t)

	numbers := []string{"QOAAAAAAAA", "QOAAAAAAAA", "QOBBBBBBBB"}
	svc.newNumber = func() (string, error) {
		n := numbers[0]
		numbers = numbers[1:]
		return n, nil
	}

	_, err := cart.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)
	first, err := svc.PlaceOrder(ctx, "s1", "a@b.co", checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "QOAAAAAAAA", first.OrderNumber)

	_, err = cart.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, "s1", "a@b.co", checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "QOBBBBBBBB", second.OrderNumber)
}

func TestOrderService_PlaceOrder_StoreFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCartService(t)
	svc := NewOrderService(cart, failingOrders{}, nil)

	_, err := cart.AddToCart(ctx, "s1", 1, "M", 3)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, "s1", "a@b.co", checkoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	count, err := cart.GetCartCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOrderService_Summary(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newTestOrderService(t)

	_, err := svc.Summary(ctx, "s1")
	assert.ErrorIs(t, err, ErrCartEmpty)

	_, err = cart.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
	assert.Equal(t, models.CartTotals{Subtotal: 899, Shipping: 50, Total: 949}, summary.Totals)
	assert.Equal(t, FreeShippingThreshold, summary.FreeShippingThreshold)
	assert.Equal(t, []string{"cod", "whatsapp"}, summary.PaymentMethods)
}

func TestOrderService_GetAndListOrders(t *testing.T) {
	ctx := context.Background()
	svc, cart, _ := newTestOrderService(t)

	var numbers []string
	for i := 0; i < 3; i++ {
		_, err := cart.AddToCart(ctx, "s1", 1, "M", 1)
		require.NoError(t, err)
		order, err := svc.PlaceOrder(ctx, "s1", "a@b.co", checkoutRequest())
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	order, err := svc.GetOrder(ctx, "a@b.co", " "+numbers[0]+" ")
	require.NoError(t, err)
	assert.Equal(t, numbers[0], order.OrderNumber)

	_, err = svc.GetOrder(ctx, "x@y.co", numbers[0])
	assert.ErrorIs(t, err, ErrOrderForbidden)

	_, err = svc.GetOrder(ctx, "a@b.co", "QONOTHERE1")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	list, total, err := svc.ListOrders(ctx, "a@b.co", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, numbers[2], list[0].OrderNumber)

	list, _, err = svc.ListOrders(ctx, "a@b.co", 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, numbers[0], list[0].OrderNumber)

	list, total, err = svc.ListOrders(ctx, "x@y.co", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, total)
}
