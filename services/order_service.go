package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golden-elegance/models"
	"golden-elegance/repositories"

	"go.uber.org/zap"
)

const (
	FreeShippingThreshold = 999
	FlatShippingFee       = 50

	orderNumberPrefix   = "QO"
	orderNumberLength   = 8
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberAttempts = 5
)

// PaymentMethods lists the accepted payment methods; the first is the default.
var PaymentMethods = []string{models.PaymentCOD, models.PaymentWhatsApp}

// ComputeTotals prices a cart: shipping is free from FreeShippingThreshold
// upward and FlatShippingFee below it.
func ComputeTotals(items []models.CartItem) models.CartTotals {
	subtotal := cartTotal(items)
	shipping := FlatShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}
	return models.CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

// generateOrderNumber returns QO followed by 8 random uppercase letters or
// digits.
func generateOrderNumber() (string, error) {
	size := big.NewInt(int64(len(orderNumberAlphabet)))
	b := make([]byte, orderNumberLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b[i] = orderNumberAlphabet[n.Int64()]
	}
	return orderNumberPrefix + string(b), nil
}

type OrderService struct {
	cartService *CartService
	orderRepo   repositories.OrderRepository
	log         *zap.Logger

	now       func() time.Time
	newNumber func() (string, error)
}

func NewOrderService(cartService *CartService, orderRepo repositories.OrderRepository, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		cartService: cartService,
		orderRepo:   orderRepo,
		log:         log,
		now:         time.Now,
		newNumber:   generateOrderNumber,
	}
}

// Summary is the checkout page state for owner's cart.
func (s *OrderService) Summary(ctx context.Context, owner string) (models.CheckoutSummary, error) {
	view, err := s.cartService.GetCart(ctx, owner)
	if err != nil {
		return models.CheckoutSummary{}, err
	}
	if len(view.Items) == 0 {
		return models.CheckoutSummary{}, ErrCartEmpty
	}
	return models.CheckoutSummary{
		Items:                 view.Items,
		Totals:                ComputeTotals(view.Items),
		FreeShippingThreshold: FreeShippingThreshold,
		PaymentMethods:        PaymentMethods,
	}, nil
}

// PlaceOrder turns owner's cart into an order for userEmail. The address is
// copied onto the order, every cart line becomes an order item and the cart
// is emptied once the order is stored.
func (s *OrderService) PlaceOrder(ctx context.Context, owner, userEmail string, req models.PlaceOrderRequest) (*models.Order, error) {
	method := strings.ToLower(strings.TrimSpace(req.Payment))
	if method == "" {
		method = models.PaymentCOD
	}
	if method != models.PaymentCOD && method != models.PaymentWhatsApp {
		return nil, ErrPaymentMethod
	}

	address := models.Address{
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       normalizeEmail(req.Email),
		AddressLine: strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		Pincode:     strings.TrimSpace(req.Pincode),
	}

	var placed *models.Order
	err := s.cartService.CheckoutCart(ctx, owner, func(items []models.CartItem) error {
		totals := ComputeTotals(items)
		order := &models.Order{
			UserEmail: userEmail,
			Status:    models.OrderStatusPlaced,
			Subtotal:  totals.Subtotal,
			Shipping:  totals.Shipping,
			Total:     totals.Total,
			Address:   address,
			Items:     make([]models.OrderItem, 0, len(items)),
			Payment: models.Payment{
				Method: method,
				Status: models.PaymentStatusPending,
				Amount: totals.Total,
			},
			CreatedAt: s.now(),
		}
		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:       item.ProductID,
				ProductName:     item.Name,
				VariantSnapshot: strings.TrimSpace(item.Size),
				UnitPrice:       item.Price,
				Quantity:        item.Quantity,
			})
		}

		for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
			number, err := s.newNumber()
			if err != nil {
				return fmt.Errorf("failed to generate order number: %w", err)
			}
			order.OrderNumber = number
			err = s.orderRepo.Create(ctx, order)
			if errors.Is(err, repositories.ErrDuplicateOrderNumber) {
				s.log.Warn("order number collision", zap.String("order_number", number), zap.Int("attempt", attempt))
				continue
			}
			if err != nil {
				return err
			}
			placed = order
			return nil
		}
		return fmt.Errorf("failed to allocate order number after %d attempts", orderNumberAttempts)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("order_number", placed.OrderNumber),
		zap.String("email", userEmail),
		zap.Int("total", placed.Total),
		zap.String("payment", method),
	)
	return placed, nil
}

// GetOrder returns the order only to the user who placed it.
func (s *OrderService) GetOrder(ctx context.Context, userEmail, number string) (*models.Order, error) {
	order, err := s.orderRepo.ByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserEmail != userEmail {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

// ListOrders pages through userEmail's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userEmail string, page, limit int) ([]models.Order, int, error) {
	return s.orderRepo.ListByUser(ctx, userEmail, limit, (page-1)*limit)
}
