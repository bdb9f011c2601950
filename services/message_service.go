package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golden-elegance/models"
)

const (
	DefaultStoreName     = "Golden Elegance"
	DefaultWhatsAppPhone = "919876543210"
	DefaultCurrency      = "₹"
	whatsAppBaseURL      = "https://wa.me/"
)

// MessageService renders a cart into a WhatsApp order message. It only
// builds the deep link; delivery happens in the shopper's messaging app.
type MessageService struct {
	cartService *CartService
	storeName   string
	phone       string
	currency    string
}

func NewMessageService(cartService *CartService, storeName, phone, currency string) *MessageService {
	if storeName == "" {
		storeName = DefaultStoreName
	}
	if phone = digitsOnly(phone); phone == "" {
		phone = DefaultWhatsAppPhone
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &MessageService{
		cartService: cartService,
		storeName:   storeName,
		phone:       phone,
		currency:    currency,
	}
}

// GenerateWhatsAppMessage returns the URL-encoded order message for items,
// or the encoded greeting when there is nothing to order.
func (s *MessageService) GenerateWhatsAppMessage(items []models.CartItem) string {
	if len(items) == 0 {
		return encodeURIComponent(fmt.Sprintf("Hello %s! I am interested in your products.", s.storeName))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I want to order:\n\n", s.storeName)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Size: %s\n", item.Size)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Price: %s%d x %d = %s%d\n\n",
			s.currency, item.Price, item.Quantity, s.currency, item.LineTotal())
	}
	fmt.Fprintf(&b, "Total: %s%d", s.currency, cartTotal(items))
	return encodeURIComponent(b.String())
}

// GenerateOrderMessage returns the URL-encoded confirmation request for a
// placed order.
func (s *MessageService) GenerateOrderMessage(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! Please confirm my order %s:\n\n", s.storeName, order.OrderNumber)
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.ProductName)
		fmt.Fprintf(&b, "   Size: %s\n", item.VariantSnapshot)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Price: %s%d x %d = %s%d\n\n",
			s.currency, item.UnitPrice, item.Quantity, s.currency, item.LineTotal())
	}
	if order.Shipping > 0 {
		fmt.Fprintf(&b, "Shipping: %s%d\n", s.currency, order.Shipping)
	}
	fmt.Fprintf(&b, "Total: %s%d", s.currency, order.Total)
	return encodeURIComponent(b.String())
}

// GetWhatsAppLink builds the wa.me link. An empty message is generated from
// items. Non-digits are dropped from phone and an empty phone uses the store
// number.
func (s *MessageService) GetWhatsAppLink(message, phone string, items []models.CartItem) string {
	if message == "" {
		message = s.GenerateWhatsAppMessage(items)
	}
	if phone = digitsOnly(phone); phone == "" {
		phone = s.phone
	}
	return whatsAppBaseURL + phone + "?text=" + message
}

// OrderLink is the wa.me link asking the store to confirm order.
func (s *MessageService) OrderLink(order *models.Order) string {
	return s.GetWhatsAppLink(s.GenerateOrderMessage(order), "", nil)
}

// CartLink is GetWhatsAppLink for a session's persisted cart.
func (s *MessageService) CartLink(ctx context.Context, session, phone string) (models.WhatsAppLinkResponse, error) {
	view, err := s.cartService.GetCart(ctx, session)
	if err != nil {
		return models.WhatsAppLinkResponse{}, err
	}
	message := s.GenerateWhatsAppMessage(view.Items)
	return models.WhatsAppLinkResponse{
		Message: message,
		Link:    s.GetWhatsAppLink(message, phone, nil),
	}, nil
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes text for use as a single query value. Spaces
// become %20 and the marks ! ' ( ) * stay literal.
func encodeURIComponent(text string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(text))
}

func digitsOnly(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
