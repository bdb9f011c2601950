package models

import "time"

const (
	OrderStatusPlaced    = "placed"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentCOD      = "cod"
	PaymentWhatsApp = "whatsapp"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Address is the shipping address copied onto an order when it is placed.
type Address struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	AddressLine string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

type OrderItem struct {
	ID              int64  `json:"id"`
	ProductID       int    `json:"product_id"`
	ProductName     string `json:"product_name"`
	VariantSnapshot string `json:"variant"`
	UnitPrice       int    `json:"unit_price"`
	Quantity        int    `json:"quantity"`
}

func (i OrderItem) LineTotal() int {
	return i.UnitPrice * i.Quantity
}

type Payment struct {
	Method string `json:"method"`
	Status string `json:"status"`
	Amount int    `json:"amount"`
}

type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	UserEmail   string      `json:"user_email"`
	Status      string      `json:"status"`
	Subtotal    int         `json:"subtotal"`
	Shipping    int         `json:"shipping"`
	Total       int         `json:"total"`
	Address     Address     `json:"address"`
	Items       []OrderItem `json:"items"`
	Payment     Payment     `json:"payment"`
	CreatedAt   time.Time   `json:"created_at"`
}

type CartTotals struct {
	Subtotal int `json:"subtotal"`
	Shipping int `json:"shipping"`
	Total    int `json:"total"`
}

type CheckoutSummary struct {
	Items                 []CartItem `json:"items"`
	Totals                CartTotals `json:"totals"`
	FreeShippingThreshold int        `json:"free_shipping_threshold"`
	PaymentMethods        []string   `json:"payment_methods"`
}
