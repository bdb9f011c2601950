package models

// Quantity bounds follow services.MaxCartQuantity.
type AddToCartRequest struct {
	ProductID int    `json:"product_id" form:"product_id" binding:"required,min=1"`
	Size      string `json:"size" form:"size"`
	Color     string `json:"color" form:"color"`
	Quantity  int    `json:"quantity" form:"quantity" binding:"omitempty,min=0,max=10"`
}

type UpdateCartRequest struct {
	ProductID int    `json:"product_id" form:"product_id" binding:"required,min=1"`
	Size      string `json:"size" form:"size" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity" binding:"max=10"`
}

type RemoveCartRequest struct {
	ProductID int    `json:"product_id" form:"product_id" binding:"required,min=1"`
	Size      string `json:"size" form:"size" binding:"required"`
}

type OTPRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

type OTPVerifyRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
	OTP   string `json:"otp" form:"otp" binding:"required"`
}

type PlaceOrderRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"required,max=120"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" form:"phone" binding:"required,max=20"`
	Address  string `json:"address" form:"address" binding:"required"`
	City     string `json:"city" form:"city" binding:"required,max=80"`
	State    string `json:"state" form:"state" binding:"required,max=80"`
	Pincode  string `json:"pincode" form:"pincode" binding:"required,max=10"`
	Payment  string `json:"payment" form:"payment" binding:"omitempty,oneof=cod whatsapp"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// AddToCartResponse is the quick-add contract expected by the storefront
// script: {success, cart_count} or {success: false, error}.
type AddToCartResponse struct {
	Success   bool   `json:"success"`
	CartCount int    `json:"cart_count,omitempty"`
	Error     string `json:"error,omitempty"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type PaginatedResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

type SearchResult struct {
	Query      string    `json:"query"`
	Total      int       `json:"total"`
	Items      []Product `json:"items"`
	Hint       string    `json:"hint,omitempty"`
	ViewAllURL string    `json:"view_all_url,omitempty"`
}

type WhatsAppLinkResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

type OTPSentResponse struct {
	Email         string `json:"email"`
	ExpiryMinutes int    `json:"expiry_minutes"`
	ResendAfter   int    `json:"resend_after"`
}

type PlaceOrderResponse struct {
	Order        *Order `json:"order"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}
