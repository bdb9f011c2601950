package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"golden-elegance/middleware"
	"golden-elegance/models"
	"golden-elegance/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService   *services.OrderService
	messageService *services.MessageService
	log            *zap.Logger
}

func NewOrderController(orderService *services.OrderService, messageService *services.MessageService, log *zap.Logger) *OrderController {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderController{
		orderService:   orderService,
		messageService: messageService,
		log:            log,
	}
}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// @Summary Checkout summary
// @Description Cart lines with subtotal, shipping and total for the signed-in shopper
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /checkout [get]
func (ctrl *OrderController) Summary(c *gin.Context) {
	summary, err := ctrl.orderService.Summary(c.Request.Context(), middleware.CartOwner(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout summary", Data: summary})
}

// @Summary Place order
// @Description Turn the cart into an order. Payment defaults to cash on delivery.
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param X-CSRFToken header string true "CSRF token from the csrftoken cookie"
// @Param request body models.PlaceOrderRequest true "Shipping address and payment method"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /checkout/place-order [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Please correct the errors in the form.",
			Error:   err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.PlaceOrder(c.Request.Context(), middleware.CartOwner(c), c.GetString("user_email"), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	resp := models.PlaceOrderResponse{Order: order}
	message := "Order placed successfully."
	if order.Payment.Method == models.PaymentWhatsApp {
		resp.WhatsAppLink = ctrl.messageService.OrderLink(order)
		message = "We will contact you on WhatsApp to confirm your order."
	}
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: message, Data: resp})
}

// @Summary Order history
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginatedResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	page, limit := ctrl.getPaginationParams(c, 10)

	orders, total, err := ctrl.orderService.ListOrders(c.Request.Context(), c.GetString("user_email"), page, limit)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// @Summary Order detail
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{number} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctrl.orderService.GetOrder(c.Request.Context(), c.GetString("user_email"), c.Param("number"))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Order retrieved", Data: order})
}

func (ctrl *OrderController) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrCartEmpty), errors.Is(err, services.ErrPaymentMethod):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrOrderForbidden):
		status = http.StatusForbidden
	default:
		ctrl.log.Error("order request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, models.ErrorResponse{Success: false, Message: services.UserMessage(err)})
}
