package controllers

import (
	"errors"
	"net/http"
	"strings"

	"golden-elegance/middleware"
	"golden-elegance/models"
	"golden-elegance/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	cartService    *services.CartService
	messageService *services.MessageService
	log            *zap.Logger
}

func NewCartController(cartService *services.CartService, messageService *services.MessageService, log *zap.Logger) *CartController {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartController{
		cartService:    cartService,
		messageService: messageService,
		log:            log,
	}
}

// @Summary Get cart
// @Description Current visitor's cart with count, total and badge state
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	view, err := ctrl.cartService.GetCart(c.Request.Context(), middleware.CartOwner(c))
	if err != nil {
		ctrl.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart retrieved", Data: view})
}

// @Summary Add to cart
// @Description Quick-add endpoint used by the storefront script
// @Tags Cart
// @Accept multipart/form-data
// @Produce json
// @Param X-CSRFToken header string true "CSRF token from the csrftoken cookie"
// @Param product_id formData int true "Product ID"
// @Param size formData string true "Size"
// @Param color formData string false "Color"
// @Param quantity formData int false "Quantity" default(1)
// @Success 200 {object} models.AddToCartResponse
// @Failure 400 {object} models.AddToCartResponse
// @Router /cart/add/ [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.AddToCartResponse{Success: false, Error: "Invalid cart data."})
		return
	}

	view, err := ctrl.cartService.AddToCart(c.Request.Context(), middleware.CartOwner(c), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		if isUserError(err) {
			c.JSON(http.StatusBadRequest, models.AddToCartResponse{Success: false, Error: services.UserMessage(err)})
			return
		}
		ctrl.log.Error("add to cart failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.AddToCartResponse{Success: false, Error: "Unable to add to cart."})
		return
	}

	c.JSON(http.StatusOK, models.AddToCartResponse{Success: true, CartCount: view.Count})
}

// @Summary Update cart quantity
// @Description Quantity of zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.UpdateCartRequest true "Update Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/update/ [post]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateCartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid update.", Error: err.Error()})
		return
	}

	view, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), middleware.CartOwner(c), req.ProductID, strings.TrimSpace(req.Size), req.Quantity)
	if err != nil {
		ctrl.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart updated", Data: view})
}

// @Summary Remove cart item
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.RemoveCartRequest true "Remove Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/remove/ [post]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	var req models.RemoveCartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	view, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), middleware.CartOwner(c), req.ProductID, strings.TrimSpace(req.Size))
	if err != nil {
		ctrl.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Item removed.", Data: view})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	view, err := ctrl.cartService.ClearCart(c.Request.Context(), middleware.CartOwner(c))
	if err != nil {
		ctrl.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart cleared", Data: view})
}

// @Summary WhatsApp order link
// @Description Order message for the current cart and the wa.me link that carries it
// @Tags Cart
// @Produce json
// @Param phone query string false "Recipient phone, defaults to the store number"
// @Success 200 {object} models.WhatsAppLinkResponse
// @Router /cart/whatsapp [get]
func (ctrl *CartController) WhatsAppLink(c *gin.Context) {
	link, err := ctrl.messageService.CartLink(c.Request.Context(), middleware.CartOwner(c), strings.TrimSpace(c.Query("phone")))
	if err != nil {
		ctrl.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "WhatsApp link generated", Data: link})
}

func (ctrl *CartController) internalError(c *gin.Context, err error) {
	ctrl.log.Error("cart request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Message: "Unable to update cart.",
		Error:   err.Error(),
	})
}

func isUserError(err error) bool {
	return errors.Is(err, services.ErrProductNotFound) ||
		errors.Is(err, services.ErrSizeRequired) ||
		errors.Is(err, services.ErrSizeUnavailable)
}
