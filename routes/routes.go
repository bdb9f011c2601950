package routes

import (
	"net/http"

	"golden-elegance/controllers"
	"golden-elegance/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Auth    *controllers.AuthController
	Order   *controllers.OrderController
}

type Options struct {
	JWTSecret     string
	SecureCookies bool
}

func SetupRoutes(router *gin.Engine, ctrls Controllers, opts Options) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	store := router.Group("/")
	store.Use(
		middleware.SessionMiddleware(opts.SecureCookies),
		middleware.CSRFMiddleware(opts.SecureCookies),
		middleware.OptionalAuthMiddleware(opts.JWTSecret),
	)
	{
		store.GET("/categories", ctrls.Product.GetAllCategories)
		store.GET("/categories/:slug", ctrls.Product.GetCategoryBySlug)
		store.GET("/products", ctrls.Product.GetProducts)
		store.GET("/products/featured", ctrls.Product.GetFeaturedProducts)
		store.GET("/products/bestsellers", ctrls.Product.GetBestsellerProducts)
		store.GET("/products/:id", ctrls.Product.GetProductByID)
		store.GET("/products/:id/related", ctrls.Product.GetRelatedProducts)
		store.GET("/search", ctrls.Product.Search)

		store.GET("/cart", ctrls.Cart.GetCart)
		store.DELETE("/cart", ctrls.Cart.ClearCart)
		store.POST("/cart/add/", ctrls.Cart.AddToCart)
		store.POST("/cart/update/", ctrls.Cart.UpdateQuantity)
		store.POST("/cart/remove/", ctrls.Cart.RemoveFromCart)
		store.GET("/cart/whatsapp", ctrls.Cart.WhatsAppLink)

		store.POST("/auth/otp/request", ctrls.Auth.RequestOTP)
		store.POST("/auth/otp/verify", ctrls.Auth.VerifyOTP)
	}

	auth := router.Group("/auth")
	auth.Use(middleware.AuthMiddleware(opts.JWTSecret))
	{
		auth.GET("/me", ctrls.Auth.GetMe)
	}

	checkout := router.Group("/checkout")
	checkout.Use(
		middleware.SessionMiddleware(opts.SecureCookies),
		middleware.CSRFMiddleware(opts.SecureCookies),
		middleware.AuthMiddleware(opts.JWTSecret),
	)
	{
		checkout.GET("", ctrls.Order.Summary)
		checkout.POST("/place-order", ctrls.Order.PlaceOrder)
	}

	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware(opts.JWTSecret))
	{
		orders.GET("", ctrls.Order.ListOrders)
		orders.GET("/:number", ctrls.Order.GetOrder)
	}

	router.Static("/images", "./static/images")
}
