// Package server assembles the storefront from configuration: storage
// backends, catalog, services, controllers and routes.
package server

import (
	"fmt"

	"golden-elegance/config"
	"golden-elegance/controllers"
	"golden-elegance/libs"
	"golden-elegance/middleware"
	"golden-elegance/repositories"
	"golden-elegance/routes"
	"golden-elegance/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Router  *gin.Engine
	Catalog *services.CatalogService
	Cart    *services.CartService
	Auth    *services.AuthService
	Orders  *services.OrderService
	closers []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	app := &App{}

	var resolver repositories.ImageResolver
	if cfg.CloudinaryURL != "" {
		cld, err := libs.NewCloudinaryResolver(cfg.CloudinaryURL, log)
		if err != nil {
			return nil, err
		}
		resolver = cld
	}

	catalogRepo, err := repositories.LoadCatalogRepository(cfg.CatalogPath, resolver)
	if err != nil {
		return nil, err
	}

	backends, err := app.storage(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	var mailer services.OTPMailer
	if cfg.SMTPEnabled() {
		mailer = libs.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.StoreName)
	} else {
		mailer = libs.NewLogMailer(log)
	}

	app.Catalog = services.NewCatalogService(catalogRepo)
	app.Cart = services.NewCartService(catalogRepo, backends.carts, log)
	app.Auth = services.NewAuthService(backends.otps, mailer, cfg.JWTSecret, cfg.JWTExpiry, log)
	app.Orders = services.NewOrderService(app.Cart, backends.orders, log)
	messageService := services.NewMessageService(app.Cart, cfg.StoreName, cfg.WhatsAppPhone, cfg.CurrencySymbol)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	routes.SetupRoutes(router, routes.Controllers{
		Product: controllers.NewProductController(app.Catalog),
		Cart:    controllers.NewCartController(app.Cart, messageService, log),
		Auth:    controllers.NewAuthController(app.Auth, app.Cart, log),
		Order:   controllers.NewOrderController(app.Orders, messageService, log),
	}, routes.Options{
		JWTSecret:     cfg.JWTSecret,
		SecureCookies: cfg.AppEnv == "production",
	})

	app.Router = router
	log.Info("storefront ready",
		zap.Int("products", len(catalogRepo.Products())),
		zap.Int("categories", len(catalogRepo.Categories())),
	)
	return app, nil
}

type stores struct {
	carts  repositories.CartStorage
	otps   repositories.OTPRepository
	orders repositories.OrderRepository
}

// storage picks the cart backend named by CART_STORAGE. OTP codes and orders
// go to postgres or redis when one of them is in use, memory otherwise.
func (a *App) storage(cfg *config.Config) (stores, error) {
	switch cfg.CartStorage {
	case "", "memory":
		return stores{
			carts:  repositories.NewMemoryCartStorage(),
			otps:   repositories.NewMemoryOTPRepository(),
			orders: repositories.NewMemoryOrderRepository(),
		}, nil
	case "file":
		fs, err := repositories.NewFileCartStorage(cfg.CartStorageDir)
		if err != nil {
			return stores{}, err
		}
		return stores{
			carts:  fs,
			otps:   repositories.NewMemoryOTPRepository(),
			orders: repositories.NewMemoryOrderRepository(),
		}, nil
	case "redis":
		if err := config.ConnectRedis(); err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, config.CloseRedis)
		return stores{
			carts:  repositories.NewRedisCartStorage(config.RedisClient),
			otps:   repositories.NewRedisOTPRepository(config.RedisClient),
			orders: repositories.NewRedisOrderRepository(config.RedisClient),
		}, nil
	case "postgres":
		if err := config.ConnectDB(); err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, config.CloseDB)
		return stores{
			carts:  repositories.NewPostgresCartStorage(config.DB),
			otps:   repositories.NewPostgresOTPRepository(config.DB),
			orders: repositories.NewPostgresOrderRepository(config.DB),
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown CART_STORAGE %q", cfg.CartStorage)
	}
}
