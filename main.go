package main

import (
	"os"

	"golden-elegance/config"
	_ "golden-elegance/docs"
	"golden-elegance/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Golden Elegance Storefront API
// @version 1.0
// @description Catalog, cart, WhatsApp ordering and OTP login for the Golden Elegance storefront.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup finishes before the
// process exits.
func run() int {
	config.LoadConfig()
	defer config.SyncLogger()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	app, err := server.New(config.AppConfig, config.Log)
	if err != nil {
		config.Log.Error("failed to start storefront", zap.Error(err))
		return 1
	}
	defer app.Close()

	port := ":" + config.AppConfig.Port
	config.Log.Info("server starting",
		zap.String("addr", port),
		zap.String("swagger", "http://localhost"+port+"/swagger/index.html"),
	)

	if err := app.Router.Run(port); err != nil {
		config.Log.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}
