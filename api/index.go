package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"golden-elegance/config"
	"golden-elegance/models"
	"golden-elegance/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	app     *server.App
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		config.LoadConfig()
		app, initErr = server.New(config.AppConfig, config.Log)
		if initErr != nil {
			config.Log.Error("storefront init failed", zap.Error(initErr))
		}
	})
}

// Handler is the serverless entry point. Each cold start builds the app
// once and reuses it for later invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
			Error:   initErr.Error(),
		})
		return
	}
	app.Router.ServeHTTP(w, r)
}
