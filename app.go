// @title           Image Fetch API
// @version         1.0
// @description     Image uploads and SSRF-safe imports of external images.

// @contact.name   API Support
// @contact.email  info@bentech.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vit0-9/imagefetch_api/docs"
	"github.com/vit0-9/imagefetch_api/handlers"
	"github.com/vit0-9/imagefetch_api/pkg/config"
	"github.com/vit0-9/imagefetch_api/pkg/logger"
	"github.com/vit0-9/imagefetch_api/pkg/storage"
	"github.com/vit0-9/imagefetch_api/pkg/utils"
)

// App encapsulates all the components of the application
type App struct {
	Router             *gin.Engine
	UploadHandlers     *handlers.UploadHandlers
	NetworkDiagnostics *handlers.NetworkDiagnosticsHandlers
	HealthHandler      *handlers.HealthHandler

	cfg    *config.Config
	logger zerolog.Logger
	server *http.Server
}

// NewApp creates and initializes a new application instance
func NewApp(cfg *config.Config, log zerolog.Logger, downloader handlers.ImageDownloader, store *storage.LocalStore, geo *utils.GeoIP) (*App, error) {
	router := gin.New()
	router.Use(logger.GinMiddleware(log), gin.Recovery())
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	app := &App{
		Router:             router,
		UploadHandlers:     handlers.NewUploadHandlers(downloader, store, cfg.Upload.MaxBytes, log),
		NetworkDiagnostics: handlers.NewNetworkDiagnosticsHandlers(geo, net.DefaultResolver),
		HealthHandler:      handlers.NewHealthHandler(store.Root()),
		cfg:                cfg,
		logger:             log,
	}

	app.setupRoutes(store.Root())
	return app, nil
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes(uploadRoot string) {
	app.Router.GET("/api/v1/health", app.HealthHandler.HealthCheckHandler)

	uploadsV1 := app.Router.Group("/api/v1/uploads")
	{
		uploadsV1.POST("", app.UploadHandlers.UploadHandler)
		uploadsV1.POST("/external", app.UploadHandlers.ExternalUploadHandler)
	}

	app.Router.Static("/uploads", uploadRoot)

	if app.cfg.Server.EnableNetTools {
		netV1 := app.Router.Group("/api/v1/net")
		{
			netV1.GET("/dns-lookup", app.NetworkDiagnostics.DNSLookupHandler)
			netV1.GET("/ip-info", app.NetworkDiagnostics.IPInfoHandler)
		}
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (app *App) Start(ctx context.Context) error {
	app.server = &http.Server{
		Addr:              app.cfg.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// external imports may take the full fetch timeout before responding
		WriteTimeout: app.cfg.Fetch.Timeout + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info().Str("addr", app.server.Addr).Msg("API server starting")
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return app.server.Shutdown(shutdownCtx)
}
