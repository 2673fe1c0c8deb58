package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"pharma-prep-core/internal/app/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

const shutdownTimeout = 30 * time.Second

// Application serveur HTTP piloté par le cycle de vie fx
type Application struct {
	config *config.Config
	router *gin.Engine
	logger *slog.Logger
	server *http.Server
}

// NewApplication crée une nouvelle instance de l'application
func NewApplication(cfg *config.Config, router *gin.Engine, logger *slog.Logger) *Application {
	return &Application{
		config: cfg,
		router: router,
		logger: logger,
	}
}

// Start démarre le serveur après le bootstrap et l'arrête proprement
func (a *Application) Start(lc fx.Lifecycle, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverConfig := a.config.GetServer()
			addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)

			a.server = &http.Server{
				Addr:              addr,
				Handler:           a.router,
				ReadTimeout:       serverConfig.ReadTimeout,
				ReadHeaderTimeout: 10 * time.Second,
				WriteTimeout:      serverConfig.WriteTimeout,
			}

			// Le port est réservé ici pour que l'échec remonte au démarrage fx
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("écoute sur %s impossible: %w", addr, err)
			}

			go func() {
				if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.logger.Error("serveur HTTP arrêté", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			a.logger.Info("serveur HTTP démarré", "addr", addr, "env", a.config.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			a.logger.Info("arrêt serveur HTTP")

			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("arrêt forcé", "error", err)
				return err
			}

			a.logger.Info("serveur arrêté proprement")
			return nil
		},
	})
}
