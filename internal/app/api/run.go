package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adoptionserver "github.com/Apurer/pet-adoption-api/go"
	"github.com/Apurer/pet-adoption-api/internal/platform/httpmiddleware"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// ServiceName identifies the API process in logs, traces and metrics.
const ServiceName = "pet-adoption-api"

const shutdownTimeout = 10 * time.Second

// Run boots the pet adoption HTTP API and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(ServiceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	pets, cleanup, err := BuildPets(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewHandler(pets),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("pet adoption API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("pet adoption API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down pet adoption API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// NewHandler builds the gin engine serving the pets API.
func NewHandler(pets *Pets) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handlers := adoptionserver.ApiHandleFunctions{
		PetAPI: adoptionserver.NewPetAPI(pets.Service),
		TagAPI: adoptionserver.NewTagAPI(pets.Service),
	}
	return adoptionserver.NewRouter(handlers,
		httpmiddleware.RequestID(),
		otelgin.Middleware(ServiceName),
		httpmiddleware.Metrics(),
	)
}
