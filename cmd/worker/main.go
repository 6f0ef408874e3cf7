package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	listingworkflows "github.com/Apurer/pet-adoption-api/internal/durable/temporal/workflows/listings"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/pet-adoption-api/internal/platform/temporal"
	listingactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/listings"
)

func main() {
	ctx := context.Background()
	const serviceName = "pet-adoption-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	pets, cleanup, err := api.BuildPets(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to build pets service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	listingActivities := listingactivities.NewActivities(pets.Service)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, logger, instruments.Tracer("temporal-worker"))
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, listingworkflows.ImportTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(listingworkflows.ImportWorkflow, workflow.RegisterOptions{Name: listingworkflows.ImportWorkflowName})
	w.RegisterActivityWithOptions(listingActivities.CreateListing, activity.RegisterOptions{Name: listingactivities.CreateListingActivityName})

	logger.Info("worker listening", slog.String("taskQueue", listingworkflows.ImportTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
