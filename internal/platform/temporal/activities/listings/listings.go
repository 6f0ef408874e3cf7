package listings

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

const (
	// CreateListingActivityName creates one listing of an import batch.
	CreateListingActivityName = "listings.activities.CreateListing"

	// RejectedListingErrorType marks failures that retrying cannot fix.
	RejectedListingErrorType = "RejectedListing"
)

// Activities groups activities that operate on adoption listings.
type Activities struct {
	service petsports.Service
}

// NewActivities wires the pets service into the Temporal activities bundle.
func NewActivities(service petsports.Service) *Activities {
	return &Activities{service: service}
}

// CreateListing stores one listing and returns its id. Invalid input and
// idempotency conflicts fail without retries.
func (a *Activities) CreateListing(ctx context.Context, input petstypes.CreateListingInput) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("listing activity not initialized")
		return 0, errors.New("listing activity not initialized")
	}
	logger.Info("CreateListing activity started", "idempotencyKey", input.IdempotencyKey)
	pet, err := a.service.CreateListing(ctx, input)
	if err != nil {
		if errors.Is(err, petsapp.ErrInvalidInput) || errors.Is(err, petsports.ErrIdempotencyConflict) {
			logger.Warn("CreateListing activity rejected listing", "idempotencyKey", input.IdempotencyKey, "error", err)
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), RejectedListingErrorType, err)
		}
		logger.Error("CreateListing activity failed", "idempotencyKey", input.IdempotencyKey, "error", err)
		return 0, err
	}
	logger.Info("CreateListing activity completed", "petId", pet.ID)
	return pet.ID, nil
}
