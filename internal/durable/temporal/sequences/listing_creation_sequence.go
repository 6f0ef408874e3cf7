package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	listingactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/listings"
)

// RunListingCreationSequence executes the activity that persists one listing and returns its id.
func RunListingCreationSequence(ctx workflow.Context, input petstypes.CreateListingInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{listingactivities.RejectedListingErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var petID int64
	err := workflow.ExecuteActivity(ctx, listingactivities.CreateListingActivityName, input).Get(ctx, &petID)
	if err != nil {
		logger.Error("listing creation sequence failed", "idempotencyKey", input.IdempotencyKey, "error", err)
		return 0, err
	}
	logger.Info("listing creation sequence completed", "petId", petID)
	return petID, nil
}
