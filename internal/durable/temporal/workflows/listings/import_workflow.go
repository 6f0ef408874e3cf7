package listings

import (
	"errors"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/durable/temporal/sequences"
)

const (
	// ImportWorkflowName is the public identifier for registering the workflow.
	ImportWorkflowName = "listings.workflows.Import"
	// ImportTaskQueue is the queue consumed by the worker processing listing imports.
	ImportTaskQueue = "LISTING_IMPORT"
)

// ImportWorkflow creates every listing of a batch in order. A listing that
// fails is recorded and the batch carries on.
func ImportWorkflow(ctx workflow.Context, input petstypes.ImportListingsInput) (*petstypes.ImportResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ImportWorkflow started", "batchId", input.BatchID, "listings", len(input.Listings))

	result := &petstypes.ImportResult{BatchID: input.BatchID, Imported: []int64{}}
	for i, listing := range input.Listings {
		listing.IdempotencyKey = petsapp.ImportListingKey(input.BatchID, i, listing)
		petID, err := sequences.RunListingCreationSequence(ctx, listing)
		if err != nil {
			result.Failed = append(result.Failed, petstypes.ImportFailure{Index: i, Reason: failureReason(err)})
			continue
		}
		result.Imported = append(result.Imported, petID)
	}
	logger.Info("ImportWorkflow completed", "batchId", input.BatchID, "imported", len(result.Imported), "failed", len(result.Failed))
	return result, nil
}

func failureReason(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}
