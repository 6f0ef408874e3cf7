package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	listingworkflows "github.com/Apurer/pet-adoption-api/internal/durable/temporal/workflows/listings"
)

var (
	_ ports.ListingImporter = (*TemporalListingImporter)(nil)
	_ ports.ListingImporter = (*InlineListingImporter)(nil)
)

const (
	batchAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	batchIDLength = 12
)

// NewBatchID returns a short random identifier for an import batch.
func NewBatchID() (string, error) {
	id, err := nanoid.Generate(batchAlphabet, batchIDLength)
	if err != nil {
		return "", fmt.Errorf("generate batch id: %w", err)
	}
	return id, nil
}

func ensureBatchID(input *petstypes.ImportListingsInput) error {
	if strings.TrimSpace(input.BatchID) != "" {
		return nil
	}
	id, err := NewBatchID()
	if err != nil {
		return err
	}
	input.BatchID = id
	return nil
}

// TemporalListingImporter runs listing imports as Temporal workflows.
type TemporalListingImporter struct {
	client    client.Client
	taskQueue string
}

// NewTemporalListingImporter wires a Temporal client into the importer.
func NewTemporalListingImporter(c client.Client) *TemporalListingImporter {
	return &TemporalListingImporter{client: c, taskQueue: listingworkflows.ImportTaskQueue}
}

// Import starts the import workflow and waits for its result. Re-running a
// batch id that already ran returns the earlier result.
func (o *TemporalListingImporter) Import(ctx context.Context, input petstypes.ImportListingsInput) (*petstypes.ImportResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal listing importer not configured")
	}
	if err := ensureBatchID(&input); err != nil {
		return nil, err
	}
	workflowID := importWorkflowID(input.BatchID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(ctx, options, listingworkflows.ImportWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, fmt.Errorf("start import workflow: %w", err)
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result petstypes.ImportResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("import workflow %s: %w", workflowID, err)
	}
	return &result, nil
}

func importWorkflowID(batchID string) string {
	return "listing-import-" + batchID
}

// InlineListingImporter creates listings in-process, useful for tests or when Temporal is unavailable.
type InlineListingImporter struct {
	service ports.Service
}

// NewInlineListingImporter wraps the pets service for synchronous imports.
func NewInlineListingImporter(service ports.Service) *InlineListingImporter {
	return &InlineListingImporter{service: service}
}

// Import creates each listing in order and records failures without stopping.
// Infrastructure errors abort the batch since later listings would fail the same way.
func (o *InlineListingImporter) Import(ctx context.Context, input petstypes.ImportListingsInput) (*petstypes.ImportResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline listing importer not configured")
	}
	if err := ensureBatchID(&input); err != nil {
		return nil, err
	}
	result := &petstypes.ImportResult{BatchID: input.BatchID, Imported: []int64{}}
	for i, listing := range input.Listings {
		listing.IdempotencyKey = petsapp.ImportListingKey(input.BatchID, i, listing)
		pet, err := o.service.CreateListing(ctx, listing)
		if err != nil {
			if errors.Is(err, petsapp.ErrInvalidInput) || errors.Is(err, ports.ErrIdempotencyConflict) {
				result.Failed = append(result.Failed, petstypes.ImportFailure{Index: i, Reason: err.Error()})
				continue
			}
			return nil, fmt.Errorf("import listing %d: %w", i, err)
		}
		result.Imported = append(result.Imported, pet.ID)
	}
	return result, nil
}
