package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

// ListingImporter creates a batch of listings, durably when a workflow engine is available.
type ListingImporter interface {
	Import(ctx context.Context, input pettypes.ImportListingsInput) (*pettypes.ImportResult, error)
}
