package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

// SearchCache stores search pages keyed by canonical criteria.
// A key is resolved once per search and reused for the write, so a page read
// before an invalidation can never be stored under a newer key.
type SearchCache interface {
	Key(ctx context.Context, criteria pettypes.SearchCriteria) (string, error)
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (*pettypes.SearchPage, bool, error)
	Set(ctx context.Context, key string, page *pettypes.SearchPage) error
}
