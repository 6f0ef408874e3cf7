package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	SearchPets(ctx context.Context, input pettypes.SearchPetsInput) (*pettypes.SearchPage, error)
	CreateListing(ctx context.Context, input pettypes.CreateListingInput) (*domain.Pet, error)
	GetListing(ctx context.Context, input pettypes.ListingIdentifier) (*domain.Pet, error)
	AdoptListing(ctx context.Context, input pettypes.ListingIdentifier) (*domain.Pet, error)
	ListTags(ctx context.Context, input pettypes.ListTagsInput) ([]domain.Tag, error)
}
