package ports

import (
	"context"
	"errors"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

var (
	ErrNotFound         = errors.New("pet not found")
	ErrUnknownReference = errors.New("referenced catalog entry does not exist")
)

// SearchRepository is the read boundary of the search engine.
// Implementations order results by pet id ascending.
type SearchRepository interface {
	Count(ctx context.Context, query pettypes.SearchQuery) (int64, error)
	Find(ctx context.Context, query pettypes.SearchQuery, page pettypes.PageRequest) ([]*domain.Pet, error)
}

// SnapshotReader is implemented by repositories that can run Count and Find
// inside one read transaction.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(SearchRepository) error) error
}

// CatalogRepository resolves the reference data a listing points at.
// Missing entries are reported as ErrUnknownReference.
type CatalogRepository interface {
	GetOwner(ctx context.Context, id int64) (domain.Owner, error)
	GetSpecies(ctx context.Context, id int64) (domain.Species, error)
	GetBreed(ctx context.Context, id int64) (domain.Breed, error)
	GetTags(ctx context.Context, ids []int64) ([]domain.Tag, error)
	ListTags(ctx context.Context, category *domain.TagCategory) ([]domain.Tag, error)
}

// ListingRepository persists listings.
type ListingRepository interface {
	Save(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	MarkAdopted(ctx context.Context, id int64) (*domain.Pet, error)
}

// Repository is the full persistence port of the pets context.
type Repository interface {
	SearchRepository
	CatalogRepository
	ListingRepository
}
