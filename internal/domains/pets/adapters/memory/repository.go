package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu      sync.RWMutex
	pets    map[int64]*domain.Pet
	owners  map[int64]domain.Owner
	species map[int64]domain.Species
	breeds  map[int64]domain.Breed
	tags    map[int64]domain.Tag
	nextID  int64
	now     func() time.Time
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets:    map[int64]*domain.Pet{},
		owners:  map[int64]domain.Owner{},
		species: map[int64]domain.Species{},
		breeds:  map[int64]domain.Breed{},
		tags:    map[int64]domain.Tag{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// AddOwner registers a user that can own listings.
func (r *Repository) AddOwner(owner domain.Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[owner.ID] = owner
}

// AddSpecies registers a species.
func (r *Repository) AddSpecies(species domain.Species) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.species[species.ID] = species
}

// AddBreed registers a breed.
func (r *Repository) AddBreed(breed domain.Breed) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breeds[breed.ID] = breed
}

// AddTag registers a tag.
func (r *Repository) AddTag(tag domain.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[tag.ID] = tag
}

// Count returns the number of pets satisfying every predicate.
func (r *Repository) Count(_ context.Context, query pettypes.SearchQuery) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, pet := range r.pets {
		if query.Matches(pet) {
			total++
		}
	}
	return total, nil
}

// Find returns the requested window of matches ordered by id.
func (r *Repository) Find(_ context.Context, query pettypes.SearchQuery, page pettypes.PageRequest) ([]*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domain.Pet, 0)
	for _, pet := range r.pets {
		if query.Matches(pet) {
			matches = append(matches, pet)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	offset := page.Offset()
	if offset < 0 || offset >= len(matches) {
		return []*domain.Pet{}, nil
	}
	end := len(matches)
	if page.PageSize > 0 && page.PageSize < end-offset {
		end = offset + page.PageSize
	}
	result := make([]*domain.Pet, 0, end-offset)
	for _, pet := range matches[offset:end] {
		result = append(result, pet.Clone())
	}
	return result, nil
}

// Save inserts a pet, assigning the next id when the pet has none.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := pet.Clone()
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	r.pets[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pet, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return pet.Clone(), nil
}

// MarkAdopted flags the pet as adopted.
func (r *Repository) MarkAdopted(_ context.Context, id int64) (*domain.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pet, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	pet.MarkAdopted()
	return pet.Clone(), nil
}

// Delete removes a pet; used to reset fixtures.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// GetOwner resolves a listing owner.
func (r *Repository) GetOwner(_ context.Context, id int64) (domain.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.owners[id]
	if !ok {
		return domain.Owner{}, fmt.Errorf("%w: owner %d", ports.ErrUnknownReference, id)
	}
	return owner, nil
}

// GetSpecies resolves a species.
func (r *Repository) GetSpecies(_ context.Context, id int64) (domain.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	species, ok := r.species[id]
	if !ok {
		return domain.Species{}, fmt.Errorf("%w: species %d", ports.ErrUnknownReference, id)
	}
	return species, nil
}

// GetBreed resolves a breed.
func (r *Repository) GetBreed(_ context.Context, id int64) (domain.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	breed, ok := r.breeds[id]
	if !ok {
		return domain.Breed{}, fmt.Errorf("%w: breed %d", ports.ErrUnknownReference, id)
	}
	return breed, nil
}

// GetTags resolves every id, preserving the requested order.
func (r *Repository) GetTags(_ context.Context, ids []int64) ([]domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		tag, ok := r.tags[id]
		if !ok {
			return nil, fmt.Errorf("%w: tag %d", ports.ErrUnknownReference, id)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// ListTags returns tags ordered by id, optionally filtered by category.
func (r *Repository) ListTags(_ context.Context, category *domain.TagCategory) ([]domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]domain.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		if category != nil && tag.Category != *category {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags, nil
}

// Reset drops every pet and restarts id assignment; catalog and owners are kept.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pets = map[int64]*domain.Pet{}
	r.nextID = 0
}
