package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
	cache       ports.SearchCache
	events      ports.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// Option customizes optional collaborators.
type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key handling for listing creation.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithSearchCache enables read-through caching of search pages.
func WithSearchCache(cache ports.SearchCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithEventPublisher receives listing events after each committed write.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

// WithLogger reports best-effort failures (cache, events) that never fail a request.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SearchPets returns one page of adoptable pets matching every supplied filter.
func (s *Service) SearchPets(ctx context.Context, input pettypes.SearchPetsInput) (*pettypes.SearchPage, error) {
	criteria, err := NormalizeSearch(input, s.now())
	if err != nil {
		return nil, err
	}
	cacheKey := s.cacheKey(ctx, criteria)
	if page, ok := s.cachedPage(ctx, cacheKey); ok {
		return page, nil
	}

	query := ComposePredicates(criteria)
	var page *pettypes.SearchPage
	read := func(repo ports.SearchRepository) error {
		var err error
		page, err = runSearch(ctx, repo, query, criteria.PageSpec)
		return err
	}
	if snapshots, ok := s.repo.(ports.SnapshotReader); ok {
		err = snapshots.ReadSnapshot(ctx, read)
	} else {
		err = read(s.repo)
	}
	if err != nil {
		return nil, err
	}
	s.storePage(ctx, cacheKey, page)
	return page, nil
}

func runSearch(ctx context.Context, repo ports.SearchRepository, query pettypes.SearchQuery, req pettypes.PageRequest) (*pettypes.SearchPage, error) {
	total, err := repo.Count(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count pets: %w", err)
	}
	items := []*domain.Pet{}
	if !windowPastEnd(req, total) {
		found, err := repo.Find(ctx, query, req)
		if err != nil {
			return nil, fmt.Errorf("find pets: %w", err)
		}
		if found != nil {
			items = found
		}
	}
	return &pettypes.SearchPage{Items: items, PageInfo: NewPageInfo(req, total)}, nil
}

// CreateListing validates and stores a new listing. A repeated Idempotency-Key
// with the same payload replays the stored listing.
func (s *Service) CreateListing(ctx context.Context, input pettypes.CreateListingInput) (*domain.Pet, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	useKey := key != "" && s.idempotency != nil
	var fingerprint string
	if useKey {
		var err error
		fingerprint, err = FingerprintListing(input)
		if err != nil {
			return nil, err
		}
		record, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load idempotency key: %w", err)
		}
		if record != nil {
			if record.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, record.PetID)
		}
	}

	pet, err := s.buildListing(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	if useKey {
		if _, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, PetID: saved.ID}); err != nil {
			if errors.Is(err, ports.ErrIdempotencyConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("store idempotency key: %w", err)
		}
	}
	s.publish(ctx, domain.ListingCreated{
		BaseEvent: domain.BaseEvent{Timestamp: s.now().UTC()},
		PetID:     saved.ID,
		OwnerID:   saved.Owner.ID,
	})
	return saved, nil
}

func (s *Service) buildListing(ctx context.Context, input pettypes.CreateListingInput) (*domain.Pet, error) {
	owner, err := s.repo.GetOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	species, err := s.repo.GetSpecies(ctx, input.SpeciesID)
	if err != nil {
		return nil, err
	}
	breed, err := s.repo.GetBreed(ctx, input.BreedID)
	if err != nil {
		return nil, err
	}
	var tags []domain.Tag
	if len(input.TagIDs) > 0 {
		if tags, err = s.repo.GetTags(ctx, input.TagIDs); err != nil {
			return nil, err
		}
	}
	pet, err := domain.NewPet(owner, species, breed, domain.Gender(input.Gender), domain.Size(input.Size), input.AgeInMonths)
	if err != nil {
		return nil, err
	}
	pet.Describe(input.Name, input.Description)
	pet.SetHealth(input.IsCastrated, input.IsVaccinated)
	if err := pet.ReplaceImages(input.ImageURLs); err != nil {
		return nil, err
	}
	if err := pet.AttachTags(tags); err != nil {
		return nil, err
	}
	pet.CreatedAt = s.now().UTC()
	return pet, nil
}

// GetListing loads a single listing, adopted or not.
func (s *Service) GetListing(ctx context.Context, input pettypes.ListingIdentifier) (*domain.Pet, error) {
	return s.repo.GetByID(ctx, input.ID)
}

// AdoptListing marks the listing adopted. Adopting twice is a no-op.
func (s *Service) AdoptListing(ctx context.Context, input pettypes.ListingIdentifier) (*domain.Pet, error) {
	pet, err := s.repo.MarkAdopted(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.ListingAdopted{
		BaseEvent: domain.BaseEvent{Timestamp: s.now().UTC()},
		PetID:     pet.ID,
	})
	return pet, nil
}

// ListTags returns the tag catalog, optionally for one category.
func (s *Service) ListTags(ctx context.Context, input pettypes.ListTagsInput) ([]domain.Tag, error) {
	raw := strings.TrimSpace(input.Category)
	if raw == "" {
		return s.repo.ListTags(ctx, nil)
	}
	category, err := domain.ParseTagCategory(raw)
	if err != nil {
		verr := newValidationError()
		verr.add("category", "must be one of: Color, Pattern, Coat")
		return nil, verr
	}
	return s.repo.ListTags(ctx, &category)
}

// cacheKey is resolved before the repository read; an empty key disables caching for the request.
func (s *Service) cacheKey(ctx context.Context, criteria pettypes.SearchCriteria) string {
	if s.cache == nil {
		return ""
	}
	key, err := s.cache.Key(ctx, criteria)
	if err != nil {
		s.logger.WarnContext(ctx, "search cache key failed", slog.String("error", err.Error()))
		return ""
	}
	return key
}

func (s *Service) cachedPage(ctx context.Context, key string) (*pettypes.SearchPage, bool) {
	if key == "" {
		return nil, false
	}
	page, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "search cache read failed", slog.String("error", err.Error()))
		return nil, false
	}
	return page, ok
}

func (s *Service) storePage(ctx context.Context, key string, page *pettypes.SearchPage) {
	if key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, page); err != nil {
		s.logger.WarnContext(ctx, "search cache write failed", slog.String("error", err.Error()))
	}
}

func (s *Service) publish(ctx context.Context, events ...domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.WarnContext(ctx, "listing event publish failed", slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
