package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// Wednesday.
var fixedNow = time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC)

type fixture struct {
	repo *petmemory.Repository
	svc  *Service
}

type petSeed struct {
	owner   int64
	species int64
	breed   int64
	gender  domain.Gender
	size    domain.Size
	age     int
	tags    []int64
	adopted bool
	created time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	repo := petmemory.NewRepository()
	petmemory.SeedCatalog(repo)
	repo.AddOwner(domain.Owner{ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", State: "SP", City: "Campinas"})
	repo.AddOwner(domain.Owner{ID: 2, FirstName: "Bruno", LastName: "Costa", Email: "bruno@example.com", State: "RJ", City: "Niteroi"})
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return &fixture{repo: repo, svc: NewService(repo, opts...)}
}

func (f *fixture) seed(t *testing.T, s petSeed) *domain.Pet {
	t.Helper()
	ctx := context.Background()
	if s.owner == 0 {
		s.owner = 1
	}
	if s.species == 0 {
		s.species = 1
	}
	if s.breed == 0 {
		s.breed = 1
	}
	if s.gender == "" {
		s.gender = domain.GenderMale
	}
	if s.size == "" {
		s.size = domain.SizeMedium
	}
	if s.created.IsZero() {
		s.created = fixedNow.Add(-time.Hour)
	}
	owner, err := f.repo.GetOwner(ctx, s.owner)
	require.NoError(t, err)
	species, err := f.repo.GetSpecies(ctx, s.species)
	require.NoError(t, err)
	breed, err := f.repo.GetBreed(ctx, s.breed)
	require.NoError(t, err)
	tags, err := f.repo.GetTags(ctx, s.tags)
	require.NoError(t, err)

	pet, err := domain.NewPet(owner, species, breed, s.gender, s.size, s.age)
	require.NoError(t, err)
	require.NoError(t, pet.AttachTags(tags))
	pet.IsAdopted = s.adopted
	pet.CreatedAt = s.created
	saved, err := f.repo.Save(ctx, pet)
	require.NoError(t, err)
	return saved
}

func (f *fixture) search(t *testing.T, input pettypes.SearchPetsInput) *pettypes.SearchPage {
	t.Helper()
	page, err := f.svc.SearchPets(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, page)
	return page
}

func ids(pets []*domain.Pet) []int64 {
	out := make([]int64, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.ID)
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestSearchPets_ExcludesAdopted(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, petSeed{})
	f.seed(t, petSeed{adopted: true})
	c := f.seed(t, petSeed{})

	page := f.search(t, pettypes.SearchPetsInput{})
	require.Equal(t, int64(2), page.TotalCount)
	require.Equal(t, []int64{a.ID, c.ID}, ids(page.Items))
	for _, p := range page.Items {
		require.False(t, p.IsAdopted)
	}
}

func TestSearchPets_SpeciesExactMatch(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.seed(t, petSeed{species: 1, breed: 3})
	}
	f.seed(t, petSeed{species: 2, breed: 5})
	f.seed(t, petSeed{species: 2, breed: 6})

	page := f.search(t, pettypes.SearchPetsInput{Species: "Dog", Page: intPtr(1), PageSize: intPtr(10)})
	require.Equal(t, int64(3), page.TotalCount)
	require.Len(t, page.Items, 3)
	for _, p := range page.Items {
		require.Equal(t, "Dog", p.Species.Name)
	}

	require.Zero(t, f.search(t, pettypes.SearchPetsInput{Species: "dog"}).TotalCount)
}

func TestSearchPets_ColorsRequireEveryColor(t *testing.T) {
	f := newFixture(t)
	both := f.seed(t, petSeed{tags: []int64{1, 2}})
	whiteOnly := f.seed(t, petSeed{tags: []int64{1}})
	f.seed(t, petSeed{tags: []int64{2, 3}})

	page := f.search(t, pettypes.SearchPetsInput{Colors: "White,Black"})
	require.Equal(t, []int64{both.ID}, ids(page.Items))

	page = f.search(t, pettypes.SearchPetsInput{Colors: " White , ,Black,White"})
	require.Equal(t, []int64{both.ID}, ids(page.Items))

	page = f.search(t, pettypes.SearchPetsInput{Colors: "White"})
	require.Equal(t, []int64{both.ID, whiteOnly.ID}, ids(page.Items))

	page = f.search(t, pettypes.SearchPetsInput{Colors: " , "})
	require.Equal(t, int64(3), page.TotalCount)
}

func TestSearchPets_TagFiltersEnforceCategory(t *testing.T) {
	f := newFixture(t)
	f.repo.AddTag(domain.Tag{ID: 100, Name: "Golden", Category: domain.TagCategoryPattern})
	goldenColor := f.seed(t, petSeed{tags: []int64{4}})
	goldenPattern := f.seed(t, petSeed{tags: []int64{100, 16}})

	page := f.search(t, pettypes.SearchPetsInput{Colors: "Golden"})
	require.Equal(t, []int64{goldenColor.ID}, ids(page.Items))

	page = f.search(t, pettypes.SearchPetsInput{Pattern: "Golden", Coat: "Long"})
	require.Equal(t, []int64{goldenPattern.ID}, ids(page.Items))

	page = f.search(t, pettypes.SearchPetsInput{Coat: "Short"})
	require.Empty(t, page.Items)
}

func TestSearchPets_Pagination(t *testing.T) {
	f := newFixture(t)
	var all []int64
	for i := 0; i < 5; i++ {
		all = append(all, f.seed(t, petSeed{}).ID)
	}

	first := f.search(t, pettypes.SearchPetsInput{PageSize: intPtr(2)})
	require.Equal(t, 3, first.TotalPages)
	require.Equal(t, int64(5), first.TotalCount)
	require.True(t, first.HasNextPage)
	require.False(t, first.HasPreviousPage)

	last := f.search(t, pettypes.SearchPetsInput{Page: intPtr(3), PageSize: intPtr(2)})
	require.Len(t, last.Items, 1)
	require.False(t, last.HasNextPage)
	require.True(t, last.HasPreviousPage)

	var collected []int64
	for p := 1; p <= first.TotalPages; p++ {
		page := f.search(t, pettypes.SearchPetsInput{Page: intPtr(p), PageSize: intPtr(2)})
		collected = append(collected, ids(page.Items)...)
	}
	require.Equal(t, all, collected)
}

func TestSearchPets_PagePastEnd(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.seed(t, petSeed{})
	}
	page := f.search(t, pettypes.SearchPetsInput{Page: intPtr(999)})
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Equal(t, int64(5), page.TotalCount)
	require.Equal(t, 1, page.TotalPages)
	require.False(t, page.HasNextPage)
	require.True(t, page.HasPreviousPage)
}

func TestSearchPets_HugePageIsPastEnd(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.seed(t, petSeed{})
	}
	page := f.search(t, pettypes.SearchPetsInput{Page: intPtr(math.MaxInt), PageSize: intPtr(10)})
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Equal(t, math.MaxInt, page.Page)
	require.Equal(t, int64(5), page.TotalCount)
	require.Equal(t, 1, page.TotalPages)
	require.False(t, page.HasNextPage)
	require.True(t, page.HasPreviousPage)
}

func TestSearchPets_EmptyResult(t *testing.T) {
	f := newFixture(t)
	f.seed(t, petSeed{})

	page := f.search(t, pettypes.SearchPetsInput{Species: "Parrot", Page: intPtr(2)})
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Zero(t, page.TotalCount)
	require.Zero(t, page.TotalPages)
	require.False(t, page.HasNextPage)
	require.False(t, page.HasPreviousPage)
}

func TestSearchPets_AgeBuckets(t *testing.T) {
	f := newFixture(t)
	age11 := f.seed(t, petSeed{age: 11})
	age12 := f.seed(t, petSeed{age: 12})
	age35 := f.seed(t, petSeed{age: 35})
	age36 := f.seed(t, petSeed{age: 36})
	f.seed(t, petSeed{age: 120})

	require.Equal(t, []int64{age11.ID}, ids(f.search(t, pettypes.SearchPetsInput{Age: "Baby"}).Items))
	require.Equal(t, []int64{age12.ID, age35.ID}, ids(f.search(t, pettypes.SearchPetsInput{Age: "Young"}).Items))
	require.Equal(t, []int64{age36.ID}, ids(f.search(t, pettypes.SearchPetsInput{Age: "Adult"}).Items))
}

func TestSearchPets_PostedWindows(t *testing.T) {
	f := newFixture(t)
	today := f.seed(t, petSeed{created: time.Date(2024, time.June, 12, 8, 0, 0, 0, time.UTC)})
	sunday := f.seed(t, petSeed{created: time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC)})
	saturday := f.seed(t, petSeed{created: time.Date(2024, time.June, 8, 23, 59, 0, 0, time.UTC)})
	may := f.seed(t, petSeed{created: time.Date(2024, time.May, 31, 12, 0, 0, 0, time.UTC)})
	f.seed(t, petSeed{created: time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)})

	require.Equal(t, []int64{today.ID}, ids(f.search(t, pettypes.SearchPetsInput{Posted: "Today"}).Items))
	require.Equal(t, []int64{today.ID, sunday.ID}, ids(f.search(t, pettypes.SearchPetsInput{Posted: "ThisWeek"}).Items))
	require.Equal(t, []int64{today.ID, sunday.ID, saturday.ID}, ids(f.search(t, pettypes.SearchPetsInput{Posted: "ThisMonth"}).Items))
	require.Equal(t, []int64{today.ID, sunday.ID, saturday.ID, may.ID}, ids(f.search(t, pettypes.SearchPetsInput{Posted: "ThisYear"}).Items))
}

func TestSearchPets_LocationBreedAndEnums(t *testing.T) {
	f := newFixture(t)
	lab := f.seed(t, petSeed{owner: 1, breed: 1, gender: domain.GenderFemale, size: domain.SizeLarge})
	golden := f.seed(t, petSeed{owner: 2, breed: 4, gender: domain.GenderMale, size: domain.SizeLarge})
	beagle := f.seed(t, petSeed{owner: 2, breed: 3, gender: domain.GenderFemale, size: domain.SizeSmall})

	require.Equal(t, []int64{lab.ID, golden.ID}, ids(f.search(t, pettypes.SearchPetsInput{Breed: "Retriever"}).Items))
	require.Empty(t, f.search(t, pettypes.SearchPetsInput{Breed: "retriever"}).Items)
	require.Equal(t, []int64{golden.ID, beagle.ID}, ids(f.search(t, pettypes.SearchPetsInput{State: "RJ", City: " Niteroi "}).Items))
	require.Equal(t, []int64{lab.ID, beagle.ID}, ids(f.search(t, pettypes.SearchPetsInput{Gender: "Female"}).Items))
	require.Equal(t, []int64{beagle.ID}, ids(f.search(t, pettypes.SearchPetsInput{Gender: "Female", Size: "Small", State: "RJ"}).Items))
	require.Len(t, f.search(t, pettypes.SearchPetsInput{State: "   ", Breed: "\t"}).Items, 3)
}

func TestSearchPets_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SearchPets(context.Background(), pettypes.SearchPetsInput{
		Gender:   "male",
		Size:     "Huge",
		Age:      "Senior",
		Posted:   "Yesterday",
		Page:     intPtr(0),
		PageSize: intPtr(101),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "gender")
	require.Contains(t, verr.Fields, "size")
	require.Contains(t, verr.Fields, "age")
	require.Contains(t, verr.Fields, "posted")
	require.Equal(t, "must be at least 1", verr.Fields["page"])
	require.Equal(t, "must be at most 100", verr.Fields["pageSize"])

	_, err = f.svc.SearchPets(context.Background(), pettypes.SearchPetsInput{PageSize: intPtr(0)})
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "must be at least 1", verr.Fields["pageSize"])
}

type failingSearchRepo struct {
	*petmemory.Repository
	err error
}

func (r failingSearchRepo) Count(context.Context, pettypes.SearchQuery) (int64, error) {
	return 0, r.err
}

func TestSearchPets_InfrastructureError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(failingSearchRepo{Repository: petmemory.NewRepository(), err: boom})

	page, err := svc.SearchPets(context.Background(), pettypes.SearchPetsInput{})
	require.Nil(t, page)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrInvalidInput)
}

type recordingCache struct {
	pages map[string]*pettypes.SearchPage
	gets  int
	sets  int
}

func (c *recordingCache) Key(_ context.Context, criteria pettypes.SearchCriteria) (string, error) {
	return criteria.Species + "|" + criteria.Breed, nil
}

func (c *recordingCache) Get(_ context.Context, key string) (*pettypes.SearchPage, bool, error) {
	c.gets++
	page, ok := c.pages[key]
	return page, ok, nil
}

func (c *recordingCache) Set(_ context.Context, key string, page *pettypes.SearchPage) error {
	c.sets++
	c.pages[key] = page
	return nil
}

// generationCache invalidates every page on Publish, like the Redis adapter.
type generationCache struct {
	recordingCache
	generation int
}

func (c *generationCache) Key(_ context.Context, criteria pettypes.SearchCriteria) (string, error) {
	return fmt.Sprintf("%d|%s", c.generation, criteria.Species), nil
}

func (c *generationCache) Publish(context.Context, ...domain.Event) error {
	c.generation++
	return nil
}

type hookedSearchRepo struct {
	*petmemory.Repository
	afterFind func(ctx context.Context)
}

func (r *hookedSearchRepo) Find(ctx context.Context, query pettypes.SearchQuery, page pettypes.PageRequest) ([]*domain.Pet, error) {
	items, err := r.Repository.Find(ctx, query, page)
	if hook := r.afterFind; hook != nil {
		r.afterFind = nil
		hook(ctx)
	}
	return items, err
}

func TestSearchPets_UsesCache(t *testing.T) {
	cache := &recordingCache{pages: map[string]*pettypes.SearchPage{}}
	f := newFixture(t, WithSearchCache(cache))
	f.seed(t, petSeed{})

	first := f.search(t, pettypes.SearchPetsInput{Species: "Dog"})
	f.seed(t, petSeed{})
	second := f.search(t, pettypes.SearchPetsInput{Species: "Dog"})

	require.Equal(t, 2, cache.gets)
	require.Equal(t, 1, cache.sets)
	require.Equal(t, first.TotalCount, second.TotalCount)
}

func TestSearchPets_AdoptionDuringReadIsNotCached(t *testing.T) {
	f := newFixture(t)
	adopted := f.seed(t, petSeed{})
	kept := f.seed(t, petSeed{})
	cache := &generationCache{recordingCache: recordingCache{pages: map[string]*pettypes.SearchPage{}}}
	repo := &hookedSearchRepo{Repository: f.repo}
	svc := NewService(repo,
		WithClock(func() time.Time { return fixedNow }),
		WithSearchCache(cache),
		WithEventPublisher(cache),
	)
	repo.afterFind = func(ctx context.Context) {
		_, err := svc.AdoptListing(ctx, pettypes.ListingIdentifier{ID: adopted.ID})
		require.NoError(t, err)
	}
	ctx := context.Background()

	stale, err := svc.SearchPets(ctx, pettypes.SearchPetsInput{Species: "Dog"})
	require.NoError(t, err)
	require.Equal(t, int64(2), stale.TotalCount)

	fresh, err := svc.SearchPets(ctx, pettypes.SearchPetsInput{Species: "Dog"})
	require.NoError(t, err)
	require.Equal(t, int64(1), fresh.TotalCount)
	require.Equal(t, []int64{kept.ID}, ids(fresh.Items))
}

type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...domain.Event) error {
	p.events = append(p.events, events...)
	return nil
}

func validListing() pettypes.CreateListingInput {
	return pettypes.CreateListingInput{
		OwnerID:      1,
		Name:         "Luna",
		Gender:       "Female",
		Size:         "Small",
		AgeInMonths:  8,
		Description:  "Calm and friendly",
		IsVaccinated: true,
		SpeciesID:    2,
		BreedID:      5,
		TagIDs:       []int64{2, 1, 16},
		ImageURLs:    []string{"https://img.example.com/luna.jpg"},
	}
}

func TestCreateListing_AppearsInSearch(t *testing.T) {
	publisher := &recordingPublisher{}
	f := newFixture(t, WithEventPublisher(publisher))

	pet, err := f.svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)
	require.NotZero(t, pet.ID)
	require.Equal(t, fixedNow, pet.CreatedAt)
	require.Equal(t, "Siamese", pet.Breed.Name)
	require.Len(t, publisher.events, 1)
	require.Equal(t, "pets.listing.created", publisher.events[0].EventName())

	page := f.search(t, pettypes.SearchPetsInput{Colors: "Black,White", Coat: "Long", Posted: "Today"})
	require.Equal(t, []int64{pet.ID}, ids(page.Items))
}

func TestCreateListing_InvalidInput(t *testing.T) {
	f := newFixture(t)

	input := validListing()
	input.Gender = "F"
	input.AgeInMonths = -2
	_, err := f.svc.CreateListing(context.Background(), input)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "gender")
	require.Contains(t, verr.Fields, "ageInMonths")

	input = validListing()
	input.BreedID = 1
	_, err = f.svc.CreateListing(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrBreedSpecies)

	input = validListing()
	input.TagIDs = []int64{999}
	_, err = f.svc.CreateListing(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ports.ErrUnknownReference)
}

func TestCreateListing_Idempotency(t *testing.T) {
	f := newFixture(t, WithIdempotencyStore(petmemory.NewIdempotencyStore()))

	input := validListing()
	input.IdempotencyKey = "listing-1"
	first, err := f.svc.CreateListing(context.Background(), input)
	require.NoError(t, err)

	input.TagIDs = []int64{16, 1, 2}
	replay, err := f.svc.CreateListing(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.ID, replay.ID)

	input.Name = "Another"
	_, err = f.svc.CreateListing(context.Background(), input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	total := f.search(t, pettypes.SearchPetsInput{}).TotalCount
	require.Equal(t, int64(1), total)
}

func TestAdoptListing_RemovesFromSearch(t *testing.T) {
	publisher := &recordingPublisher{}
	f := newFixture(t, WithEventPublisher(publisher))
	pet := f.seed(t, petSeed{})

	adopted, err := f.svc.AdoptListing(context.Background(), pettypes.ListingIdentifier{ID: pet.ID})
	require.NoError(t, err)
	require.True(t, adopted.IsAdopted)
	require.Zero(t, f.search(t, pettypes.SearchPetsInput{}).TotalCount)
	require.Equal(t, "pets.listing.adopted", publisher.events[0].EventName())

	loaded, err := f.svc.GetListing(context.Background(), pettypes.ListingIdentifier{ID: pet.ID})
	require.NoError(t, err)
	require.True(t, loaded.IsAdopted)

	_, err = f.svc.AdoptListing(context.Background(), pettypes.ListingIdentifier{ID: 404})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListTags(t *testing.T) {
	f := newFixture(t)

	colors, err := f.svc.ListTags(context.Background(), pettypes.ListTagsInput{Category: "Color"})
	require.NoError(t, err)
	require.Len(t, colors, 7)
	require.Equal(t, "White", colors[0].Name)

	all, err := f.svc.ListTags(context.Background(), pettypes.ListTagsInput{})
	require.NoError(t, err)
	require.Len(t, all, 19)

	_, err = f.svc.ListTags(context.Background(), pettypes.ListTagsInput{Category: "color"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "category")
}
