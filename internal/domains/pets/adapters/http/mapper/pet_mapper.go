package mapper

import (
	"time"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// OwnerSummary is the public view of the listing owner. Credentials are never mapped.
type OwnerSummary struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	State       string `json:"state"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PostalCode  string `json:"postalCode"`
}

// TagSummary is a tag as shown on a listing.
type TagSummary struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PetSummary is one search result.
type PetSummary struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	SpeciesName  string       `json:"speciesName"`
	BreedName    string       `json:"breedName"`
	Gender       string       `json:"gender"`
	Size         string       `json:"size"`
	AgeInMonths  int          `json:"ageInMonths"`
	Description  string       `json:"description"`
	IsCastrated  bool         `json:"isCastrated"`
	IsVaccinated bool         `json:"isVaccinated"`
	IsAdopted    bool         `json:"isAdopted"`
	CreatedAt    time.Time    `json:"createdAt"`
	Owner        OwnerSummary `json:"owner"`
	Tags         []TagSummary `json:"tags"`
	ImageURLs    []string     `json:"imageUrls"`
}

// SearchResponse is the body of GET /api/pets/search.
type SearchResponse struct {
	Items           []PetSummary `json:"items"`
	Page            int          `json:"page"`
	PageSize        int          `json:"pageSize"`
	TotalCount      int64        `json:"totalCount"`
	TotalPages      int          `json:"totalPages"`
	HasPreviousPage bool         `json:"hasPreviousPage"`
	HasNextPage     bool         `json:"hasNextPage"`
}

// CreateListingRequest is the body of POST /api/pets.
type CreateListingRequest struct {
	OwnerID      int64    `json:"ownerId"`
	Name         string   `json:"name"`
	Gender       string   `json:"gender"`
	Size         string   `json:"size"`
	AgeInMonths  int      `json:"ageInMonths"`
	Description  string   `json:"description"`
	IsCastrated  bool     `json:"isCastrated"`
	IsVaccinated bool     `json:"isVaccinated"`
	SpeciesID    int64    `json:"speciesId"`
	BreedID      int64    `json:"breedId"`
	TagIDs       []int64  `json:"tagIds"`
	ImageURLs    []string `json:"imageUrls"`
}

// ToCreateListingInput carries the request and its optional idempotency key into the application layer.
func ToCreateListingInput(req CreateListingRequest, idempotencyKey string) pettypes.CreateListingInput {
	return pettypes.CreateListingInput{
		IdempotencyKey: idempotencyKey,
		OwnerID:        req.OwnerID,
		Name:           req.Name,
		Gender:         req.Gender,
		Size:           req.Size,
		AgeInMonths:    req.AgeInMonths,
		Description:    req.Description,
		IsCastrated:    req.IsCastrated,
		IsVaccinated:   req.IsVaccinated,
		SpeciesID:      req.SpeciesID,
		BreedID:        req.BreedID,
		TagIDs:         req.TagIDs,
		ImageURLs:      req.ImageURLs,
	}
}

// FromSearchPage maps a page in Pager order. Items is never nil.
func FromSearchPage(page *pettypes.SearchPage) SearchResponse {
	resp := SearchResponse{Items: []PetSummary{}}
	if page == nil {
		return resp
	}
	for _, p := range page.Items {
		if p == nil {
			continue
		}
		resp.Items = append(resp.Items, FromPet(p))
	}
	resp.Page = page.Page
	resp.PageSize = page.PageSize
	resp.TotalCount = page.TotalCount
	resp.TotalPages = page.TotalPages
	resp.HasPreviousPage = page.HasPreviousPage
	resp.HasNextPage = page.HasNextPage
	return resp
}

// FromPet maps a listing with its resolved references.
func FromPet(p *domain.Pet) PetSummary {
	images := append([]string{}, p.ImageURLs...)
	return PetSummary{
		ID:           p.ID,
		Name:         p.Name,
		SpeciesName:  p.Species.Name,
		BreedName:    p.Breed.Name,
		Gender:       string(p.Gender),
		Size:         string(p.Size),
		AgeInMonths:  p.AgeInMonths,
		Description:  p.Description,
		IsCastrated:  p.IsCastrated,
		IsVaccinated: p.IsVaccinated,
		IsAdopted:    p.IsAdopted,
		CreatedAt:    p.CreatedAt.UTC(),
		Owner:        fromOwner(p.Owner),
		Tags:         FromTags(p.Tags),
		ImageURLs:    images,
	}
}

// FromTags maps tags, keeping their order.
func FromTags(tags []domain.Tag) []TagSummary {
	out := make([]TagSummary, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagSummary{ID: t.ID, Name: t.Name, Category: string(t.Category)})
	}
	return out
}

func fromOwner(o domain.Owner) OwnerSummary {
	return OwnerSummary{
		ID:          o.ID,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		PhoneNumber: o.PhoneNumber,
		State:       o.State,
		City:        o.City,
		Street:      o.Street,
		PostalCode:  o.PostalCode,
	}
}
