package adoptionserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// HeaderIdempotencyKey makes listing creation safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Get /api/pets/search
// Search adoptable pets
func (api *PetAPI) SearchPets(c *gin.Context) {
	query := c.Request.URL.Query()
	input := petstypes.SearchPetsInput{
		State:   query.Get("state"),
		City:    query.Get("city"),
		Species: query.Get("species"),
		Gender:  query.Get("gender"),
		Size:    query.Get("size"),
		Breed:   query.Get("breed"),
		Colors:  strings.Join(query["colors"], ","),
		Pattern: query.Get("pattern"),
		Coat:    query.Get("coat"),
		Age:     query.Get("age"),
		Posted:  query.Get("posted"),
	}
	fields := map[string]string{}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &input.Page); err != nil {
		fields["page"] = "must be an integer"
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", query, &input.PageSize); err != nil {
		fields["pageSize"] = "must be an integer"
	}
	if len(fields) > 0 {
		respondProblem(c, apierrors.NewValidationProblem(fields))
		return
	}

	page, err := api.service.SearchPets(c.Request.Context(), input)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromSearchPage(page))
}

// Post /api/pets
// Create an adoption listing
func (api *PetAPI) CreateListing(c *gin.Context) {
	var payload pethttpmapper.CreateListingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("request body must be a JSON listing"))
		return
	}
	input := pethttpmapper.ToCreateListingInput(payload, c.GetHeader(HeaderIdempotencyKey))
	saved, err := api.service.CreateListing(c.Request.Context(), input)
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromPet(saved))
}

// Get /api/pets/:petId
// Find a listing by ID
func (api *PetAPI) GetListing(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetListing(c.Request.Context(), petstypes.ListingIdentifier{ID: id})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromPet(pet))
}

// Post /api/pets/:petId/adopt
// Mark a listing adopted
func (api *PetAPI) AdoptListing(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.AdoptListing(c.Request.Context(), petstypes.ListingIdentifier{ID: id})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromPet(pet))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.NewValidationProblem(map[string]string{name: "must be a positive integer"}))
		return 0, false
	}
	return id, true
}
