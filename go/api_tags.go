package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// TagAPI serves the tag catalog used to build search filters.
type TagAPI struct {
	service petsports.Service
}

// NewTagAPI creates a TagAPI backed by the provided service.
func NewTagAPI(service petsports.Service) TagAPI {
	return TagAPI{service: service}
}

// Get /api/tags
// List tags, optionally for one category
func (api *TagAPI) ListTags(c *gin.Context) {
	tags, err := api.service.ListTags(c.Request.Context(), petstypes.ListTagsInput{Category: c.Query("category")})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromTags(tags))
}
