package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

func TestFromSearchPage_EmptyItemsEncodeAsArray(t *testing.T) {
	resp := FromSearchPage(&pettypes.SearchPage{PageInfo: pettypes.PageInfo{Page: 4, PageSize: 10}})
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[],"page":4,"pageSize":10,"totalCount":0,"totalPages":0,"hasPreviousPage":false,"hasNextPage":false}`, string(raw))

	require.NotNil(t, FromSearchPage(nil).Items)
}

func TestFromPet_ResolvesNamesAndOwner(t *testing.T) {
	created := time.Date(2024, time.June, 12, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	pet := &domain.Pet{
		ID:          3,
		Name:        "Thor",
		Gender:      domain.GenderMale,
		Size:        domain.SizeLarge,
		AgeInMonths: 36,
		CreatedAt:   created,
		Owner:       domain.Owner{ID: 1, FirstName: "Ana", Email: "ana@example.com", State: "SP", City: "Campinas"},
		Species:     domain.Species{ID: 1, Name: "Dog"},
		Breed:       domain.Breed{ID: 2, Name: "German Shepherd", SpeciesID: 1},
		ImageURLs:   []string{"https://img.example.com/thor.jpg"},
		Tags: []domain.Tag{
			{ID: 2, Name: "Black", Category: domain.TagCategoryColor},
			{ID: 14, Name: "Short", Category: domain.TagCategoryCoat},
		},
	}

	summary := FromPet(pet)
	require.Equal(t, "Dog", summary.SpeciesName)
	require.Equal(t, "German Shepherd", summary.BreedName)
	require.Equal(t, time.UTC, summary.CreatedAt.Location())
	require.Equal(t, "Campinas", summary.Owner.City)
	require.Equal(t, []TagSummary{{ID: 2, Name: "Black", Category: "Color"}, {ID: 14, Name: "Short", Category: "Coat"}}, summary.Tags)

	raw, err := json.Marshal(summary)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "2024-06-12T12:30:00Z", body["createdAt"])
	owner := body["owner"].(map[string]any)
	require.NotContains(t, owner, "password")
	require.NotContains(t, owner, "passwordHash")
}

func TestToCreateListingInput(t *testing.T) {
	in := ToCreateListingInput(CreateListingRequest{OwnerID: 1, Gender: "Female", TagIDs: []int64{1}}, "key-1")
	require.Equal(t, "key-1", in.IdempotencyKey)
	require.Equal(t, int64(1), in.OwnerID)
	require.Equal(t, []int64{1}, in.TagIDs)
}
