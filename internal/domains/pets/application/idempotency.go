package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

type normalizedListing struct {
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

// FingerprintListing builds a deterministic hash of the listing payload (excluding the idempotency key).
// Tag order does not change the fingerprint; image order does.
func FingerprintListing(input pettypes.CreateListingInput) (string, error) {
	tags := append([]int64{}, input.TagIDs...)
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	images := make([]string, 0, len(input.ImageURLs))
	for _, u := range input.ImageURLs {
		images = append(images, strings.TrimSpace(u))
	}
	normalized := normalizedListing{
		OwnerID:      input.OwnerID,
		Name:         strings.TrimSpace(input.Name),
		Gender:       strings.TrimSpace(input.Gender),
		Size:         strings.TrimSpace(input.Size),
		AgeInMonths:  input.AgeInMonths,
		Description:  strings.TrimSpace(input.Description),
		IsCastrated:  input.IsCastrated,
		IsVaccinated: input.IsVaccinated,
		SpeciesID:    input.SpeciesID,
		BreedID:      input.BreedID,
		TagIDs:       tags,
		ImageURLs:    images,
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// ImportListingKey derives the Idempotency-Key of one listing in an import
// batch so a retried batch never creates the same listing twice.
// A listing that already carries a key keeps it.
func ImportListingKey(batchID string, index int, listing pettypes.CreateListingInput) string {
	if key := strings.TrimSpace(listing.IdempotencyKey); key != "" {
		return key
	}
	return "import-" + batchID + "-" + strconv.Itoa(index)
}
