// Package importfile reads listing import batches from TOML files.
//
// A file looks like:
//
//	batch = "shelter-2024-06"
//
//	[[listing]]
//	owner_id = 1
//	name = "Rex"
//	gender = "Male"
//	size = "Large"
//	age_in_months = 24
//	species_id = 1
//	breed_id = 1
//	tag_ids = [3, 8]
//	image_urls = ["https://img.example/rex.jpg"]
package importfile

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

type file struct {
	Batch    string    `toml:"batch"`
	Listings []listing `toml:"listing"`
}

type listing struct {
	IdempotencyKey string   `toml:"idempotency_key"`
	OwnerID        int64    `toml:"owner_id"`
	Name           string   `toml:"name"`
	Gender         string   `toml:"gender"`
	Size           string   `toml:"size"`
	AgeInMonths    int      `toml:"age_in_months"`
	Description    string   `toml:"description"`
	IsCastrated    bool     `toml:"is_castrated"`
	IsVaccinated   bool     `toml:"is_vaccinated"`
	SpeciesID      int64    `toml:"species_id"`
	BreedID        int64    `toml:"breed_id"`
	TagIDs         []int64  `toml:"tag_ids"`
	ImageURLs      []string `toml:"image_urls"`
}

// Load reads an import batch from a TOML file on disk.
func Load(path string) (petstypes.ImportListingsInput, error) {
	var f file
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return petstypes.ImportListingsInput{}, fmt.Errorf("read import file %s: %w", path, err)
	}
	return convert(f, meta)
}

// Decode reads an import batch from TOML text.
func Decode(r io.Reader) (petstypes.ImportListingsInput, error) {
	var f file
	meta, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return petstypes.ImportListingsInput{}, fmt.Errorf("decode import file: %w", err)
	}
	return convert(f, meta)
}

func convert(f file, meta toml.MetaData) (petstypes.ImportListingsInput, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return petstypes.ImportListingsInput{}, fmt.Errorf("unknown import file key %q", undecoded[0].String())
	}
	input := petstypes.ImportListingsInput{
		BatchID:  f.Batch,
		Listings: make([]petstypes.CreateListingInput, 0, len(f.Listings)),
	}
	for _, l := range f.Listings {
		input.Listings = append(input.Listings, petstypes.CreateListingInput{
			IdempotencyKey: l.IdempotencyKey,
			OwnerID:        l.OwnerID,
			Name:           l.Name,
			Gender:         l.Gender,
			Size:           l.Size,
			AgeInMonths:    l.AgeInMonths,
			Description:    l.Description,
			IsCastrated:    l.IsCastrated,
			IsVaccinated:   l.IsVaccinated,
			SpeciesID:      l.SpeciesID,
			BreedID:        l.BreedID,
			TagIDs:         l.TagIDs,
			ImageURLs:      l.ImageURLs,
		})
	}
	return input, nil
}
