package memory

import "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"

// SeedCatalog loads the same species, breeds and tags the Postgres seed migration inserts.
func SeedCatalog(r *Repository) {
	for _, s := range []domain.Species{
		{ID: 1, Name: "Dog"},
		{ID: 2, Name: "Cat"},
	} {
		r.AddSpecies(s)
	}
	for _, b := range []domain.Breed{
		{ID: 1, Name: "Labrador Retriever", SpeciesID: 1},
		{ID: 2, Name: "German Shepherd", SpeciesID: 1},
		{ID: 3, Name: "Beagle", SpeciesID: 1},
		{ID: 4, Name: "Golden Retriever", SpeciesID: 1},
		{ID: 5, Name: "Siamese", SpeciesID: 2},
		{ID: 6, Name: "Persian", SpeciesID: 2},
		{ID: 7, Name: "Maine Coon", SpeciesID: 2},
		{ID: 8, Name: "Domestic Shorthair", SpeciesID: 2},
	} {
		r.AddBreed(b)
	}
	tags := []struct {
		category domain.TagCategory
		names    []string
	}{
		{domain.TagCategoryColor, []string{"White", "Black", "Brown", "Golden", "Gray", "Orange", "Cream"}},
		{domain.TagCategoryPattern, []string{"Solid", "Bicolor", "Tabby", "Spotted", "Brindle", "Tricolor"}},
		{domain.TagCategoryCoat, []string{"Short", "Medium", "Long", "Curly", "Wire", "Hairless"}},
	}
	var id int64
	for _, group := range tags {
		for _, name := range group.names {
			id++
			r.AddTag(domain.Tag{ID: id, Name: name, Category: group.category})
		}
	}
}

// SeedDemoOwners registers two owners so listings can be created without a users database.
func SeedDemoOwners(r *Repository) {
	r.AddOwner(domain.Owner{ID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", State: "SP", City: "Campinas"})
	r.AddOwner(domain.Owner{ID: 2, FirstName: "Bruno", LastName: "Costa", Email: "bruno@example.com", State: "RJ", City: "Niteroi"})
}
