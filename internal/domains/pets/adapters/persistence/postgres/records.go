package postgres

import (
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// userRecord is the owner side of a listing. The password hash is mapped so the
// table round-trips, but it never leaves this package.
type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"column:email"`
	PhoneNumber  string    `gorm:"column:phone_number"`
	PasswordHash string    `gorm:"column:password_hash"`
	State        string    `gorm:"column:state"`
	City         string    `gorm:"column:city"`
	Street       string    `gorm:"column:street"`
	PostalCode   string    `gorm:"column:postal_code"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

type speciesRecord struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name"`
}

func (speciesRecord) TableName() string { return "species" }

type breedRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	Name      string `gorm:"column:name"`
	SpeciesID int64  `gorm:"column:species_id"`
}

func (breedRecord) TableName() string { return "breeds" }

type tagRecord struct {
	ID       int64  `gorm:"primaryKey;column:id"`
	Name     string `gorm:"column:name"`
	Category string `gorm:"column:category"`
}

func (tagRecord) TableName() string { return "tags" }

type petTagRecord struct {
	PetID int64 `gorm:"primaryKey;column:pet_id"`
	TagID int64 `gorm:"primaryKey;column:tag_id"`
}

func (petTagRecord) TableName() string { return "pet_tags" }

type petRecord struct {
	ID           int64          `gorm:"primaryKey;column:id"`
	Name         string         `gorm:"column:name"`
	Gender       string         `gorm:"column:gender"`
	Size         string         `gorm:"column:size"`
	AgeInMonths  int            `gorm:"column:age_in_months"`
	Description  string         `gorm:"column:description"`
	IsCastrated  bool           `gorm:"column:is_castrated"`
	IsVaccinated bool           `gorm:"column:is_vaccinated"`
	IsAdopted    bool           `gorm:"column:is_adopted"`
	ImageURLs    pq.StringArray `gorm:"column:image_urls;type:text[]"`
	OwnerID      int64          `gorm:"column:owner_id"`
	SpeciesID    int64          `gorm:"column:species_id"`
	BreedID      int64          `gorm:"column:breed_id"`
	CreatedAt    time.Time      `gorm:"column:created_at"`

	Owner   userRecord    `gorm:"foreignKey:OwnerID"`
	Species speciesRecord `gorm:"foreignKey:SpeciesID"`
	Breed   breedRecord   `gorm:"foreignKey:BreedID"`
	Tags    []tagRecord   `gorm:"many2many:pet_tags;joinForeignKey:PetID;joinReferences:TagID"`
}

func (petRecord) TableName() string { return "pets" }

func newPetRecord(p *domain.Pet) petRecord {
	rec := petRecord{
		ID:           p.ID,
		Name:         p.Name,
		Gender:       string(p.Gender),
		Size:         string(p.Size),
		AgeInMonths:  p.AgeInMonths,
		Description:  p.Description,
		IsCastrated:  p.IsCastrated,
		IsVaccinated: p.IsVaccinated,
		IsAdopted:    p.IsAdopted,
		ImageURLs:    pq.StringArray(append([]string{}, p.ImageURLs...)),
		OwnerID:      p.Owner.ID,
		SpeciesID:    p.Species.ID,
		BreedID:      p.Breed.ID,
		CreatedAt:    p.CreatedAt,
	}
	return rec
}

func petTagLinks(petID int64, tags []domain.Tag) []petTagRecord {
	links := make([]petTagRecord, 0, len(tags))
	for _, t := range tags {
		links = append(links, petTagRecord{PetID: petID, TagID: t.ID})
	}
	return links
}

func (r *petRecord) toDomain() *domain.Pet {
	if r == nil {
		return nil
	}
	pet := &domain.Pet{
		ID:           r.ID,
		Name:         r.Name,
		Gender:       domain.Gender(r.Gender),
		Size:         domain.Size(r.Size),
		AgeInMonths:  r.AgeInMonths,
		Description:  r.Description,
		IsCastrated:  r.IsCastrated,
		IsVaccinated: r.IsVaccinated,
		IsAdopted:    r.IsAdopted,
		CreatedAt:    r.CreatedAt.UTC(),
		Owner:        r.Owner.toDomain(),
		Species:      r.Species.toDomain(),
		Breed:        r.Breed.toDomain(),
		ImageURLs:    append([]string{}, r.ImageURLs...),
	}
	tags := make([]domain.Tag, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, t.toDomain())
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	pet.Tags = tags
	return pet
}

func (r userRecord) toDomain() domain.Owner {
	return domain.Owner{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		State:       r.State,
		City:        r.City,
		Street:      r.Street,
		PostalCode:  r.PostalCode,
	}
}

func (r speciesRecord) toDomain() domain.Species {
	return domain.Species{ID: r.ID, Name: r.Name}
}

func (r breedRecord) toDomain() domain.Breed {
	return domain.Breed{ID: r.ID, Name: r.Name, SpeciesID: r.SpeciesID}
}

func (r tagRecord) toDomain() domain.Tag {
	return domain.Tag{ID: r.ID, Name: r.Name, Category: domain.TagCategory(r.Category)}
}
