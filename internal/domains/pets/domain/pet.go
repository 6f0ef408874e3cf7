package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Gender describes the sex recorded on a listing.
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// Size is the coarse body size of a pet.
type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// TagCategory groups tags into the attributes a listing can be filtered on.
type TagCategory string

const (
	TagCategoryColor   TagCategory = "Color"
	TagCategoryPattern TagCategory = "Pattern"
	TagCategoryCoat    TagCategory = "Coat"
)

var (
	ErrInvalidGender      = errors.New("gender must be one of Male, Female, Unknown")
	ErrInvalidSize        = errors.New("size must be one of Small, Medium, Large")
	ErrInvalidTagCategory = errors.New("tag category must be one of Color, Pattern, Coat")
	ErrNegativeAge        = errors.New("age in months must be greater or equal to zero")
	ErrMissingOwner       = errors.New("owner is required")
	ErrMissingSpecies     = errors.New("species is required")
	ErrMissingBreed       = errors.New("breed is required")
	ErrBreedSpecies       = errors.New("breed does not belong to the pet species")
	ErrDuplicateTag       = errors.New("tag attached more than once")
	ErrEmptyImageURL      = errors.New("image url must not be blank")
)

// ParseGender maps the exact wire value to a Gender.
func ParseGender(value string) (Gender, error) {
	switch Gender(value) {
	case GenderMale, GenderFemale, GenderUnknown:
		return Gender(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, value)
}

// ParseSize maps the exact wire value to a Size.
func ParseSize(value string) (Size, error) {
	switch Size(value) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSize, value)
}

// ParseTagCategory maps the exact wire value to a TagCategory.
func ParseTagCategory(value string) (TagCategory, error) {
	switch TagCategory(value) {
	case TagCategoryColor, TagCategoryPattern, TagCategoryCoat:
		return TagCategory(value), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTagCategory, value)
}

// Species is a kind of animal, e.g. Dog.
type Species struct {
	ID   int64
	Name string
}

// Breed belongs to exactly one species.
type Breed struct {
	ID        int64
	Name      string
	SpeciesID int64
}

// Tag is a named color, pattern or coat attribute.
type Tag struct {
	ID       int64
	Name     string
	Category TagCategory
}

// Owner is the read-only view of the user who listed a pet.
// Credentials never reach this type.
type Owner struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	State       string
	City        string
	Street      string
	PostalCode  string
}

// Pet is an adoption listing.
type Pet struct {
	ID           int64
	Name         string
	Gender       Gender
	Size         Size
	AgeInMonths  int
	Description  string
	IsCastrated  bool
	IsVaccinated bool
	IsAdopted    bool
	CreatedAt    time.Time
	Owner        Owner
	Species      Species
	Breed        Breed
	ImageURLs    []string
	Tags         []Tag
}

// NewPet validates the listing invariants that do not need the catalog.
func NewPet(owner Owner, species Species, breed Breed, gender Gender, size Size, ageInMonths int) (*Pet, error) {
	if owner.ID <= 0 {
		return nil, ErrMissingOwner
	}
	if species.ID <= 0 {
		return nil, ErrMissingSpecies
	}
	if breed.ID <= 0 {
		return nil, ErrMissingBreed
	}
	if breed.SpeciesID != 0 && breed.SpeciesID != species.ID {
		return nil, ErrBreedSpecies
	}
	if _, err := ParseGender(string(gender)); err != nil {
		return nil, err
	}
	if _, err := ParseSize(string(size)); err != nil {
		return nil, err
	}
	if ageInMonths < 0 {
		return nil, ErrNegativeAge
	}
	return &Pet{
		Owner:       owner,
		Species:     species,
		Breed:       breed,
		Gender:      gender,
		Size:        size,
		AgeInMonths: ageInMonths,
	}, nil
}

// Describe sets the optional display name and free text.
func (p *Pet) Describe(name, description string) {
	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
}

// SetHealth records castration and vaccination flags.
func (p *Pet) SetHealth(castrated, vaccinated bool) {
	p.IsCastrated = castrated
	p.IsVaccinated = vaccinated
}

// ReplaceImages stores the image URLs in the given order.
func (p *Pet) ReplaceImages(urls []string) error {
	images := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			return ErrEmptyImageURL
		}
		images = append(images, u)
	}
	p.ImageURLs = images
	return nil
}

// AttachTags replaces the tag set; a tag may appear only once.
func (p *Pet) AttachTags(tags []Tag) error {
	seen := make(map[int64]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, err := ParseTagCategory(string(t.Category)); err != nil {
			return err
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateTag, t.ID)
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	p.Tags = out
	return nil
}

// MarkAdopted removes the pet from the searchable universe.
func (p *Pet) MarkAdopted() {
	p.IsAdopted = true
}

// HasTag reports whether the pet carries a tag with the given name and category.
func (p *Pet) HasTag(name string, category TagCategory) bool {
	for _, t := range p.Tags {
		if t.Name == name && t.Category == category {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand out of a repository.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	cp := *p
	cp.ImageURLs = append([]string(nil), p.ImageURLs...)
	cp.Tags = append([]Tag(nil), p.Tags...)
	return &cp
}
