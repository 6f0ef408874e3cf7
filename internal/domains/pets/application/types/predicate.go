package types

import (
	"strings"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// PredicateKind enumerates the fixed set of search conditions.
type PredicateKind string

const (
	PredicateNotAdopted     PredicateKind = "not_adopted"
	PredicateOwnerState     PredicateKind = "owner_state"
	PredicateOwnerCity      PredicateKind = "owner_city"
	PredicateSpeciesName    PredicateKind = "species_name"
	PredicateGender         PredicateKind = "gender"
	PredicateSize           PredicateKind = "size"
	PredicateBreedContains  PredicateKind = "breed_contains"
	PredicateHasTag         PredicateKind = "has_tag"
	PredicateAgeBetween     PredicateKind = "age_between"
	PredicateCreatedBetween PredicateKind = "created_between"
)

// Predicate is one condition over a pet. Only the fields relevant to Kind are set.
type Predicate struct {
	Kind     PredicateKind
	Value    string
	Category domain.TagCategory
	Ages     domain.AgeBounds
	Created  domain.TimeRange
}

// Matches evaluates the predicate against a fully loaded pet.
func (p Predicate) Matches(pet *domain.Pet) bool {
	if pet == nil {
		return false
	}
	switch p.Kind {
	case PredicateNotAdopted:
		return !pet.IsAdopted
	case PredicateOwnerState:
		return pet.Owner.State == p.Value
	case PredicateOwnerCity:
		return pet.Owner.City == p.Value
	case PredicateSpeciesName:
		return pet.Species.Name == p.Value
	case PredicateGender:
		return string(pet.Gender) == p.Value
	case PredicateSize:
		return string(pet.Size) == p.Value
	case PredicateBreedContains:
		return strings.Contains(pet.Breed.Name, p.Value)
	case PredicateHasTag:
		return pet.HasTag(p.Value, p.Category)
	case PredicateAgeBetween:
		return pet.AgeInMonths >= p.Ages.MinMonths && pet.AgeInMonths <= p.Ages.MaxMonths
	case PredicateCreatedBetween:
		return p.Created.Contains(pet.CreatedAt)
	}
	return false
}

// SearchQuery is the conjunction of its predicates.
type SearchQuery struct {
	Predicates []Predicate
}

// Matches reports whether every predicate holds for the pet.
func (q SearchQuery) Matches(pet *domain.Pet) bool {
	for _, p := range q.Predicates {
		if !p.Matches(pet) {
			return false
		}
	}
	return true
}
