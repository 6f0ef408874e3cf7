package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

// Every tag predicate is its own existence check, so requesting several
// colors requires the pet to carry all of them.
const (
	ownerColumnClause = "EXISTS (SELECT 1 FROM users u WHERE u.id = pets.owner_id AND u.%s = ?)"
	speciesClause     = "EXISTS (SELECT 1 FROM species s WHERE s.id = pets.species_id AND s.name = ?)"
	breedLikeClause   = "EXISTS (SELECT 1 FROM breeds b WHERE b.id = pets.breed_id AND b.name LIKE ?)"
	hasTagClause      = "EXISTS (SELECT 1 FROM pet_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.pet_id = pets.id AND t.name = ? AND t.category = ?)"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// searchScope translates the predicate conjunction into WHERE clauses on pets.
func searchScope(query pettypes.SearchQuery) (func(*gorm.DB) *gorm.DB, error) {
	conds := make([]func(*gorm.DB) *gorm.DB, 0, len(query.Predicates))
	for _, p := range query.Predicates {
		cond, err := predicateCondition(p)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range conds {
			db = cond(db)
		}
		return db
	}, nil
}

func predicateCondition(p pettypes.Predicate) (func(*gorm.DB) *gorm.DB, error) {
	where := func(sql string, args ...any) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB { return db.Where(sql, args...) }
	}
	switch p.Kind {
	case pettypes.PredicateNotAdopted:
		return where("pets.is_adopted = ?", false), nil
	case pettypes.PredicateOwnerState:
		return where(fmt.Sprintf(ownerColumnClause, "state"), p.Value), nil
	case pettypes.PredicateOwnerCity:
		return where(fmt.Sprintf(ownerColumnClause, "city"), p.Value), nil
	case pettypes.PredicateSpeciesName:
		return where(speciesClause, p.Value), nil
	case pettypes.PredicateGender:
		return where("pets.gender = ?", p.Value), nil
	case pettypes.PredicateSize:
		return where("pets.size = ?", p.Value), nil
	case pettypes.PredicateBreedContains:
		return where(breedLikeClause, "%"+escapeLike(p.Value)+"%"), nil
	case pettypes.PredicateHasTag:
		return where(hasTagClause, p.Value, string(p.Category)), nil
	case pettypes.PredicateAgeBetween:
		return where("pets.age_in_months BETWEEN ? AND ?", p.Ages.MinMonths, p.Ages.MaxMonths), nil
	case pettypes.PredicateCreatedBetween:
		if p.Created.Until.IsZero() {
			return where("pets.created_at >= ?", p.Created.From), nil
		}
		return where("pets.created_at >= ? AND pets.created_at < ?", p.Created.From, p.Created.Until), nil
	}
	return nil, fmt.Errorf("unsupported search predicate %q", p.Kind)
}
