package application

import (
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

type predicateRule func(c pettypes.SearchCriteria) []pettypes.Predicate

var predicateRules = []predicateRule{
	func(pettypes.SearchCriteria) []pettypes.Predicate {
		return []pettypes.Predicate{{Kind: pettypes.PredicateNotAdopted}}
	},
	valueRule(pettypes.PredicateOwnerState, func(c pettypes.SearchCriteria) string { return c.State }),
	valueRule(pettypes.PredicateOwnerCity, func(c pettypes.SearchCriteria) string { return c.City }),
	valueRule(pettypes.PredicateSpeciesName, func(c pettypes.SearchCriteria) string { return c.Species }),
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		if c.Gender == nil {
			return nil
		}
		return []pettypes.Predicate{{Kind: pettypes.PredicateGender, Value: string(*c.Gender)}}
	},
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		if c.Size == nil {
			return nil
		}
		return []pettypes.Predicate{{Kind: pettypes.PredicateSize, Value: string(*c.Size)}}
	},
	valueRule(pettypes.PredicateBreedContains, func(c pettypes.SearchCriteria) string { return c.Breed }),
	// One existence check per color: a pet must carry every requested color.
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		preds := make([]pettypes.Predicate, 0, len(c.Colors))
		for _, color := range c.Colors {
			preds = append(preds, hasTag(color, domain.TagCategoryColor))
		}
		return preds
	},
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		if c.Pattern == "" {
			return nil
		}
		return []pettypes.Predicate{hasTag(c.Pattern, domain.TagCategoryPattern)}
	},
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		if c.Coat == "" {
			return nil
		}
		return []pettypes.Predicate{hasTag(c.Coat, domain.TagCategoryCoat)}
	},
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		if c.Age == nil {
			return nil
		}
		return []pettypes.Predicate{{Kind: pettypes.PredicateAgeBetween, Ages: *c.Age}}
	},
	func(c pettypes.SearchCriteria) []pettypes.Predicate {
		if c.Posted == nil {
			return nil
		}
		return []pettypes.Predicate{{Kind: pettypes.PredicateCreatedBetween, Created: *c.Posted}}
	},
}

// ComposePredicates folds the canonical criteria into a conjunction. The
// adopted exclusion is always the first predicate.
func ComposePredicates(criteria pettypes.SearchCriteria) pettypes.SearchQuery {
	var query pettypes.SearchQuery
	for _, rule := range predicateRules {
		query.Predicates = append(query.Predicates, rule(criteria)...)
	}
	return query
}

func valueRule(kind pettypes.PredicateKind, pick func(pettypes.SearchCriteria) string) predicateRule {
	return func(c pettypes.SearchCriteria) []pettypes.Predicate {
		v := pick(c)
		if v == "" {
			return nil
		}
		return []pettypes.Predicate{{Kind: kind, Value: v}}
	}
}

func hasTag(name string, category domain.TagCategory) pettypes.Predicate {
	return pettypes.Predicate{Kind: pettypes.PredicateHasTag, Value: name, Category: category}
}
