package application

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

var validate = newValidator()

// newValidator reports fields by their wire names (query, then json tag).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// validateStruct runs the struct tags and converts failures to a ValidationError.
func validateStruct(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := newValidationError()
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), describeFieldError(fe))
	}
	return verr
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}

type searchParams struct {
	Gender   string `query:"gender" validate:"omitempty,oneof=Male Female Unknown"`
	Size     string `query:"size" validate:"omitempty,oneof=Small Medium Large"`
	Age      string `query:"age" validate:"omitempty,oneof=Baby Young Adult"`
	Posted   string `query:"posted" validate:"omitempty,oneof=Today ThisWeek ThisMonth ThisYear"`
	Page     int    `query:"page" validate:"min=1"`
	PageSize int    `query:"pageSize" validate:"min=1,max=100"`
}

// NormalizeSearch validates raw search parameters and produces the canonical
// criteria. Enum values are matched exactly; posted windows resolve against now in UTC.
func NormalizeSearch(input pettypes.SearchPetsInput, now time.Time) (pettypes.SearchCriteria, error) {
	params := searchParams{
		Gender:   strings.TrimSpace(input.Gender),
		Size:     strings.TrimSpace(input.Size),
		Age:      strings.TrimSpace(input.Age),
		Posted:   strings.TrimSpace(input.Posted),
		Page:     intOrDefault(input.Page, pettypes.DefaultPage),
		PageSize: intOrDefault(input.PageSize, pettypes.DefaultPageSize),
	}
	if err := validateStruct(params); err != nil {
		return pettypes.SearchCriteria{}, err
	}

	criteria := pettypes.SearchCriteria{
		State:    strings.TrimSpace(input.State),
		City:     strings.TrimSpace(input.City),
		Species:  strings.TrimSpace(input.Species),
		Breed:    strings.TrimSpace(input.Breed),
		Colors:   splitColors(input.Colors),
		Pattern:  strings.TrimSpace(input.Pattern),
		Coat:     strings.TrimSpace(input.Coat),
		PageSpec: pettypes.PageRequest{Page: params.Page, PageSize: params.PageSize},
	}
	if params.Gender != "" {
		g := domain.Gender(params.Gender)
		criteria.Gender = &g
	}
	if params.Size != "" {
		s := domain.Size(params.Size)
		criteria.Size = &s
	}
	if params.Age != "" {
		bounds, _ := domain.AgeRange(params.Age).Bounds()
		criteria.Age = &bounds
	}
	if params.Posted != "" {
		window, _ := domain.PostedWindow(params.Posted).Range(now)
		criteria.Posted = &window
	}
	return criteria, nil
}

func intOrDefault(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// splitColors trims and de-duplicates a comma list, keeping first-seen order.
func splitColors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var colors []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		colors = append(colors, name)
	}
	return colors
}
