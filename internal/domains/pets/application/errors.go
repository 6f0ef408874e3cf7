package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid pet input")

// ValidationError reports field-level problems with a request.
// It unwraps to ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error lists the offending fields in a stable order.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidGender) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrInvalidTagCategory) ||
		errors.Is(err, domain.ErrNegativeAge) ||
		errors.Is(err, domain.ErrMissingOwner) ||
		errors.Is(err, domain.ErrMissingSpecies) ||
		errors.Is(err, domain.ErrMissingBreed) ||
		errors.Is(err, domain.ErrBreedSpecies) ||
		errors.Is(err, domain.ErrDuplicateTag) ||
		errors.Is(err, domain.ErrEmptyImageURL) ||
		errors.Is(err, ports.ErrUnknownReference) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
