// Package errors renders API failures as RFC 7807 problem documents.
package errors

import (
	"net/http"
	"sort"
	"strings"
)

// ProblemDetail is the application/problem+json body.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with key set in a fresh extensions map.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

var (
	ErrBadRequest = ProblemDetail{Type: "/problems/bad-request", Title: "Bad Request", Status: http.StatusBadRequest}
	ErrValidation = ProblemDetail{Type: "/problems/validation-error", Title: "Validation Error", Status: http.StatusBadRequest}
	ErrNotFound   = ProblemDetail{Type: "/problems/not-found", Title: "Resource Not Found", Status: http.StatusNotFound}
	ErrConflict   = ProblemDetail{Type: "/problems/conflict", Title: "Conflict", Status: http.StatusConflict}
	ErrInternal   = ProblemDetail{Type: "/problems/internal-error", Title: "Internal Server Error", Status: http.StatusInternalServerError}
)

// NewValidationProblem lists the offending parameters in the detail and
// keeps the per-field messages under extensions.fields.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	return ErrValidation.
		WithDetail("invalid parameters: "+strings.Join(names, ", ")).
		WithExtension("fields", fieldErrors)
}
