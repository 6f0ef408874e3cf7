package adoptionserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

var errNoRoute = apierrors.ErrNotFound.WithDetail("no such route")

var petResponder = apierrors.NewResponder(mapPetError)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	petResponder.Respond(c, problem)
}

// respondPetServiceError turns service errors into RFC 7807 responses.
// Anything not recognised becomes a 500 with a generic detail.
func respondPetServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	petResponder.RespondError(c, err)
}

func mapPetError(err error) (apierrors.ProblemDetail, bool) {
	var validation *petsapp.ValidationError
	switch {
	case errors.As(err, &validation):
		return apierrors.NewValidationProblem(validation.Fields), true
	case errors.Is(err, petsports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used with a different request"), true
	case errors.Is(err, petsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("pet not found"), true
	case errors.Is(err, petsapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
