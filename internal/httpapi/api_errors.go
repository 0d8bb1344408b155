package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	catalogapp "github.com/brewlabs/coffee-store-api/internal/domains/catalog/application"
	catalogports "github.com/brewlabs/coffee-store-api/internal/domains/catalog/ports"
	menusapp "github.com/brewlabs/coffee-store-api/internal/domains/menus/application"
	menusports "github.com/brewlabs/coffee-store-api/internal/domains/menus/ports"
	ordersapp "github.com/brewlabs/coffee-store-api/internal/domains/orders/application"
	ordersports "github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	usersapp "github.com/brewlabs/coffee-store-api/internal/domains/users/application"
	usersports "github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
	apierrors "github.com/brewlabs/coffee-store-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves plain status/error call sites while returning
// RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			fields := make(map[string]string, len(fieldErrors))
			for _, fieldError := range fieldErrors {
				fields[fieldError.Field()] = fieldError.Tag()
			}
			respondProblem(c, apierrors.NewValidationProblem(fields))
			return
		}
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrValidation):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrBusinessRule):
		respondProblem(c, apierrors.ErrBusinessRule.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondCatalogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, catalogports.ErrDuplicateName):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, catalogapp.ErrValidation), errors.Is(err, catalogports.ErrInvalidSortKey):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondMenuServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, menusports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, menusapp.ErrValidation):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondUserServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, usersports.ErrDuplicateEmail):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, usersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, usersapp.ErrValidation):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, usersapp.ErrInvalidCredentials), errors.Is(err, usersapp.ErrInvalidRefreshToken):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
