package profileerrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"profile not found",
		http.StatusNotFound,
	)
	ErrProfileAlreadyComplete = apperror.New(
		apperror.CodeConflict,
		"profile has already been completed",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of admin, hr, team, client",
		http.StatusBadRequest,
	)
	ErrClientCompanyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"client_company_id is required for the client role",
		http.StatusBadRequest,
	)
	ErrClientCompanyNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"client_company_id is only valid for the client role",
		http.StatusBadRequest,
	)
	ErrClientCompanyNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"client company does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)
