package projecterrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrNotProjectMember = apperror.New(
		apperror.CodeForbidden,
		"only project members may edit this project",
		http.StatusForbidden,
	)
	ErrMembershipForbidden = apperror.New(
		apperror.CodeForbidden,
		"only admin or hr may manage project members",
		http.StatusForbidden,
	)
	ErrAlreadyMember = apperror.New(
		apperror.CodeConflict,
		"user is already a member of this project",
		http.StatusConflict,
	)
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"user is not a member of this project",
		http.StatusNotFound,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"project status changed since it was last read",
		http.StatusConflict,
	)
	ErrClientCompanyNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"client company does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
		http.StatusBadRequest,
	)
)
