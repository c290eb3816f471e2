package clienterrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"client company not found",
		http.StatusNotFound,
	)
	ErrCompanyNameTaken = apperror.New(
		apperror.CodeConflict,
		"a client company with this name already exists",
		http.StatusConflict,
	)
)
