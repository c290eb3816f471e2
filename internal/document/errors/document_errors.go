package documenterrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrProjectNotVisible = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrDeleteForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the uploader or admin/hr may delete a document",
		http.StatusForbidden,
	)
)
