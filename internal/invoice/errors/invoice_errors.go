package invoiceerrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"invoice not found",
		http.StatusNotFound,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"client company does not exist",
		http.StatusBadRequest,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"invoice status changed since it was last read",
		http.StatusConflict,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeConflict,
		"only draft invoices can be edited",
		http.StatusConflict,
	)
	ErrNoItems = apperror.New(
		apperror.CodeInvalidInput,
		"an invoice needs at least one line item",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"due_date must not be before issued_at",
		http.StatusBadRequest,
	)
)
