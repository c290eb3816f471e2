package employeeerrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee record not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee record with this email already exists",
		http.StatusConflict,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"department does not exist",
		http.StatusBadRequest,
	)
)
