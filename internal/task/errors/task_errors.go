package taskerrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrProjectNotVisible = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrEditForbidden = apperror.New(
		apperror.CodeForbidden,
		"you may not edit this task",
		http.StatusForbidden,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"task status changed since it was last read",
		http.StatusConflict,
	)
	ErrAssignForbidden = apperror.New(
		apperror.CodeForbidden,
		"only admin or hr may assign tasks",
		http.StatusForbidden,
	)
	ErrCommentNotFound = apperror.New(
		apperror.CodeNotFound,
		"comment not found",
		http.StatusNotFound,
	)
	ErrCommentNotOwned = apperror.New(
		apperror.CodeForbidden,
		"only the author may delete a comment",
		http.StatusForbidden,
	)
)
