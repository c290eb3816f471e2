package leaveerrors

import (
	"net/http"

	"go-worksuite/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"a leave request already exists in an overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeConflict,
		"leave request has already been reviewed",
		http.StatusConflict,
	)
	ErrReviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"only admin or hr may review leave requests",
		http.StatusForbidden,
	)
	ErrCreateForOtherForbidden = apperror.New(
		apperror.CodeForbidden,
		"only admin or hr may file leave for another user",
		http.StatusForbidden,
	)
)
