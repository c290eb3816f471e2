package apperror

// AppError is the error type handlers translate into HTTP responses.
// Code is a stable machine-readable identifier, Message the text shown
// to the caller. Err optionally carries the underlying cause; it never
// leaves the server.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds an AppError with no wrapped cause. Module error catalogs
// declare their sentinels through it.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches a code, message and status to an underlying error so
// errors.Is and errors.As still reach the cause. A nil err yields nil,
// letting call sites wrap unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}
