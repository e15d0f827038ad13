package charsprite

import (
	"errors"
	"net/http"
)

// Error kinds. Every request validation error wraps one of them.
var (
	ErrParameterMissing = errors.New("parameter missing")
	ErrParameterInvalid = errors.New("parameter invalid")
)

// Request validation errors, reported verbatim to the caller.
var (
	ErrBodyNotSpecified = paramError(ErrParameterMissing, "body type not specified")
	ErrHeadNotSpecified = paramError(ErrParameterMissing, "head type not specified")

	ErrBodyNotFound = paramError(ErrParameterInvalid, "body type not found")
	ErrHeadNotFound = paramError(ErrParameterInvalid, "head type not found")
	ErrHatNotFound  = paramError(ErrParameterInvalid, "hat type not found")
	ErrWingNotFound = paramError(ErrParameterInvalid, "wing type not found")
	ErrInvalidSex   = paramError(ErrParameterInvalid, "invalid sex, expected M or F")

	ErrInvalidFormat = paramError(ErrParameterInvalid, "unsupported image format")
	ErrInvalidScale  = paramError(ErrParameterInvalid, "invalid scale")
)

// Composition errors. The caller only sees a generic failure message.
var (
	ErrInvalidEncodingFormat = errors.New("invalid encoding format")
	ErrMergeFailed           = errors.New("merge failed")
)

// genericFailure is the message shown for every non-validation failure.
const genericFailure = "failed to generate image"

type requestError struct {
	kind error
	msg  string
}

func paramError(kind error, msg string) error {
	return &requestError{kind: kind, msg: msg}
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return e.kind }

// IsRequestError reports whether err was caused by invalid user input.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrParameterMissing) || errors.Is(err, ErrParameterInvalid)
}

// StatusCode maps a resolution or composition error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsRequestError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the single line text shown to the caller for err.
// Internal failures are reduced to a terse message; their detail
// belongs in the server log.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if IsRequestError(err) {
		return err.Error()
	}
	return genericFailure
}
