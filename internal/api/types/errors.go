package types

import (
	"net/http"

	appErr "github.com/devsaad05858/Knowledge-Graph-Backend/pkg/errors"
)

// StatusOf maps an error onto the HTTP status the API reports for it.
func StatusOf(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromAppError builds the error body for err. Server-side failures carry
// fallback instead of the internal message.
func FromAppError(err error, fallback string) ErrorResponse {
	code := appErr.CodeOf(err)
	if StatusOf(err) >= http.StatusInternalServerError {
		if code == appErr.CodeUnknown {
			code = appErr.CodeInternal
		}
		return ErrorResponse{Error: fallback, Code: string(code)}
	}
	return ErrorResponse{Error: appErr.MessageOf(err), Code: string(code)}
}
