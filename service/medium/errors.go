package medium

import (
	"errors"
	"fmt"

	sdk "github.com/medium/medium-sdk-go"
)

// Codes for failures that never got a Medium error payload.
const (
	TRANSPORT_ERROR_CODE = -1 // connection failure or unparseable body
	INVALID_REQUEST_CODE = -2 // status or license Medium does not accept
)

// Medium error codes with dedicated user feedback.
const (
	CODE_TOKEN_INVALID     = 6000
	CODE_TOKEN_REVOKED     = 6001
	CODE_TOKEN_BAD         = 6003
	CODE_API_NOT_AVAILABLE = 6027
)

type ErrorKind string

const (
	KIND_INVALID_TOKEN   ErrorKind = "invalid-token"
	KIND_API_DISABLED    ErrorKind = "api-disabled"
	KIND_SOMETHING_WRONG ErrorKind = "something-wrong"
)

// ApiError carries the first entry of Medium's "errors" array.
type ApiError struct {
	Message string
	Code    int
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("medium api error %d: %s", e.Code, e.Message)
}

func toApiError(err error) error {
	var sdkErr sdk.Error
	if errors.As(err, &sdkErr) {
		return &ApiError{Message: sdkErr.Message, Code: sdkErr.Code}
	}
	return &ApiError{Message: err.Error(), Code: TRANSPORT_ERROR_CODE}
}

// Classify maps any error to the feedback shown to the user.
// Errors that are not an ApiError count as transport failures.
func Classify(err error) ErrorKind {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return KIND_SOMETHING_WRONG
	}
	switch apiErr.Code {
	case CODE_TOKEN_INVALID, CODE_TOKEN_REVOKED, CODE_TOKEN_BAD:
		return KIND_INVALID_TOKEN
	case CODE_API_NOT_AVAILABLE:
		return KIND_API_DISABLED
	default:
		return KIND_SOMETHING_WRONG
	}
}

// Details returns the message and code to show for diagnostics.
func Details(err error) (string, int) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Message, apiErr.Code
	}
	return err.Error(), TRANSPORT_ERROR_CODE
}
