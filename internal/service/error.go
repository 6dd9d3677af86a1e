package service

import "simplebanking/internal/constants"

func NewServiceError(code string, cause error) error {
	return Error{
		Code:    code,
		Message: constants.GetErrorMessage(code),
		Cause:   cause,
	}
}

// NewServiceErrorWithMessage is for codes whose client message depends on the
// rejected request, such as the insufficient-funds message.
func NewServiceErrorWithMessage(code string, message string, cause error) error {
	return Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
