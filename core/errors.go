package core

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

type ErrorInvalidImage struct {
}

func (e ErrorInvalidImage) Error() string {
	return "please choose an image file"
}

func NewErrorInvalidImage() ErrorInvalidImage {
	return ErrorInvalidImage{}
}

type ErrorImageTooLarge struct {
}

func (e ErrorImageTooLarge) Error() string {
	return "image must not exceed 5MB"
}

func NewErrorImageTooLarge() ErrorImageTooLarge {
	return ErrorImageTooLarge{}
}

type ErrorInvalidInput struct {
	Reason string
}

func (e ErrorInvalidInput) Error() string {
	if e.Reason == "" {
		return "Invalid Input"
	}
	return "Invalid Input: " + e.Reason
}

func NewErrorInvalidInput(reason string) ErrorInvalidInput {
	return ErrorInvalidInput{Reason: reason}
}

type ErrorInvalidCredentials struct {
}

func (e ErrorInvalidCredentials) Error() string {
	return "invalid email or password"
}

func NewErrorInvalidCredentials() ErrorInvalidCredentials {
	return ErrorInvalidCredentials{}
}

// ErrorConfirmationRequired is returned when an account exists but has not confirmed its email yet
type ErrorConfirmationRequired struct {
}

func (e ErrorConfirmationRequired) Error() string {
	return "Sign-up succeeded; check your email to confirm before signing in."
}

func NewErrorConfirmationRequired() ErrorConfirmationRequired {
	return ErrorConfirmationRequired{}
}

// ErrorSuperseded is returned when a response arrives after a newer request for the same record
type ErrorSuperseded struct {
}

func (e ErrorSuperseded) Error() string {
	return "superseded by a newer request"
}

func NewErrorSuperseded() ErrorSuperseded {
	return ErrorSuperseded{}
}
