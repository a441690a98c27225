package presignup

import (
	"net/http"

	"github.com/Abraxas-365/cognito-linker/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PRESIGNUP")

var (
	CodeMissingEmail        = ErrRegistry.Register("MISSING_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Email not found on incoming identity")
	CodeMalformedUsername   = ErrRegistry.Register("MALFORMED_USERNAME", errx.TypeValidation, http.StatusBadRequest, "Username does not carry a provider prefix")
	CodeBackendLookupFailed = ErrRegistry.Register("BACKEND_LOOKUP_FAILED", errx.TypeExternal, http.StatusBadGateway, "Unable to search for existing account to pair with")
	CodeNoLinkableAccount   = ErrRegistry.Register("NO_LINKABLE_ACCOUNT", errx.TypeNotFound, http.StatusNotFound, "No existing user with same email found")
	CodeLinkFailed          = ErrRegistry.Register("LINK_FAILED", errx.TypeExternal, http.StatusBadGateway, "Unable to link identity to existing account")
	CodeUnknownFailure      = ErrRegistry.Register("UNKNOWN_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Unknown error occurred")
)

func ErrMissingEmail(userName string) *errx.Error {
	return ErrRegistry.NewWithMessage(CodeMissingEmail, "email not found on incoming identity with username:"+userName).
		WithDetail("user_name", userName)
}

func ErrMalformedUsername(userName string) *errx.Error {
	return ErrRegistry.New(CodeMalformedUsername).WithDetail("user_name", userName)
}

func ErrBackendLookupFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeBackendLookupFailed, cause)
}

func ErrNoLinkableAccount() *errx.Error { return ErrRegistry.New(CodeNoLinkableAccount) }

func ErrLinkFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeLinkFailed, cause)
}

// ErrUnknownFailure never carries a cause; the original error only goes to the log.
func ErrUnknownFailure() *errx.Error { return ErrRegistry.New(CodeUnknownFailure) }
