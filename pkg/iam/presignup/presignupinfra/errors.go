package presignupinfra

import (
	"net/http"

	"github.com/Abraxas-365/cognito-linker/pkg/errx"
)

var cognitoErrors = errx.NewRegistry("COGNITO")

var (
	ErrListUsers    = cognitoErrors.Register("LIST_USERS", errx.TypeExternal, http.StatusBadGateway, "Cognito ListUsers failed")
	ErrLinkProvider = cognitoErrors.Register("LINK_PROVIDER", errx.TypeExternal, http.StatusBadGateway, "Cognito AdminLinkProviderForUser failed")
)
