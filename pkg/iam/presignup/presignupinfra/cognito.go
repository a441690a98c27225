package presignupinfra

import (
	"context"
	"errors"
	"net/http"

	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// CognitoAPI is the subset of the Cognito user pools client the directory calls.
type CognitoAPI interface {
	ListUsers(ctx context.Context, params *cip.ListUsersInput, optFns ...func(*cip.Options)) (*cip.ListUsersOutput, error)
	AdminLinkProviderForUser(ctx context.Context, params *cip.AdminLinkProviderForUserInput, optFns ...func(*cip.Options)) (*cip.AdminLinkProviderForUserOutput, error)
}

// CognitoDirectory implements presignup.AccountFinder and
// presignup.IdentityLinker against a Cognito user pool.
type CognitoDirectory struct {
	client CognitoAPI
}

// NewCognitoDirectory creates a directory backed by client.
func NewCognitoDirectory(client CognitoAPI) *CognitoDirectory {
	return &CognitoDirectory{client: client}
}

// FindAccounts runs ListUsers with the query's filter and limit.
func (d *CognitoDirectory) FindAccounts(ctx context.Context, q presignup.LookupQuery) (*presignup.LookupResult, error) {
	out, err := d.client.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(q.PoolID.String()),
		Filter:     aws.String(q.Filter),
		Limit:      aws.Int32(q.Limit),
	})
	if err != nil {
		return nil, cognitoErrors.NewWithCause(ErrListUsers, err).
			WithDetail("pool_id", q.PoolID).
			WithDetail("status", errorStatus(err))
	}

	accounts := make([]presignup.ExistingAccount, 0, len(out.Users))
	for _, u := range out.Users {
		accounts = append(accounts, toAccount(u))
	}

	return &presignup.LookupResult{
		StatusCode: resultStatus(out.ResultMetadata),
		Accounts:   accounts,
	}, nil
}

// LinkIdentity runs AdminLinkProviderForUser.
func (d *CognitoDirectory) LinkIdentity(ctx context.Context, req presignup.LinkRequest) (*presignup.LinkResult, error) {
	out, err := d.client.AdminLinkProviderForUser(ctx, &cip.AdminLinkProviderForUserInput{
		UserPoolId:      aws.String(req.PoolID.String()),
		SourceUser:      toProviderUser(req.Source),
		DestinationUser: toProviderUser(req.Destination),
	})
	if err != nil {
		return nil, cognitoErrors.NewWithCause(ErrLinkProvider, err).
			WithDetail("pool_id", req.PoolID).
			WithDetail("status", errorStatus(err))
	}

	return &presignup.LinkResult{StatusCode: resultStatus(out.ResultMetadata)}, nil
}

func toAccount(u types.UserType) presignup.ExistingAccount {
	attrs := make(map[string]string, len(u.Attributes))
	for _, a := range u.Attributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}

	return presignup.ExistingAccount{
		Username:   kernel.NewUsername(aws.ToString(u.Username)),
		Attributes: attrs,
		Enabled:    u.Enabled,
		Status:     string(u.UserStatus),
	}
}

// toProviderUser leaves AttributeName unset for destinations, which Cognito
// identifies by username alone.
func toProviderUser(p presignup.ProviderUser) *types.ProviderUserIdentifierType {
	out := &types.ProviderUserIdentifierType{
		ProviderName:           aws.String(p.ProviderName.String()),
		ProviderAttributeValue: aws.String(p.AttributeValue),
	}
	if p.AttributeName != "" {
		out.ProviderAttributeName = aws.String(p.AttributeName)
	}
	return out
}

// resultStatus reads the HTTP status of a completed call. Results that carry no
// raw response (stubs, cached middleware) are reported as 200.
func resultStatus(md middleware.Metadata) int {
	if resp, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response); ok && resp != nil {
		return resp.StatusCode
	}
	return http.StatusOK
}

// errorStatus returns the HTTP status behind an SDK error, or 0 when the call
// never got a response.
func errorStatus(err error) int {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}
	return 0
}
