package presignup

import (
	"context"

	"github.com/Abraxas-365/cognito-linker/pkg/iam"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
)

// LookupQuery searches a pool for accounts.
type LookupQuery struct {
	PoolID kernel.UserPoolID
	Filter string
	Limit  int32
}

// LookupResult is the backend's answer to a LookupQuery.
type LookupResult struct {
	StatusCode int
	Accounts   []ExistingAccount
}

// ProviderUser identifies a user on one side of a link.
type ProviderUser struct {
	ProviderName   iam.ProviderName
	AttributeName  string
	AttributeValue string
}

// LinkRequest attaches Source as an additional sign-in to Destination.
type LinkRequest struct {
	PoolID      kernel.UserPoolID
	Source      ProviderUser
	Destination ProviderUser
}

// LinkResult is the backend's answer to a LinkRequest.
type LinkResult struct {
	StatusCode int
}

// AccountFinder reads accounts from the identity backend.
type AccountFinder interface {
	FindAccounts(ctx context.Context, query LookupQuery) (*LookupResult, error)
}

// IdentityLinker mutates identity links in the identity backend.
type IdentityLinker interface {
	LinkIdentity(ctx context.Context, req LinkRequest) (*LinkResult, error)
}

// AuditService records linking decisions.
type AuditService interface {
	LogAccountLinked(ctx context.Context, record LinkRecord)
	LogLinkRejected(ctx context.Context, poolID kernel.UserPoolID, userName string, err error)
}

// LinkNotifier tells an account owner that a sign-in method was linked.
type LinkNotifier interface {
	NotifyLinked(ctx context.Context, record LinkRecord) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyLinked(context.Context, LinkRecord) error { return nil }
