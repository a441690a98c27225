package presignup

import (
	"context"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/iam"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
)

// LinkExecutor attaches an external identity to an existing account.
type LinkExecutor struct {
	linker           IdentityLinker
	subjectAttribute string
	nativeProvider   iam.ProviderName
	aliases          iam.ProviderAliases
	timeout          time.Duration
	now              func() time.Time
}

// NewLinkExecutor creates a link executor from the pre sign-up config.
func NewLinkExecutor(linker IdentityLinker, cfg *config.PreSignupConfig) *LinkExecutor {
	return &LinkExecutor{
		linker:           linker,
		subjectAttribute: cfg.SubjectAttribute,
		nativeProvider:   iam.ProviderName(cfg.NativeProvider),
		aliases:          iam.NewProviderAliases(cfg.ProviderAliases),
		timeout:          cfg.BackendTimeout,
		now:              time.Now,
	}
}

// Link issues the link call. Any non-success answer is a LinkFailed error.
func (x *LinkExecutor) Link(ctx context.Context, poolID kernel.UserPoolID, identity ExternalIdentity, account *ExistingAccount) (*LinkRecord, error) {
	provider := x.aliases.Resolve(identity.Provider)

	req := LinkRequest{
		PoolID: poolID,
		Source: ProviderUser{
			ProviderName:   provider,
			AttributeName:  x.subjectAttribute,
			AttributeValue: identity.ExternalID,
		},
		Destination: ProviderUser{
			ProviderName:   x.nativeProvider,
			AttributeValue: account.Username.String(),
		},
	}

	callCtx, cancel := withTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.linker.LinkIdentity(callCtx, req)
	if err != nil {
		logx.WithContext(ctx).WithError(err).WithField("username", account.Username).Error("Failed to link users")
		return nil, ErrLinkFailed(err).WithDetail("provider", provider)
	}

	if !isSuccess(res.StatusCode) {
		logx.WithContext(ctx).WithField("status", res.StatusCode).Errorf("Failed to link users:%d", res.StatusCode)
		return nil, ErrLinkFailed(nil).
			WithDetail("provider", provider).
			WithDetail("status", res.StatusCode)
	}

	logx.WithContext(ctx).WithFields(logx.Fields{
		"provider": provider,
		"username": account.Username,
	}).Info("Linked users")

	return &LinkRecord{
		PoolID:   poolID,
		Identity: identity,
		Provider: provider,
		Account:  *account,
		LinkedAt: x.now(),
	}, nil
}
