package presignup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
)

// AccountResolver finds the existing account an external identity should be
// linked to. Auto-provisioning is assumed disabled: no match is an error.
type AccountResolver struct {
	finder  AccountFinder
	timeout time.Duration
}

// NewAccountResolver creates a resolver. A zero timeout inherits ctx's deadline.
func NewAccountResolver(finder AccountFinder, timeout time.Duration) *AccountResolver {
	return &AccountResolver{finder: finder, timeout: timeout}
}

// Resolve returns the first account the backend reports for email.
func (r *AccountResolver) Resolve(ctx context.Context, poolID kernel.UserPoolID, email string) (*ExistingAccount, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrRegistry.New(CodeMissingEmail)
	}

	callCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.finder.FindAccounts(callCtx, LookupQuery{
		PoolID: poolID,
		Filter: EmailFilter(email),
		Limit:  1,
	})
	if err != nil {
		logx.WithContext(ctx).WithError(err).WithField("pool_id", poolID).Error("Failed to search for users")
		return nil, ErrBackendLookupFailed(err)
	}

	if !isSuccess(res.StatusCode) {
		logx.WithContext(ctx).WithField("status", res.StatusCode).Errorf("Failed to search for users:%d", res.StatusCode)
		return nil, ErrBackendLookupFailed(nil).WithDetail("status", res.StatusCode)
	}

	if len(res.Accounts) == 0 {
		logx.WithContext(ctx).WithField("pool_id", poolID).Infof("No existing users found with email:%s", email)
		return nil, ErrNoLinkableAccount()
	}

	if len(res.Accounts) > 1 {
		logx.WithContext(ctx).WithField("matches", len(res.Accounts)).Warn("Email matched several accounts, linking to the first one returned")
	}

	account := res.Accounts[0]
	logx.WithContext(ctx).WithFields(logx.Fields{
		"pool_id":  poolID,
		"username": account.Username,
	}).Infof("Found existing user with email:%s", email)

	return &account, nil
}

// EmailFilter builds an exact-match email filter expression. Quotes and
// backslashes in the value are backslash-escaped.
func EmailFilter(email string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(email)
	return fmt.Sprintf(`email="%s"`, escaped)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
