package presignupinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/errx"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
)

// LogxAuditService implements presignup.AuditService using structured logx logging.
type LogxAuditService struct {
	logger *logx.Logger
}

// NewLogxAuditService writes audit entries to logger, or to the default logger when nil.
func NewLogxAuditService(logger *logx.Logger) *LogxAuditService {
	if logger == nil {
		logger = logx.GetDefaultLogger()
	}
	return &LogxAuditService{logger: logger}
}

func (s *LogxAuditService) LogAccountLinked(ctx context.Context, record presignup.LinkRecord) {
	s.logger.WithFields(logx.Fields{
		"audit_event": "account_linked",
		"pool_id":     record.PoolID,
		"username":    record.Account.Username,
		"provider":    record.Provider,
		"external_id": record.Identity.ExternalID,
		"timestamp":   record.LinkedAt,
	}).WithContext(ctx).Info("Audit: account linked")
}

func (s *LogxAuditService) LogLinkRejected(ctx context.Context, poolID kernel.UserPoolID, userName string, err error) {
	s.logger.WithFields(logx.Fields{
		"audit_event": "link_rejected",
		"pool_id":     poolID,
		"user_name":   userName,
		"code":        errx.CodeOf(err),
		"timestamp":   time.Now(),
	}).WithContext(ctx).Info("Audit: link rejected")
}
