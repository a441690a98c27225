package iamcontainer

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/errx"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup/presignupinfra"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx/notifxses"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// ---------------------------------------------------------------------------
// Deps: explicit external dependencies this bounded context requires.
// ---------------------------------------------------------------------------

type Deps struct {
	Cfg *config.Config

	// Cognito is the user pool client. When nil, New builds one from the
	// default AWS credential chain.
	Cognito presignupinfra.CognitoAPI

	// EmailSender overrides the notifx provider picked from config.
	EmailSender notifx.EmailSender
}

// ---------------------------------------------------------------------------
// Container: the public surface of the IAM module.
// ---------------------------------------------------------------------------

type Container struct {
	PreSignupHandler *presignup.Handler
}

// New constructs the IAM dependency graph: infra, then adapters, then handler.
func New(ctx context.Context, deps Deps) (*Container, error) {
	logx.Info("🔧 Initializing IAM container...")

	cfg := deps.Cfg

	// ── AWS clients ──────────────────────────────────────────────────────

	cognito := deps.Cognito
	needsAWS := cognito == nil || (cfg.PreSignup.NotifyOnLink && deps.EmailSender == nil && cfg.Notifx.Provider == "ses")

	var awsCfg aws.Config
	if needsAWS {
		loaded, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, errx.Wrap(err, "load AWS config", errx.TypeExternal)
		}
		awsCfg = loaded
	}

	if cognito == nil {
		cognito = cognitoidentityprovider.NewFromConfig(awsCfg, func(o *cognitoidentityprovider.Options) {
			if cfg.AWS.CognitoEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.CognitoEndpoint)
			}
		})
		logx.Infof("  ✅ Cognito client configured (region: %s)", cfg.AWS.Region)
	}

	directory := presignupinfra.NewCognitoDirectory(cognito)

	// ── Audit + notification ─────────────────────────────────────────────

	auditService := presignupinfra.NewLogxAuditService(nil)

	var notifier presignup.LinkNotifier = presignup.NopNotifier{}
	if cfg.PreSignup.NotifyOnLink {
		sender, err := emailSender(deps.EmailSender, cfg.Notifx, awsCfg)
		if err != nil {
			return nil, err
		}

		from := cfg.Notifx.FromAddress
		if cfg.Notifx.FromName != "" {
			from = fmt.Sprintf("%s <%s>", cfg.Notifx.FromName, cfg.Notifx.FromAddress)
		}

		linkNotifier, err := presignupinfra.NewNotifxLinkNotifier(notifx.NewClient(sender), from)
		if err != nil {
			return nil, err
		}
		notifier = linkNotifier
		logx.Infof("  ✅ Link notifications enabled (provider: %s)", cfg.Notifx.Provider)
	}

	// ── Handler ──────────────────────────────────────────────────────────

	c := &Container{
		PreSignupHandler: presignup.NewHandler(directory, directory, auditService, notifier, &cfg.PreSignup),
	}

	logx.Info("✅ IAM container initialized")
	return c, nil
}

func emailSender(override notifx.EmailSender, cfg config.NotifxConfig, awsCfg aws.Config) (notifx.EmailSender, error) {
	if override != nil {
		return override, nil
	}

	switch cfg.Provider {
	case "ses":
		sesCfg := awsCfg.Copy()
		sesCfg.Region = cfg.AWSRegion
		return notifxses.NewSESProvider(ses.NewFromConfig(sesCfg), cfg.FromAddress), nil
	case "console":
		return notifxconsole.NewConsoleProvider(), nil
	default:
		return nil, fmt.Errorf("unknown NOTIFX_PROVIDER %q (use 'console' or 'ses')", cfg.Provider)
	}
}
