package presignupinfra

import (
	"context"

	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx"
)

const identityLinkedTemplate = "identity_linked"

const identityLinkedHTML = `<p>Hello,</p>
<p>A {{.Provider}} sign-in was added to your account on {{.LinkedAt}}.</p>
<p>You can now sign in with either method. If this was not you, contact support and change your password.</p>`

const identityLinkedText = "A new sign-in method was added to your account. If this was not you, contact support."

// NotifxLinkNotifier emails the account owner after a link.
type NotifxLinkNotifier struct {
	client *notifx.Client
	from   string
}

// NewNotifxLinkNotifier registers the link template on client.
func NewNotifxLinkNotifier(client *notifx.Client, from string) (*NotifxLinkNotifier, error) {
	if err := client.RegisterTemplate(identityLinkedTemplate, identityLinkedHTML); err != nil {
		return nil, err
	}
	return &NotifxLinkNotifier{client: client, from: from}, nil
}

// NotifyLinked sends the notice. Accounts without an email are skipped.
func (n *NotifxLinkNotifier) NotifyLinked(ctx context.Context, record presignup.LinkRecord) error {
	to := record.Account.Email()
	if to == "" {
		logx.WithContext(ctx).WithField("username", record.Account.Username).Debug("Account has no email, skipping link notice")
		return nil
	}

	data := map[string]string{
		"Provider": record.Provider.String(),
		"LinkedAt": record.LinkedAt.UTC().Format("2 Jan 2006 15:04 MST"),
	}

	return n.client.SendTemplatedEmail(ctx, identityLinkedTemplate, data,
		notifx.EmailMessage{
			From:     n.from,
			To:       []string{to},
			Subject:  "A new sign-in method was added to your account",
			TextBody: identityLinkedText,
		},
		notifx.WithTags(map[string]string{
			"event":    identityLinkedTemplate,
			"provider": record.Provider.String(),
		}),
	)
}
