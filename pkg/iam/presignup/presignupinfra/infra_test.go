package presignupinfra_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup/presignupinfra"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx"
)

func TestMain(m *testing.M) {
	logx.SetLevel(logx.LevelOff)
	os.Exit(m.Run())
}

func testConfig() *config.PreSignupConfig {
	return &config.PreSignupConfig{
		TriggerSource:    "PreSignUp_ExternalProvider",
		SubjectAttribute: "Cognito_Subject",
		NativeProvider:   "Cognito",
	}
}

func linkRecord(email string) presignup.LinkRecord {
	attrs := map[string]string{}
	if email != "" {
		attrs["email"] = email
	}
	return presignup.LinkRecord{
		PoolID:   "us-east-1_pool",
		Identity: presignup.ExternalIdentity{Provider: "google", ExternalID: "10984723"},
		Provider: "Google",
		Account:  presignup.ExistingAccount{Username: "8a1f-jane", Attributes: attrs},
		LinkedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestLogxAuditService(t *testing.T) {
	var buf bytes.Buffer
	cfg := logx.DefaultConfig()
	cfg.Format = logx.FormatJSON
	cfg.Output = &buf
	audit := presignupinfra.NewLogxAuditService(logx.NewLogger(cfg))

	ctx := kernel.WithRequestID(context.Background(), "req-9")
	audit.LogAccountLinked(ctx, linkRecord("jane@example.com"))
	audit.LogLinkRejected(ctx, "us-east-1_pool", "google_1", presignup.ErrNoLinkableAccount())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 audit lines, got %d: %q", len(lines), buf.String())
	}

	var linked, rejected map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &linked); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &rejected); err != nil {
		t.Fatal(err)
	}

	if linked["audit_event"] != "account_linked" || linked["provider"] != "Google" || linked["request_id"] != "req-9" {
		t.Errorf("unexpected linked entry: %v", linked)
	}
	if rejected["audit_event"] != "link_rejected" || rejected["code"] != "PRESIGNUP_NO_LINKABLE_ACCOUNT" {
		t.Errorf("unexpected rejected entry: %v", rejected)
	}
}

type recordingSender struct {
	msgs []notifx.EmailMessage
	err  error
}

func (s *recordingSender) SendEmail(_ context.Context, msg notifx.EmailMessage, _ ...notifx.Option) error {
	s.msgs = append(s.msgs, msg)
	return s.err
}

func TestNotifxLinkNotifier(t *testing.T) {
	sender := &recordingSender{}
	n, err := presignupinfra.NewNotifxLinkNotifier(notifx.NewClient(sender), "security@example.com")
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	if err := n.NotifyLinked(context.Background(), linkRecord("jane@example.com")); err != nil {
		t.Fatalf("notify: %v", err)
	}

	msg := sender.msgs[0]
	if msg.To[0] != "jane@example.com" || msg.From != "security@example.com" {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if !strings.Contains(msg.HTMLBody, "A Google sign-in was added to your account on 1 Mar 2026 09:30 UTC") {
		t.Fatalf("unexpected body: %s", msg.HTMLBody)
	}
}

func TestNotifxLinkNotifier_SkipsAccountsWithoutEmail(t *testing.T) {
	sender := &recordingSender{err: errors.New("should not be called")}
	n, _ := presignupinfra.NewNotifxLinkNotifier(notifx.NewClient(sender), "security@example.com")

	if err := n.NotifyLinked(context.Background(), linkRecord("")); err != nil {
		t.Fatalf("expected skip, got %v", err)
	}
	if len(sender.msgs) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.msgs))
	}
}
