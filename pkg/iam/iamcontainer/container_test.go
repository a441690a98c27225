package iamcontainer_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/iamcontainer"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx"
	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

func TestMain(m *testing.M) {
	logx.SetLevel(logx.LevelOff)
	os.Exit(m.Run())
}

type stubCognito struct{ linked int }

func (s *stubCognito) ListUsers(context.Context, *cip.ListUsersInput, ...func(*cip.Options)) (*cip.ListUsersOutput, error) {
	return &cip.ListUsersOutput{Users: []types.UserType{{
		Username:   aws.String("8a1f-jane"),
		Attributes: []types.AttributeType{{Name: aws.String("email"), Value: aws.String("jane@example.com")}},
	}}}, nil
}

func (s *stubCognito) AdminLinkProviderForUser(context.Context, *cip.AdminLinkProviderForUserInput, ...func(*cip.Options)) (*cip.AdminLinkProviderForUserOutput, error) {
	s.linked++
	return &cip.AdminLinkProviderForUserOutput{}, nil
}

type captureSender struct{ to []string }

func (c *captureSender) SendEmail(_ context.Context, msg notifx.EmailMessage, _ ...notifx.Option) error {
	c.to = append(c.to, msg.To...)
	return nil
}

func TestNew_WiresHandler(t *testing.T) {
	cfg := config.Load()
	cfg.PreSignup.NotifyOnLink = true
	cognito := &stubCognito{}
	sender := &captureSender{}

	c, err := iamcontainer.New(context.Background(), iamcontainer.Deps{Cfg: cfg, Cognito: cognito, EmailSender: sender})
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	raw := []byte(`{"triggerSource":"PreSignUp_ExternalProvider","userPoolId":"p","userName":"google_1","request":{"userAttributes":{"email":"jane@example.com"}}}`)
	body, err := c.PreSignupHandler.Invoke(context.Background(), raw)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if string(body) != `{"version":1}` || cognito.linked != 1 {
		t.Fatalf("expected one link and an acknowledgement, got %s (links=%d)", body, cognito.linked)
	}
	if len(sender.to) != 1 || sender.to[0] != "jane@example.com" {
		t.Fatalf("expected a link notice to jane, got %v", sender.to)
	}
}

func TestNew_RejectsUnknownEmailProvider(t *testing.T) {
	cfg := config.Load()
	cfg.PreSignup.NotifyOnLink = true
	cfg.Notifx.Provider = "pigeon"

	_, err := iamcontainer.New(context.Background(), iamcontainer.Deps{Cfg: cfg, Cognito: &stubCognito{}})
	if err == nil || !strings.Contains(err.Error(), "pigeon") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}
