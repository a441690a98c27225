package notifxses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/cognito-linker/pkg/errx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx"
	"github.com/Abraxas-365/cognito-linker/pkg/notifx/notifxses"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSESProvider_BuildsInput(t *testing.T) {
	client := &fakeSES{}
	p := notifxses.NewSESProvider(client, "security@example.com")

	err := p.SendEmail(context.Background(),
		notifx.EmailMessage{To: []string{"jane@example.com"}, Subject: "Linked", HTMLBody: "<p>x</p>"},
		notifx.WithTags(map[string]string{"provider": "Google", "event": "identity_linked"}),
		notifx.WithConfigID("security-mail"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := client.input
	if aws.ToString(in.Source) != "security@example.com" {
		t.Errorf("expected default from address, got %s", aws.ToString(in.Source))
	}
	if aws.ToString(in.Message.Body.Html.Data) != "<p>x</p>" || in.Message.Body.Text != nil {
		t.Errorf("unexpected body: %+v", in.Message.Body)
	}
	if aws.ToString(in.ConfigurationSetName) != "security-mail" {
		t.Errorf("config set not applied")
	}
	if len(in.Tags) != 2 || aws.ToString(in.Tags[0].Name) != "event" {
		t.Errorf("expected tags sorted by name, got %+v", in.Tags)
	}
}

func TestSESProvider_WrapsFailure(t *testing.T) {
	cause := errors.New("MessageRejected")
	p := notifxses.NewSESProvider(&fakeSES{err: cause}, "security@example.com")

	err := p.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@b.c"}, Subject: "x"})
	if !errx.HasCode(err, notifxses.ErrSendFailed) || !errors.Is(err, cause) {
		t.Fatalf("expected SEND_FAILED wrapping cause, got %v", err)
	}
}
