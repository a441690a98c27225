package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/presignup"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
)

func TestMain(m *testing.M) {
	logx.SetLevel(logx.LevelOff)
	os.Exit(m.Run())
}

type stubTrigger struct {
	out       presignup.Outcome
	err       error
	requestID string
	raw       string
}

func (s *stubTrigger) Handle(ctx context.Context, raw json.RawMessage) (presignup.Outcome, error) {
	s.requestID = kernel.RequestIDFrom(ctx)
	s.raw = string(raw)
	return s.out, s.err
}

func do(t *testing.T, trigger Trigger, req *http.Request) (*http.Response, string) {
	t.Helper()
	app := newApp(trigger, config.Load())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestInvoke_ReturnsBodyVerbatim(t *testing.T) {
	trigger := &stubTrigger{out: presignup.Outcome{Kind: presignup.OutcomeLinked, Body: json.RawMessage(`{"version":1}`)}}
	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{"triggerSource":"x"}`))
	req.Header.Set(requestIDHeader, "req-42")

	resp, body := do(t, trigger, req)

	if resp.StatusCode != http.StatusOK || body != `{"version":1}` {
		t.Fatalf("got %d %s", resp.StatusCode, body)
	}
	if trigger.requestID != "req-42" {
		t.Errorf("expected request id to reach the handler, got %q", trigger.requestID)
	}
	if trigger.raw != `{"triggerSource":"x"}` {
		t.Errorf("expected raw event to reach the handler, got %q", trigger.raw)
	}
}

func TestInvoke_GeneratesRequestID(t *testing.T) {
	trigger := &stubTrigger{out: presignup.Outcome{Body: json.RawMessage(`{}`)}}
	resp, _ := do(t, trigger, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{}`)))

	if trigger.requestID == "" || resp.Header.Get(requestIDHeader) != trigger.requestID {
		t.Fatalf("expected generated id %q echoed in header, got %q", trigger.requestID, resp.Header.Get(requestIDHeader))
	}
}

func TestInvoke_RendersClassifiedError(t *testing.T) {
	trigger := &stubTrigger{err: presignup.ErrNoLinkableAccount()}
	resp, body := do(t, trigger, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{}`)))

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["code"] != presignup.CodeNoLinkableAccount.Code {
		t.Errorf("unexpected code %v", got["code"])
	}
	if got["error"] != "No existing user with same email found" {
		t.Errorf("unexpected message %v", got["error"])
	}
}

func TestInvoke_HidesForeignErrors(t *testing.T) {
	trigger := &stubTrigger{err: errors.New("dial tcp 10.0.0.1:443: i/o timeout")}
	resp, body := do(t, trigger, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{}`)))

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "10.0.0.1") {
		t.Errorf("cause leaked into response: %s", body)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	resp, body := do(t, &stubTrigger{}, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"healthy"`) {
		t.Fatalf("health: %d %s", resp.StatusCode, body)
	}

	resp, _ = do(t, &stubTrigger{}, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
