package errx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Abraxas-365/cognito-linker/pkg/errx"
)

func TestRegistry_CodesArePrefixed(t *testing.T) {
	reg := errx.NewRegistry("TEST")
	code := reg.Register("BROKEN", errx.TypeInternal, 500, "broken")

	if code.Code != "TEST_BROKEN" {
		t.Fatalf("expected TEST_BROKEN, got %s", code.Code)
	}
	if got, ok := reg.Get("BROKEN"); !ok || got != code {
		t.Fatal("registered code not retrievable")
	}
}

func TestRegistry_OwnsOnlyItsCodes(t *testing.T) {
	mine := errx.NewRegistry("MINE")
	other := errx.NewRegistry("OTHER")
	a := mine.Register("A", errx.TypeValidation, 400, "a")
	b := other.Register("A", errx.TypeValidation, 400, "a")

	if !mine.Owns(mine.New(a)) {
		t.Fatal("registry should own its own error")
	}
	if mine.Owns(other.New(b)) {
		t.Fatal("registry should not own a foreign error")
	}
	if mine.Owns(errors.New("plain")) {
		t.Fatal("registry should not own a plain error")
	}
	if !mine.Owns(fmt.Errorf("context: %w", mine.New(a))) {
		t.Fatal("registry should see through fmt wrapping")
	}
}

func TestNewWithCause_Unwraps(t *testing.T) {
	reg := errx.NewRegistry("X")
	code := reg.Register("FAILED", errx.TypeExternal, 502, "failed")
	cause := errors.New("socket closed")

	err := reg.NewWithCause(code, cause).WithDetail("attempt", 1)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if !errx.HasCode(err, code) {
		t.Fatalf("expected code %s, got %s", code.Code, errx.CodeOf(err))
	}
	if err.Details["attempt"] != 1 {
		t.Fatalf("detail lost: %+v", err.Details)
	}
	if want := "[X_FAILED] failed: socket closed"; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestToHTTP_HidesForeignErrors(t *testing.T) {
	resp := errx.ToHTTP(errors.New("db password is hunter2"))
	if resp.StatusCode != 500 || resp.Message != "An unexpected error occurred" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	reg := errx.NewRegistry("Y")
	code := reg.Register("MISSING", errx.TypeNotFound, 404, "missing")
	resp = errx.ToHTTP(reg.New(code))
	if resp.StatusCode != 404 || resp.Code != "Y_MISSING" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWrap_KeepsCodeOfInnerError(t *testing.T) {
	reg := errx.NewRegistry("W")
	code := reg.Register("DOWN", errx.TypeExternal, 502, "down")

	wrapped := errx.Wrap(reg.New(code), "calling backend", errx.TypeExternal)
	if wrapped.Code != "W_DOWN" || wrapped.HTTPStatus != 502 {
		t.Fatalf("unexpected wrap: %+v", wrapped)
	}

	plain := errx.Wrap(errors.New("boom"), "load AWS config", errx.TypeExternal)
	if plain.Code != string(errx.TypeExternal) || !errors.Is(plain, plain.Err) {
		t.Fatalf("unexpected wrap: %+v", plain)
	}

	if errx.Wrap(nil, "nothing", errx.TypeInternal) != nil {
		t.Fatal("expected nil for nil error")
	}
}
