package iam_test

import (
	"testing"

	"github.com/Abraxas-365/cognito-linker/pkg/iam"
)

func TestProviderAliases_Resolve(t *testing.T) {
	aliases := iam.NewProviderAliases(map[string]string{"Google": "Google", "oidc": "Okta"})

	cases := []struct {
		prefix string
		want   iam.ProviderName
	}{
		{"google", iam.ProviderGoogle},
		{"GOOGLE", iam.ProviderGoogle},
		{"oidc", "Okta"},
		{"facebook", "facebook"},
	}
	for _, tc := range cases {
		if got := aliases.Resolve(tc.prefix); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.prefix, got, tc.want)
		}
	}
}

func TestProviderAliases_NilResolvesToPrefix(t *testing.T) {
	var aliases iam.ProviderAliases
	if got := aliases.Resolve("google"); got != "google" {
		t.Fatalf("expected prefix passthrough, got %q", got)
	}
}
