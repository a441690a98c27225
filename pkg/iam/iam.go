package iam

import "strings"

// ProviderName is the name an identity provider is registered under in a user
// pool. It is what link calls expect, which is not always the prefix the pool
// writes into federated usernames.
type ProviderName string

const (
	// ProviderCognito is the pool's own first-party provider.
	ProviderCognito ProviderName = "Cognito"

	ProviderGoogle          ProviderName = "Google"
	ProviderFacebook        ProviderName = "Facebook"
	ProviderLoginWithAmazon ProviderName = "LoginWithAmazon"
	ProviderSignInWithApple ProviderName = "SignInWithApple"
)

func (p ProviderName) String() string { return string(p) }

// ProviderAliases maps a username prefix to the registered provider name.
type ProviderAliases map[string]ProviderName

// NewProviderAliases builds aliases from plain config pairs.
func NewProviderAliases(pairs map[string]string) ProviderAliases {
	aliases := make(ProviderAliases, len(pairs))
	for prefix, name := range pairs {
		aliases[strings.ToLower(prefix)] = ProviderName(name)
	}
	return aliases
}

// Resolve returns the registered name for a username prefix. Prefixes without
// an alias are returned unchanged.
func (a ProviderAliases) Resolve(prefix string) ProviderName {
	if name, ok := a[strings.ToLower(prefix)]; ok {
		return name
	}
	return ProviderName(prefix)
}
