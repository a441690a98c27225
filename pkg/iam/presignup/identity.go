package presignup

import "strings"

// ParseIdentity splits a federated username on its first "_". Everything after
// the separator is the subject id, further underscores included.
func ParseIdentity(userName string) (ExternalIdentity, error) {
	provider, externalID, ok := strings.Cut(userName, "_")
	if !ok || provider == "" || externalID == "" {
		return ExternalIdentity{}, ErrMalformedUsername(userName)
	}
	return ExternalIdentity{Provider: provider, ExternalID: externalID}, nil
}
