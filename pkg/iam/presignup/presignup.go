package presignup

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/iam"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/aws/aws-lambda-go/events"
)

// ============================================================================
// Inbound event
// ============================================================================

// Event is a decoded pre sign-up trigger payload. Only events this hook owns
// are decoded; pass-through payloads are returned as raw bytes.
type Event struct {
	events.CognitoEventUserPoolsPreSignup
}

// DecodeEvent decodes a trigger payload.
func DecodeEvent(raw json.RawMessage) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(raw, &evt.CognitoEventUserPoolsPreSignup); err != nil {
		return nil, err
	}
	return &evt, nil
}

// PoolID returns the user pool the event was raised in.
func (e *Event) PoolID() kernel.UserPoolID {
	return kernel.NewUserPoolID(e.UserPoolID)
}

// Email returns the incoming email attribute. Absent and blank are both
// reported as missing.
func (e *Event) Email() (string, bool) {
	email := e.Request.UserAttributes["email"]
	if strings.TrimSpace(email) == "" {
		return "", false
	}
	return email, true
}

// peekTriggerSource reads only the trigger tag so payloads this hook does not
// own are never fully decoded.
func peekTriggerSource(raw json.RawMessage) (string, error) {
	var head struct {
		TriggerSource string `json:"triggerSource"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "", err
	}
	return head.TriggerSource, nil
}

// ============================================================================
// Identities and accounts
// ============================================================================

// ExternalIdentity is the provider and subject id carried by a federated
// username.
type ExternalIdentity struct {
	Provider   string `json:"provider"`
	ExternalID string `json:"external_id"`
}

// ExistingAccount is an account already present in the pool.
type ExistingAccount struct {
	Username   kernel.Username   `json:"username"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Enabled    bool              `json:"enabled"`
	Status     string            `json:"status,omitempty"`
}

// Email returns the account's email attribute.
func (a *ExistingAccount) Email() string {
	return a.Attributes["email"]
}

// LinkRecord describes a completed link.
type LinkRecord struct {
	PoolID   kernel.UserPoolID `json:"pool_id"`
	Identity ExternalIdentity  `json:"identity"`
	Provider iam.ProviderName  `json:"provider"`
	Account  ExistingAccount   `json:"account"`
	LinkedAt time.Time         `json:"linked_at"`
}

// ============================================================================
// Outcome
// ============================================================================

// OutcomeKind is the terminal state of a successful invocation.
type OutcomeKind int

const (
	// OutcomePassThrough returns the event unchanged.
	OutcomePassThrough OutcomeKind = iota
	// OutcomeLinked tells the pool the sign-up is resolved.
	OutcomeLinked
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePassThrough:
		return "pass_through"
	case OutcomeLinked:
		return "linked"
	default:
		return "unknown"
	}
}

// Acknowledgement is returned to the pool after a successful link.
type Acknowledgement struct {
	Version int `json:"version"`
}

// Outcome is what the hook returns to the host framework.
type Outcome struct {
	Kind OutcomeKind
	Body json.RawMessage
}

func passThrough(raw json.RawMessage) Outcome {
	return Outcome{Kind: OutcomePassThrough, Body: raw}
}

var linkedBody, _ = json.Marshal(Acknowledgement{Version: 1})

func linked() Outcome {
	return Outcome{Kind: OutcomeLinked, Body: linkedBody}
}
