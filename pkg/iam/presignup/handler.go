package presignup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/kernel"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Handler is the pre sign-up trigger. It is safe for concurrent use.
type Handler struct {
	triggerSource string
	resolver      *AccountResolver
	linker        *LinkExecutor
	audit         AuditService
	notifier      LinkNotifier
}

// NewHandler wires the linking pipeline. A nil notifier disables notifications.
func NewHandler(
	finder AccountFinder,
	linker IdentityLinker,
	audit AuditService,
	notifier LinkNotifier,
	cfg *config.PreSignupConfig,
) *Handler {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Handler{
		triggerSource: cfg.TriggerSource,
		resolver:      NewAccountResolver(finder, cfg.BackendTimeout),
		linker:        NewLinkExecutor(linker, cfg),
		audit:         audit,
		notifier:      notifier,
	}
}

// Invoke is the Lambda entrypoint: it returns the response body for the pool.
func (h *Handler) Invoke(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok && kernel.RequestIDFrom(ctx) == "" {
		ctx = kernel.WithRequestID(ctx, lc.AwsRequestID)
	}

	out, err := h.Handle(ctx, raw)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Handle routes the event and, for external-provider sign-ups, runs the
// linking pipeline. Every returned error is a PRESIGNUP *errx.Error.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (out Outcome, err error) {
	source, err := peekTriggerSource(raw)
	if err != nil {
		return Outcome{}, h.reject(ctx, nil, fmt.Errorf("decode trigger source: %w", err))
	}

	if source != h.triggerSource {
		return passThrough(raw), nil
	}

	var evt *Event
	defer func() {
		if r := recover(); r != nil {
			out, err = Outcome{}, h.reject(ctx, evt, fmt.Errorf("panic: %v", r))
		}
	}()

	evt, err = DecodeEvent(raw)
	if err != nil {
		return Outcome{}, h.reject(ctx, nil, fmt.Errorf("decode event: %w", err))
	}

	out, err = h.link(ctx, evt)
	if err != nil {
		return Outcome{}, h.reject(ctx, evt, err)
	}
	return out, nil
}

func (h *Handler) link(ctx context.Context, evt *Event) (Outcome, error) {
	email, ok := evt.Email()
	if !ok {
		return Outcome{}, ErrMissingEmail(evt.UserName)
	}

	logx.WithContext(ctx).WithFields(logx.Fields{
		"pool_id":   evt.UserPoolID,
		"user_name": evt.UserName,
		"trigger":   evt.TriggerSource,
	}).Info("Pre-signup triggered")

	identity, err := ParseIdentity(evt.UserName)
	if err != nil {
		return Outcome{}, err
	}

	account, err := h.resolver.Resolve(ctx, evt.PoolID(), email)
	if err != nil {
		return Outcome{}, err
	}

	record, err := h.linker.Link(ctx, evt.PoolID(), identity, account)
	if err != nil {
		return Outcome{}, err
	}

	h.audit.LogAccountLinked(ctx, *record)

	if err := h.notifier.NotifyLinked(ctx, *record); err != nil {
		logx.WithContext(ctx).WithError(err).WithField("username", record.Account.Username).
			Warn("Link notification failed")
	}

	return linked(), nil
}

// reject passes classified errors through unchanged. Anything else is logged
// in full and replaced by a generic UNKNOWN_FAILURE. evt is nil when the
// payload could not be decoded.
func (h *Handler) reject(ctx context.Context, evt *Event, err error) error {
	var poolID kernel.UserPoolID
	var userName string
	if evt != nil {
		poolID, userName = evt.PoolID(), evt.UserName
	}

	if !ErrRegistry.Owns(err) {
		logx.WithContext(ctx).WithError(err).WithFields(logx.Fields{
			"pool_id":   poolID,
			"user_name": userName,
		}).Error("Unexpected pre-signup failure")
		err = ErrUnknownFailure()
	}

	h.audit.LogLinkRejected(ctx, poolID, userName, err)
	return err
}
