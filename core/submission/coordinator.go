// Package submission orchestrates validate, price, relay and respond for a
// single form submission. Each call is self-contained and the relay is
// attempted exactly once.
package submission

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"quote-calculator/core/types"
	"quote-calculator/core/validation"
	qerrors "quote-calculator/internal/errors"
)

// DefaultRelayTimeout bounds the relay call when none is configured
const DefaultRelayTimeout = 10 * time.Second

// OutcomeSuccess labels a fully relayed submission
const OutcomeSuccess = "success"

// Options configures a Coordinator
type Options struct {
	// RelayTimeout bounds the single relay attempt
	RelayTimeout time.Duration

	// Now returns the submission timestamp; defaults to time.Now
	Now func() time.Time

	Logger   *zap.Logger
	Recorder Recorder
}

// Coordinator runs submissions. It holds no per-request state.
type Coordinator struct {
	auth         Authenticator
	pricer       Pricer
	transport    Transport
	relayTimeout time.Duration
	now          func() time.Time
	log          *zap.Logger
	recorder     Recorder
	tracer       trace.Tracer
}

// NewCoordinator creates a coordinator
func NewCoordinator(auth Authenticator, pricer Pricer, transport Transport, opts Options) *Coordinator {
	c := &Coordinator{
		auth:         auth,
		pricer:       pricer,
		transport:    transport,
		relayTimeout: opts.RelayTimeout,
		now:          opts.Now,
		log:          opts.Logger,
		recorder:     opts.Recorder,
		tracer:       otel.Tracer("quote-calculator/submission"),
	}
	if c.relayTimeout <= 0 {
		c.relayTimeout = DefaultRelayTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	return c
}

// Estimate validates and prices form without relaying it. The returned quote
// is valid whenever err is nil.
func (c *Coordinator) Estimate(form validation.Form) (types.Quote, error) {
	_, q, err := c.price(form)
	return q, err
}

func (c *Coordinator) price(form validation.Form) (types.QuoteRequest, types.Quote, error) {
	req, err := validation.Normalize(form)
	if err != nil {
		return req, types.Quote{}, err
	}
	q := c.pricer.Evaluate(req)
	if !q.Valid() {
		return req, q, qerrors.InvalidFields(string(q.Rejection))
	}
	return req, q, nil
}

// Submit checks the token, prices the form, relays the record once and
// returns the sanitized confirmation. Errors carry the internal/errors taxonomy.
func (c *Coordinator) Submit(ctx context.Context, cred Credentials, form validation.Form) (*types.ConfirmationView, error) {
	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "submission.Submit", trace.WithAttributes(attribute.String("request.id", requestID)))
	defer span.End()

	log := c.log.With(zap.String("request_id", requestID))

	if c.auth == nil || !c.auth.Verify(cred.Session, cred.Token) {
		return c.fail(span, log, "", qerrors.Unauthorized("anti-forgery token rejected"))
	}

	req, q, err := c.price(form)
	if err != nil {
		return c.fail(span, log, q.Kind, err)
	}
	span.SetAttributes(attribute.String("service.kind", q.Kind.String()))

	record := types.SubmissionRecord{
		Service:        q.Kind,
		AccountManager: req.AccountManager,
		Quote:          q.Amount,
		SubmittedAt:    c.now().UTC(),
	}

	resp, err := c.relay(ctx, record)
	if err != nil {
		return c.fail(span, log, q.Kind, qerrors.TransportFailure(err))
	}
	log.Debug("relay responded", zap.Int("status", resp.StatusCode), zap.ByteString("body", resp.Body))
	if !resp.Success() {
		return c.fail(span, log, q.Kind, qerrors.UpstreamRejected(resp.StatusCode))
	}

	c.recorder.ObserveSubmission(q.Kind, OutcomeSuccess)
	span.SetStatus(codes.Ok, "")
	log.Info("quote submitted",
		zap.String("service", q.Kind.String()),
		zap.String("quote", q.Amount.String()),
		zap.String("outcome", OutcomeSuccess),
	)

	return &types.ConfirmationView{Quote: q.Amount, Message: qerrors.MessageSubmitted}, nil
}

func (c *Coordinator) relay(ctx context.Context, record types.SubmissionRecord) (types.RelayResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.relayTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.transport.Post(ctx, record)
	c.recorder.ObserveRelay(resp.StatusCode, time.Since(start), err)
	return resp, err
}

func (c *Coordinator) fail(span trace.Span, log *zap.Logger, kind types.ServiceKind, err error) (*types.ConfirmationView, error) {
	outcome := strings.ToLower(string(qerrors.TypeOf(err)))
	c.recorder.ObserveSubmission(kind, outcome)
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	log.Warn("quote submission failed",
		zap.String("service", kind.String()),
		zap.String("outcome", outcome),
		zap.Error(err),
	)
	return nil, err
}
