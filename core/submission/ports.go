package submission

import (
	"context"
	"time"

	"quote-calculator/core/types"
)

// Authenticator validates the anti-forgery token presented with a submission
type Authenticator interface {
	Verify(session, token string) bool
}

// Transport forwards a finalized record to the relay. A returned error means
// the relay was never reached or never answered; any answer, including non-2xx,
// comes back as a RelayResponse.
type Transport interface {
	Post(ctx context.Context, record types.SubmissionRecord) (types.RelayResponse, error)
}

// Pricer prices a typed request
type Pricer interface {
	Evaluate(req types.QuoteRequest) types.Quote
}

// Recorder receives submission telemetry. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveSubmission(kind types.ServiceKind, outcome string)
	ObserveRelay(status int, elapsed time.Duration, err error)
}

// Credentials identify the rendered form a submission came from
type Credentials struct {
	Session string
	Token   string
}

type nopRecorder struct{}

func (nopRecorder) ObserveSubmission(types.ServiceKind, string) {}
func (nopRecorder) ObserveRelay(int, time.Duration, error)      {}
