package submission

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"quote-calculator/core/pricing"
	"quote-calculator/core/types"
	"quote-calculator/core/validation"
	qerrors "quote-calculator/internal/errors"
)

type staticAuth bool

func (a staticAuth) Verify(session, token string) bool { return bool(a) }

type fakeTransport struct {
	mu          sync.Mutex
	calls       []types.SubmissionRecord
	resp        types.RelayResponse
	err         error
	sawDeadline bool
}

func (f *fakeTransport) Post(ctx context.Context, record types.SubmissionRecord) (types.RelayResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, record)
	_, f.sawDeadline = ctx.Deadline()
	return f.resp, f.err
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
	relays   int
}

func (r *countingRecorder) ObserveSubmission(kind types.ServiceKind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *countingRecorder) ObserveRelay(int, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relays++
}

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.FixedZone("SAST", 2*3600))

func webForm() validation.Form {
	return validation.Form{
		"service":         "web",
		"pages":           "3",
		"timeline":        "2",
		"ecommerce":       "yes",
		"account_manager": "Leanne Graham",
	}
}

func newCoordinator(auth Authenticator, tr Transport, rec Recorder) *Coordinator {
	return NewCoordinator(auth, pricing.NewEngine(), tr, Options{
		Now:      func() time.Time { return fixedNow },
		Recorder: rec,
	})
}

func TestSubmitSuccess(t *testing.T) {
	tr := &fakeTransport{resp: types.RelayResponse{StatusCode: 201, Body: []byte(`{"id":101}`)}}
	rec := &countingRecorder{}
	c := newCoordinator(staticAuth(true), tr, rec)

	view, err := c.Submit(context.Background(), Credentials{Session: "s", Token: "t"}, webForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Quote.String() != "4500" {
		t.Errorf("Expected quote 4500, got %s", view.Quote)
	}
	if view.Message != qerrors.MessageSubmitted {
		t.Errorf("unexpected message %q", view.Message)
	}

	if len(tr.calls) != 1 {
		t.Fatalf("expected exactly one relay call, got %d", len(tr.calls))
	}
	record := tr.calls[0]
	if record.Service != types.ServiceWeb || record.AccountManager != "Leanne Graham" || record.Quote.String() != "4500" {
		t.Errorf("unexpected record: %+v", record)
	}
	if !record.SubmittedAt.Equal(fixedNow) || record.SubmittedAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamp %s, got %s", fixedNow.UTC(), record.SubmittedAt)
	}
	if !tr.sawDeadline {
		t.Error("relay call must carry a deadline")
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"quote":4500,"message":"Quote submitted successfully."}` {
		t.Errorf("confirmation leaks or misshapes fields: %s", body)
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0] != OutcomeSuccess || rec.relays != 1 {
		t.Errorf("unexpected telemetry: %+v", rec)
	}
}

func TestSubmitFailures(t *testing.T) {
	cases := []struct {
		name      string
		auth      Authenticator
		form      validation.Form
		transport *fakeTransport
		wantType  qerrors.Type
		wantCalls int
	}{
		{
			name:      "bad token",
			auth:      staticAuth(false),
			form:      webForm(),
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 201}},
			wantType:  qerrors.TypeUnauthorized,
		},
		{
			name:      "no authenticator",
			form:      webForm(),
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 201}},
			wantType:  qerrors.TypeUnauthorized,
		},
		{
			name:      "missing service",
			auth:      staticAuth(true),
			form:      validation.Form{"pages": "3"},
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 201}},
			wantType:  qerrors.TypeMissingServiceType,
		},
		{
			name:      "zero pages",
			auth:      staticAuth(true),
			form:      validation.Form{"service": "web", "pages": "0", "timeline": "2", "ecommerce": "yes"},
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 201}},
			wantType:  qerrors.TypeInvalidFields,
		},
		{
			name:      "unknown service",
			auth:      staticAuth(true),
			form:      validation.Form{"service": "video"},
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 201}},
			wantType:  qerrors.TypeInvalidFields,
		},
		{
			name:      "network error",
			auth:      staticAuth(true),
			form:      webForm(),
			transport: &fakeTransport{err: errors.New("dial tcp: connection refused")},
			wantType:  qerrors.TypeTransportFailure,
			wantCalls: 1,
		},
		{
			name:      "relay 500",
			auth:      staticAuth(true),
			form:      webForm(),
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 500}},
			wantType:  qerrors.TypeUpstreamRejected,
			wantCalls: 1,
		},
		{
			name:      "relay 302",
			auth:      staticAuth(true),
			form:      webForm(),
			transport: &fakeTransport{resp: types.RelayResponse{StatusCode: 302}},
			wantType:  qerrors.TypeUpstreamRejected,
			wantCalls: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCoordinator(tc.auth, tc.transport, nil)
			view, err := c.Submit(context.Background(), Credentials{}, tc.form)
			if view != nil {
				t.Errorf("failed submission returned a confirmation: %+v", view)
			}
			if !qerrors.IsType(err, tc.wantType) {
				t.Fatalf("expected %s, got %v", tc.wantType, err)
			}
			if len(tc.transport.calls) != tc.wantCalls {
				t.Errorf("expected %d relay calls, got %d", tc.wantCalls, len(tc.transport.calls))
			}
		})
	}
}

func TestSubmitDoesNotRetry(t *testing.T) {
	tr := &fakeTransport{err: context.DeadlineExceeded}
	c := newCoordinator(staticAuth(true), tr, nil)

	for i := 0; i < 3; i++ {
		_, err := c.Submit(context.Background(), Credentials{}, webForm())
		if !qerrors.IsType(err, qerrors.TypeTransportFailure) {
			t.Fatalf("expected transport failure, got %v", err)
		}
	}
	if len(tr.calls) != 3 {
		t.Errorf("expected one relay attempt per submission, got %d for 3 submissions", len(tr.calls))
	}
}

func TestEstimate(t *testing.T) {
	c := newCoordinator(staticAuth(false), &fakeTransport{}, nil)

	q, err := c.Estimate(validation.Form{"service": "design", "design_type": "branding", "revisions": "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Amount.String() != "3600" {
		t.Errorf("Expected 3600, got %s", q.Amount)
	}

	q, err = c.Estimate(validation.Form{"service": "writing", "word_count": "99", "seo": "no"})
	if !qerrors.IsType(err, qerrors.TypeInvalidFields) {
		t.Fatalf("expected invalid fields, got %v", err)
	}
	if q.Rejection != types.RejectWordCount {
		t.Errorf("expected word count rejection, got %q", q.Rejection)
	}
}

func TestSubmitConcurrentCallsAreIndependent(t *testing.T) {
	tr := &fakeTransport{resp: types.RelayResponse{StatusCode: 200}}
	c := newCoordinator(staticAuth(true), tr, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Submit(context.Background(), Credentials{}, webForm())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if len(tr.calls) != 20 {
		t.Errorf("expected 20 relay calls, got %d", len(tr.calls))
	}
}
