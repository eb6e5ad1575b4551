package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"quote-calculator/core/submission"
	"quote-calculator/core/validation"
	qerrors "quote-calculator/internal/errors"
)

// NonceField carries the anti-forgery token in form posts
const NonceField = "nonce"

// NonceHeader carries the anti-forgery token for JSON clients
const NonceHeader = "X-Quote-Nonce"

// MessageManagersUnavailable is shown when the directory cannot be read
const MessageManagersUnavailable = "Unable to load managers"

// Envelope mirrors the {success, data} shape the widget reads
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// MessageData is the failure payload
type MessageData struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

// NonceResponse carries a freshly issued token
type NonceResponse struct {
	Nonce string `json:"nonce"`
}

// ManagersResponse lists selectable account managers
type ManagersResponse struct {
	Names   []string `json:"names"`
	Message string   `json:"message,omitempty"`
}

// ServicesResponse describes the conditional form fields
type ServicesResponse struct {
	Services []validation.ServiceSchema `json:"services"`
}

// EstimateData is the preview payload
type EstimateData struct {
	Service string      `json:"service"`
	Label   string      `json:"label"`
	Quote   json.Number `json:"quote"`
}

// Handler implementations

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (a *Adapter) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.deps.Ready != nil {
		if err := a.deps.Ready(r.Context()); err != nil {
			a.log.Warn("readiness check failed", zap.Error(err))
			a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (a *Adapter) handleNonce(w http.ResponseWriter, r *http.Request) {
	session := a.ensureSession(w, r)
	w.Header().Set("Cache-Control", "no-store")
	a.writeJSON(w, http.StatusOK, NonceResponse{Nonce: a.deps.Tokens.Issue(session)})
}

func (a *Adapter) handleSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseForm(w, r)
	if err != nil {
		a.writeFailure(w, err)
		return
	}

	token := form[NonceField]
	if token == "" {
		token = r.Header.Get(NonceHeader)
	}
	delete(form, NonceField)

	cred := submission.Credentials{
		Session: a.sessionID(r),
		Token:   strings.TrimSpace(token),
	}

	view, err := a.deps.Quotes.Submit(r.Context(), cred, form)
	if err != nil {
		a.writeFailure(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, Envelope{Success: true, Data: view})
}

func (a *Adapter) handleEstimate(w http.ResponseWriter, r *http.Request) {
	form, err := a.parseForm(w, r)
	if err != nil {
		a.writeFailure(w, err)
		return
	}
	delete(form, NonceField)

	q, err := a.deps.Quotes.Estimate(form)
	if err != nil {
		a.writeFailureReason(w, err, string(q.Rejection))
		return
	}
	a.writeJSON(w, http.StatusOK, Envelope{Success: true, Data: EstimateData{
		Service: q.Kind.String(),
		Label:   q.Kind.Label(),
		Quote:   json.Number(q.Amount.String()),
	}})
}

func (a *Adapter) handleAccountManagers(w http.ResponseWriter, r *http.Request) {
	names, err := a.deps.Directory.ListNames(r.Context())
	if err != nil {
		a.log.Warn("account manager lookup failed", zap.Error(err))
		a.writeJSON(w, http.StatusBadGateway, ManagersResponse{Names: []string{}, Message: MessageManagersUnavailable})
		return
	}
	if names == nil {
		names = []string{}
	}
	a.writeJSON(w, http.StatusOK, ManagersResponse{Names: names})
}

func (a *Adapter) handleServices(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, ServicesResponse{Services: validation.Schemas()})
}

// Helpers

// parseForm reads a url-encoded, multipart or JSON body into a Form
func (a *Adapter) parseForm(w http.ResponseWriter, r *http.Request) (validation.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	defer r.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var obj map[string]interface{}
		if err := dec.Decode(&obj); err != nil {
			return nil, qerrors.Input("invalid JSON body", err)
		}
		return validation.FormFromJSON(obj), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(a.config.MaxBodySize); err != nil {
			return nil, qerrors.Input("invalid multipart body", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, qerrors.Input("invalid form body", err)
		}
	}

	form := make(validation.Form, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			form[k] = v[0]
		}
	}
	return form, nil
}

// statusFor maps the error taxonomy to a status code. Domain failures keep
// 200 because the widget branches on the success flag.
func statusFor(err error) int {
	switch qerrors.TypeOf(err) {
	case qerrors.TypeUnauthorized:
		return http.StatusForbidden
	case qerrors.TypeInput:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	case qerrors.TypeInternal, qerrors.TypeConfig:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func (a *Adapter) writeFailure(w http.ResponseWriter, err error) {
	a.writeFailureReason(w, err, "")
}

func (a *Adapter) writeFailureReason(w http.ResponseWriter, err error, reason string) {
	a.writeJSON(w, statusFor(err), Envelope{
		Success: false,
		Data:    MessageData{Message: qerrors.UserMessage(err), Reason: reason},
	})
}

func (a *Adapter) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Debug("response write failed", zap.Error(err))
	}
}

var _ QuoteService = (*submission.Coordinator)(nil)
