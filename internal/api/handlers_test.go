package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/transfa/instruction-service/internal/app"
	"github.com/transfa/instruction-service/internal/domain"
)

// stubLimiter lets tests force the throttling path without Redis.
type stubLimiter struct {
	count      int
	retryAfter int
	err        error
}

func (s *stubLimiter) ConsumeRateLimit(ctx context.Context, subject string, limit int, window time.Duration) (int, int, error) {
	return s.count, s.retryAfter, s.err
}

func newTestRouter(limiter app.RateLimiter, limit int, internalKey string) http.Handler {
	service := app.NewService(nil, "payment_events")
	handlers := NewInstructionHandlers(service, limiter, limit)
	return InstructionRoutes(handlers, "", internalKey)
}

func postInstruction(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/payment-instructions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeOutcome(t *testing.T, rec *httptest.ResponseRecorder) domain.Outcome {
	t.Helper()
	var outcome domain.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("failed to decode outcome body %q: %v", rec.Body.String(), err)
	}
	return outcome
}

func TestProcessInstructionHandler_Success(t *testing.T) {
	router := newTestRouter(nil, 0, "")
	rec := postInstruction(t, router, `{
		"accounts": [
			{"id": "A1", "balance": 1000, "currency": "USD"},
			{"id": "B1", "balance": 200, "currency": "USD"}
		],
		"instruction": "DEBIT 500 USD FROM ACCOUNT A1 FOR rent TO ACCOUNT B1"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	outcome := decodeOutcome(t, rec)
	if outcome.Status != domain.StatusSuccessful || outcome.StatusCode != domain.CodeSuccessful {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(outcome.Accounts) != 2 || outcome.Accounts[0].Balance != 500 || outcome.Accounts[1].Balance != 700 {
		t.Fatalf("unexpected projected accounts: %+v", outcome.Accounts)
	}
}

func TestProcessInstructionHandler_BusinessFailureIs400(t *testing.T) {
	router := newTestRouter(nil, 0, "")
	rec := postInstruction(t, router, `{
		"accounts": [
			{"id": "A1", "balance": 100, "currency": "USD"},
			{"id": "B1", "balance": 200, "currency": "USD"}
		],
		"instruction": "DEBIT 500 USD FROM ACCOUNT A1 FOR rent TO ACCOUNT B1"
	}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	outcome := decodeOutcome(t, rec)
	if outcome.StatusCode != domain.CodeInsufficientFunds {
		t.Fatalf("expected %s, got %s", domain.CodeInsufficientFunds, outcome.StatusCode)
	}
	if len(outcome.Accounts) != 2 {
		t.Fatalf("expected both accounts echoed, got %+v", outcome.Accounts)
	}
}

func TestProcessInstructionHandler_PendingIs200(t *testing.T) {
	router := newTestRouter(nil, 0, "")
	future := time.Now().UTC().AddDate(0, 0, 4).Format("2006-01-02")
	rec := postInstruction(t, router, `{
		"accounts": [
			{"id": "A1", "balance": 1000, "currency": "USD"},
			{"id": "B1", "balance": 200, "currency": "USD"}
		],
		"instruction": "DEBIT 500 USD FROM ACCOUNT A1 FOR rent TO ACCOUNT B1 ON `+future+`"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	outcome := decodeOutcome(t, rec)
	if outcome.Status != domain.StatusPending || outcome.StatusCode != domain.CodePending {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestProcessInstructionHandler_MalformedBodyFallsBack(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"accounts": [`},
		{name: "wrong balance type", body: `{"accounts": [{"id": "A1", "balance": "x", "currency": "USD"}], "instruction": "DEBIT"}`},
		{name: "missing accounts array", body: `{"instruction": "DEBIT 500 USD FROM ACCOUNT A1 FOR x TO ACCOUNT B1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(nil, 0, "")
			rec := postInstruction(t, router, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			outcome := decodeOutcome(t, rec)
			if outcome.StatusCode != domain.CodeMalformed || outcome.Status != domain.StatusFailed {
				t.Fatalf("expected %s fallback, got %+v", domain.CodeMalformed, outcome)
			}
			if outcome.Type != nil || len(outcome.Accounts) != 0 {
				t.Fatalf("fallback outcome must be empty, got %+v", outcome)
			}
		})
	}
}

func TestProcessInstructionHandler_RateLimited(t *testing.T) {
	limiter := &stubLimiter{count: 11, retryAfter: 42}
	router := newTestRouter(limiter, 10, "")
	rec := postInstruction(t, router, `{"accounts": [], "instruction": ""}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "42" {
		t.Fatalf("expected Retry-After 42, got %q", got)
	}
}

func TestProcessInstructionHandler_RateLimiterFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: context.DeadlineExceeded}
	router := newTestRouter(limiter, 10, "")
	rec := postInstruction(t, router, `{
		"accounts": [
			{"id": "A1", "balance": 1000, "currency": "USD"},
			{"id": "B1", "balance": 200, "currency": "USD"}
		],
		"instruction": "DEBIT 500 USD FROM ACCOUNT A1 FOR rent TO ACCOUNT B1"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected limiter errors to fail open, got %d", rec.Code)
	}
}

func TestInternalAuthMiddleware(t *testing.T) {
	router := newTestRouter(nil, 0, "secret-key")
	body := `{"accounts": [], "instruction": ""}`

	rec := postInstruction(t, router, body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/payment-instructions", strings.NewReader(body))
	req.Header.Set("X-Internal-API-Key", "secret-key")
	authed := httptest.NewRecorder()
	router.ServeHTTP(authed, req)
	if authed.Code != http.StatusBadRequest {
		t.Fatalf("expected request through with key (400 for the empty instruction), got %d", authed.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(nil, 0, "")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
