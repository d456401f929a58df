/**
 * @description
 * This file contains the HTTP handlers for the instruction-service API.
 * Handlers parse incoming requests, call the application service, and
 * write the HTTP response. The instruction pipeline itself never fails
 * with an error; the handler's job is mapping the Outcome status to an
 * HTTP status code and guarding the envelope shape.
 *
 * @dependencies
 * - encoding/json, log, net, net/http, strconv, strings, time: Standard Go libraries.
 * - internal/app, internal/domain: Service logic and models.
 */

package api

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/transfa/instruction-service/internal/app"
	"github.com/transfa/instruction-service/internal/domain"
)

// InstructionHandlers holds the application service and the optional
// rate limiter that handlers use.
type InstructionHandlers struct {
	service            *app.Service
	limiter            app.RateLimiter
	rateLimitPerMinute int
}

// NewInstructionHandlers creates a new instance of InstructionHandlers.
// A nil limiter or a non-positive limit disables throttling.
func NewInstructionHandlers(service *app.Service, limiter app.RateLimiter, rateLimitPerMinute int) *InstructionHandlers {
	return &InstructionHandlers{
		service:            service,
		limiter:            limiter,
		rateLimitPerMinute: rateLimitPerMinute,
	}
}

// ProcessInstructionHandler handles POST /payment-instructions. Every
// request produces a well-formed Outcome body: failed outcomes go out
// with 400, successful and pending ones with 200. A body that cannot be
// decoded into the envelope yields the uniform SY03 fallback outcome.
func (h *InstructionHandlers) ProcessInstructionHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowRequest(w, r) {
		return
	}

	var req domain.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("level=warn component=api msg=\"request body decode failed\" err=%v", err)
		h.writeJSON(w, http.StatusBadRequest, app.FallbackOutcome())
		return
	}
	// The envelope requires an accounts array; a missing one is a schema
	// violation, not a parse failure.
	if req.Accounts == nil {
		h.writeJSON(w, http.StatusBadRequest, app.FallbackOutcome())
		return
	}

	outcome := h.service.ProcessInstruction(r.Context(), req)

	status := http.StatusOK
	if outcome.Status == domain.StatusFailed {
		status = http.StatusBadRequest
	}
	h.writeJSON(w, status, outcome)
}

// allowRequest consumes one rate-limit token for the calling client.
// Redis trouble fails open: a throttling outage must not block payments.
func (h *InstructionHandlers) allowRequest(w http.ResponseWriter, r *http.Request) bool {
	if h.limiter == nil || h.rateLimitPerMinute <= 0 {
		return true
	}

	count, retryAfter, err := h.limiter.ConsumeRateLimit(r.Context(), clientAddress(r), h.rateLimitPerMinute, time.Minute)
	if err != nil {
		log.Printf("level=warn component=api msg=\"rate limit check failed; allowing request\" err=%v", err)
		return true
	}
	if count > h.rateLimitPerMinute {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		h.writeError(w, http.StatusTooManyRequests, "Too many requests. Please retry later.")
		return false
	}
	return true
}

// clientAddress resolves the throttling subject for a request, preferring
// the first X-Forwarded-For hop when a proxy added one.
func clientAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *InstructionHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *InstructionHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
