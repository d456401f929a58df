/**
 * @description
 * This file sets up the HTTP router for the instruction-service. It wires
 * the payment-instructions endpoint with its middleware chain: request
 * logging, panic recovery, timeouts, CORS, and the optional auth checks.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for chi.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// InstructionRoutes creates and returns the router for the service.
// jwksURL and internalKey are optional; empty values leave the endpoint
// unauthenticated.
func InstructionRoutes(h *InstructionHandlers, jwksURL, internalKey string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Internal-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Group(func(r chi.Router) {
		if jwksURL != "" {
			r.Use(BearerAuthMiddleware(jwksURL))
		}
		r.Use(InternalAuthMiddleware(internalKey))

		r.Post("/payment-instructions", h.ProcessInstructionHandler)
	})

	return r
}
