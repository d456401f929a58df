/**
 * @description
 * This file contains the core application service for the
 * instruction-service. The `Service` struct orchestrates the instruction
 * pipeline: parse the free text, validate the business rules against the
 * snapshot, project balances, and shape the final Outcome. Each processed
 * instruction also emits an outcome event to RabbitMQ for downstream
 * consumers; publishing is fire-and-forget and never affects the Outcome.
 *
 * Key contract points:
 * - Parse failures return an outcome with an empty accounts list: the
 *   involved accounts could not even be identified.
 * - Business-rule failures echo both involved accounts with unchanged
 *   balances via the projector.
 * - Pending instructions (future execute_by) also leave balances
 *   unchanged; only immediately executing instructions move money.
 *
 * @dependencies
 * - context, log, time: Standard Go libraries.
 * - github.com/google/uuid: Processing IDs stamped on outcome events.
 * - internal/domain, internal/parser, pkg/rabbitmq.
 */

package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/instruction-service/internal/domain"
	"github.com/transfa/instruction-service/internal/parser"
	"github.com/transfa/instruction-service/pkg/rabbitmq"
)

// Service provides the instruction processing pipeline.
type Service struct {
	eventProducer rabbitmq.Publisher
	eventExchange string
}

// NewService creates a new instruction processing service. The producer
// may be nil when no broker is configured.
func NewService(producer rabbitmq.Publisher, eventExchange string) *Service {
	return &Service{
		eventProducer: producer,
		eventExchange: eventExchange,
	}
}

// ProcessInstruction runs the full parse-validate-project pipeline for
// one instruction against one snapshot. It always returns a well-formed
// Outcome; failures are carried as data, never as an error.
func (s *Service) ProcessInstruction(ctx context.Context, req domain.ProcessRequest) domain.Outcome {
	parsed := parser.ParseInstruction(req.Instruction)

	if parsed.HasErrors() {
		code := parsed.FirstError()
		outcome := buildOutcome(parsed, domain.StatusFailed, domain.ParseErrorReason(code), code, []domain.ProjectedAccount{})
		s.publishOutcome(ctx, outcome)
		return outcome
	}

	verdict := ValidateTransaction(parsed, req.Accounts)

	if !verdict.IsValid {
		// Accounts were identified, so they are echoed unchanged.
		unchanged := ProjectBalances(parsed, req.Accounts, false)
		outcome := buildOutcome(parsed, domain.StatusFailed, verdict.StatusReason, verdict.StatusCode, unchanged)
		s.publishOutcome(ctx, outcome)
		return outcome
	}

	status := domain.StatusSuccessful
	if verdict.IsPending {
		status = domain.StatusPending
	}
	updated := ProjectBalances(parsed, req.Accounts, !verdict.IsPending)

	outcome := buildOutcome(parsed, status, verdict.StatusReason, verdict.StatusCode, updated)
	s.publishOutcome(ctx, outcome)
	return outcome
}

// FallbackOutcome is the uniform failure shape returned when the request
// envelope itself is malformed and the pipeline never ran.
func FallbackOutcome() domain.Outcome {
	return domain.Outcome{
		Status:       domain.StatusFailed,
		StatusReason: domain.ReasonMalformed,
		StatusCode:   domain.CodeMalformed,
		Accounts:     []domain.ProjectedAccount{},
	}
}

func buildOutcome(parsed domain.ParsedInstruction, status, reason, code string, accounts []domain.ProjectedAccount) domain.Outcome {
	return domain.Outcome{
		Type:          optionalString(parsed.Type),
		Amount:        optionalAmount(parsed.Amount),
		Currency:      optionalString(parsed.Currency),
		DebitAccount:  optionalString(parsed.DebitAccount),
		CreditAccount: optionalString(parsed.CreditAccount),
		ExecuteBy:     optionalString(parsed.ExecuteBy),
		Status:        status,
		StatusReason:  reason,
		StatusCode:    code,
		Accounts:      accounts,
	}
}

// publishOutcome emits an outcome event when a producer is wired.
// Delivery problems are logged and swallowed: the Outcome is the source
// of truth and event consumers are best-effort.
func (s *Service) publishOutcome(ctx context.Context, outcome domain.Outcome) {
	if s.eventProducer == nil {
		return
	}

	event := rabbitmq.OutcomeEvent{
		ProcessingID: uuid.New(),
		Status:       outcome.Status,
		StatusCode:   outcome.StatusCode,
		Timestamp:    time.Now().UTC(),
	}
	if outcome.Type != nil {
		event.Type = *outcome.Type
	}
	if outcome.Amount != nil {
		event.Amount = *outcome.Amount
	}
	if outcome.Currency != nil {
		event.Currency = *outcome.Currency
	}

	routingKey := "instruction.outcome." + outcome.Status
	if err := s.eventProducer.Publish(ctx, s.eventExchange, routingKey, event); err != nil {
		log.Printf("level=warn component=app msg=\"outcome event publish failed\" status_code=%s err=%v", outcome.StatusCode, err)
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalAmount(value int64) *int64 {
	if value == 0 {
		return nil
	}
	return &value
}
