/**
 * @description
 * This file defines the core domain models for the instruction-service.
 * These structs represent the entities flowing through the instruction
 * compilation pipeline: the caller-supplied account snapshot, the parsed
 * instruction, the validation verdict, and the externally visible outcome.
 *
 * @notes
 * - Balances are `int64` in the smallest currency unit, which avoids
 *   floating-point inaccuracies with financial data.
 * - Every entity is created fresh per call and discarded once the Outcome
 *   is returned; nothing here is shared between calls.
 */

package domain

// Instruction types recognized by the parser.
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

// Outcome statuses.
const (
	StatusSuccessful = "successful"
	StatusPending    = "pending"
	StatusFailed     = "failed"
)

// Status codes surfaced in Outcome.StatusCode. The exact values are a
// stable contract with callers.
const (
	CodeMissingKeyword      = "SY01"
	CodeInvalidKeywordOrder = "SY02"
	CodeMalformed           = "SY03"
	CodeInvalidAmount       = "AM01"
	CodeInvalidAccountID    = "AC04"
	CodeInvalidDateFormat   = "DT01"
	CodeUnsupportedCurrency = "CU02"
	CodeAccountNotFound     = "AC03"
	CodeSameAccount         = "AC02"
	CodeCurrencyMismatch    = "CU01"
	CodeInsufficientFunds   = "AC01"
	CodePending             = "AP02"
	CodeSuccessful          = "AP00"
)

// Account is one entry of the caller-supplied snapshot. The snapshot is
// read-only input; the projector always emits fresh copies.
type Account struct {
	ID       string `json:"id"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// ProjectedAccount is an account after balance projection. BalanceBefore
// always carries the snapshot balance, whether or not the transfer ran.
type ProjectedAccount struct {
	ID            string `json:"id"`
	Balance       int64  `json:"balance"`
	BalanceBefore int64  `json:"balance_before"`
	Currency      string `json:"currency"`
}

// ParsedInstruction is the structured result of compiling one free-text
// instruction. Zero values mean "unset": an empty Type means no type was
// detected, a zero Amount means no amount was extracted, an empty
// ExecuteBy means immediate execution intent.
//
// Errors is append-only and consumed only at index 0; the slice form is
// kept so multi-error reporting could be added without breaking callers.
type ParsedInstruction struct {
	Type          string
	Amount        int64
	Currency      string
	DebitAccount  string
	CreditAccount string
	ExecuteBy     string
	Errors        []string
}

// HasErrors reports whether parsing failed. A non-empty error list
// short-circuits every downstream stage.
func (p *ParsedInstruction) HasErrors() bool {
	return len(p.Errors) > 0
}

// FirstError returns the winning error code, or "" when parsing succeeded.
func (p *ParsedInstruction) FirstError() string {
	if len(p.Errors) == 0 {
		return ""
	}
	return p.Errors[0]
}

// ValidationVerdict is the business-rule decision for one parsed
// instruction against one snapshot. IsPending is meaningful only when
// IsValid is true.
type ValidationVerdict struct {
	IsValid      bool
	StatusCode   string
	StatusReason string
	IsPending    bool
}

// Outcome is the externally visible record of one processed instruction.
// Pointer fields are nil when the corresponding parsed field never got
// set, so they serialize as JSON null exactly like the upstream contract.
type Outcome struct {
	Type          *string            `json:"type"`
	Amount        *int64             `json:"amount"`
	Currency      *string            `json:"currency"`
	DebitAccount  *string            `json:"debit_account"`
	CreditAccount *string            `json:"credit_account"`
	ExecuteBy     *string            `json:"execute_by"`
	Status        string             `json:"status"`
	StatusReason  string             `json:"status_reason"`
	StatusCode    string             `json:"status_code"`
	Accounts      []ProjectedAccount `json:"accounts"`
}

// ProcessRequest is the envelope submitted by callers: a snapshot of
// accounts plus the raw instruction text.
type ProcessRequest struct {
	Accounts    []Account `json:"accounts"`
	Instruction string    `json:"instruction"`
}
