/**
 * @description
 * This file implements the business-rule validation of a parsed payment
 * instruction against the caller-supplied account snapshot. Checks run in
 * a fixed fail-fast order so exactly one status code wins per call:
 * currency support, account existence, account distinctness, currency
 * agreement, funds coverage, then the pending-vs-immediate decision.
 *
 * @dependencies
 * - fmt, strings: Standard Go libraries.
 * - internal/domain, internal/parser: For the models and date comparator.
 */

package app

import (
	"fmt"
	"strings"

	"github.com/transfa/instruction-service/internal/domain"
	"github.com/transfa/instruction-service/internal/parser"
)

// supportedCurrencies is the fixed set accepted in instructions. The
// parsed token is compared as extracted (the parser already upper-cases
// it along with the rest of the normalized instruction).
var supportedCurrencies = map[string]struct{}{
	"NGN": {},
	"USD": {},
	"GBP": {},
	"GHS": {},
}

func invalidVerdict(code, reason string) domain.ValidationVerdict {
	return domain.ValidationVerdict{IsValid: false, StatusCode: code, StatusReason: reason}
}

// ValidateTransaction applies the business rules to a parse-error-free
// instruction. The snapshot is read-only; no check mutates it.
func ValidateTransaction(parsed domain.ParsedInstruction, accounts []domain.Account) domain.ValidationVerdict {
	if _, ok := supportedCurrencies[parsed.Currency]; !ok {
		return invalidVerdict(domain.CodeUnsupportedCurrency, domain.ReasonUnsupportedCurrency)
	}

	debitAccount := findAccount(accounts, parsed.DebitAccount)
	creditAccount := findAccount(accounts, parsed.CreditAccount)

	if debitAccount == nil {
		return invalidVerdict(domain.CodeAccountNotFound,
			fmt.Sprintf("%s: %s", domain.ReasonAccountNotFound, parsed.DebitAccount))
	}
	if creditAccount == nil {
		return invalidVerdict(domain.CodeAccountNotFound,
			fmt.Sprintf("%s: %s", domain.ReasonAccountNotFound, parsed.CreditAccount))
	}

	if parsed.DebitAccount == parsed.CreditAccount {
		return invalidVerdict(domain.CodeSameAccount, domain.ReasonSameAccount)
	}

	if debitAccount.Currency != creditAccount.Currency {
		return invalidVerdict(domain.CodeCurrencyMismatch, domain.ReasonCurrencyMismatch)
	}

	// Instruction currency is checked against the debit side only; the
	// preceding check already ties the credit side to it.
	if parsed.Currency != strings.ToUpper(debitAccount.Currency) {
		return invalidVerdict(domain.CodeCurrencyMismatch, domain.ReasonInstructionCurrencyMismatch)
	}

	if debitAccount.Balance < parsed.Amount {
		return invalidVerdict(domain.CodeInsufficientFunds,
			fmt.Sprintf("%s: %s", domain.ReasonInsufficientFunds, parsed.DebitAccount))
	}

	if parsed.ExecuteBy != "" && parser.CompareDateWithCurrent(parsed.ExecuteBy) == parser.DateFuture {
		return domain.ValidationVerdict{
			IsValid:      true,
			StatusCode:   domain.CodePending,
			StatusReason: domain.ReasonTransactionPending,
			IsPending:    true,
		}
	}

	return domain.ValidationVerdict{
		IsValid:      true,
		StatusCode:   domain.CodeSuccessful,
		StatusReason: domain.ReasonTransactionSuccessful,
		IsPending:    false,
	}
}

// findAccount does a linear snapshot lookup by exact id. Snapshots are a
// handful of entries, so no index is built.
func findAccount(accounts []domain.Account, id string) *domain.Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}
