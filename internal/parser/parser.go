/**
 * @description
 * This file implements the instruction compiler: a keyword-positional
 * grammar engine that turns a free-text payment instruction into a
 * structured ParsedInstruction or a first-encountered error code.
 *
 * The grammar is constrained natural language, e.g.:
 *
 *   DEBIT 500 USD FROM ACCOUNT A1 FOR invoice TO ACCOUNT B2 ON 2025-01-01
 *   CREDIT 250 GBP TO ACCOUNT B2 FOR salary FROM ACCOUNT A1
 *
 * Parsing is a pipeline of guard steps over keyword spans: normalize,
 * detect the instruction type, locate first-occurrence keyword indexes,
 * enforce the per-type ordering contract, then extract amount, currency,
 * accounts, and the optional execution date. The first failing guard
 * wins; its code is appended to Errors and everything downstream is
 * skipped. Account IDs and the date are sliced from the original-case
 * copy so their casing survives normalization.
 *
 * @dependencies
 * - strconv, strings: Standard Go libraries.
 * - internal/domain: For the ParsedInstruction model and status codes.
 */

package parser

import (
	"strconv"
	"strings"

	"github.com/transfa/instruction-service/internal/domain"
)

// Keyword literals searched for in the normalized (upper-cased) copy.
const (
	kwDebit       = "DEBIT"
	kwCredit      = "CREDIT"
	kwFromAccount = "FROM ACCOUNT"
	kwToAccount   = "TO ACCOUNT"
	kwFor         = "FOR"
	kwOn          = "ON"
)

// keywordSpans holds the first-occurrence index of each grammar keyword
// in the normalized instruction, or -1 when absent. The ON keyword is
// optional; the other three are required.
type keywordSpans struct {
	fromAccount int
	toAccount   int
	forKeyword  int
	onDate      int
}

func locateKeywords(normalized string) keywordSpans {
	return keywordSpans{
		fromAccount: strings.Index(normalized, kwFromAccount),
		toAccount:   strings.Index(normalized, kwToAccount),
		forKeyword:  strings.Index(normalized, kwFor),
		onDate:      strings.Index(normalized, kwOn),
	}
}

// ParseInstruction compiles one raw instruction string. It is a pure
// function: the same input always yields an identical result, and no
// state survives the call.
func ParseInstruction(instruction string) domain.ParsedInstruction {
	result := domain.ParsedInstruction{}

	original := strings.TrimSpace(instruction)
	normalized := strings.ToUpper(original)

	if len(normalized) == 0 {
		result.Errors = append(result.Errors, domain.CodeMalformed)
		return result
	}

	// The type keyword must open the instruction.
	isDebit := strings.HasPrefix(normalized, kwDebit)
	isCredit := strings.HasPrefix(normalized, kwCredit)
	if !isDebit && !isCredit {
		result.Errors = append(result.Errors, domain.CodeMissingKeyword)
		return result
	}
	if isDebit {
		result.Type = domain.TypeDebit
	} else {
		result.Type = domain.TypeCredit
	}

	spans := locateKeywords(normalized)
	if spans.fromAccount == -1 || spans.toAccount == -1 || spans.forKeyword == -1 {
		result.Errors = append(result.Errors, domain.CodeMissingKeyword)
		return result
	}

	if isDebit {
		parseDebit(&result, original, normalized, spans)
	} else {
		parseCredit(&result, original, normalized, spans)
	}
	if result.HasErrors() {
		return result
	}

	// Optional execution date after the ON keyword.
	if spans.onDate != -1 {
		datePart := sliceTrimmed(original, spans.onDate+len(kwOn)+1, len(original))
		if !IsDateFormatValid(datePart) {
			result.Errors = append(result.Errors, domain.CodeInvalidDateFormat)
			return result
		}
		result.ExecuteBy = datePart
	}

	return result
}

// parseDebit enforces the DEBIT ordering contract
// (DEBIT@0 < FROM ACCOUNT < FOR < TO ACCOUNT) and extracts the fields
// positioned by it. The FROM ACCOUNT index must clear the type keyword
// plus at least one separator so an amount segment can exist.
func parseDebit(result *domain.ParsedInstruction, original, normalized string, spans keywordSpans) {
	ordered := spans.fromAccount > len(kwDebit) &&
		spans.forKeyword > spans.fromAccount &&
		spans.toAccount > spans.forKeyword
	if !ordered {
		result.Errors = append(result.Errors, domain.CodeInvalidKeywordOrder)
		return
	}

	if !extractAmountCurrency(result, normalized, len(kwDebit), spans.fromAccount) {
		return
	}

	// Debit account sits between FROM ACCOUNT and FOR.
	debitAccount := sliceTrimmed(original, spans.fromAccount+len(kwFromAccount)+1, spans.forKeyword)
	if !IsAccountIDValid(debitAccount) {
		result.Errors = append(result.Errors, domain.CodeInvalidAccountID)
		return
	}
	result.DebitAccount = debitAccount

	// Credit account runs from TO ACCOUNT to the ON keyword or end of input.
	creditEnd := len(original)
	if spans.onDate != -1 {
		creditEnd = spans.onDate
	}
	creditAccount := sliceTrimmed(original, spans.toAccount+len(kwToAccount)+1, creditEnd)
	if !IsAccountIDValid(creditAccount) {
		result.Errors = append(result.Errors, domain.CodeInvalidAccountID)
		return
	}
	result.CreditAccount = creditAccount
}

// parseCredit mirrors parseDebit for the CREDIT ordering contract
// (CREDIT@0 < TO ACCOUNT < FOR < FROM ACCOUNT).
func parseCredit(result *domain.ParsedInstruction, original, normalized string, spans keywordSpans) {
	ordered := spans.toAccount > len(kwCredit) &&
		spans.forKeyword > spans.toAccount &&
		spans.fromAccount > spans.forKeyword
	if !ordered {
		result.Errors = append(result.Errors, domain.CodeInvalidKeywordOrder)
		return
	}

	if !extractAmountCurrency(result, normalized, len(kwCredit), spans.toAccount) {
		return
	}

	// Credit account sits between TO ACCOUNT and FOR.
	creditAccount := sliceTrimmed(original, spans.toAccount+len(kwToAccount)+1, spans.forKeyword)
	if !IsAccountIDValid(creditAccount) {
		result.Errors = append(result.Errors, domain.CodeInvalidAccountID)
		return
	}
	result.CreditAccount = creditAccount

	// Debit account runs from FROM ACCOUNT to the ON keyword or end of input.
	debitEnd := len(original)
	if spans.onDate != -1 {
		debitEnd = spans.onDate
	}
	debitAccount := sliceTrimmed(original, spans.fromAccount+len(kwFromAccount)+1, debitEnd)
	if !IsAccountIDValid(debitAccount) {
		result.Errors = append(result.Errors, domain.CodeInvalidAccountID)
		return
	}
	result.DebitAccount = debitAccount
}

// extractAmountCurrency tokenizes the normalized segment between the type
// keyword and the first directional keyword. Token 0 must carry a
// positive integer amount; token 1 is taken as the currency candidate,
// validated later against the supported set. Reports whether extraction
// succeeded.
func extractAmountCurrency(result *domain.ParsedInstruction, normalized string, start, end int) bool {
	segment := sliceTrimmed(normalized, start, end)
	tokens := Tokenize(segment)
	if len(tokens) < 2 {
		result.Errors = append(result.Errors, domain.CodeMalformed)
		return false
	}

	amount, ok := parseAmount(tokens[0])
	if !ok {
		result.Errors = append(result.Errors, domain.CodeInvalidAmount)
		return false
	}

	result.Amount = amount
	result.Currency = tokens[1]
	return true
}

// parseAmount rejects fractional and negative tokens at the lexical
// level, then parses the leading decimal-digit run of what remains. A
// token like "500abc" yields 500; a token with no leading digits fails.
// The lexical guards run first so "1.0" and "-5" fail even though their
// digit prefixes would parse.
func parseAmount(token string) (int64, bool) {
	if strings.Contains(token, ".") || strings.HasPrefix(token, "-") {
		return 0, false
	}

	digits := strings.TrimPrefix(token, "+")
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	amount, err := strconv.ParseInt(digits[:end], 10, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// sliceTrimmed extracts s[start:end] with both bounds clamped to the
// string, returning "" for inverted ranges, then trims surrounding
// whitespace. Keyword spans can produce out-of-range or inverted bounds
// on degenerate input; those collapse to "" and fail the field check.
func sliceTrimmed(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(s[start:end])
}
