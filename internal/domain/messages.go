package domain

// Human-readable status reasons. These strings are part of the API
// contract and must not drift.
const (
	ReasonMissingKeyword      = "Missing required keyword"
	ReasonInvalidKeywordOrder = "Invalid keyword order"
	ReasonMalformed           = "Malformed instruction: unable to parse keywords"

	ReasonInvalidAmount = "Amount must be a positive integer"

	ReasonAccountNotFound   = "Account not found"
	ReasonSameAccount       = "Debit and credit accounts cannot be the same"
	ReasonInsufficientFunds = "Insufficient funds in debit account"
	ReasonInvalidAccountID  = "Invalid account ID format"

	ReasonCurrencyMismatch            = "Account currency mismatch"
	ReasonUnsupportedCurrency         = "Unsupported currency. Only NGN, USD, GBP, and GHS are supported"
	ReasonInstructionCurrencyMismatch = "Instruction currency does not match account currency"

	ReasonInvalidDateFormat = "Invalid date format"

	ReasonTransactionSuccessful = "Transaction executed successfully"
	ReasonTransactionPending    = "Transaction scheduled for future execution"
)

var parseErrorReasons = map[string]string{
	CodeMissingKeyword:      ReasonMissingKeyword,
	CodeInvalidKeywordOrder: ReasonInvalidKeywordOrder,
	CodeMalformed:           ReasonMalformed,
	CodeInvalidAmount:       ReasonInvalidAmount,
	CodeInvalidAccountID:    ReasonInvalidAccountID,
	CodeInvalidDateFormat:   ReasonInvalidDateFormat,
}

// ParseErrorReason maps a parse-stage error code to its human reason,
// falling back to the malformed-instruction text for unknown codes.
func ParseErrorReason(code string) string {
	if reason, ok := parseErrorReasons[code]; ok {
		return reason
	}
	return ReasonMalformed
}
