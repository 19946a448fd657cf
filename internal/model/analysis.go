package model

// Stable machine-readable violation codes. Codes are the identity of a
// violation; messages may be reworded without breaking consumers.
const (
	CodeLengthTooShort      = "length_too_short"
	CodeLengthTooLong       = "length_too_long"
	CodeSpacesNotAllowed    = "spaces_not_allowed"
	CodeUnicodeNotAllowed   = "unicode_not_allowed"
	CodeMissingUpper        = "missing_upper"
	CodeMissingLower        = "missing_lower"
	CodeMissingDigit        = "missing_digit"
	CodeMissingSymbol       = "missing_symbol"
	CodeContainsContextWord = "contains_context_word"
	CodeBlocklistMissing    = "blocklist_missing"
	CodeBlocklistedPassword = "blocklisted_password"
	CodePwnedPassword       = "pwned_password"
	CodePwnedCheckFailed    = "pwned_check_failed"
)

// PolicyViolation is one failed rule. Violations are data, not errors: a
// misconfigured blocklist or an unreachable breach API surfaces here too, so
// the caller always gets a complete report.
type PolicyViolation struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	HelpText string `json:"help_text,omitempty"`
}

// PasswordAnalysis is the immutable result of one analyze call. Violations
// are ordered by check execution order. Suggestions are informational and
// never affect IsCompliant.
type PasswordAnalysis struct {
	IsCompliant bool              `json:"is_compliant"`
	Violations  []PolicyViolation `json:"violations"`
	Suggestions []string          `json:"suggestions"`
}

// PwnedPasswordMatch is the outcome of a k-anonymity breach lookup.
// BreachCount is 0 when the password is not pwned or the count field of the
// range response could not be parsed.
type PwnedPasswordMatch struct {
	IsPwned     bool `json:"is_pwned"`
	BreachCount int  `json:"breach_count"`
}
