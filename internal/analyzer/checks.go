package analyzer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dsolovey/passguard/internal/model"
)

// The fixed symbol set for the composition rule: ASCII punctuation only,
// deliberately not configurable.
const asciiSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// applyNormalization canonicalizes the password to NFC when the policy asks
// for it. Every downstream check consumes the returned string, never the raw
// input.
func applyNormalization(password string, policy model.PasswordPolicy) string {
	if policy.NormalizeUnicodeNFC {
		return norm.NFC.String(password)
	}
	return password
}

// checkLength measures length in Unicode code points, not bytes or grapheme
// clusters. With inverted bounds (min > max) both violations fire; the
// policy is not validated here.
func checkLength(password string, policy model.PasswordPolicy) []model.PolicyViolation {
	var out []model.PolicyViolation
	n := utf8.RuneCountInString(password)

	if n < policy.MinLength {
		out = append(out, model.PolicyViolation{
			Code:     model.CodeLengthTooShort,
			Message:  fmt.Sprintf("Password must be at least %d characters.", policy.MinLength),
			HelpText: "Long passphrases are usually easier to remember and harder to guess.",
		})
	}

	if n > policy.MaxLength {
		out = append(out, model.PolicyViolation{
			Code:     model.CodeLengthTooLong,
			Message:  fmt.Sprintf("Password must be at most %d characters.", policy.MaxLength),
			HelpText: "Rejecting (not truncating) avoids surprising login bugs and performance issues.",
		})
	}

	return out
}

// checkCharacterRules rejects whitespace and non-ASCII characters when the
// policy forbids them. The unicode violation is reported at most once; the
// first offending rune stops the scan.
func checkCharacterRules(password string, policy model.PasswordPolicy) []model.PolicyViolation {
	var out []model.PolicyViolation

	if !policy.AllowSpaces && strings.ContainsFunc(password, unicode.IsSpace) {
		out = append(out, model.PolicyViolation{
			Code:     model.CodeSpacesNotAllowed,
			Message:  "Spaces are not allowed by this policy.",
			HelpText: "If you control the system, allowing spaces is generally more user-friendly.",
		})
	}

	if !policy.AllowUnicode {
		// Strict ASCII: anything above code point 127 is rejected, accented
		// Latin-1 letters included.
		for _, r := range password {
			if r > 127 {
				out = append(out, model.PolicyViolation{
					Code:     model.CodeUnicodeNotAllowed,
					Message:  "Unicode characters are not allowed by this policy.",
					HelpText: "If possible, allow Unicode to support better passphrases and international users.",
				})
				break
			}
		}
	}

	return out
}

// checkComposition applies the four opt-in character-class rules. Case
// classification is Unicode-aware so accented passphrases are judged
// correctly; the symbol class is ASCII punctuation only.
func checkComposition(password string, policy model.PasswordPolicy) []model.PolicyViolation {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(asciiSymbols, r):
			hasSymbol = true
		}
	}

	var out []model.PolicyViolation
	if policy.RequireUpper && !hasUpper {
		out = append(out, model.PolicyViolation{
			Code:    model.CodeMissingUpper,
			Message: "Add at least one uppercase letter (A-Z).",
		})
	}
	if policy.RequireLower && !hasLower {
		out = append(out, model.PolicyViolation{
			Code:    model.CodeMissingLower,
			Message: "Add at least one lowercase letter (a-z).",
		})
	}
	if policy.RequireDigit && !hasDigit {
		out = append(out, model.PolicyViolation{
			Code:    model.CodeMissingDigit,
			Message: "Add at least one digit (0-9).",
		})
	}
	if policy.RequireSymbol && !hasSymbol {
		out = append(out, model.PolicyViolation{
			Code:    model.CodeMissingSymbol,
			Message: "Add at least one symbol (example: ! or #).",
		})
	}

	return out
}

// checkContextWords looks for caller-supplied words (username, legal name,
// company) inside the password, case-insensitively. Only the first matching
// word is reported.
func checkContextWords(password string, contextWords []string) []model.PolicyViolation {
	lowered := strings.ToLower(password)

	for _, word := range contextWords {
		cleaned := strings.TrimSpace(word)
		if cleaned == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(cleaned)) {
			return []model.PolicyViolation{{
				Code:     model.CodeContainsContextWord,
				Message:  fmt.Sprintf("Password contains a context word: '%s'.", cleaned),
				HelpText: "Avoid using your name/username/company name inside passwords.",
			}}
		}
	}

	return nil
}
