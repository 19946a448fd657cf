package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/dsolovey/passguard/internal/model"
)

// Passphrases shorter than this get a length tip even when the policy
// minimum is lower.
const suggestedMinLength = 14

// generalSuggestions produces soft advice. Suggestions never gate
// compliance; the last tip is unconditional.
func generalSuggestions(password string, policy model.PasswordPolicy) []string {
	var tips []string

	floor := suggestedMinLength
	if policy.MinLength > floor {
		floor = policy.MinLength
	}
	if utf8.RuneCountInString(password) < floor {
		tips = append(tips, "Consider using a longer passphrase (14+ characters) for better security.")
	}

	if password == strings.ToLower(password) || password == strings.ToUpper(password) {
		tips = append(tips, "Mixing words or using a multi-word passphrase can improve strength and memorability.")
	}

	tips = append(tips, "Use unique passwords per site (a password manager helps).")
	return tips
}
