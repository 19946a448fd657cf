package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsolovey/passguard/internal/model"
)

func TestLengthTipBelowFourteenCharacters(t *testing.T) {
	tips := generalSuggestions("Short1!", model.ModernDefaultPolicy())
	assert.Contains(t, tips, "Consider using a longer passphrase (14+ characters) for better security.")
}

func TestLengthTipHonorsHigherPolicyMinimum(t *testing.T) {
	policy := model.ModernDefaultPolicy()
	policy.MinLength = 20

	// 16 characters: above the generic floor, below the policy minimum.
	tips := generalSuggestions("Sixteen chars ok", policy)
	assert.Contains(t, tips, "Consider using a longer passphrase (14+ characters) for better security.")
}

func TestCaseDiversityTip(t *testing.T) {
	lower := generalSuggestions("all lowercase passphrase", model.ModernDefaultPolicy())
	assert.Contains(t, lower, "Mixing words or using a multi-word passphrase can improve strength and memorability.")

	mixed := generalSuggestions("Mixed Case Passphrase", model.ModernDefaultPolicy())
	assert.NotContains(t, mixed, "Mixing words or using a multi-word passphrase can improve strength and memorability.")
}

func TestUniquePasswordTipIsUnconditional(t *testing.T) {
	tips := generalSuggestions("A Very Long And Mixed Passphrase 42", model.ModernDefaultPolicy())
	assert.Equal(t, []string{"Use unique passwords per site (a password manager helps)."}, tips)
}
