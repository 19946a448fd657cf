package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsolovey/passguard/internal/model"
)

type stubPwnedChecker struct {
	match model.PwnedPasswordMatch
	err   error
	calls int
}

func (s *stubPwnedChecker) Check(_ context.Context, _ string) (model.PwnedPasswordMatch, error) {
	s.calls++
	return s.match, s.err
}

func newTestAnalyzer(pwned *stubPwnedChecker) *Analyzer {
	if pwned == nil {
		return NewAnalyzer(nil, nil, zerolog.Nop())
	}
	return NewAnalyzer(pwned, nil, zerolog.Nop())
}

func hasCode(violations []model.PolicyViolation, code string) bool {
	for _, v := range violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func writeBlocklist(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "block.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))
	return path
}

func TestGoodPassphraseIsCompliant(t *testing.T) {
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{MinLength: 12, MaxLength: 128, AllowSpaces: true, AllowUnicode: true}

	res := a.Analyze(context.Background(), "Correct Horse Battery Staple", policy)

	assert.True(t, res.IsCompliant)
	assert.Empty(t, res.Violations)
}

func TestTooShortPassword(t *testing.T) {
	a := newTestAnalyzer(nil)
	policy := model.ModernDefaultPolicy()

	res := a.Analyze(context.Background(), "short", policy)

	assert.False(t, res.IsCompliant)
	assert.True(t, hasCode(res.Violations, model.CodeLengthTooShort))
}

func TestComplianceMatchesViolationList(t *testing.T) {
	a := newTestAnalyzer(nil)
	policy := model.LegacyStrictPolicy()

	for _, password := range []string{"x", "Correct Horse Battery Staple 1!", "aaaaaaaaaaaaaaaa"} {
		res := a.Analyze(context.Background(), password, policy)
		assert.Equal(t, len(res.Violations) == 0, res.IsCompliant, "password %q", password)
	}
}

func TestBlocklistedPassword(t *testing.T) {
	path := writeBlocklist(t, "password\n123456\n")
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{MinLength: 8, MaxLength: 128, AllowSpaces: true, AllowUnicode: true, LocalBlocklistPath: path}

	res := a.Analyze(context.Background(), "password", policy)

	assert.False(t, res.IsCompliant)
	assert.True(t, hasCode(res.Violations, model.CodeBlocklistedPassword))
}

func TestPasswordAbsentFromBlocklist(t *testing.T) {
	path := writeBlocklist(t, "password\n123456\n")
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{MinLength: 8, MaxLength: 128, AllowSpaces: true, AllowUnicode: true, LocalBlocklistPath: path}

	res := a.Analyze(context.Background(), "somethingelse", policy)

	assert.False(t, hasCode(res.Violations, model.CodeBlocklistedPassword))
}

func TestMissingBlocklistFileIsReported(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does_not_exist.txt")
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{MinLength: 8, MaxLength: 128, AllowSpaces: true, AllowUnicode: true, LocalBlocklistPath: missing}

	res := a.Analyze(context.Background(), "somepassword", policy)

	assert.False(t, res.IsCompliant)
	assert.True(t, hasCode(res.Violations, model.CodeBlocklistMissing))
	assert.False(t, hasCode(res.Violations, model.CodeBlocklistedPassword))
}

func TestBlocklistMatchesNormalizedPassword(t *testing.T) {
	// "é" precomposed in the list, decomposed in the input; NFC makes them equal.
	path := writeBlocklist(t, "cafépassword\n")
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{
		MinLength: 8, MaxLength: 128,
		AllowSpaces: true, AllowUnicode: true,
		NormalizeUnicodeNFC: true,
		LocalBlocklistPath:  path,
	}

	res := a.Analyze(context.Background(), "cafépassword", policy)

	assert.True(t, hasCode(res.Violations, model.CodeBlocklistedPassword))
}

func TestPwnedCheckFailsOpen(t *testing.T) {
	checker := &stubPwnedChecker{err: errors.New("connection refused")}
	a := newTestAnalyzer(checker)
	policy := model.ModernDefaultPolicy()
	policy.CheckPwnedPasswords = true

	res := a.Analyze(context.Background(), "Correct Horse Battery Staple", policy)

	assert.False(t, res.IsCompliant)
	assert.True(t, hasCode(res.Violations, model.CodePwnedCheckFailed))
	assert.False(t, hasCode(res.Violations, model.CodePwnedPassword))
}

func TestPwnedPasswordIsReported(t *testing.T) {
	checker := &stubPwnedChecker{match: model.PwnedPasswordMatch{IsPwned: true, BreachCount: 42}}
	a := newTestAnalyzer(checker)
	policy := model.ModernDefaultPolicy()
	policy.CheckPwnedPasswords = true

	res := a.Analyze(context.Background(), "Correct Horse Battery Staple", policy)

	assert.False(t, res.IsCompliant)
	assert.True(t, hasCode(res.Violations, model.CodePwnedPassword))
}

func TestPwnedCheckSkippedWhenDisabled(t *testing.T) {
	checker := &stubPwnedChecker{match: model.PwnedPasswordMatch{IsPwned: true, BreachCount: 42}}
	a := newTestAnalyzer(checker)

	res := a.Analyze(context.Background(), "Correct Horse Battery Staple", model.ModernDefaultPolicy())

	assert.True(t, res.IsCompliant)
	assert.Zero(t, checker.calls)
}

func TestChecksDoNotShortCircuitEachOther(t *testing.T) {
	path := writeBlocklist(t, "abc\n")
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{
		MinLength: 8, MaxLength: 128,
		AllowSpaces: true, AllowUnicode: true,
		RequireSymbol:      true,
		LocalBlocklistPath: path,
	}

	res := a.Analyze(context.Background(), "abc", policy)

	// Too short, missing a symbol and blocklisted, all in one report, in
	// check-execution order.
	require.Len(t, res.Violations, 3)
	assert.Equal(t, model.CodeLengthTooShort, res.Violations[0].Code)
	assert.Equal(t, model.CodeMissingSymbol, res.Violations[1].Code)
	assert.Equal(t, model.CodeBlocklistedPassword, res.Violations[2].Code)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	path := writeBlocklist(t, "password\n")
	a := newTestAnalyzer(nil)
	policy := model.PasswordPolicy{MinLength: 12, MaxLength: 128, AllowSpaces: true, AllowUnicode: true, LocalBlocklistPath: path}

	first := a.Analyze(context.Background(), "short", policy, "daniil")
	second := a.Analyze(context.Background(), "short", policy, "daniil")

	assert.Equal(t, first, second)
}

func TestSuggestionsPresentOnCompliantPassword(t *testing.T) {
	a := newTestAnalyzer(nil)

	res := a.Analyze(context.Background(), "Correct Horse Battery Staple", model.ModernDefaultPolicy())

	require.True(t, res.IsCompliant)
	require.NotEmpty(t, res.Suggestions)
	assert.Contains(t, res.Suggestions, "Use unique passwords per site (a password manager helps).")
}

func TestContextWordsIgnoredWhenPolicyDisablesThem(t *testing.T) {
	a := newTestAnalyzer(nil)
	policy := model.ModernDefaultPolicy()
	policy.ForbidContextWords = false

	res := a.Analyze(context.Background(), "DaniilCorporation", policy, "daniil")

	assert.False(t, hasCode(res.Violations, model.CodeContainsContextWord))
}
