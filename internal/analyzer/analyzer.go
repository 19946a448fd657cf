// Package analyzer evaluates candidate passwords against a policy and
// returns structured pass/fail feedback. It is meant for password
// creation/change flows where detailed feedback is acceptable; login-time
// checks should stay terse.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/dsolovey/passguard/internal/hibp"
	"github.com/dsolovey/passguard/internal/model"
)

// Analyzer runs the rule pipeline. It holds no per-call state; one instance
// is safe for concurrent use as long as its collaborators are.
type Analyzer struct {
	pwned     hibp.Checker
	blocklist BlocklistLoader
	logger    zerolog.Logger
}

// NewAnalyzer wires the two I/O collaborators. Pass nil for pwned only when
// no policy will enable the breach check.
func NewAnalyzer(pwned hibp.Checker, blocklist BlocklistLoader, logger zerolog.Logger) *Analyzer {
	if blocklist == nil {
		blocklist = FileBlocklistLoader{}
	}
	return &Analyzer{
		pwned:     pwned,
		blocklist: blocklist,
		logger:    logger,
	}
}

// Analyze evaluates password against policy and returns one immutable
// report. The check order is fixed and determines violation order in the
// output: length, character set, composition, context words, blocklist,
// breach lookup. Every check runs regardless of earlier failures, so a
// password can be too short and blocklisted and missing a symbol all at
// once. IsCompliant is true iff no check produced a violation.
func (a *Analyzer) Analyze(ctx context.Context, password string, policy model.PasswordPolicy, contextWords ...string) model.PasswordAnalysis {
	normalized := applyNormalization(password, policy)

	violations := make([]model.PolicyViolation, 0, 4)
	violations = append(violations, checkLength(normalized, policy)...)
	violations = append(violations, checkCharacterRules(normalized, policy)...)
	violations = append(violations, checkComposition(normalized, policy)...)

	if policy.ForbidContextWords && len(contextWords) > 0 {
		violations = append(violations, checkContextWords(normalized, contextWords)...)
	}

	violations = append(violations, a.checkBlocklist(normalized, policy)...)
	violations = append(violations, a.checkPwned(ctx, normalized, policy)...)

	return model.PasswordAnalysis{
		IsCompliant: len(violations) == 0,
		Violations:  violations,
		Suggestions: generalSuggestions(normalized, policy),
	}
}

// checkBlocklist surfaces a missing denylist file as a violation instead of
// skipping silently, so a broken policy is noticed by the operator.
func (a *Analyzer) checkBlocklist(password string, policy model.PasswordPolicy) []model.PolicyViolation {
	if policy.LocalBlocklistPath == "" {
		return nil
	}

	blocked, err := a.blocklist.Load(policy.LocalBlocklistPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn().Err(err).Str("path", policy.LocalBlocklistPath).Msg("blocklist load failed")
		}
		return []model.PolicyViolation{{
			Code:     model.CodeBlocklistMissing,
			Message:  fmt.Sprintf("Blocklist file not found: %s", policy.LocalBlocklistPath),
			HelpText: "Fix your config or disable blocklist checking.",
		}}
	}

	if _, ok := blocked[password]; ok {
		return []model.PolicyViolation{{
			Code:     model.CodeBlocklistedPassword,
			Message:  "This password is in a common/weak password list.",
			HelpText: "Pick something unique; avoid small edits like adding '1!' to a common word.",
		}}
	}

	return nil
}

// checkPwned fails open: a transport or endpoint failure becomes a
// pwned_check_failed violation rather than aborting the analysis, otherwise
// an offline environment could never change passwords.
func (a *Analyzer) checkPwned(ctx context.Context, password string, policy model.PasswordPolicy) []model.PolicyViolation {
	if !policy.CheckPwnedPasswords || a.pwned == nil {
		return nil
	}

	match, err := a.pwned.Check(ctx, password)
	if err != nil {
		a.logger.Warn().Err(err).Msg("breach lookup failed")
		return []model.PolicyViolation{{
			Code:     model.CodePwnedCheckFailed,
			Message:  "Could not complete breach check (network/API error).",
			HelpText: "Try again later or disable the pwned check in your config.",
		}}
	}

	if match.IsPwned {
		return []model.PolicyViolation{{
			Code:     model.CodePwnedPassword,
			Message:  "This password appears in known breach data.",
			HelpText: fmt.Sprintf("Seen %d times in breaches. Choose a different password.", match.BreachCount),
		}}
	}

	return nil
}
