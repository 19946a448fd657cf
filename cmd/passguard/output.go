package main

import (
	"encoding/json"
	"strings"

	"github.com/dsolovey/passguard/internal/model"
)

// renderJSON produces the automation-friendly shape:
// {"is_compliant": ..., "violations": [...], "suggestions": [...]}.
func renderJSON(result model.PasswordAnalysis) (string, error) {
	type violation struct {
		Code     string `json:"code"`
		Message  string `json:"message"`
		HelpText string `json:"help_text"`
	}

	payload := struct {
		IsCompliant bool        `json:"is_compliant"`
		Violations  []violation `json:"violations"`
		Suggestions []string    `json:"suggestions"`
	}{
		IsCompliant: result.IsCompliant,
		Violations:  make([]violation, 0, len(result.Violations)),
		Suggestions: result.Suggestions,
	}
	if payload.Suggestions == nil {
		payload.Suggestions = []string{}
	}
	for _, v := range result.Violations {
		payload.Violations = append(payload.Violations, violation(v))
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func renderText(result model.PasswordAnalysis) string {
	var b strings.Builder

	if result.IsCompliant {
		b.WriteString("Password is compliant with the policy.")
		return b.String()
	}

	b.WriteString("Password is NOT compliant.\n\n")
	b.WriteString("Violations:\n")
	for _, v := range result.Violations {
		b.WriteString("- [" + v.Code + "] " + v.Message + "\n")
		if v.HelpText != "" {
			b.WriteString("    hint: " + v.HelpText + "\n")
		}
	}

	if len(result.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, tip := range result.Suggestions {
			b.WriteString("- " + tip + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
