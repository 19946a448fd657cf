package model

// PasswordPolicy enumerates every tunable threshold and flag the analyzer
// honors. Treat values as immutable after construction; build a fresh policy
// (or load one from config) per evaluation instead of mutating a shared one.
type PasswordPolicy struct {
	MinLength int `mapstructure:"min_length" json:"min_length"`
	MaxLength int `mapstructure:"max_length" json:"max_length"`

	// Optional legacy composition rules, all opt-in.
	RequireUpper  bool `mapstructure:"require_upper" json:"require_upper"`
	RequireLower  bool `mapstructure:"require_lower" json:"require_lower"`
	RequireDigit  bool `mapstructure:"require_digit" json:"require_digit"`
	RequireSymbol bool `mapstructure:"require_symbol" json:"require_symbol"`

	AllowSpaces         bool `mapstructure:"allow_spaces" json:"allow_spaces"`
	AllowUnicode        bool `mapstructure:"allow_unicode" json:"allow_unicode"`
	NormalizeUnicodeNFC bool `mapstructure:"normalize_unicode_nfc" json:"normalize_unicode_nfc"`

	LocalBlocklistPath  string `mapstructure:"local_blocklist_path" json:"local_blocklist_path,omitempty"`
	CheckPwnedPasswords bool   `mapstructure:"check_pwned_passwords" json:"check_pwned_passwords"`

	ForbidContextWords bool `mapstructure:"forbid_context_words" json:"forbid_context_words"`
}

// ModernDefaultPolicy is the length-first baseline: 12..128 characters,
// composition rules off, spaces and unicode allowed.
func ModernDefaultPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:          12,
		MaxLength:          128,
		AllowSpaces:        true,
		AllowUnicode:       true,
		ForbidContextWords: true,
	}
}

// LegacyStrictPolicy mirrors an old enterprise style policy with all four
// composition rules enabled.
func LegacyStrictPolicy() PasswordPolicy {
	p := ModernDefaultPolicy()
	p.RequireUpper = true
	p.RequireLower = true
	p.RequireDigit = true
	p.RequireSymbol = true
	return p
}
