package spec

import (
	"strconv"
	"strings"
	"unicode"

	"qakit/internal/config"
)

// Normalize fills per-case defaults, resolves generated identifiers and
// validates id uniqueness for every test case in the suite. It mutates
// the suite in place and is deterministic: the same suite content and
// configuration always produce the same identifiers.
func Normalize(suite *Suite, cfg config.Config) error {
	seenIDs := make(map[string]bool, len(suite.Tests))
	identCounts := make(map[string]int, len(suite.Tests))

	for i := range suite.Tests {
		tc := &suite.Tests[i]

		if seenIDs[tc.ID] {
			return &DuplicateTestIDError{Path: suite.SourcePath, ID: tc.ID}
		}
		seenIDs[tc.ID] = true

		applyDefaults(tc, cfg)

		base := SanitizeIdent(tc.Name)
		identCounts[base]++
		if n := identCounts[base]; n > 1 {
			tc.Ident = base + "_" + strconv.Itoa(n)
		} else {
			tc.Ident = base
		}

		tc.Method = strings.ToUpper(tc.Method)
	}

	return nil
}

// applyDefaults fills optional fields with their defaults. Per-case
// overrides win over the global configuration.
func applyDefaults(tc *TestCase, cfg config.Config) {
	if tc.Body == nil {
		tc.Body = map[string]interface{}{}
	}
	if tc.Params == nil {
		tc.Params = map[string]string{}
	}
	if tc.IgnoreJSON == nil {
		tc.IgnoreJSON = []string{}
	}

	if tc.IgnoreAssert != nil {
		tc.EffectiveIgnoreAssert = *tc.IgnoreAssert
	} else {
		tc.EffectiveIgnoreAssert = cfg.IgnoreAssert
	}

	if tc.UseWildcard != nil {
		tc.EffectiveUseWildcard = *tc.UseWildcard
	} else {
		tc.EffectiveUseWildcard = cfg.UseWildcard
	}
}

// SanitizeIdent converts a test case name into a valid generated
// function identifier: lowercase, every run of non-alphanumeric
// characters collapsed to a single underscore, and a "t_" prefix when
// the result would start with a digit.
func SanitizeIdent(name string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range strings.ToLower(name) {
		if unicode.IsLower(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	ident := strings.TrimRight(b.String(), "_")
	if ident == "" {
		return "unnamed"
	}
	if unicode.IsDigit(rune(ident[0])) {
		ident = "t_" + ident
	}
	return ident
}
