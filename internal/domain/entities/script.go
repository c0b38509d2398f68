package entities

import "strings"

// Script-presence helpers matching the codepoint ranges used by the logging
// pipeline. Search events arrive with flags precomputed; these exist for
// validation and for ingestion collaborators.

// HasKanji reports whether s contains a CJK unified ideograph.
func HasKanji(s string) bool {
	return containsRange(s, 0x4E00, 0x9FFF)
}

// HasKana reports whether s contains hiragana or katakana.
func HasKana(s string) bool {
	return containsRange(s, 0x3040, 0x30FF)
}

// HasRomaji reports whether s contains an ASCII letter.
func HasRomaji(s string) bool {
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return true
		}
	}
	return false
}

// HasHalfwidthKana reports whether s contains half-width katakana.
func HasHalfwidthKana(s string) bool {
	return containsRange(s, 0xFF65, 0xFF9F)
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}

// NormalizeQuery applies the same normalization the logging pipeline applies
// to query_norm: trim, collapse internal whitespace, lowercase.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
