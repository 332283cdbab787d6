package escansion

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Compose returns s in Unicode normalization form C, so that a vowel and
// a combining acute accent become a single rune before syllabification.
func Compose(s string) string {
	return norm.NFC.String(s)
}

// atoneReplacer removes acute accents and diaereses from vowels in both
// cases. Ñ and ñ are letters in their own right and are kept.
var atoneReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"ü", "u", "ï", "i", "ë", "e",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U",
	"Ü", "U", "Ï", "I", "Ë", "E",
)

// Atone strips vowel diacritics from s.
func Atone(s string) string {
	return atoneReplacer.Replace(s)
}

// Vowel classes, on lowercase runes.

func isStrong(r rune) bool {
	switch r {
	case 'a', 'e', 'o', 'á', 'é', 'ó':
		return true
	}
	return false
}

func isWeak(r rune) bool {
	switch r {
	case 'i', 'u', 'ü', 'ï':
		return true
	}
	return false
}

func isStressedWeak(r rune) bool {
	return r == 'í' || r == 'ú'
}

func isVowel(r rune) bool {
	return isStrong(r) || isWeak(r) || isStressedWeak(r) || r == 'ë'
}

func isAccented(r rune) bool {
	switch r {
	case 'á', 'é', 'í', 'ó', 'ú':
		return true
	}
	return false
}

// isAccentedVowel is like isAccented for either case.
func isAccentedVowel(r rune) bool {
	return isAccented(unicode.ToLower(r))
}

// mayEndLiaison and mayStartLiaison are the boundary letters across
// which synalepha can fuse two words.
func mayEndLiaison(r rune) bool {
	r = unicode.ToLower(r)
	return isVowel(r) || r == 'y'
}

func mayStartLiaison(r rune) bool {
	r = unicode.ToLower(r)
	return isVowel(r) || r == 'h' || r == 'y'
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	rs := []rune(s)
	if len(rs) == 0 {
		return 0
	}
	return rs[len(rs)-1]
}

func runeLen(s string) int {
	return len([]rune(s))
}
