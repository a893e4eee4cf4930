// Package textnorm provides the text folds every classifier and resolver
// builds on. All folds are pure and idempotent: fold(fold(x)) == fold(x).
package textnorm

import (
	"strings"
	"unicode"
)

// diacriticFold maps accented Latin letters to their base letter. The
// original transcriptions are Spanish, so the table covers the Latin-1
// range the speech recognizer actually emits.
var diacriticFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a', 'ã': 'a', 'å': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c', 'ý': 'y',
}

// foldRune lowercases a rune and strips its diacritic, if any.
// Combining marks (U+0300..U+036F) fold to -1 and are dropped.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r >= 0x0300 && r <= 0x036F {
		return -1
	}
	if base, ok := diacriticFold[r]; ok {
		return base
	}
	return r
}

// FoldIntent lowercases and strips diacritics but keeps spacing and
// punctuation. Intent classifiers match phrases against this form.
func FoldIntent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded := foldRune(r); folded >= 0 {
			b.WriteRune(folded)
		}
	}
	return b.String()
}

// Fold reduces text to lowercase ascii alphanumerics: the comparison form
// used for fuzzy matching against directory entries.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range FoldIntent(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// voiceFillers are tokens the speech recognizer inserts for dictation
// commands; they carry no lexical content.
var voiceFillers = []string{"guion", "espacio", "deletrear"}

// productAliases corrects known mis-transcriptions of the product name.
// Order matters: longer variants are replaced before their prefixes.
var productAliases = [][2]string{
	{"vokapp", "vocapp"},
	{"bocapp", "vocapp"},
	{"bocaapp", "vocapp"},
	{"bocap", "vocapp"},
	{"bobapp", "vocapp"},
	{"boapp", "vocapp"},
}

// FoldVoiceAlias applies Fold, strips dictation fillers, and corrects
// known product-name mis-transcriptions.
func FoldVoiceAlias(s string) string {
	v := Fold(s)
	for _, f := range voiceFillers {
		v = strings.ReplaceAll(v, f, "")
	}
	for _, pair := range productAliases {
		v = strings.ReplaceAll(v, pair[0], pair[1])
	}
	return v
}

// PhoneticKey collapses acoustically confusable consonants on top of the
// voice-alias fold, so that "b" transcribed for "v" (or k/c/q confusion)
// still matches. Runs of a repeated letter are singularized last, which
// keeps the fold idempotent.
func PhoneticKey(s string) string {
	v := FoldVoiceAlias(s)
	v = strings.ReplaceAll(v, "gu", "g")
	v = strings.ReplaceAll(v, "ll", "y")
	v = strings.ReplaceAll(v, "v", "b")
	v = strings.ReplaceAll(v, "q", "k")
	v = strings.ReplaceAll(v, "c", "k")
	v = strings.ReplaceAll(v, "z", "s")
	v = strings.ReplaceAll(v, "h", "")

	var b strings.Builder
	b.Grow(len(v))
	var prev rune = -1
	for _, r := range v {
		if r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
