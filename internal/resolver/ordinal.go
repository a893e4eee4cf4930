package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vocapp/vocapp/internal/textnorm"
)

var (
	bareOrdinalRe    = regexp.MustCompile(`^(?:la|el)?\s*(?:primera|primero|segunda|segundo|tercera|tercero|ultima|ultimo|\d+)\s*$`)
	ordinalNumberRe  = regexp.MustCompile(`\b(\d{1,2})\b`)
	suggestNumberRe  = regexp.MustCompile(`\b([1-9])\b`)
	listMentions     = []string{"lista", "las que dijiste", "las que has dicho", "las carpetas que dijiste"}
	suggestMentions  = []string{"opcion", "de las opciones", "de esas", "la primera", "la segunda", "la tercera", "la ultima"}
	ordinalPositions = []struct {
		words []string
		index int
	}{
		{[]string{"ultima", "ultimo"}, -1}, // sentinel for length-1
		{[]string{"primera", "primero"}, 0},
		{[]string{"segunda", "segundo"}, 1},
		{[]string{"tercera", "tercero"}, 2},
	}
)

// OrdinalIndex maps an utterance like "la segunda" or "la 3 de la lista"
// to a zero-based index into a listing of the given length. The second
// return is false when the utterance does not select by position. Spoken
// ordinals past the end clamp to the last entry; explicit numbers out of
// range are rejected.
func OrdinalIndex(text string, length int) (int, bool) {
	if length == 0 {
		return 0, false
	}
	n := textnorm.FoldIntent(text)

	mentionsList := bareOrdinalRe.MatchString(strings.TrimSpace(n))
	for _, phrase := range listMentions {
		if strings.Contains(n, phrase) {
			mentionsList = true
			break
		}
	}
	if !mentionsList {
		return 0, false
	}

	if idx, ok := spokenOrdinal(n, length); ok {
		return idx, true
	}

	if m := ordinalNumberRe.FindStringSubmatch(n); m != nil {
		pos, err := strconv.Atoi(m[1])
		if err == nil && pos >= 1 && pos <= length {
			return pos - 1, true
		}
	}
	return 0, false
}

// IsOrdinalSelection reports whether the utterance is nothing but an
// ordinal ("la segunda", "3").
func IsOrdinalSelection(text string) bool {
	return bareOrdinalRe.MatchString(strings.TrimSpace(textnorm.FoldIntent(text)))
}

// SuggestionOrdinalIndex is the ordinal selector for suggestion lists.
// It requires option phrasing ("opcion 2", "la primera de esas") so a
// stray digit in an unrelated utterance never picks a suggestion.
func SuggestionOrdinalIndex(text string, length int) (int, bool) {
	if length == 0 {
		return 0, false
	}
	n := textnorm.FoldIntent(text)

	wantsOption := false
	for _, phrase := range suggestMentions {
		if strings.Contains(n, phrase) {
			wantsOption = true
			break
		}
	}
	if !wantsOption {
		return 0, false
	}

	if idx, ok := spokenOrdinal(n, length); ok {
		return idx, true
	}

	if m := suggestNumberRe.FindStringSubmatch(n); m != nil {
		pos, err := strconv.Atoi(m[1])
		if err == nil && pos >= 1 && pos <= length {
			return pos - 1, true
		}
	}
	return 0, false
}

func spokenOrdinal(n string, length int) (int, bool) {
	for _, p := range ordinalPositions {
		for _, w := range p.words {
			if !strings.Contains(n, w) {
				continue
			}
			idx := p.index
			if idx < 0 || idx > length-1 {
				idx = length - 1
			}
			return idx, true
		}
	}
	return 0, false
}
