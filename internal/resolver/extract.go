package resolver

import (
	"regexp"
	"strings"

	"github.com/vocapp/vocapp/internal/textnorm"
)

// candidateStopwords are extraction results that are vocabulary, not names.
var candidateStopwords = map[string]bool{
	"archivo":    true,
	"carpeta":    true,
	"directorio": true,
	"proyecto":   true,
	"esta":       true,
	"estas":      true,
	"est":        true,
	"es":         true,
	"que":        true,
	"de":         true,
	"la":         true,
	"el":         true,
}

var (
	spelledProductRe = regexp.MustCompile(`\b(?:v|uve)\s+o\s+(?:c|ce)\s+app\b`)
	spacedLettersRe  = regexp.MustCompile(`\b([a-z])\s+([a-z])\s+([a-z])(?:\s+([a-z]))?\s+app\b`)
	roughAppRe       = regexp.MustCompile(`\b([a-z]{2,8}\s*app)\b`)

	quotedRe     = regexp.MustCompile("[\"'`](.{1,140}?)[\"'`]")
	calledRe     = regexp.MustCompile(`se llama\s+([A-Za-z0-9._\-~/ ]{2,80}?)(?:[?.,;]|$)`)
	folderNameRe = regexp.MustCompile(`(?:carpeta|directorio|proyecto)\s+([A-Za-z0-9._\-~/ ]{2,120}?)(?:[?.,;]|$)`)
	aboutTokenRe = regexp.MustCompile(`(?:resumen de|que hay en|que contiene|contenido de|sobre|carpeta|directorio|proyecto)\s+([A-Za-z0-9._\-~/]+/?)`)
	pathTokenRe  = regexp.MustCompile(`\b([A-Za-z0-9._\-~]+/[A-Za-z0-9._\-~/]*)\b`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
	trailSlashRe = regexp.MustCompile(`/+$`)
)

// extractSpelled recovers a name the user spelled out letter by letter
// ("v o c app"). It only understands the <letters> + "app" shape the
// speech front end produces.
func extractSpelled(text string) string {
	n := textnorm.FoldIntent(text)
	if spelledProductRe.MatchString(n) {
		return "vocapp"
	}
	if m := spacedLettersRe.FindStringSubmatch(n); m != nil {
		letters := ""
		for _, g := range m[1:] {
			letters += g
		}
		return letters + "app"
	}
	if m := roughAppRe.FindStringSubmatch(n); m != nil {
		return multiSpaceRe.ReplaceAllString(m[1], "")
	}
	return ""
}

// ExtractCandidate pulls the most plausible raw target name out of an
// utterance. Patterns are tried in order of specificity; the first match
// wins. Returns "" when nothing usable is found.
func ExtractCandidate(text string) string {
	if text == "" {
		return ""
	}

	if spelled := extractSpelled(text); spelled != "" {
		return spelled
	}

	if m := quotedRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1])
	}

	for _, re := range []*regexp.Regexp{calledRe, folderNameRe, aboutTokenRe, pathTokenRe} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := trailSlashRe.ReplaceAllString(multiSpaceRe.ReplaceAllString(strings.TrimSpace(m[1]), " "), "")
		if len(candidate) < 3 {
			continue
		}
		if len(strings.Fields(candidate)) > 5 {
			continue
		}
		if candidateStopwords[strings.ToLower(candidate)] {
			continue
		}
		return candidate
	}

	return ""
}
