package intent

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	voiceMaxLen  = 260
	voiceCutLen  = 250
	previewItems = 5
)

var (
	listingHeaderRe  = regexp.MustCompile(`(?i)^(Carpetas|Archivos|Elementos)\s+en\s+([^\n]+):\n((?s).+)$`)
	listingBulletRe  = regexp.MustCompile(`^-+\s*`)
	spaceRunRe       = regexp.MustCompile(`\s+`)
	trailingPunctRe  = regexp.MustCompile(`[,:;.\s]+$`)
	newlineRunsRegex = regexp.MustCompile(`\n+`)
)

// VoiceSummary compacts a summary for text-to-speech. Listings become a
// count plus a short preview; prose is flattened and clamped unless the
// user asked for the long version.
func VoiceSummary(summary string, long bool) string {
	raw := strings.TrimSpace(summary)
	if raw == "" {
		return ""
	}
	if long {
		return raw
	}

	if m := listingHeaderRe.FindStringSubmatch(raw); m != nil {
		kind, target := m[1], m[2]
		var items []string
		for _, line := range strings.Split(m[3], "\n") {
			item := strings.TrimSpace(listingBulletRe.ReplaceAllString(line, ""))
			if item != "" {
				items = append(items, item)
			}
		}
		preview := items
		tail := "."
		if len(items) > previewItems {
			preview = items[:previewItems]
			tail = ", y más."
		}
		return kind + " en " + target + ": " +
			strconv.Itoa(len(items)) + " elementos. " + strings.Join(preview, ", ") + tail
	}

	clean := newlineRunsRegex.ReplaceAllString(raw, " ")
	clean = strings.TrimSpace(spaceRunRe.ReplaceAllString(clean, " "))
	runes := []rune(clean)
	if len(runes) <= voiceMaxLen {
		return clean
	}
	return trailingPunctRe.ReplaceAllString(string(runes[:voiceCutLen]), "") + "."
}
