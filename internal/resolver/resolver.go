// Package resolver turns the noisy target names users speak or type into
// real directory entries. Matching is containment-first, then normalized
// edit distance, with a phonetic fallback for speech-recognizer
// substitutions.
package resolver

import (
	"sort"
	"strings"

	"github.com/vocapp/vocapp/internal/textnorm"
)

// Workdir is the view of the execution root the resolver matches against.
// Implemented by inspector.Cache; kept as an interface so resolution is
// testable without touching the filesystem.
type Workdir interface {
	// Entries returns the names of files and directories at the root.
	Entries() []string
	// Directories returns the names of directories at the root.
	Directories() []string
	// Exists reports whether name exists directly under the root.
	Exists(name string) bool
}

const (
	// workdirThreshold accepts looser matches: the probe set includes the
	// whole utterance, which adds noise.
	workdirThreshold = 0.42
	// closestThreshold is stricter: used for anaphora and corrections
	// where a wrong match silently redirects the conversation.
	closestThreshold = 0.36
)

// ResolveInWorkdir matches a raw candidate (and the full utterance as a
// secondary probe) against the root entries. A verbatim entry wins
// immediately; otherwise the best fuzzy score at or under
// workdirThreshold wins. Returns "" when nothing scores well enough.
// When the workdir cannot be listed, the candidate is returned unverified.
func ResolveInWorkdir(wd Workdir, candidate, fullText string) string {
	entries := wd.Entries()
	if len(entries) == 0 {
		return candidate
	}

	if candidate != "" {
		if wd.Exists(candidate) {
			return candidate
		}
		if base := strings.TrimRight(candidate, "/"); base != "" && wd.Exists(base) {
			return base
		}
	}

	var probes []string
	for _, raw := range []string{candidate, fullText} {
		if p := textnorm.Fold(raw); len(p) >= 4 {
			probes = append(probes, p)
		}
	}
	if len(probes) == 0 {
		return candidate
	}

	bestEntry := ""
	bestScore := 0.0
	for _, entry := range entries {
		n := textnorm.Fold(entry)
		if n == "" {
			continue
		}
		for _, probe := range probes {
			score, ok := containmentRatio(probe, n)
			if !ok {
				score = distanceRatio(probe, n)
			}
			if bestEntry == "" || score < bestScore {
				bestEntry = entry
				bestScore = score
			}
		}
	}

	if bestEntry != "" && bestScore <= workdirThreshold {
		return bestEntry
	}
	return ""
}

// probeStopwords are utterance tokens that never name a target.
var probeStopwords = map[string]bool{
	"la": true, "el": true, "de": true, "del": true, "que": true,
	"quiero": true, "resumen": true, "carpeta": true, "directorio": true,
	"ruta": true, "me": true, "refiero": true, "es": true, "una": true,
	"un": true, "por": true, "favor": true, "app": true,
}

// ChooseClosest picks the candidate closest to the utterance under the
// strict threshold. Scores take the minimum of the plain and phonetic
// edit-distance ratios, which recovers matches when vocabulary folding
// still leaves acoustic substitutions (a "b" transcribed for a "v").
func ChooseClosest(text string, candidates []string) string {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) <= 3 {
			continue
		}
		for _, candidate := range candidates {
			if strings.Contains(strings.ToLower(candidate), word) {
				return candidate
			}
		}
	}

	probes := buildProbes(text)
	if len(probes) == 0 {
		return ""
	}

	bestCandidate := ""
	bestScore := 0.0
	for _, candidate := range candidates {
		n := textnorm.FoldVoiceAlias(candidate)
		if n == "" {
			continue
		}
		nPh := textnorm.PhoneticKey(candidate)
		for _, probe := range probes {
			probePh := textnorm.PhoneticKey(probe)
			var score float64
			if r, ok := containmentRatio(probe, n); ok {
				score = r
			} else if r, ok := containmentRatio(probePh, nPh); ok && probePh != "" && nPh != "" {
				score = r
			} else if probePh != "" && nPh != "" {
				score = distanceRatio(probe, n)
				if ph := distanceRatio(probePh, nPh); ph < score {
					score = ph
				}
			} else {
				score = distanceRatio(probe, n)
			}
			if bestCandidate == "" || score < bestScore {
				bestCandidate = candidate
				bestScore = score
			}
		}
	}

	if bestCandidate != "" && bestScore <= closestThreshold {
		return bestCandidate
	}
	return ""
}

// buildProbes folds the whole utterance and its content tokens (stopwords
// removed) into the voice-alias comparison form.
func buildProbes(text string) []string {
	seen := map[string]bool{}
	var probes []string
	add := func(p string) {
		if len(p) >= 3 && !seen[p] {
			seen[p] = true
			probes = append(probes, p)
		}
	}

	add(textnorm.FoldVoiceAlias(text))

	raw := textnorm.FoldIntent(text)
	for _, token := range strings.FieldsFunc(raw, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if len(token) < 3 || probeStopwords[token] {
			continue
		}
		add(textnorm.FoldVoiceAlias(token))
	}
	return probes
}

// Context carries the per-turn inputs of target resolution.
type Context struct {
	Text        string   // full user utterance
	Candidate   string   // output of ExtractCandidate, may be ""
	LastTarget  string   // session memory, may be ""
	LastListing []string // session memory, may be nil
}

// ResolveFromContext resolves the turn's target. Anaphora beats
// resolution: "esa carpeta" returns the remembered target without
// touching the filesystem. Otherwise direct workdir resolution is tried
// and verified, then the strict matcher against the combined pool of the
// last listing and the live directories, and finally the unverified
// direct result.
func ResolveFromContext(wd Workdir, ctx Context, isAnaphoric bool) string {
	if isAnaphoric && ctx.LastTarget != "" && ctx.LastTarget != "." {
		return ctx.LastTarget
	}

	direct := ResolveInWorkdir(wd, ctx.Candidate, ctx.Text)
	if direct != "" && wd.Exists(direct) {
		return direct
	}

	pool := combinePool(ctx.LastListing, wd.Directories())
	if ctx.Candidate != "" {
		if match := ChooseClosest(ctx.Candidate, pool); match != "" {
			return match
		}
	}
	if match := ChooseClosest(ctx.Text, pool); match != "" {
		return match
	}

	return direct
}

// SuggestTargets scores the combined candidate pool against the utterance
// and returns the three closest names, best first. Used when resolution
// fails outright: the orchestrator offers these instead of guessing.
func SuggestTargets(wd Workdir, text string, lastListing []string) []string {
	pool := combinePool(lastListing, wd.Directories())

	seed := ExtractCandidate(text)
	if seed == "" {
		seed = text
	}
	probe := textnorm.FoldVoiceAlias(seed)
	if probe == "" {
		return nil
	}
	probePh := textnorm.PhoneticKey(probe)

	type scored struct {
		name  string
		score float64
	}
	var ranked []scored
	for _, name := range pool {
		n := textnorm.Fold(name)
		if n == "" {
			continue
		}
		score := distanceRatio(probe, textnorm.FoldVoiceAlias(n))
		if ph := distanceRatio(probePh, textnorm.PhoneticKey(n)); ph < score {
			score = ph
		}
		ranked = append(ranked, scored{name: name, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	names := make([]string, 0, len(ranked))
	for _, s := range ranked {
		names = append(names, s.name)
	}
	return names
}

// combinePool merges the remembered listing with the live directory
// entries, preserving order and dropping duplicates.
func combinePool(listing, dirs []string) []string {
	seen := map[string]bool{}
	var pool []string
	for _, group := range [][]string{listing, dirs} {
		for _, name := range group {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			pool = append(pool, name)
		}
	}
	return pool
}
