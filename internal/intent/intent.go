// Package intent classifies a user utterance into the deterministic
// conversational intents the orchestrator can answer without the model.
// Every classifier is a pure predicate over the intent fold of the text;
// several may fire on the same utterance.
package intent

import (
	"regexp"
	"strings"

	"github.com/vocapp/vocapp/internal/textnorm"
)

// ListingKind is the kind of directory listing the user asked for.
type ListingKind string

const (
	ListingNone    ListingKind = ""
	ListingDirs    ListingKind = "dirs"
	ListingFiles   ListingKind = "files"
	ListingEntries ListingKind = "entries"
)

// filesystemKeywords mark an utterance as filesystem-relevant. Kept as a
// single table so the list stays reviewable and unit-testable.
var filesystemKeywords = []string{
	"archivo",
	"archivos",
	"carpeta",
	"directorio",
	"ruta",
	"mover",
	"renombrar",
	"organizar",
	"listar",
	"contenido",
	"que hay en",
	"que contiene",
	"resumen de",
	"borra",
	"elimina",
	"copia",
	"crear",
	"proyecto",
}

var (
	pathLikeDotted = regexp.MustCompile(`[./~][A-Za-z0-9._\-/]+`)
	pathLikeSlash  = regexp.MustCompile(`\b[a-zA-Z0-9._-]+/\b`)
)

// IsFilesystem reports whether the utterance concerns the filesystem,
// either by vocabulary or by containing a path-like token.
func IsFilesystem(text string) bool {
	if text == "" {
		return false
	}
	n := textnorm.FoldIntent(text)
	for _, kw := range filesystemKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return pathLikeDotted.MatchString(text) || pathLikeSlash.MatchString(text)
}

// WantsHidden reports whether hidden entries should be included.
func WantsHidden(text string) bool {
	n := textnorm.FoldIntent(text)
	return strings.Contains(n, "ocult") || strings.Contains(n, "hidden")
}

// Listing determines the listing kind requested, if any. Summary intent
// takes precedence: a summary request never doubles as a listing.
func Listing(text string) ListingKind {
	if IsSummary(text) {
		return ListingNone
	}
	n := textnorm.FoldIntent(text)
	asksFolders := strings.Contains(n, "carpeta") || strings.Contains(n, "directorio")
	asksFiles := strings.Contains(n, "archivo") || strings.Contains(n, "fichero")

	switch {
	case asksFolders && !asksFiles:
		return ListingDirs
	case asksFiles && !asksFolders:
		return ListingFiles
	case asksFiles && asksFolders:
		return ListingEntries
	}
	if strings.Contains(n, "que hay") || strings.Contains(n, "que contiene") || strings.Contains(n, "listar") {
		return ListingEntries
	}
	return ListingNone
}

var queEsRe = regexp.MustCompile(`\bque es\b`)

// IsSummary reports whether the user asked for a summary or explanation.
func IsSummary(text string) bool {
	n := textnorm.FoldIntent(text)
	return strings.Contains(n, "resumen") ||
		strings.Contains(n, "resumeme") ||
		strings.Contains(n, "resumir") ||
		queEsRe.MatchString(n) ||
		strings.Contains(n, "de que va") ||
		strings.Contains(n, "explicame") ||
		strings.Contains(n, "explica")
}

// WantsLongSummary reports whether the user asked for a detailed summary.
// Only meaningful when IsSummary also fires; it loosens truncation.
func WantsLongSummary(text string) bool {
	n := textnorm.FoldIntent(text)
	return strings.Contains(n, "resumen largo") ||
		strings.Contains(n, "muy detallado") ||
		strings.Contains(n, "detallado") ||
		strings.Contains(n, "completo") ||
		strings.Contains(n, "en detalle") ||
		strings.Contains(n, "a fondo") ||
		strings.Contains(n, "profundo")
}

// IsTargetDeclaration reports whether the user is naming a target
// ("la carpeta se llama X").
func IsTargetDeclaration(text string) bool {
	n := textnorm.FoldIntent(text)
	naming := strings.Contains(n, "se llama") || strings.Contains(n, "llamada") || strings.Contains(n, "llamo")
	place := strings.Contains(n, "carpeta") || strings.Contains(n, "directorio") || strings.Contains(n, "ruta")
	return naming && place
}

var (
	noEraSinoRe     = regexp.MustCompile(`\bno era\b.+\bsino\b`)
	noQuieroDecirRe = regexp.MustCompile(`\bno\b.+\bquiero decir\b`)
)

// IsCorrection reports whether the user is correcting a previous target.
func IsCorrection(text string) bool {
	n := textnorm.FoldIntent(text)
	return strings.Contains(n, "me refiero") ||
		strings.Contains(n, "quiero decir") ||
		strings.Contains(n, "no, es") ||
		noEraSinoRe.MatchString(n) ||
		strings.Contains(n, "me equivoque, es") ||
		strings.Contains(n, "me equivoque es") ||
		noQuieroDecirRe.MatchString(n) ||
		strings.Contains(n, "corrijo") ||
		strings.Contains(n, "no esa, la otra") ||
		strings.Contains(n, "no esa la otra") ||
		strings.Contains(n, "en realidad es") ||
		strings.HasPrefix(n, "es ") ||
		strings.Contains(n, "esa es")
}

// anaphoraPhrases reference the target of a previous turn.
var anaphoraPhrases = []string{
	"esa carpeta",
	"ese directorio",
	"ese proyecto",
	"este proyecto",
	"esta carpeta",
	"este directorio",
	"esa ruta",
	"esta ruta",
	"ahi",
	"alli",
	"anterior",
}

// ReferencesPrevious reports whether the utterance points back at the
// previously resolved target ("esa carpeta", "ahí", ...).
func ReferencesPrevious(text string) bool {
	n := textnorm.FoldIntent(text)
	for _, p := range anaphoraPhrases {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}
