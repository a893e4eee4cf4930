// Package inspector performs the agent's own filesystem reads: the
// internal listings and inspections that answer questions without going
// through the shell. All paths are confined to the configured workdir.
package inspector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/vocapp/vocapp/internal/executor"
	"github.com/vocapp/vocapp/internal/intent"
	"github.com/vocapp/vocapp/internal/textnorm"
)

const (
	inspectMaxDepth = 2
	inspectMaxItems = 200
)

// defaultIgnoreLines filter noise out of inspection walks even when the
// workdir has no .gitignore.
var defaultIgnoreLines = []string{".git/", "node_modules/"}

// Inspector reads listings and inspections rooted at a single workdir.
type Inspector struct {
	workdir string
	ignore  *gitignore.GitIgnore
}

// New returns an Inspector rooted at workdir. A .gitignore at the root,
// if present, extends the default ignore patterns for inspection walks.
func New(workdir string) *Inspector {
	matcher, err := gitignore.CompileIgnoreFileAndLines(filepath.Join(workdir, ".gitignore"), defaultIgnoreLines...)
	if err != nil {
		matcher = gitignore.CompileIgnoreLines(defaultIgnoreLines...)
	}
	return &Inspector{workdir: workdir, ignore: matcher}
}

// Workdir returns the root all targets resolve against.
func (ins *Inspector) Workdir() string { return ins.workdir }

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// safeResolve resolves target against the workdir and rejects anything
// that escapes it. The boolean is false on escape.
func (ins *Inspector) safeResolve(target string) (string, bool) {
	candidate := strings.TrimSpace(target)
	if candidate == "" {
		candidate = "."
	}
	abs := candidate
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(ins.workdir, abs)
	}
	abs = filepath.Clean(abs)
	rel, err := filepath.Rel(ins.workdir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}

// sortFolded orders names case- and accent-insensitively, raw name as
// tiebreaker so the order is stable.
func sortFolded(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := textnorm.FoldIntent(names[i]), textnorm.FoldIntent(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}

// Listing lists the target directory filtered by kind. A missing or
// escaping target is not an error: the result reports "No existe
// directorio" with OK set, so the turn can still answer the user.
func (ins *Inspector) Listing(kind intent.ListingKind, target string, includeHidden bool) executor.Result {
	if kind == intent.ListingNone {
		kind = intent.ListingEntries
	}
	res := executor.Result{
		Command: fmt.Sprintf("internal:list %s %s", kind, target),
		Cwd:     ins.workdir,
		OK:      true,
	}

	abs, ok := ins.safeResolve(target)
	if !ok {
		res.Stdout = fmt.Sprintf("No existe directorio: %s\n", target)
		return res
	}
	if _, err := os.Stat(abs); err != nil {
		res.Stdout = fmt.Sprintf("No existe directorio: %s\n", target)
		return res
	}

	dirents, err := os.ReadDir(abs)
	if err != nil {
		res.OK = false
		res.Stderr = err.Error()
		res.Error = err.Error()
		return res
	}

	var names []string
	for _, d := range dirents {
		if !includeHidden && isHidden(d.Name()) {
			continue
		}
		switch kind {
		case intent.ListingDirs:
			if !d.IsDir() {
				continue
			}
		case intent.ListingFiles:
			if !d.Type().IsRegular() {
				continue
			}
		}
		names = append(names, d.Name())
	}
	sortFolded(names)
	if len(names) > 0 {
		res.Stdout = strings.Join(names, "\n") + "\n"
	}
	return res
}

// Inspect produces the grounding inspection of a target: top-level
// entries first, then a depth-limited walk capped at inspectMaxItems.
func (ins *Inspector) Inspect(target string, includeHidden bool) executor.Result {
	if strings.TrimSpace(target) == "" {
		target = "."
	}
	res := executor.Result{
		Command: "internal:inspect " + target,
		Cwd:     ins.workdir,
		OK:      true,
	}

	abs, ok := ins.safeResolve(target)
	if ok {
		if _, err := os.Stat(abs); err != nil {
			ok = false
		}
	}
	if !ok {
		res.Stdout = fmt.Sprintf("No existe: %s\n---PWD---\n%s\n", target, ins.workdir)
		return res
	}

	lines := []string{"INSPECCION: " + target}

	dirents, err := os.ReadDir(abs)
	if err != nil {
		res.OK = false
		res.Stderr = err.Error()
		res.Error = err.Error()
		return res
	}
	var top []string
	for _, d := range dirents {
		if !includeHidden && isHidden(d.Name()) {
			continue
		}
		top = append(top, d.Name())
	}
	sortFolded(top)
	lines = append(lines, top...)
	lines = append(lines, fmt.Sprintf("---DETALLE (max %d)---", inspectMaxItems))

	details := ins.walk(abs, includeHidden)
	if len(details) > inspectMaxItems {
		details = details[:inspectMaxItems]
	}
	lines = append(lines, details...)

	res.Stdout = strings.Join(lines, "\n") + "\n"
	return res
}

// walk collects workdir-relative paths under base, depth-limited and
// filtered by the ignore matcher. Unreadable directories are skipped.
func (ins *Inspector) walk(base string, includeHidden bool) []string {
	var out []string
	var visit func(current string, depth int)
	visit = func(current string, depth int) {
		if depth > inspectMaxDepth {
			return
		}
		dirents, err := os.ReadDir(current)
		if err != nil {
			return
		}
		for _, d := range dirents {
			if !includeHidden && isHidden(d.Name()) {
				continue
			}
			full := filepath.Join(current, d.Name())
			rel, err := filepath.Rel(ins.workdir, full)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if ins.ignore != nil && ins.ignore.MatchesPath(rel) {
				continue
			}
			out = append(out, rel)
			if d.IsDir() {
				visit(full, depth+1)
			}
		}
	}
	visit(base, 0)
	return out
}
