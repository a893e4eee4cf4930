package resolver

import (
	"fmt"
	"strings"

	"github.com/vocapp/vocapp/internal/textnorm"
)

// targetRefs are phrasings that point at the remembered target.
var targetRefs = []string{
	"abrir", "abrela", "abre esa", "abre la carpeta",
	"esa carpeta", "esa misma", "la misma", "la anterior",
	"el mismo", "el anterior", "esa", "ese",
	"listala", "listame esa", "lista esa",
	"resumela", "resumeme esa", "inspecciona esa",
	"borrala", "eliminala", "copiala", "muevela",
}

// resultRefs are phrasings that ask to repeat the last command.
var resultRefs = []string{
	"repite", "hazlo de nuevo", "otra vez",
	"vuelve a ejecutar", "ejecutalo de nuevo",
}

// FillSlots rewrites vague references in the utterance into concrete
// values from session memory, by appending annotations the model can
// read. Returns the rewritten text and a log of the substitutions made.
// A reference to "esa carpeta" is only annotated when the utterance does
// not already name a known directory.
func FillSlots(text, lastTarget, lastCommand string, knownDirs []string) (string, []string) {
	n := textnorm.FoldIntent(text)
	var subs []string

	if lastTarget != "" && lastTarget != "." && containsAny(n, targetRefs) {
		explicit := false
		for _, dir := range knownDirs {
			nd := textnorm.FoldIntent(dir)
			if nd != "" && nd != "." && strings.Contains(n, nd) {
				explicit = true
				break
			}
		}
		if !explicit {
			text += fmt.Sprintf(" (target: %s)", lastTarget)
			subs = append(subs, "target -> "+lastTarget)
		}
	}

	if lastCommand != "" && containsAny(n, resultRefs) {
		text += fmt.Sprintf(" (repetir comando: %s)", lastCommand)
		subs = append(subs, "comando -> "+lastCommand)
	}

	return text, subs
}

func containsAny(n string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}
