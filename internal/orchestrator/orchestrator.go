// Package orchestrator runs one conversational turn: deterministic
// intents are answered straight from the filesystem, everything else is
// delegated to the model, and proposed commands go through the safety
// and approval pipeline.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/vocapp/vocapp/internal/audit"
	"github.com/vocapp/vocapp/internal/executor"
	"github.com/vocapp/vocapp/internal/inspector"
	"github.com/vocapp/vocapp/internal/intent"
	"github.com/vocapp/vocapp/internal/prompts"
	"github.com/vocapp/vocapp/internal/providers"
	"github.com/vocapp/vocapp/internal/resolver"
	"github.com/vocapp/vocapp/internal/safety"
	"github.com/vocapp/vocapp/internal/session"
)

const tokenChunkSize = 120

// Answer is the final payload of a turn. The same shape carries replies,
// command proposals, and execution results; unused fields stay empty.
type Answer struct {
	Type         string `json:"type"` // reply, command, executed
	Message      string `json:"message"`
	Command      string `json:"command,omitempty"`
	Token        string `json:"token,omitempty"`
	AutoApproved bool   `json:"autoApproved,omitempty"`
	OK           bool   `json:"ok,omitempty"`
	Cwd          string `json:"cwd,omitempty"`
	Stdout       string `json:"stdout,omitempty"`
	Stderr       string `json:"stderr,omitempty"`
	Error        string `json:"error,omitempty"`
	Summary      string `json:"summary,omitempty"`
	VoiceSummary string `json:"voiceSummary,omitempty"`
}

func (a *Answer) setExecution(r executor.Result) {
	a.Command = r.Command
	a.Cwd = r.Cwd
	a.Stdout = r.Stdout
	a.Stderr = r.Stderr
	a.OK = r.OK
	a.Error = r.Error
}

// Emitter receives the intermediate events of a turn while it runs. The
// server streams them to the client; tests collect them.
type Emitter interface {
	// Token streams a piece of model output or deferred summary.
	Token(delta string)
	// Executed reports that a command ran, before its summary exists.
	Executed(Answer)
	// SummaryComplete marks the end of the deferred summary stream.
	SummaryComplete()
}

// Orchestrator wires the turn pipeline together. All fields except
// Audit are required.
type Orchestrator struct {
	Model      providers.Client
	Inspector  *inspector.Inspector
	Cache      resolver.Workdir
	Runner     *executor.Runner
	Pending    *executor.PendingStore
	Sessions   *session.Store
	Classifier safety.ReadOnlyClassifier
	Audit      *audit.Log // optional

	Workdir string
	Desktop string
	OS      string // runtime.GOOS

	StrictGroundedFS   bool
	AutoExecReadOnly   bool
	AutoSummarizeReads bool
}

// Turn processes one chat turn and returns the final answer. Errors are
// returned only for model transport failures; everything else becomes a
// reply.
func (o *Orchestrator) Turn(ctx context.Context, sessionID string, rawHistory []providers.ChatMessage, em Emitter) (Answer, error) {
	mem := o.Sessions.Get(sessionID)
	mem.Lock()
	defer mem.Unlock()

	history := CompactHistory(rawHistory)
	lastUser := LastUserMessage(history)

	fsIntent := intent.IsFilesystem(lastUser)
	listingKind := intent.Listing(lastUser)
	summaryIntent := intent.IsSummary(lastUser)
	longSummary := intent.WantsLongSummary(lastUser)
	declaration := intent.IsTargetDeclaration(lastUser)
	correction := intent.IsCorrection(lastUser)
	anaphoric := intent.ReferencesPrevious(lastUser)
	hasEvidence := HasRecentExecutionEvidence(history)

	candidate := resolver.ExtractCandidate(lastUser)
	resolvedTarget := ""
	if fsIntent || summaryIntent || declaration || correction || listingKind != intent.ListingNone {
		resolvedTarget = resolver.ResolveFromContext(o.Cache, resolver.Context{
			Text:        lastUser,
			Candidate:   candidate,
			LastTarget:  mem.LastTarget,
			LastListing: mem.LastListing,
		}, anaphoric)
	}

	ordinalTarget := ""
	if idx, ok := resolver.OrdinalIndex(lastUser, len(mem.LastListing)); ok {
		ordinalTarget = mem.LastListing[idx]
	}
	suggestionTarget := ""
	suggestionIdx := 0
	if idx, ok := resolver.SuggestionOrdinalIndex(lastUser, len(mem.LastSuggestions)); ok {
		suggestionIdx = idx
		suggestionTarget = mem.LastSuggestions[idx]
	}

	// A numbered pick from offered suggestions beats everything else.
	if suggestionTarget != "" {
		pendingSummary := mem.PendingIntent == session.PendingSummary
		mem.SetTarget(suggestionTarget)
		if pendingSummary {
			execution := o.Inspector.Inspect(suggestionTarget, true)
			base := Answer{
				Type:         "executed",
				AutoApproved: true,
				Message:      fmt.Sprintf("Seleccioné %s (opcion %d) y generé el resumen.", suggestionTarget, suggestionIdx+1),
			}
			base.setExecution(execution)
			return o.deferredSummary(ctx, em, base, lastUser, execution, suggestionTarget, longSummary), nil
		}
		return Answer{
			Type:    "reply",
			Message: fmt.Sprintf("Perfecto, elijo %s (opcion %d).", suggestionTarget, suggestionIdx+1),
		}, nil
	}

	if ordinalTarget != "" &&
		(summaryIntent || correction || anaphoric || resolver.IsOrdinalSelection(lastUser)) {
		mem.SetTarget(ordinalTarget)
		return Answer{
			Type:    "reply",
			Message: fmt.Sprintf("Perfecto, tomo %s como carpeta objetivo. Dime si quieres un resumen o listar su contenido.", ordinalTarget),
		}, nil
	}

	if declaration {
		if resolvedTarget != "" {
			mem.SetTarget(resolvedTarget)
			return Answer{
				Type:    "reply",
				Message: fmt.Sprintf("Perfecto, tomo %s como carpeta objetivo para los siguientes pasos.", resolvedTarget),
			}, nil
		}
		suggestions := resolver.SuggestTargets(o.Cache, lastUser, mem.LastListing)
		hint := "No identifique ese nombre con certeza. Dime el nombre exacto de la carpeta."
		if len(suggestions) > 0 {
			hint = fmt.Sprintf("No identifique ese nombre con certeza. ¿Te refieres a: %s?", strings.Join(suggestions, ", "))
		}
		mem.LastSuggestions = suggestions
		mem.PendingIntent = session.PendingSetTarget
		return Answer{Type: "reply", Message: hint}, nil
	}

	if correction && resolvedTarget != "" {
		mem.SetTarget(resolvedTarget)
		return Answer{
			Type:    "reply",
			Message: fmt.Sprintf("Entendido, te refieres a %s.", resolvedTarget),
		}, nil
	}

	if summaryIntent {
		if resolvedTarget == "" && mem.LastTarget != "" && mem.LastTarget != "." {
			resolvedTarget = mem.LastTarget
		}
		if resolvedTarget == "" {
			suggestions := resolver.SuggestTargets(o.Cache, lastUser, mem.LastListing)
			hint := "No identifique la carpeta exacta. Dime el nombre exacto o deletrealo."
			if len(suggestions) > 0 {
				hint = fmt.Sprintf("No identifique la carpeta exacta. ¿Te refieres a: %s?", strings.Join(suggestions, ", "))
			}
			mem.LastSuggestions = suggestions
			mem.PendingIntent = session.PendingSummary
			return Answer{Type: "reply", Message: hint}, nil
		}

		execution := o.Inspector.Inspect(resolvedTarget, true)
		if execution.OK {
			mem.SetTarget(resolvedTarget)
		}
		mem.PendingIntent = session.PendingNone
		base := Answer{
			Type:         "executed",
			AutoApproved: true,
			Message:      "Inspeccion de carpeta objetivo para resumen.",
		}
		base.setExecution(execution)
		return o.deferredSummary(ctx, em, base, lastUser, execution, resolvedTarget, longSummary), nil
	}

	if listingKind != intent.ListingNone {
		target := resolvedTarget
		if target == "" {
			if anaphoric {
				target = mem.LastTarget
			} else {
				target = "."
			}
		}
		includeHidden := intent.WantsHidden(lastUser)
		execution := o.Inspector.Listing(listingKind, target, includeHidden)
		summary := ListingSummary(listingKind, includeHidden, target, execution.Stdout, execution.Stderr)
		if execution.OK {
			var lines []string
			for _, line := range strings.Split(execution.Stdout, "\n") {
				if trimmed := strings.TrimSpace(line); trimmed != "" {
					lines = append(lines, trimmed)
				}
			}
			mem.SetListing(target, lines)
		}
		mem.PendingIntent = session.PendingNone

		answer := Answer{
			Type:         "executed",
			AutoApproved: true,
			Message:      "Listado directo del sistema de archivos.",
			Summary:      summary,
			VoiceSummary: intent.VoiceSummary(summary, longSummary),
		}
		answer.setExecution(execution)
		return answer, nil
	}

	// Delegate to the model.
	filled, _ := resolver.FillSlots(lastUser, mem.LastTarget, mem.LastCommand, o.Cache.Directories())
	result, err := o.askModel(ctx, history, filled, resolvedTarget, mem, em)
	if err != nil {
		return Answer{}, err
	}

	if result.Type == "reply" &&
		(result.Message == "No te entendi bien." || strings.Contains(result.Message, "No pude interpretar")) {
		suggestions := resolver.SuggestTargets(o.Cache, lastUser, mem.LastListing)
		hint := "No te entendí bien. Repite la frase o dime el nombre exacto de la carpeta."
		if len(suggestions) > 0 {
			hint = fmt.Sprintf("No te entendí bien. ¿Te refieres a: %s?", strings.Join(suggestions, ", "))
		}
		return Answer{Type: "reply", Message: hint}, nil
	}

	// Filesystem questions are never answered from imagination: without
	// recent evidence the turn inspects first or proposes a read command.
	if o.StrictGroundedFS && fsIntent && !hasEvidence && result.Type != "command" {
		fallbackTarget := resolvedTarget
		if fallbackTarget == "" {
			fallbackTarget = "."
		}
		if o.AutoExecReadOnly {
			execution := o.Inspector.Inspect(fallbackTarget, true)
			base := Answer{
				Type:         "executed",
				AutoApproved: true,
				Message:      "Para responder con precisión inspeccioné primero el sistema de archivos y aquí tienes el resultado.",
			}
			base.setExecution(execution)
			return o.deferredSummary(ctx, em, base, lastUser, execution, "", longSummary), nil
		}
		command := GroundingCommand(resolvedTarget)
		return o.proposeCommand(ctx, sessionID, command,
			"Para responder con precisión necesito inspeccionar primero el sistema de archivos. Te propongo este comando de inspección."), nil
	}

	if result.Type == "command" {
		command := strings.TrimSpace(result.Command)
		if command == "" {
			return Answer{Type: "reply", Message: "No se recibió comando para ejecutar."}, nil
		}
		if safety.IsBlocked(command) {
			o.record(ctx, sessionID, audit.KindBlocked, command, "", false, "blocked")
			return Answer{Type: "reply", Message: "Bloqueé ese comando por seguridad: " + command}, nil
		}

		if o.AutoExecReadOnly && o.Classifier.IsReadOnly(command) {
			execution := o.Runner.Execute(ctx, command)
			if execution.OK {
				if resolved := resolver.ResolveInWorkdir(o.Cache, candidate, lastUser); resolved != "" {
					mem.SetTarget(resolved)
				} else {
					mem.LastSuggestions = nil
					mem.Notes = []string{"Ultimo objetivo: " + mem.LastTarget}
				}
				mem.LastCommand = command
				mem.LastAction = "ejecutado: " + command
			}
			o.record(ctx, sessionID, audit.KindAutoExecuted, command, execution.Cwd, execution.OK, execution.Error)
			base := Answer{Type: "executed", AutoApproved: true, Message: result.Message}
			base.setExecution(execution)
			return o.deferredSummary(ctx, em, base, lastUser, execution, "", longSummary), nil
		}

		mem.LastCommand = command
		return o.proposeCommand(ctx, sessionID, command, result.Message), nil
	}

	return Answer{Type: "reply", Message: result.Message}, nil
}

// proposeCommand registers a pending command and builds the approval
// request sent back to the client.
func (o *Orchestrator) proposeCommand(ctx context.Context, sessionID, command, message string) Answer {
	token := o.Pending.Add(command)
	o.record(ctx, sessionID, audit.KindProposed, command, "", false, "")
	return Answer{Type: "command", Message: message, Command: command, Token: token}
}

func (o *Orchestrator) askModel(ctx context.Context, history []providers.ChatMessage, userText, resolvedTarget string, mem *session.Memory, em Emitter) (ModelAnswer, error) {
	system := prompts.ChatSystem(prompts.ChatContext{
		Workdir:       o.Workdir,
		Desktop:       o.Desktop,
		OS:            o.OS,
		AvailableDirs: o.Cache.Directories(),
		LastTarget:    mem.LastTarget,
		LastAction:    mem.LastAction,
		Memory:        strings.Join(mem.Notes, "\n"),
	})

	userMessage := "Solicitud: " + userText
	if resolvedTarget != "" {
		userMessage += "\nTarget resuelto: " + resolvedTarget
	}
	if mem.LastTarget != "" {
		userMessage += "\nÚltimo target: " + mem.LastTarget
	}

	messages := make([]providers.ChatMessage, 0, len(history)+2)
	messages = append(messages, providers.ChatMessage{Role: providers.RoleSystem, Content: system})
	messages = append(messages, history...)
	messages = append(messages, providers.ChatMessage{Role: providers.RoleUser, Content: userMessage})

	raw, err := o.Model.Chat(ctx, messages, providers.Options{Temperature: 0.2}, func(delta string) {
		em.Token(delta)
	})
	if err != nil {
		return ModelAnswer{}, fmt.Errorf("model request failed: %w", err)
	}
	return ParseAnswer(raw), nil
}

// deferredSummary emits the execution event immediately, then streams
// the model summary (when enabled) and closes the turn.
func (o *Orchestrator) deferredSummary(ctx context.Context, em Emitter, base Answer, lastUser string, execution executor.Result, target string, long bool) Answer {
	quick := base.Message
	if quick == "" {
		state := "con error"
		if base.OK {
			state = "ejecutado"
		}
		command := base.Command
		if command == "" {
			command = "sin comando"
		}
		quick = fmt.Sprintf("Comando %s: %s", state, command)
	}
	executed := base
	executed.Message = quick
	executed.Summary = ""
	executed.VoiceSummary = ""
	em.Executed(executed)

	summary := ""
	if o.AutoSummarizeReads {
		summary = o.summarizeExecution(ctx, lastUser, execution, target)
	}
	for _, piece := range chunkText(summary, tokenChunkSize) {
		em.Token(piece)
	}
	em.SummaryComplete()

	base.Summary = summary
	base.VoiceSummary = intent.VoiceSummary(summary, long)
	return base
}

// summarizeExecution asks the model for an evidence-bound summary of an
// execution. A summary that denies the target's existence despite the
// evidence is replaced by the deterministic count.
func (o *Orchestrator) summarizeExecution(ctx context.Context, lastUser string, execution executor.Result, target string) string {
	request := lastUser
	if request == "" {
		request = "(sin solicitud)"
	}
	parts := []string{"Solicitud original: " + request}
	if target != "" {
		parts = append(parts, "Objetivo confirmado: "+target)
	}
	parts = append(parts,
		"Comando ejecutado: "+execution.Command,
		"Directorio de ejecucion: "+execution.Cwd,
		fmt.Sprintf("OK: %t", execution.OK),
	)
	if execution.Error != "" {
		parts = append(parts, "Error: "+execution.Error)
	}
	parts = append(parts,
		"STDOUT:\n"+trimForPrompt(execution.Stdout),
		"STDERR:\n"+trimForPrompt(execution.Stderr),
	)

	messages := []providers.ChatMessage{
		{Role: providers.RoleSystem, Content: prompts.SummarizeSystem()},
		{Role: providers.RoleUser, Content: strings.Join(parts, "\n\n")},
	}
	raw, err := o.Model.Chat(ctx, messages, providers.Options{Temperature: 0.1}, nil)
	if err != nil {
		return ""
	}
	summary := strings.TrimSpace(raw)

	if target != "" {
		low := strings.ToLower(summary)
		contradicts := (strings.Contains(low, "no hay evidencia") || strings.Contains(low, "no existe")) &&
			!strings.Contains(low, strings.ToLower(target))
		if contradicts {
			if det := DeterministicInspectionSummary(target, execution.Stdout); det != "" {
				summary = det
			}
		}
	}
	return summary
}

func (o *Orchestrator) record(ctx context.Context, sessionID string, kind audit.EventKind, command, cwd string, ok bool, errMsg string) {
	if o.Audit == nil {
		return
	}
	// Audit failures never break a turn.
	_ = o.Audit.Record(ctx, audit.Event{
		SessionID: sessionID,
		Kind:      kind,
		Command:   command,
		Cwd:       cwd,
		OK:        ok,
		Error:     errMsg,
	})
}

func chunkText(text string, size int) []string {
	runes := []rune(text)
	var chunks []string
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
