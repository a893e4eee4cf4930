package prompts

// summarizeSystemContent keeps the summarizer honest: it may only use
// the execution evidence included in the user message.
const summarizeSystemContent = `Eres un asistente de sistema de archivos. ` +
	`Resume SOLO usando la evidencia dada. ` +
	`No inventes nada. Si no hay evidencia suficiente, dilo claramente. ` +
	`Responde en espanol de forma breve. ` +
	`Prioriza explicar de que trata el proyecto (proposito), ` +
	`y luego menciona 3-6 componentes clave.`

// SummarizeSystem returns the system prompt for execution summaries.
func SummarizeSystem() string {
	b, err := NewPromptBuilder(DefaultRegistry(), "summarize-system", PromptV1)
	if err != nil {
		panic(err)
	}
	return b.Build()
}
