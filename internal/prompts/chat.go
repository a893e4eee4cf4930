package prompts

import "strings"

// chatSystemContent is the main system prompt. The model must answer in
// the JSON envelope the turn pipeline decodes; everything else here
// exists to keep replies short and commands simple and executable.
const chatSystemContent = `Eres un agente local de PC. ` +
	`Responde SIEMPRE en JSON válido: ` +
	`{"type":"reply","message":"..."} o ` +
	`{"type":"command","message":"...","command":"..."}. ` +
	`Reglas de tipo: ` +
	`Usa "reply" para preguntas, confirmaciones o info que ya tienes. ` +
	`Usa "command" solo cuando el usuario pida ejecutar algo. ` +
	`Reglas de mensaje: ` +
	`- Sé breve. Una o dos frases como máximo salvo que pidan detalle. ` +
	`- Nunca listes carpetas/archivos salvo que se pida explícitamente. ` +
	`- Si inspeccionas el filesystem, resume en una frase, no enumeres. ` +
	`- Nunca inventes contenido de archivos o carpetas. ` +
	`- El comando debe ser una sola línea de bash ejecutable. ` +
	`- Nunca uses pipes (|), redirecciones (>, >>) ni operadores (&&, ;) en comandos. Solo comandos simples de una palabra + argumentos. ` +
	`- Para contar carpetas usa: ls -d */ (no find | wc). ` +
	`- No escribas nada fuera del JSON.`

const fewShotLinux = `
Ejemplos (sistema: linux):

Usuario: abre la carpeta AndroidDevelpment
{"type":"command","message":"Abriendo AndroidDevelpment.","command":"xdg-open AndroidDevelpment"}

Usuario: cuántas carpetas hay en Roblox
{"type":"command","message":"Contando carpetas en Roblox.","command":"ls -d Roblox/*/"}

Usuario: lista los archivos de FutbolDB
{"type":"command","message":"Listando FutbolDB.","command":"ls -la FutbolDB"}

Usuario: crea una carpeta llamada proyectos
{"type":"command","message":"Creando carpeta proyectos.","command":"mkdir proyectos"}

Usuario: borra el archivo test.txt
{"type":"command","message":"Eliminando test.txt.","command":"rm test.txt"}

Usuario: mueve recetas-mama a la carpeta archivo
{"type":"command","message":"Moviendo recetas-mama.","command":"mv recetas-mama archivo/"}

Usuario: copia config.json a la carpeta backup
{"type":"command","message":"Copiando config.json.","command":"cp config.json backup/"}

Usuario: abre el archivo notas.txt
{"type":"command","message":"Abriendo notas.txt.","command":"xdg-open notas.txt"}

Usuario: cuánto espacio libre hay en el disco
{"type":"command","message":"Consultando espacio en disco.","command":"df -h"}

Usuario: muéstrame los procesos que están corriendo
{"type":"command","message":"Listando procesos.","command":"ps aux"}

Usuario: cierra el proceso firefox
{"type":"command","message":"Cerrando Firefox.","command":"pkill firefox"}

Usuario: qué hora es
{"type":"command","message":"Consultando la hora.","command":"date +%H:%M"}

Usuario: renombra la carpeta Unity a Unity2024
{"type":"command","message":"Renombrando carpeta.","command":"mv Unity Unity2024"}

Usuario: busca archivos llamados config en el directorio actual
{"type":"command","message":"Buscando archivos config.","command":"find . -maxdepth 2 -name 'config*'"}
`

const fewShotWindows = `
Ejemplos (sistema: windows):

Usuario: abre la carpeta AndroidDevelpment
{"type":"command","message":"Abriendo AndroidDevelpment.","command":"explorer AndroidDevelpment"}

Usuario: cuántas carpetas hay en Roblox
{"type":"command","message":"Listando carpetas en Roblox.","command":"dir Roblox /ad /b"}

Usuario: lista los archivos de FutbolDB
{"type":"command","message":"Listando FutbolDB.","command":"dir FutbolDB"}

Usuario: crea una carpeta llamada proyectos
{"type":"command","message":"Creando carpeta proyectos.","command":"mkdir proyectos"}

Usuario: borra el archivo test.txt
{"type":"command","message":"Eliminando test.txt.","command":"del test.txt"}

Usuario: mueve recetas-mama a la carpeta archivo
{"type":"command","message":"Moviendo recetas-mama.","command":"move recetas-mama archivo"}

Usuario: copia config.json a la carpeta backup
{"type":"command","message":"Copiando config.json.","command":"copy config.json backup"}

Usuario: abre el archivo notas.txt
{"type":"command","message":"Abriendo notas.txt.","command":"start notas.txt"}

Usuario: cuánto espacio libre hay en el disco
{"type":"command","message":"Consultando espacio en disco.","command":"wmic logicaldisk get size,freespace,caption"}

Usuario: muéstrame los procesos que están corriendo
{"type":"command","message":"Listando procesos.","command":"tasklist"}

Usuario: cierra el proceso firefox
{"type":"command","message":"Cerrando Firefox.","command":"taskkill /IM firefox.exe /F"}

Usuario: qué hora es
{"type":"command","message":"Consultando la hora.","command":"time /t"}

Usuario: renombra la carpeta Unity a Unity2024
{"type":"command","message":"Renombrando carpeta.","command":"rename Unity Unity2024"}

Usuario: busca archivos llamados config en el directorio actual
{"type":"command","message":"Buscando archivos config.","command":"dir config* /s /b"}
`

const fewShotCommon = `
Usuario: hola cómo estás
{"type":"reply","message":"¡Hola! ¿En qué puedo ayudarte?"}

Usuario: no era esa carpeta sino FutbolDB
{"type":"reply","message":"Entendido, me refiero a FutbolDB. ¿Qué quieres hacer?"}

Usuario: me equivoqué quiero decir la carpeta de Unity
{"type":"reply","message":"Sin problema, hablamos de Unity. ¿Qué necesitas?"}

Usuario: gracias
{"type":"reply","message":"De nada. ¿Algo más?"}
`

const chatContextContent = `Contexto actual:
- Directorio de trabajo: {{workdir}}
- Carpetas disponibles: {{dirs}}
- Último target usado: {{last_target}}
- Última acción: {{last_action}}
- Escritorio: {{desktop}}
- Sistema operativo: {{os}}`

func registerBuiltins(r *PromptRegistry) {
	r.Register(&Prompt{
		ID:          "chat-system",
		Version:     PromptV1,
		Content:     chatSystemContent,
		Description: "Main system prompt: JSON envelope and command rules",
	})
	r.Register(&Prompt{
		ID:          "summarize-system",
		Version:     PromptV1,
		Content:     summarizeSystemContent,
		Description: "Evidence-only summarizer for execution output",
	})
}

// ChatContext carries the per-turn values injected into the system
// prompt.
type ChatContext struct {
	Workdir       string
	Desktop       string
	OS            string
	AvailableDirs []string
	LastTarget    string
	LastAction    string
	Memory        string // joined session notes
}

// ChatSystem builds the full system prompt for a turn: base rules, the
// platform few-shots, and the current context block.
func ChatSystem(ctx ChatContext) string {
	fewShot := fewShotLinux
	if ctx.OS == "windows" {
		fewShot = fewShotWindows
	}

	dirs := "ninguna"
	if len(ctx.AvailableDirs) > 0 {
		dirs = strings.Join(ctx.AvailableDirs, ", ")
	}
	lastTarget := ctx.LastTarget
	if lastTarget == "" {
		lastTarget = "ninguno"
	}
	lastAction := ctx.LastAction
	if lastAction == "" {
		lastAction = "ninguna"
	}

	b, err := NewPromptBuilder(DefaultRegistry(), "chat-system", PromptV1)
	if err != nil {
		// Built-in prompts are always registered.
		panic(err)
	}
	b.AddFragment("Ejemplos de uso:").
		AddFragment(fewShot).
		AddFragment(fewShotCommon).
		AddFragment(chatContextContent).
		SetVariable("workdir", ctx.Workdir).
		SetVariable("dirs", dirs).
		SetVariable("last_target", lastTarget).
		SetVariable("last_action", lastAction).
		SetVariable("desktop", ctx.Desktop).
		SetVariable("os", ctx.OS)

	// Only the freshest notes: old ones mislead more than they help.
	if ctx.Memory != "" {
		lines := strings.Split(ctx.Memory, "\n")
		if len(lines) > 5 {
			lines = lines[len(lines)-5:]
		}
		b.AddFragment("Memoria:\n" + strings.Join(lines, "\n"))
	}

	return b.Build()
}
