package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	"github.com/vocapp/vocapp/internal/audit"
	"github.com/vocapp/vocapp/internal/config"
	"github.com/vocapp/vocapp/internal/executor"
	"github.com/vocapp/vocapp/internal/inspector"
	"github.com/vocapp/vocapp/internal/orchestrator"
	"github.com/vocapp/vocapp/internal/providers"
	"github.com/vocapp/vocapp/internal/safety"
	"github.com/vocapp/vocapp/internal/server"
	"github.com/vocapp/vocapp/internal/session"
)

func main() {
	// Load .env if present; real environment wins.
	_ = godotenv.Load()

	if err := run(context.Background()); err != nil {
		log.Fatalf("vocappd: %v", err)
	}
}

func run(ctx context.Context) error {
	env := config.LoadEnv()
	home, _ := os.UserHomeDir()

	model, err := providers.New(providers.Config{
		Provider:   env.Provider,
		Model:      modelName(env),
		APIKey:     env.APIKey,
		BaseURL:    env.BaseURL,
		OllamaHost: env.OllamaHost,
	})
	if err != nil {
		return fmt.Errorf("model backend: %w", err)
	}

	access, err := config.NewAccessManager()
	if err != nil {
		return fmt.Errorf("access config: %w", err)
	}

	cache := inspector.NewCache(env.Workdir)
	defer cache.Close()

	runner := &executor.Runner{
		Timeout: env.ExecTimeout,
		Scope: func() safety.Scope {
			return scopeFrom(access.Load(), env.Workdir, home)
		},
	}

	pending := executor.NewPendingStore()
	sessions := session.NewStore()
	stop := make(chan struct{})
	defer close(stop)
	go pending.Sweep(60*time.Second, stop)
	go sessions.Sweep(10*time.Minute, stop)

	dbPath := auditPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Printf("WARNING: audit dir: %v", err)
	}
	auditLog, err := audit.NewLog(ctx, dbPath)
	if err != nil {
		log.Printf("WARNING: audit log disabled: %v", err)
		auditLog = nil
	}

	orc := &orchestrator.Orchestrator{
		Model:      model,
		Inspector:  inspector.New(env.Workdir),
		Cache:      cache,
		Runner:     runner,
		Pending:    pending,
		Sessions:   sessions,
		Classifier: safety.DenyListClassifier{},
		Audit:      auditLog,
		Workdir:    env.Workdir,
		Desktop:    env.DesktopDir,
		OS:         runtime.GOOS,

		StrictGroundedFS:   env.StrictGroundedFS,
		AutoExecReadOnly:   env.AutoExecReadOnly,
		AutoSummarizeReads: env.AutoSummarizeReads,
	}

	srv := &server.Server{
		Orchestrator: orc,
		Pending:      pending,
		Runner:       runner,
		Access:       access,
		Audit:        auditLog,
	}

	log.Printf("voice-pc-agent en http://localhost:%d", env.Port)
	log.Printf("Modelo: %s (%s)", modelName(env), model.Name())
	log.Printf("Directorio de ejecucion: %s", env.Workdir)
	log.Printf("Modo filesystem blindado: %s", onOff(env.StrictGroundedFS))
	log.Printf("Auto-ejecucion lectura: %s", onOff(env.AutoExecReadOnly))
	log.Printf("Auto-resumen lectura: %s", onOff(env.AutoSummarizeReads))
	if access.Load().Mode == string(safety.ModeFree) {
		log.Printf("WARNING: acceso libre al filesystem habilitado")
	}

	return http.ListenAndServe(fmt.Sprintf(":%d", env.Port), srv.Router())
}

func modelName(env config.Env) string {
	if env.Model != "" {
		return env.Model
	}
	if env.Provider == "" || env.Provider == "ollama" {
		return env.OllamaModel
	}
	return "predeterminado"
}

// scopeFrom maps the persisted access configuration to an execution
// scope, expanding ~ in allowlisted paths.
func scopeFrom(cfg config.AccessConfig, workdir, home string) safety.Scope {
	scope := safety.Scope{
		Mode:    safety.Mode(cfg.Mode),
		Workdir: workdir,
		Home:    home,
	}
	for _, p := range cfg.AllowedPaths {
		if len(p) > 0 && p[0] == '~' {
			p = filepath.Join(home, p[1:])
		}
		scope.AllowedPaths = append(scope.AllowedPaths, p)
	}
	return scope
}

func auditPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "audit.db"
	}
	return filepath.Join(dir, "vocapp", "audit.db")
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
