package executor

// Result is the outcome of one command execution, internal or host.
// OK reflects the exit status; Error carries the failure reason when the
// command could not run at all.
type Result struct {
	Command string `json:"command"`
	Cwd     string `json:"cwd"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}
