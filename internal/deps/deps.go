// Package deps checks that the external helper binaries aup3tool relies
// on are present, the way spindle's deps package checks its ripping and
// encoding toolchain before starting a run.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement describes one external binary aup3tool may shell out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports whether a Requirement's binary was found next to the
// executable or on PATH.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// SQLite3Recovery describes the sqlite3 CLI used by the recovery helper;
// command is resolved at call time since the config file's sqlite3_binary
// setting can override the binary name.
func SQLite3Recovery(command string) Requirement {
	if strings.TrimSpace(command) == "" {
		command = "sqlite3"
	}
	return Requirement{
		Name:        "SQLite3 CLI",
		Command:     command,
		Description: "drives the .recover dot-command against corrupted project files",
	}
}

// CheckBinaries resolves each Requirement and reports status.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := Resolve(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found next to the executable or on PATH", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Resolve finds cmd, checking the directory of the currently-running
// executable before falling back to the system PATH, mirroring
// AudacityDatabase's own search order for the sqlite3 recovery helper
// (_examples/original_source/src/AudacityDatabase.cpp's binaryPath.parent_path()
// inserted ahead of search_path).
func Resolve(cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return "", fmt.Errorf("command not configured")
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), cmd)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}

	return exec.LookPath(cmd)
}
