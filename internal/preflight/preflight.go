// Package preflight runs pre-flight checks before aup3tool touches a
// project file, the way spindle's preflight package validates directories
// and service reachability before a workflow run starts.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"aup3tool/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks that projectPath exists and is readable, that its parent
// directory is writable (recovery and extraction write sibling files and
// directories there), and that the configured sqlite3 helper binary is
// found next to the executable or on PATH.
func RunAll(projectPath, sqlite3Binary string) []Result {
	results := []Result{CheckFileAccess("Project file", projectPath)}

	dir := filepath.Dir(projectPath)
	if dir == "" {
		dir = "."
	}
	results = append(results, CheckDirectoryAccess("Project directory", dir))

	for _, status := range deps.CheckBinaries([]deps.Requirement{deps.SQLite3Recovery(sqlite3Binary)}) {
		result := Result{Name: status.Name}
		if status.Available {
			result.Passed = true
			result.Detail = fmt.Sprintf("%s (%s)", status.Command, status.Path)
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	return results
}

// CheckFileAccess verifies that path exists, is a regular file, and is
// readable.
func CheckFileAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes)", path, info.Size())}
}

// CheckDirectoryAccess verifies that path exists, is a directory, and is
// readable, writable, and executable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
