// Package venv prepares an isolated Python interpreter environment for a child process,
// the same way sourcing venv/bin/activate does for an interactive shell.
package venv

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"exmuzzy/pdf-spec/internal/launcherror"
	"exmuzzy/pdf-spec/internal/logging"
)

// MarkerFile is written by `python -m venv` at the root of every environment.
const MarkerFile = "pyvenv.cfg"

// Environment is a prepared virtual environment.
type Environment struct {
	// Dir is the absolute environment directory.
	Dir string
	// BinDir holds the interpreter and console scripts.
	BinDir string
	// Interpreter is the absolute path of the environment's python executable.
	Interpreter string
	// Vars is the activated environment for child processes.
	Vars []string

	goos string
}

// Preparer validates and activates the environment found in a directory.
type Preparer struct {
	dir    string
	goos   string
	base   func() []string
	logger logging.Logger
}

// NewPreparer creates a Preparer for the environment in dir.
func NewPreparer(dir string, logger logging.Logger) *Preparer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Preparer{
		dir:    dir,
		goos:   runtime.GOOS,
		base:   os.Environ,
		logger: logger,
	}
}

// Prepare checks that the environment exists and is intact and returns it activated.
// Any problem is an *launcherror.EnvironmentError; nothing is repaired.
func (p *Preparer) Prepare() (*Environment, error) {
	absDir, err := filepath.Abs(p.dir)
	if err != nil {
		return nil, &launcherror.EnvironmentError{Dir: p.dir, Reason: "invalid path", Err: err}
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &launcherror.EnvironmentError{Dir: p.dir, Err: launcherror.ErrEnvironmentNotFound}
		}
		return nil, &launcherror.EnvironmentError{Dir: p.dir, Reason: "stat failed", Err: err}
	}
	if !info.IsDir() {
		return nil, &launcherror.EnvironmentError{Dir: p.dir, Reason: "not a directory", Err: launcherror.ErrEnvironmentCorrupt}
	}

	if _, err := os.Stat(filepath.Join(absDir, MarkerFile)); err != nil {
		return nil, &launcherror.EnvironmentError{Dir: p.dir, Reason: "missing " + MarkerFile, Err: launcherror.ErrEnvironmentCorrupt}
	}

	binDir := filepath.Join(absDir, binDirName(p.goos))
	interpreter, ok := findInterpreter(binDir, p.goos)
	if !ok {
		return nil, &launcherror.EnvironmentError{Dir: p.dir, Reason: "no interpreter in " + binDir, Err: launcherror.ErrEnvironmentCorrupt}
	}

	env := &Environment{
		Dir:         absDir,
		BinDir:      binDir,
		Interpreter: interpreter,
		Vars:        Activate(p.base(), absDir, binDir),
		goos:        p.goos,
	}

	p.logger.Debug("Environment activated",
		logging.Field{Key: logging.FieldDirectory, Value: absDir},
		logging.Field{Key: "interpreter", Value: interpreter})

	return env, nil
}

// Activate returns base with VIRTUAL_ENV set, binDir prepended to PATH and PYTHONHOME removed.
func Activate(base []string, dir, binDir string) []string {
	vars := make([]string, 0, len(base)+2)
	path := ""
	for _, kv := range base {
		key, value, _ := strings.Cut(kv, "=")
		switch strings.ToUpper(key) {
		case "VIRTUAL_ENV", "PYTHONHOME":
			continue
		case "PATH":
			path = value
			continue
		}
		vars = append(vars, kv)
	}

	if path == "" {
		path = binDir
	} else {
		path = binDir + string(os.PathListSeparator) + path
	}

	return append(vars, "VIRTUAL_ENV="+dir, "PATH="+path)
}

// Resolve maps a bare command name to the environment's bin directory when it exists there,
// mirroring PATH lookup after activation. Paths and unknown names are returned unchanged.
func (e *Environment) Resolve(command string) string {
	if command == "" || strings.ContainsAny(command, `/\`) {
		return command
	}
	for _, candidate := range executableNames(e.goos, command) {
		full := filepath.Join(e.BinDir, candidate)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return full
		}
	}
	return command
}

func binDirName(goos string) string {
	if goos == "windows" {
		return "Scripts"
	}
	return "bin"
}

func findInterpreter(binDir, goos string) (string, bool) {
	names := []string{"python", "python3"}
	if goos == "windows" {
		names = []string{"python.exe"}
	}
	for _, name := range names {
		full := filepath.Join(binDir, name)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return full, true
		}
	}
	return "", false
}

func executableNames(goos, command string) []string {
	if goos == "windows" && filepath.Ext(command) == "" {
		return []string{command + ".exe", command}
	}
	return []string{command}
}
