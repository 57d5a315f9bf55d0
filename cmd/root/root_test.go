package root_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"exmuzzy/pdf-spec/cmd/root"
	"exmuzzy/pdf-spec/internal/config"
	"exmuzzy/pdf-spec/internal/launcherror"
	"exmuzzy/pdf-spec/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

// TestHelperProcess stands in for both the parser and the opener.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PDFSPEC_ROOT_HELPER") != "1" {
		return
	}
	code, _ := strconv.Atoi(os.Getenv("PDFSPEC_ROOT_HELPER_EXIT"))
	os.Exit(code)
}

func testConfig(t *testing.T, withVenv bool, exitCode int) *config.Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("venv layout differs on windows")
	}

	dir := t.TempDir()
	venvDir := filepath.Join(dir, "venv")
	if withVenv {
		require.NoError(t, os.MkdirAll(filepath.Join(venvDir, "bin"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(venvDir, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(venvDir, "bin", "python"), []byte(""), 0o700))
	}

	t.Setenv("PDFSPEC_ROOT_HELPER", "1")
	t.Setenv("PDFSPEC_ROOT_HELPER_EXIT", strconv.Itoa(exitCode))

	cfg := &config.Config{}
	cfg.Environment.Dir = venvDir
	cfg.Parser.Command = os.Args[0]
	cfg.Parser.Args = []string{"-test.run=TestHelperProcess"}
	cfg.Parser.Workdir = dir
	cfg.Output.File = filepath.Join(dir, "specifications_full.xlsx")
	cfg.Open.Command = os.Args[0] + " -test.run=TestHelperProcess --"
	return cfg
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "pdf-spec", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Long, "specifications_full.xlsx")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.True(t, root.Cmd.SilenceUsage)

	configFlag := root.Cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
	assert.NotEmpty(t, configFlag.Usage)
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	assert.Error(t, root.Cmd.Args(root.Cmd, []string{"extra"}))
	assert.NoError(t, root.Cmd.Args(root.Cmd, nil))
}

func TestNewLauncher_Success(t *testing.T) {
	cfg := testConfig(t, true, 0)
	logger := logging.NewMockLogger()

	err := root.NewLauncher(cfg, logger).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, logger.HasEntry("INFO", "Done"))
}

func TestNewLauncher_MissingEnvironment(t *testing.T) {
	cfg := testConfig(t, false, 0)
	logger := logging.NewMockLogger()

	err := root.NewLauncher(cfg, logger).Run(context.Background())
	require.Error(t, err)

	var envErr *launcherror.EnvironmentError
	assert.True(t, errors.As(err, &envErr))
	assert.ErrorIs(t, err, launcherror.ErrEnvironmentNotFound)
	assert.Equal(t, 1, launcherror.ExitCode(err))
	assert.False(t, logger.HasEntry("INFO", "Running PDF parser..."))
}

func TestNewLauncher_ParserExitCodePropagates(t *testing.T) {
	cfg := testConfig(t, true, 3)
	logger := logging.NewMockLogger()

	err := root.NewLauncher(cfg, logger).Run(context.Background())
	require.Error(t, err)

	var invErr *launcherror.InvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, "run parser", invErr.Step)
	assert.Equal(t, 3, launcherror.ExitCode(err))
	assert.False(t, logger.HasEntry("INFO", "Opening result..."))
}

func TestRootCommand_Execute(t *testing.T) {
	cfg := testConfig(t, true, 0)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdirForTest(t, dir)
	t.Setenv("PDFSPEC_ENVIRONMENT_DIR", cfg.Environment.Dir)
	t.Setenv("PDFSPEC_PARSER_COMMAND", cfg.Parser.Command)
	t.Setenv("PDFSPEC_PARSER_WORKDIR", cfg.Parser.Workdir)
	t.Setenv("PDFSPEC_OUTPUT_FILE", cfg.Output.File)
	t.Setenv("PDFSPEC_OPEN_COMMAND", cfg.Open.Command)

	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("parser:\n  args: [\"-test.run=TestHelperProcess\"]\n"), 0o600))

	root.Cmd.SetArgs([]string{"--config", configFile})
	t.Cleanup(func() { root.Cmd.SetArgs(nil) })

	require.NoError(t, root.Cmd.ExecuteContext(context.Background()))
	require.NotNil(t, root.GetConfig())
	assert.Equal(t, cfg.Output.File, root.GetConfig().Output.File)
	assert.NotNil(t, root.GetLogger())
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
