package preferences_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/preferences"
)

type scriptedCommandRunner struct {
	commands []execshell.ShellCommand
}

func (runner *scriptedCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.commands = append(runner.commands, command)
	if command.Name == execshell.CommandCurl {
		return execshell.ExecutionResult{StandardOutput: "echo install"}, nil
	}
	return execshell.ExecutionResult{}, nil
}

func buildPreferencesCommand(t *testing.T, runner *scriptedCommandRunner) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), runner)
	require.NoError(t, executorError)

	builder := &preferences.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ShellExecutor:  shellExecutor,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(output)
	command.SetContext(context.Background())
	return command, output
}

func TestCommandAppliesEmbeddedProfile(t *testing.T) {
	runner := &scriptedCommandRunner{}
	command, output := buildPreferencesCommand(t, runner)
	command.SetArgs([]string{})

	executionError := command.Execute()

	require.NoError(t, executionError)

	nameCounts := map[execshell.CommandName]int{}
	for _, recordedCommand := range runner.commands {
		nameCounts[recordedCommand.Name]++
	}
	require.Equal(t, 8, nameCounts[execshell.CommandDefaults])
	require.Equal(t, 2, nameCounts[execshell.CommandKillall])
	require.Equal(t, 1, nameCounts[execshell.CommandCurl])
	require.Equal(t, 1, nameCounts[execshell.CommandBash])
	require.Contains(t, output.String(), "Applied 8 preference(s), 0 failed.")
}

func TestCommandDryRunInvokesNothing(t *testing.T) {
	runner := &scriptedCommandRunner{}
	command, output := buildPreferencesCommand(t, runner)
	command.SetArgs([]string{"--dry-run"})

	executionError := command.Execute()

	require.NoError(t, executionError)
	require.Empty(t, runner.commands)
	require.Contains(t, output.String(), "Would write preference")
}

func TestCommandSkipsHomebrewWhenRequested(t *testing.T) {
	runner := &scriptedCommandRunner{}
	command, _ := buildPreferencesCommand(t, runner)
	command.SetArgs([]string{"--skip-homebrew"})

	executionError := command.Execute()

	require.NoError(t, executionError)
	for _, recordedCommand := range runner.commands {
		require.NotEqual(t, execshell.CommandCurl, recordedCommand.Name)
		require.NotEqual(t, execshell.CommandBash, recordedCommand.Name)
	}
}

func TestCommandReadsProfileFromFlag(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	profileContent := "preferences:\n  - domain: com.apple.dock\n    key: autohide\n    type: bool\n    value: \"true\"\n"
	require.NoError(t, os.WriteFile(profilePath, []byte(profileContent), 0o600))

	runner := &scriptedCommandRunner{}
	command, output := buildPreferencesCommand(t, runner)
	command.SetArgs([]string{"--profile", profilePath, "--skip-homebrew"})

	executionError := command.Execute()

	require.NoError(t, executionError)
	require.Len(t, runner.commands, 1)
	require.Equal(t, execshell.CommandDefaults, runner.commands[0].Name)
	require.Contains(t, output.String(), "Applied 1 preference(s), 0 failed.")
}

func TestCommandFailsOnMissingProfileFile(t *testing.T) {
	runner := &scriptedCommandRunner{}
	command, _ := buildPreferencesCommand(t, runner)
	command.SetArgs([]string{"--profile", filepath.Join(t.TempDir(), "absent.yaml")})

	executionError := command.Execute()

	require.ErrorContains(t, executionError, "failed to read preference profile")
	require.Empty(t, runner.commands)
}
