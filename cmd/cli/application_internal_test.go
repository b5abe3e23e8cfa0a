package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewApplicationRegistersProvisioningCommands(t *testing.T) {
	application := NewApplication()

	registeredNames := make([]string, 0, len(application.rootCommand.Commands()))
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredNames = append(registeredNames, registeredCommand.Name())
	}

	require.Contains(t, registeredNames, "ssh-key")
	require.Contains(t, registeredNames, "preferences")
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(t *testing.T) {
	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(t, initializationError)
	require.Equal(t, "info", application.configuration.Common.LogLevel)
	require.Equal(t, "structured", application.configuration.Common.LogFormat)
	require.Equal(t, "~/.ssh", application.configuration.Tools.SSHKey.KeyDirectory)
	require.Equal(t, "https://github.com/temirov/dotfiles.git", application.configuration.Tools.SSHKey.DotfilesRepositoryURL)
	require.True(t, application.configuration.Tools.Preferences.InstallHomebrew)
	require.False(t, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationHonorsConfigurationFile(t *testing.T) {
	configurationFilePath := filepath.Join(t.TempDir(), "config.yaml")
	configurationContent := "common:\n  log_format: console\ntools:\n  ssh_key:\n    email: casey@example.com\n  preferences:\n    install_homebrew: false\n"
	require.NoError(t, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	application := NewApplication()
	application.configurationFilePath = configurationFilePath

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(t, initializationError)
	require.Equal(t, "casey@example.com", application.configuration.Tools.SSHKey.EmailAddress)
	require.False(t, application.configuration.Tools.Preferences.InstallHomebrew)
	require.True(t, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("MACSETUP_TOOLS_SSH_KEY_EMAIL", "env@example.com")

	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(t, initializationError)
	require.Equal(t, "env@example.com", application.configuration.Tools.SSHKey.EmailAddress)
}

func TestPersistentFlagsOverrideConfiguredLogging(t *testing.T) {
	application := NewApplication()
	require.NoError(t, application.rootCommand.PersistentFlags().Set("log-level", "debug"))
	require.NoError(t, application.rootCommand.PersistentFlags().Set("log-format", "console"))
	application.logLevelFlagValue = "debug"
	application.logFormatFlagValue = "console"

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(t, initializationError)
	require.Equal(t, "debug", application.configuration.Common.LogLevel)
	require.True(t, application.humanReadableLoggingEnabled())
}

func TestRootCommandWithoutArgumentsShowsHelp(t *testing.T) {
	application := NewApplication()
	output := &bytes.Buffer{}
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)
	application.rootCommand.SetArgs([]string{})

	executionError := application.Execute()

	require.NoError(t, executionError)
	require.Contains(t, output.String(), "ssh-key")
	require.Contains(t, output.String(), "preferences")
}

func TestInitializeConfigurationRejectsUnknownLogLevel(t *testing.T) {
	application := NewApplication()
	require.NoError(t, application.rootCommand.PersistentFlags().Set("log-level", "verbose"))
	application.logLevelFlagValue = "verbose"

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.ErrorContains(t, initializationError, "unable to create logger")
}
