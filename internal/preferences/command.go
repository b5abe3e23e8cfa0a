package preferences

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/macsetup/internal/dependencies"
	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/homebrew"
	"github.com/temirov/macsetup/internal/macos"
	"github.com/temirov/macsetup/internal/utils"
)

const (
	commandUseConstant                  = "preferences"
	commandShortDescriptionConstant     = "Apply macOS preference flags and bootstrap Homebrew"
	commandLongDescriptionConstant      = "preferences writes the configured defaults profile (assistant, window tiling, hot corners, dock autohide, menu bar), restarts the affected services, and bootstraps Homebrew."
	profileFlagNameConstant             = "profile"
	profileFlagDescriptionConstant      = "Path to a YAML preference profile (defaults to the embedded profile)"
	dryRunFlagNameConstant              = "dry-run"
	dryRunFlagDescriptionConstant       = "Preview the preference writes without applying them"
	skipHomebrewFlagNameConstant        = "skip-homebrew"
	skipHomebrewFlagDescriptionConstant = "Skip the Homebrew bootstrap step"
	profileReadFailureTemplateConstant  = "failed to read preference profile %s: %w"
	configurationFileLogMessage         = "using configuration file"
	configurationFileLogField           = "config_file"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the preferences command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ShellExecutor                *execshell.ShellExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
}

// Build constructs the preferences command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(profileFlagNameConstant, "", profileFlagDescriptionConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)
	command.Flags().Bool(skipHomebrewFlagNameConstant, false, skipHomebrewFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, pathAvailable := contextAccessor.ConfigurationFilePath(command.Context()); pathAvailable && len(strings.TrimSpace(configurationFilePath)) > 0 {
		logger.Debug(configurationFileLogMessage, zap.String(configurationFileLogField, configurationFilePath))
	}

	profilePath, profileFlagError := command.Flags().GetString(profileFlagNameConstant)
	if profileFlagError != nil {
		return profileFlagError
	}
	trimmedProfilePath := strings.TrimSpace(profilePath)
	if len(trimmedProfilePath) == 0 {
		trimmedProfilePath = configuration.ProfilePath
	}

	profile, profileError := resolveProfile(trimmedProfilePath)
	if profileError != nil {
		return profileError
	}

	dryRun := configuration.DryRun
	if command.Flags().Changed(dryRunFlagNameConstant) {
		dryRunFlagValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return dryRunFlagError
		}
		dryRun = dryRunFlagValue
	}

	installHomebrew := configuration.InstallHomebrew
	if command.Flags().Changed(skipHomebrewFlagNameConstant) {
		skipRequested, skipFlagError := command.Flags().GetBool(skipHomebrewFlagNameConstant)
		if skipFlagError != nil {
			return skipFlagError
		}
		installHomebrew = !skipRequested
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	shellExecutor, executorError := dependencies.ResolveShellExecutor(builder.ShellExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	preferenceWriter, writerError := macos.NewPreferenceWriter(shellExecutor)
	if writerError != nil {
		return writerError
	}

	serviceRestarter, restarterError := macos.NewServiceRestarter(shellExecutor)
	if restarterError != nil {
		return restarterError
	}

	installer, installerError := homebrew.NewInstaller(shellExecutor, shellExecutor)
	if installerError != nil {
		return installerError
	}

	service, serviceCreationError := NewService(Dependencies{
		PreferenceWriter:  preferenceWriter,
		ServiceController: serviceRestarter,
		PackageInstaller:  installer,
		Output:            command.OutOrStdout(),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, applyError := service.Apply(command.Context(), Options{
		Profile:         profile,
		DryRun:          dryRun,
		InstallHomebrew: installHomebrew,
	})
	return applyError
}

func resolveProfile(profilePath string) (Profile, error) {
	if len(profilePath) == 0 {
		return DefaultProfile()
	}
	profileContent, readError := os.ReadFile(profilePath)
	if readError != nil {
		return Profile{}, fmt.Errorf(profileReadFailureTemplateConstant, profilePath, readError)
	}
	return ParseProfile(profileContent)
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
