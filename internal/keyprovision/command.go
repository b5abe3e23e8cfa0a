package keyprovision

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/macsetup/internal/dependencies"
	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/gitconfig"
	"github.com/temirov/macsetup/internal/macos"
	"github.com/temirov/macsetup/internal/prompt"
	"github.com/temirov/macsetup/internal/sshkey"
	"github.com/temirov/macsetup/internal/utils"
)

const (
	commandUseConstant              = "ssh-key"
	commandShortDescriptionConstant = "Generate an SSH key and wire it into GitHub and git"
	commandLongDescriptionConstant  = "ssh-key generates an ed25519 keypair named after the current user and host, registers it with the keychain-backed SSH agent, sets the global git identity, copies the public key to the clipboard, opens the GitHub SSH settings page, offers a connectivity test, and optionally clones the dotfiles repository."
	emailFlagNameConstant           = "email"
	emailFlagDescriptionConstant    = "Email address for the key comment and git identity"
	nameFlagNameConstant            = "name"
	nameFlagDescriptionConstant     = "Display name for the global git identity"
	keyDirectoryFlagNameConstant    = "key-directory"
	keyDirectoryFlagDescription     = "Directory that receives the generated keypair"
	dotfilesFlagNameConstant        = "dotfiles-repository"
	dotfilesFlagDescriptionConstant = "Dotfiles repository URL offered for cloning"
	dotfilesTargetFlagNameConstant  = "dotfiles-target"
	dotfilesTargetFlagDescription   = "Directory that receives the dotfiles clone"
	configurationFileLogMessage     = "using configuration file"
	configurationFileLogField       = "config_file"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the ssh-key command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ShellExecutor                *execshell.ShellExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
}

// Build constructs the ssh-key command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(emailFlagNameConstant, "", emailFlagDescriptionConstant)
	command.Flags().String(nameFlagNameConstant, "", nameFlagDescriptionConstant)
	command.Flags().String(keyDirectoryFlagNameConstant, "", keyDirectoryFlagDescription)
	command.Flags().String(dotfilesFlagNameConstant, "", dotfilesFlagDescriptionConstant)
	command.Flags().String(dotfilesTargetFlagNameConstant, "", dotfilesTargetFlagDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, pathAvailable := contextAccessor.ConfigurationFilePath(command.Context()); pathAvailable && len(strings.TrimSpace(configurationFilePath)) > 0 {
		logger.Debug(configurationFileLogMessage, zap.String(configurationFileLogField, configurationFilePath))
	}

	options, optionsError := builder.resolveOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	shellExecutor, executorError := dependencies.ResolveShellExecutor(builder.ShellExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	keyGenerator, keyGeneratorError := sshkey.NewManager(shellExecutor)
	if keyGeneratorError != nil {
		return keyGeneratorError
	}

	gitConfigurator, gitConfiguratorError := gitconfig.NewManager(shellExecutor)
	if gitConfiguratorError != nil {
		return gitConfiguratorError
	}

	workspace, workspaceError := macos.NewWorkspace(shellExecutor, shellExecutor)
	if workspaceError != nil {
		return workspaceError
	}

	service, serviceCreationError := NewService(Dependencies{
		KeyGenerator:         keyGenerator,
		GitConfigurator:      gitConfigurator,
		Workspace:            workspace,
		ConnectivityExecutor: shellExecutor,
		Prompter:             prompt.NewIOPrompter(command.InOrStdin(), command.OutOrStdout()),
		FileSystem:           OSFileSystem{},
		MachineIdentity:      OSMachineIdentity{},
		Output:               command.OutOrStdout(),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, provisionError := service.Provision(command.Context(), options)
	return provisionError
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command, configuration Configuration) (Options, error) {
	options := Options{
		EmailAddress:            configuration.EmailAddress,
		DisplayName:             configuration.DisplayName,
		KeyDirectory:            configuration.KeyDirectory,
		DotfilesRepositoryURL:   configuration.DotfilesRepositoryURL,
		DotfilesTargetDirectory: configuration.DotfilesTargetDirectory,
	}

	flagOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: emailFlagNameConstant, target: &options.EmailAddress},
		{flagName: nameFlagNameConstant, target: &options.DisplayName},
		{flagName: keyDirectoryFlagNameConstant, target: &options.KeyDirectory},
		{flagName: dotfilesFlagNameConstant, target: &options.DotfilesRepositoryURL},
		{flagName: dotfilesTargetFlagNameConstant, target: &options.DotfilesTargetDirectory},
	}
	for _, override := range flagOverrides {
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return Options{}, flagError
		}
		trimmedValue := strings.TrimSpace(flagValue)
		if len(trimmedValue) > 0 {
			*override.target = trimmedValue
		}
	}

	options.KeyDirectory = configurationHomeDirectoryExpander.Expand(strings.TrimSpace(options.KeyDirectory))
	options.DotfilesTargetDirectory = configurationHomeDirectoryExpander.Expand(strings.TrimSpace(options.DotfilesTargetDirectory))

	return options, nil
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
