package gitconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/macsetup/internal/execshell"
)

const (
	executorMissingMessageConstant              = "git executor not configured"
	configurationKeyRequiredMessageConstant     = "configuration key must be provided"
	configurationValueRequiredMessageConstant   = "configuration value must be provided"
	repositoryURLRequiredMessageConstant        = "repository URL must be provided"
	targetDirectoryRequiredMessageConstant      = "target directory must be provided"
	configurationUpdateFailureTemplateConstant  = "failed to set git configuration %s: %w"
	repositoryCloneFailureTemplateConstant      = "failed to clone %s: %w"
	gitConfigSubcommandConstant                 = "config"
	gitGlobalFlagConstant                       = "--global"
	gitCloneSubcommandConstant                  = "clone"
	userEmailConfigurationKeyConstant           = "user.email"
	userNameConfigurationKeyConstant            = "user.name"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
)

// ErrExecutorNotConfigured indicates the git executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrConfigurationKeyRequired indicates the configuration key was empty.
var ErrConfigurationKeyRequired = errors.New(configurationKeyRequiredMessageConstant)

// ErrConfigurationValueRequired indicates the configuration value was empty.
var ErrConfigurationValueRequired = errors.New(configurationValueRequiredMessageConstant)

// ErrRepositoryURLRequired indicates the repository URL was empty.
var ErrRepositoryURLRequired = errors.New(repositoryURLRequiredMessageConstant)

// ErrTargetDirectoryRequired indicates the clone target directory was empty.
var ErrTargetDirectoryRequired = errors.New(targetDirectoryRequiredMessageConstant)

// Executor runs git commands.
type Executor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Identity captures the global git author identity.
type Identity struct {
	EmailAddress string
	DisplayName  string
}

// Manager applies global git configuration and clones repositories.
type Manager struct {
	executor Executor
}

// NewManager constructs a Manager from the provided executor.
func NewManager(executor Executor) (*Manager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Manager{executor: executor}, nil
}

// SetGlobalValue writes a single global git configuration entry.
func (manager *Manager) SetGlobalValue(executionContext context.Context, configurationKey string, configurationValue string) error {
	trimmedKey := strings.TrimSpace(configurationKey)
	if len(trimmedKey) == 0 {
		return ErrConfigurationKeyRequired
	}

	trimmedValue := strings.TrimSpace(configurationValue)
	if len(trimmedValue) == 0 {
		return ErrConfigurationValueRequired
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitConfigSubcommandConstant, gitGlobalFlagConstant, trimmedKey, trimmedValue},
	})
	if executionError != nil {
		return fmt.Errorf(configurationUpdateFailureTemplateConstant, trimmedKey, executionError)
	}

	return nil
}

// SetGlobalIdentity writes the global user.email and user.name entries.
func (manager *Manager) SetGlobalIdentity(executionContext context.Context, identity Identity) error {
	if emailError := manager.SetGlobalValue(executionContext, userEmailConfigurationKeyConstant, identity.EmailAddress); emailError != nil {
		return emailError
	}
	return manager.SetGlobalValue(executionContext, userNameConfigurationKeyConstant, identity.DisplayName)
}

// CloneRepository clones the repository URL into the target directory.
func (manager *Manager) CloneRepository(executionContext context.Context, repositoryURL string, targetDirectory string) error {
	trimmedURL := strings.TrimSpace(repositoryURL)
	if len(trimmedURL) == 0 {
		return ErrRepositoryURLRequired
	}

	trimmedTargetDirectory := strings.TrimSpace(targetDirectory)
	if len(trimmedTargetDirectory) == 0 {
		return ErrTargetDirectoryRequired
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitCloneSubcommandConstant, trimmedURL, trimmedTargetDirectory},
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	})
	if executionError != nil {
		return fmt.Errorf(repositoryCloneFailureTemplateConstant, trimmedURL, executionError)
	}

	return nil
}
