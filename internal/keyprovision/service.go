package keyprovision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/gitconfig"
	"github.com/temirov/macsetup/internal/sshkey"
)

const (
	keyGeneratorMissingMessageConstant         = "key generator not configured"
	gitConfiguratorMissingMessageConstant      = "git configurator not configured"
	workspaceMissingMessageConstant            = "workspace controller not configured"
	connectivityExecutorMissingMessageConstant = "ssh executor not configured"
	prompterMissingMessageConstant             = "prompter not configured"
	fileSystemMissingMessageConstant           = "file system not configured"
	machineIdentityMissingMessageConstant      = "machine identity provider not configured"
	outputWriterMissingMessageConstant         = "output writer not configured"
	emailAddressRequiredMessageConstant        = "email address must be provided"
	displayNameRequiredMessageConstant         = "display name must be provided"
	keyDirectoryRequiredMessageConstant        = "key directory must be provided"

	emailPromptConstant               = "Enter the email address for the key: "
	displayNamePromptConstant         = "Enter your full name for git commits: "
	overwritePromptTemplateConstant   = "Key %s already exists. Overwrite it? [y/N]: "
	connectivityMenuPromptConstant    = "Test the GitHub connection (t) or finish (f): "
	dotfilesClonePromptConstant       = "Clone the dotfiles repository? [y/N]: "
	dotfilesTargetPromptConstant      = "Enter the clone target directory: "
	connectivityTestSelectionConstant = "t"
	finishSelectionConstant           = "f"

	keyFileNameTemplateConstant       = "id_ed25519_%s-%s"
	githubSSHSettingsURLConstant      = "https://github.com/settings/ssh/new"
	defaultDotfilesRepositoryConstant = "https://github.com/temirov/dotfiles.git"
	githubSSHHostConstant             = "git@github.com"
	sshDisableShellFlagConstant       = "-T"
	acceptedConnectivityExitCode      = 1
	usernameLookupFailureTemplate     = "failed to determine the current username: %w"
	hostnameLookupFailureTemplate     = "failed to determine the hostname: %w"
	keyExistenceCheckFailureTemplate  = "failed to check for an existing key at %s: %w"
	keepingExistingKeyMessageConstant = "Keeping the existing key."
	warningMessageTemplateConstant    = "Warning: %v\n"
	publicKeyReadWarningTemplate      = "Warning: could not read the public key %s: %v\n"
	publicKeyCopiedMessageConstant    = "The public key is on the clipboard. Paste it into the GitHub form."
	connectivityOKMessageConstant     = "GitHub connectivity confirmed."
	connectivityWarningTemplate       = "Warning: the GitHub connectivity test failed: %v\n"
	invalidSelectionMessageConstant   = "Please answer with t or f."
	cloneSkippedNoTargetMessage       = "No target directory provided; skipping the dotfiles clone."
	dotfilesClonedMessageTemplate     = "Cloned %s into %s\n"
	provisioningDoneMessageTemplate   = "SSH key %s is ready.\n"
	browserOpenedMessageConstant      = "Opened the GitHub SSH settings page; add the key there."
)

// ErrKeyGeneratorNotConfigured indicates the key generator dependency was missing.
var ErrKeyGeneratorNotConfigured = errors.New(keyGeneratorMissingMessageConstant)

// ErrGitConfiguratorNotConfigured indicates the git configurator dependency was missing.
var ErrGitConfiguratorNotConfigured = errors.New(gitConfiguratorMissingMessageConstant)

// ErrWorkspaceNotConfigured indicates the workspace controller dependency was missing.
var ErrWorkspaceNotConfigured = errors.New(workspaceMissingMessageConstant)

// ErrConnectivityExecutorNotConfigured indicates the ssh executor dependency was missing.
var ErrConnectivityExecutorNotConfigured = errors.New(connectivityExecutorMissingMessageConstant)

// ErrPrompterNotConfigured indicates the prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the file system dependency was missing.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrMachineIdentityNotConfigured indicates the machine identity dependency was missing.
var ErrMachineIdentityNotConfigured = errors.New(machineIdentityMissingMessageConstant)

// ErrOutputWriterNotConfigured indicates the output writer dependency was missing.
var ErrOutputWriterNotConfigured = errors.New(outputWriterMissingMessageConstant)

// ErrEmailAddressRequired indicates no email address was configured or entered.
var ErrEmailAddressRequired = errors.New(emailAddressRequiredMessageConstant)

// ErrDisplayNameRequired indicates no display name was configured or entered.
var ErrDisplayNameRequired = errors.New(displayNameRequiredMessageConstant)

// ErrKeyDirectoryRequired indicates the key directory option was empty.
var ErrKeyDirectoryRequired = errors.New(keyDirectoryRequiredMessageConstant)

// KeyGenerator produces SSH keypairs and registers them with the agent.
type KeyGenerator interface {
	Generate(executionContext context.Context, options sshkey.GenerateOptions) error
	RegisterWithAgent(executionContext context.Context, keyFilePath string) error
}

// GitConfigurator applies global git identity and clones repositories.
type GitConfigurator interface {
	SetGlobalIdentity(executionContext context.Context, identity gitconfig.Identity) error
	CloneRepository(executionContext context.Context, repositoryURL string, targetDirectory string) error
}

// WorkspaceController opens URLs and copies content to the pasteboard.
type WorkspaceController interface {
	OpenURL(executionContext context.Context, targetURL string) error
	CopyToPasteboard(executionContext context.Context, content []byte) error
}

// ConnectivityExecutor runs ssh commands for the GitHub connectivity test.
type ConnectivityExecutor interface {
	ExecuteSSH(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Prompter collects interactive responses.
type Prompter interface {
	Confirm(promptMessage string) (bool, error)
	ReadLine(promptMessage string) (string, error)
}

// FileSystem answers existence checks and reads generated key material.
type FileSystem interface {
	FileExists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
}

// MachineIdentity reports the local username and hostname used to derive the key name.
type MachineIdentity interface {
	Username() (string, error)
	Hostname() (string, error)
}

// Dependencies enumerates external collaborators required for provisioning.
type Dependencies struct {
	KeyGenerator         KeyGenerator
	GitConfigurator      GitConfigurator
	Workspace            WorkspaceController
	ConnectivityExecutor ConnectivityExecutor
	Prompter             Prompter
	FileSystem           FileSystem
	MachineIdentity      MachineIdentity
	Output               io.Writer
}

// Options configures a provisioning run.
type Options struct {
	EmailAddress            string
	DisplayName             string
	KeyDirectory            string
	DotfilesRepositoryURL   string
	DotfilesTargetDirectory string
}

// Result captures the observable outcomes of a provisioning run.
type Result struct {
	KeyFilePath       string
	PublicKeyFilePath string
	KeyGenerated      bool
	DotfilesCloned    bool
}

// Service coordinates the provisioning workflow.
type Service struct {
	keyGenerator         KeyGenerator
	gitConfigurator      GitConfigurator
	workspace            WorkspaceController
	connectivityExecutor ConnectivityExecutor
	prompter             Prompter
	fileSystem           FileSystem
	machineIdentity      MachineIdentity
	output               io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.KeyGenerator == nil {
		return nil, ErrKeyGeneratorNotConfigured
	}
	if dependencies.GitConfigurator == nil {
		return nil, ErrGitConfiguratorNotConfigured
	}
	if dependencies.Workspace == nil {
		return nil, ErrWorkspaceNotConfigured
	}
	if dependencies.ConnectivityExecutor == nil {
		return nil, ErrConnectivityExecutorNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.MachineIdentity == nil {
		return nil, ErrMachineIdentityNotConfigured
	}
	if dependencies.Output == nil {
		return nil, ErrOutputWriterNotConfigured
	}
	return &Service{
		keyGenerator:         dependencies.KeyGenerator,
		gitConfigurator:      dependencies.GitConfigurator,
		workspace:            dependencies.Workspace,
		connectivityExecutor: dependencies.ConnectivityExecutor,
		prompter:             dependencies.Prompter,
		fileSystem:           dependencies.FileSystem,
		machineIdentity:      dependencies.MachineIdentity,
		output:               dependencies.Output,
	}, nil
}

// Provision runs the full key provisioning workflow.
func (service *Service) Provision(executionContext context.Context, options Options) (Result, error) {
	emailAddress, emailError := service.resolveRequiredInput(options.EmailAddress, emailPromptConstant, ErrEmailAddressRequired)
	if emailError != nil {
		return Result{}, emailError
	}

	displayName, nameError := service.resolveRequiredInput(options.DisplayName, displayNamePromptConstant, ErrDisplayNameRequired)
	if nameError != nil {
		return Result{}, nameError
	}

	keyDirectory := strings.TrimSpace(options.KeyDirectory)
	if len(keyDirectory) == 0 {
		return Result{}, ErrKeyDirectoryRequired
	}

	keyFilePath, derivationError := service.deriveKeyFilePath(keyDirectory)
	if derivationError != nil {
		return Result{}, derivationError
	}

	result := Result{KeyFilePath: keyFilePath, PublicKeyFilePath: sshkey.PublicKeyPath(keyFilePath)}

	keyExists, existenceError := service.fileSystem.FileExists(keyFilePath)
	if existenceError != nil {
		return Result{}, fmt.Errorf(keyExistenceCheckFailureTemplate, keyFilePath, existenceError)
	}
	if keyExists {
		overwriteConfirmed, confirmError := service.prompter.Confirm(fmt.Sprintf(overwritePromptTemplateConstant, keyFilePath))
		if confirmError != nil {
			return Result{}, confirmError
		}
		if !overwriteConfirmed {
			fmt.Fprintln(service.output, keepingExistingKeyMessageConstant)
			return result, nil
		}
	}

	if generationError := service.keyGenerator.Generate(executionContext, sshkey.GenerateOptions{
		KeyFilePath: keyFilePath,
		Comment:     emailAddress,
	}); generationError != nil {
		return Result{}, generationError
	}
	result.KeyGenerated = true

	if registrationError := service.keyGenerator.RegisterWithAgent(executionContext, keyFilePath); registrationError != nil {
		fmt.Fprintf(service.output, warningMessageTemplateConstant, registrationError)
	}

	if identityError := service.gitConfigurator.SetGlobalIdentity(executionContext, gitconfig.Identity{
		EmailAddress: emailAddress,
		DisplayName:  displayName,
	}); identityError != nil {
		fmt.Fprintf(service.output, warningMessageTemplateConstant, identityError)
	}

	service.publishPublicKey(executionContext, result.PublicKeyFilePath)

	if menuError := service.runConnectivityMenu(executionContext); menuError != nil {
		return result, menuError
	}

	cloned, cloneError := service.offerDotfilesClone(executionContext, options)
	if cloneError != nil {
		return result, cloneError
	}
	result.DotfilesCloned = cloned

	fmt.Fprintf(service.output, provisioningDoneMessageTemplate, keyFilePath)
	return result, nil
}

func (service *Service) resolveRequiredInput(configuredValue string, promptMessage string, missingError error) (string, error) {
	trimmedValue := strings.TrimSpace(configuredValue)
	if len(trimmedValue) > 0 {
		return trimmedValue, nil
	}

	response, readError := service.prompter.ReadLine(promptMessage)
	if readError != nil {
		return "", readError
	}
	if len(response) == 0 {
		return "", missingError
	}
	return response, nil
}

func (service *Service) deriveKeyFilePath(keyDirectory string) (string, error) {
	username, usernameError := service.machineIdentity.Username()
	if usernameError != nil {
		return "", fmt.Errorf(usernameLookupFailureTemplate, usernameError)
	}

	hostname, hostnameError := service.machineIdentity.Hostname()
	if hostnameError != nil {
		return "", fmt.Errorf(hostnameLookupFailureTemplate, hostnameError)
	}

	keyFileName := fmt.Sprintf(keyFileNameTemplateConstant, username, hostname)
	return filepath.Join(keyDirectory, keyFileName), nil
}

func (service *Service) publishPublicKey(executionContext context.Context, publicKeyPath string) {
	publicKeyContent, readError := service.fileSystem.ReadFile(publicKeyPath)
	if readError != nil {
		fmt.Fprintf(service.output, publicKeyReadWarningTemplate, publicKeyPath, readError)
	} else if copyError := service.workspace.CopyToPasteboard(executionContext, publicKeyContent); copyError != nil {
		fmt.Fprintf(service.output, warningMessageTemplateConstant, copyError)
	} else {
		fmt.Fprintln(service.output, publicKeyCopiedMessageConstant)
	}

	if openError := service.workspace.OpenURL(executionContext, githubSSHSettingsURLConstant); openError != nil {
		fmt.Fprintf(service.output, warningMessageTemplateConstant, openError)
	} else {
		fmt.Fprintln(service.output, browserOpenedMessageConstant)
	}
}

func (service *Service) runConnectivityMenu(executionContext context.Context) error {
	for {
		selection, readError := service.prompter.ReadLine(connectivityMenuPromptConstant)
		if readError != nil {
			return readError
		}

		switch strings.ToLower(selection) {
		case connectivityTestSelectionConstant:
			service.testConnectivity(executionContext)
		case finishSelectionConstant:
			return nil
		default:
			fmt.Fprintln(service.output, invalidSelectionMessageConstant)
		}
	}
}

// testConnectivity runs ssh -T against GitHub. GitHub refuses the shell and
// reports exit code 1 even when authentication succeeds, so that code counts
// as success alongside 0.
func (service *Service) testConnectivity(executionContext context.Context) {
	_, executionError := service.connectivityExecutor.ExecuteSSH(executionContext, execshell.CommandDetails{
		Arguments: []string{sshDisableShellFlagConstant, githubSSHHostConstant},
	})
	if executionError == nil {
		fmt.Fprintln(service.output, connectivityOKMessageConstant)
		return
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == acceptedConnectivityExitCode {
		fmt.Fprintln(service.output, connectivityOKMessageConstant)
		return
	}

	fmt.Fprintf(service.output, connectivityWarningTemplate, executionError)
}

func (service *Service) offerDotfilesClone(executionContext context.Context, options Options) (bool, error) {
	cloneConfirmed, confirmError := service.prompter.Confirm(dotfilesClonePromptConstant)
	if confirmError != nil {
		return false, confirmError
	}
	if !cloneConfirmed {
		return false, nil
	}

	targetDirectory := strings.TrimSpace(options.DotfilesTargetDirectory)
	if len(targetDirectory) == 0 {
		promptedTarget, readError := service.prompter.ReadLine(dotfilesTargetPromptConstant)
		if readError != nil {
			return false, readError
		}
		targetDirectory = promptedTarget
	}
	if len(targetDirectory) == 0 {
		fmt.Fprintln(service.output, cloneSkippedNoTargetMessage)
		return false, nil
	}

	repositoryURL := strings.TrimSpace(options.DotfilesRepositoryURL)
	if len(repositoryURL) == 0 {
		repositoryURL = defaultDotfilesRepositoryConstant
	}

	if cloneError := service.gitConfigurator.CloneRepository(executionContext, repositoryURL, targetDirectory); cloneError != nil {
		fmt.Fprintf(service.output, warningMessageTemplateConstant, cloneError)
		return false, nil
	}

	fmt.Fprintf(service.output, dotfilesClonedMessageTemplate, repositoryURL, targetDirectory)
	return true, nil
}
