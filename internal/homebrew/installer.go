package homebrew

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/macsetup/internal/execshell"
)

const (
	defaultInstallScriptURLConstant        = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"
	curlFailSilentlyFlagConstant           = "-fsSL"
	bashCommandFlagConstant                = "-c"
	downloadExecutorMissingMessageConstant = "curl executor is not configured"
	scriptExecutorMissingMessageConstant   = "bash executor is not configured"
	installScriptDownloadFailureTemplate   = "failed to download Homebrew install script from %s: %w"
	installScriptEmptyMessageConstant      = "Homebrew install script download returned no content"
	installScriptRunFailureTemplate        = "Homebrew install script failed: %w"
	nonInteractiveEnvironmentKeyConstant   = "NONINTERACTIVE"
	nonInteractiveEnvironmentValueConstant = "1"
)

// ErrDownloadExecutorNotConfigured indicates the installer was built without a curl executor.
var ErrDownloadExecutorNotConfigured = errors.New(downloadExecutorMissingMessageConstant)

// ErrScriptExecutorNotConfigured indicates the installer was built without a bash executor.
var ErrScriptExecutorNotConfigured = errors.New(scriptExecutorMissingMessageConstant)

// ErrInstallScriptEmpty indicates the downloaded install script had no content.
var ErrInstallScriptEmpty = errors.New(installScriptEmptyMessageConstant)

// DownloadExecutor downloads content over HTTP through curl.
type DownloadExecutor interface {
	ExecuteCurl(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ScriptExecutor runs shell scripts through bash.
type ScriptExecutor interface {
	ExecuteBash(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Installer downloads the Homebrew install script and runs it non-interactively.
type Installer struct {
	downloadExecutor DownloadExecutor
	scriptExecutor   ScriptExecutor
	installScriptURL string
}

// NewInstaller constructs an Installer from the provided executors.
func NewInstaller(downloadExecutor DownloadExecutor, scriptExecutor ScriptExecutor) (*Installer, error) {
	if downloadExecutor == nil {
		return nil, ErrDownloadExecutorNotConfigured
	}
	if scriptExecutor == nil {
		return nil, ErrScriptExecutorNotConfigured
	}
	return &Installer{
		downloadExecutor: downloadExecutor,
		scriptExecutor:   scriptExecutor,
		installScriptURL: defaultInstallScriptURLConstant,
	}, nil
}

// SetInstallScriptURL overrides the install script location.
func (installer *Installer) SetInstallScriptURL(installScriptURL string) {
	trimmedURL := strings.TrimSpace(installScriptURL)
	if len(trimmedURL) > 0 {
		installer.installScriptURL = trimmedURL
	}
}

// Install downloads the install script and feeds it to bash on standard input.
func (installer *Installer) Install(executionContext context.Context) error {
	downloadResult, downloadError := installer.downloadExecutor.ExecuteCurl(executionContext, execshell.CommandDetails{
		Arguments: []string{curlFailSilentlyFlagConstant, installer.installScriptURL},
	})
	if downloadError != nil {
		return fmt.Errorf(installScriptDownloadFailureTemplate, installer.installScriptURL, downloadError)
	}

	installScript := strings.TrimSpace(downloadResult.StandardOutput)
	if len(installScript) == 0 {
		return ErrInstallScriptEmpty
	}

	_, runError := installer.scriptExecutor.ExecuteBash(executionContext, execshell.CommandDetails{
		Arguments:            []string{bashCommandFlagConstant, downloadResult.StandardOutput},
		EnvironmentVariables: map[string]string{nonInteractiveEnvironmentKeyConstant: nonInteractiveEnvironmentValueConstant},
	})
	if runError != nil {
		return fmt.Errorf(installScriptRunFailureTemplate, runError)
	}

	return nil
}
