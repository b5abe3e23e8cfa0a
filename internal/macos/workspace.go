package macos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/macsetup/internal/execshell"
)

const (
	openExecutorMissingMessageConstant       = "open executor not configured"
	pasteboardExecutorMissingMessageConstant = "pasteboard executor not configured"
	targetURLRequiredMessageConstant         = "target URL must be provided"
	pasteboardContentRequiredMessageConstant = "pasteboard content must be provided"
	browserLaunchFailureTemplateConstant     = "failed to open %s: %w"
	pasteboardCopyFailureTemplateConstant    = "failed to copy to the pasteboard: %w"
)

// ErrOpenExecutorNotConfigured indicates the open executor dependency was missing.
var ErrOpenExecutorNotConfigured = errors.New(openExecutorMissingMessageConstant)

// ErrPasteboardExecutorNotConfigured indicates the pasteboard executor dependency was missing.
var ErrPasteboardExecutorNotConfigured = errors.New(pasteboardExecutorMissingMessageConstant)

// ErrTargetURLRequired indicates the open target was empty.
var ErrTargetURLRequired = errors.New(targetURLRequiredMessageConstant)

// ErrPasteboardContentRequired indicates the pasteboard payload was empty.
var ErrPasteboardContentRequired = errors.New(pasteboardContentRequiredMessageConstant)

// OpenExecutor runs the open launcher.
type OpenExecutor interface {
	ExecuteOpen(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// PasteboardExecutor runs pbcopy.
type PasteboardExecutor interface {
	ExecutePasteboard(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Workspace launches URLs and copies content to the system pasteboard.
type Workspace struct {
	openExecutor       OpenExecutor
	pasteboardExecutor PasteboardExecutor
}

// NewWorkspace constructs a Workspace from the provided executors.
func NewWorkspace(openExecutor OpenExecutor, pasteboardExecutor PasteboardExecutor) (*Workspace, error) {
	if openExecutor == nil {
		return nil, ErrOpenExecutorNotConfigured
	}
	if pasteboardExecutor == nil {
		return nil, ErrPasteboardExecutorNotConfigured
	}
	return &Workspace{openExecutor: openExecutor, pasteboardExecutor: pasteboardExecutor}, nil
}

// OpenURL launches the default browser for the provided URL.
func (workspace *Workspace) OpenURL(executionContext context.Context, targetURL string) error {
	trimmedTargetURL := strings.TrimSpace(targetURL)
	if len(trimmedTargetURL) == 0 {
		return ErrTargetURLRequired
	}

	_, executionError := workspace.openExecutor.ExecuteOpen(executionContext, execshell.CommandDetails{
		Arguments: []string{trimmedTargetURL},
	})
	if executionError != nil {
		return fmt.Errorf(browserLaunchFailureTemplateConstant, trimmedTargetURL, executionError)
	}

	return nil
}

// CopyToPasteboard pipes the provided content into pbcopy.
func (workspace *Workspace) CopyToPasteboard(executionContext context.Context, content []byte) error {
	if len(content) == 0 {
		return ErrPasteboardContentRequired
	}

	_, executionError := workspace.pasteboardExecutor.ExecutePasteboard(executionContext, execshell.CommandDetails{
		StandardInput: content,
	})
	if executionError != nil {
		return fmt.Errorf(pasteboardCopyFailureTemplateConstant, executionError)
	}

	return nil
}
