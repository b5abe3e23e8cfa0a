// Package dependencies wires default implementations for command builders
// that were not given explicit collaborators.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/ui"
)

// ResolveShellExecutor returns the provided executor or constructs an
// OS-backed default, attaching console event logging when requested.
func ResolveShellExecutor(existing *execshell.ShellExecutor, logger *zap.Logger, humanReadableLogging bool) (*execshell.ShellExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}
	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}
