package execshell

// CommandEventObserver is notified as a shell command moves through its lifecycle.
type CommandEventObserver interface {
	// CommandStarted fires before the command process launches.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the command produced an execution result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the command could not produce a result at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver swallows every event.
type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
