package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	keygenKeyFileFlagConstant        = "-f"
	gitConfigSubcommandNameConstant  = "config"
	gitCloneSubcommandNameConstant   = "clone"
	defaultsWriteSubcommandConstant  = "write"
	defaultsDeleteSubcommandConstant = "delete"
)

const (
	keygenStartTemplateConstant                       = "Generating SSH key %s"
	keygenSuccessTemplateConstant                     = "Generated SSH key %s"
	keygenFailureTemplateConstant                     = "Failed to generate SSH key %s (exit code %d%s)"
	keygenExecutionFailureTemplateConstant            = "Unable to generate SSH key %s: %s"
	agentRegistrationStartTemplateConstant            = "Registering %s with the SSH agent"
	agentRegistrationSuccessTemplateConstant          = "Registered %s with the SSH agent"
	agentRegistrationFailureTemplateConstant          = "Failed to register %s with the SSH agent (exit code %d%s)"
	agentRegistrationExecutionFailureTemplateConstant = "Unable to register %s with the SSH agent: %s"
	gitConfigStartTemplateConstant                    = "Setting git configuration %s to %s"
	gitConfigSuccessTemplateConstant                  = "Set git configuration %s to %s"
	gitConfigFailureTemplateConstant                  = "Failed to set git configuration %s to %s (exit code %d%s)"
	gitConfigExecutionFailureTemplateConstant         = "Unable to set git configuration %s to %s: %s"
	gitCloneStartTemplateConstant                     = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                   = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                   = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant          = "Unable to clone %s into %s: %s"
	defaultsWriteStartTemplateConstant                = "Writing preference %s %s"
	defaultsWriteSuccessTemplateConstant              = "Wrote preference %s %s"
	defaultsWriteFailureTemplateConstant              = "Failed to write preference %s %s (exit code %d%s)"
	defaultsWriteExecutionFailureTemplateConstant     = "Unable to write preference %s %s: %s"
	killallStartTemplateConstant                      = "Restarting %s"
	killallSuccessTemplateConstant                    = "Restarted %s"
	killallFailureTemplateConstant                    = "Failed to restart %s (exit code %d%s)"
	killallExecutionFailureTemplateConstant           = "Unable to restart %s: %s"
	openStartTemplateConstant                         = "Opening %s"
	openSuccessTemplateConstant                       = "Opened %s"
	openFailureTemplateConstant                       = "Failed to open %s (exit code %d%s)"
	openExecutionFailureTemplateConstant              = "Unable to open %s: %s"
	pasteboardStartMessageConstant                    = "Copying to the clipboard"
	pasteboardSuccessMessageConstant                  = "Copied to the clipboard"
	pasteboardFailureTemplateConstant                 = "Failed to copy to the clipboard (exit code %d%s)"
	pasteboardExecutionFailureTemplateConstant        = "Unable to copy to the clipboard: %s"
	sshConnectivityStartTemplateConstant              = "Testing SSH connectivity to %s"
	sshConnectivitySuccessTemplateConstant            = "Tested SSH connectivity to %s"
	sshConnectivityFailureTemplateConstant            = "SSH connectivity test to %s returned exit code %d%s"
	sshConnectivityExecutionFailureTemplateConstant   = "Unable to test SSH connectivity to %s: %s"
	curlDownloadStartTemplateConstant                 = "Downloading %s"
	curlDownloadSuccessTemplateConstant               = "Downloaded %s"
	curlDownloadFailureTemplateConstant               = "Failed to download %s (exit code %d%s)"
	curlDownloadExecutionFailureTemplateConstant      = "Unable to download %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandSSHKeygen:
		return formatter.describeKeygenMessage(command, result, failure, stage)
	case CommandSSHAdd:
		return formatter.describeAgentRegistrationMessage(command, result, failure, stage)
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandSSH:
		return formatter.describeConnectivityMessage(command, result, failure, stage)
	case CommandDefaults:
		return formatter.describeDefaultsMessage(command, result, failure, stage)
	case CommandKillall:
		return formatter.describeKillallMessage(command, result, failure, stage)
	case CommandOpen:
		return formatter.describeOpenMessage(command, result, failure, stage)
	case CommandPasteboard:
		return formatter.describePasteboardMessage(command, result, failure, stage)
	case CommandCurl:
		return formatter.describeCurlMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeKeygenMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	keyFilePath := formatter.ensureValue(findFlagValue(command.Details.Arguments, keygenKeyFileFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(keygenStartTemplateConstant, keyFilePath)
	case messageStageSuccess:
		return fmt.Sprintf(keygenSuccessTemplateConstant, keyFilePath)
	case messageStageFailure:
		return fmt.Sprintf(keygenFailureTemplateConstant, keyFilePath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(keygenExecutionFailureTemplateConstant, keyFilePath, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeAgentRegistrationMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	keyFilePath := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(agentRegistrationStartTemplateConstant, keyFilePath)
	case messageStageSuccess:
		return fmt.Sprintf(agentRegistrationSuccessTemplateConstant, keyFilePath)
	case messageStageFailure:
		return fmt.Sprintf(agentRegistrationFailureTemplateConstant, keyFilePath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(agentRegistrationExecutionFailureTemplateConstant, keyFilePath, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(arguments[0]) {
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	positionalArguments := formatter.extractNonFlagArguments(command.Details.Arguments[1:])
	configurationKey := fallbackUnknownValueLabelConstant
	configurationValue := fallbackUnknownValueLabelConstant
	if len(positionalArguments) > 0 {
		configurationKey = positionalArguments[0]
	}
	if len(positionalArguments) > 1 {
		configurationValue = positionalArguments[1]
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigStartTemplateConstant, configurationKey, configurationValue)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigSuccessTemplateConstant, configurationKey, configurationValue)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigFailureTemplateConstant, configurationKey, configurationValue, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitConfigExecutionFailureTemplateConstant, configurationKey, configurationValue, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	positionalArguments := formatter.extractNonFlagArguments(command.Details.Arguments[1:])
	repositoryURL := fallbackUnknownValueLabelConstant
	targetDirectory := fallbackUnknownValueLabelConstant
	if len(positionalArguments) > 0 {
		repositoryURL = positionalArguments[0]
	}
	if len(positionalArguments) > 1 {
		targetDirectory = positionalArguments[1]
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, repositoryURL, targetDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, repositoryURL, targetDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, repositoryURL, targetDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, repositoryURL, targetDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeConnectivityMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	remoteHost := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(sshConnectivityStartTemplateConstant, remoteHost)
	case messageStageSuccess:
		return fmt.Sprintf(sshConnectivitySuccessTemplateConstant, remoteHost)
	case messageStageFailure:
		return fmt.Sprintf(sshConnectivityFailureTemplateConstant, remoteHost, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(sshConnectivityExecutionFailureTemplateConstant, remoteHost, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeDefaultsMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[0])
	if subcommand != defaultsWriteSubcommandConstant && subcommand != defaultsDeleteSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	preferenceDomain := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	preferenceKey := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(defaultsWriteStartTemplateConstant, preferenceDomain, preferenceKey)
	case messageStageSuccess:
		return fmt.Sprintf(defaultsWriteSuccessTemplateConstant, preferenceDomain, preferenceKey)
	case messageStageFailure:
		return fmt.Sprintf(defaultsWriteFailureTemplateConstant, preferenceDomain, preferenceKey, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(defaultsWriteExecutionFailureTemplateConstant, preferenceDomain, preferenceKey, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeKillallMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	processName := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(killallStartTemplateConstant, processName)
	case messageStageSuccess:
		return fmt.Sprintf(killallSuccessTemplateConstant, processName)
	case messageStageFailure:
		return fmt.Sprintf(killallFailureTemplateConstant, processName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(killallExecutionFailureTemplateConstant, processName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeOpenMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	target := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(openStartTemplateConstant, target)
	case messageStageSuccess:
		return fmt.Sprintf(openSuccessTemplateConstant, target)
	case messageStageFailure:
		return fmt.Sprintf(openFailureTemplateConstant, target, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(openExecutionFailureTemplateConstant, target, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describePasteboardMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return pasteboardStartMessageConstant
	case messageStageSuccess:
		return pasteboardSuccessMessageConstant
	case messageStageFailure:
		return fmt.Sprintf(pasteboardFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(pasteboardExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeCurlMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	downloadURL := formatter.ensureValue(formatter.extractLastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(curlDownloadStartTemplateConstant, downloadURL)
	case messageStageSuccess:
		return fmt.Sprintf(curlDownloadSuccessTemplateConstant, downloadURL)
	case messageStageFailure:
		return fmt.Sprintf(curlDownloadFailureTemplateConstant, downloadURL, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(curlDownloadExecutionFailureTemplateConstant, downloadURL, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractNonFlagArguments(arguments []string) []string {
	positionalArguments := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		positionalArguments = append(positionalArguments, trimmed)
	}
	return positionalArguments
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	positionalArguments := formatter.extractNonFlagArguments(arguments)
	if len(positionalArguments) == 0 {
		return emptyStringConstant
	}
	return positionalArguments[len(positionalArguments)-1]
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
