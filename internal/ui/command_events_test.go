package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/ui"
)

func TestConsoleCommandEventLoggerRendersLifecycleMessages(t *testing.T) {
	command := execshell.ShellCommand{
		Name:    execshell.CommandKillall,
		Details: execshell.CommandDetails{Arguments: []string{"Dock"}},
	}

	testCases := []struct {
		name            string
		emit            func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "started",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Restarting Dock",
		},
		{
			name: "completed_success",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Restarted Dock",
		},
		{
			name: "completed_failure",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "No matching processes"})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "Failed to restart Dock (exit code 1: No matching processes)",
		},
		{
			name: "execution_failure",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(command, errors.New("executable not found"))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: "Unable to restart Dock: executable not found",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			testCase.emit(eventLogger)

			entries := observedLogs.All()
			require.Len(t, entries, 1)
			require.Equal(t, testCase.expectedLevel, entries[0].Level)
			require.Equal(t, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerToleratesNilLogger(t *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotNil(t, eventLogger)
	eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandOpen})
}
