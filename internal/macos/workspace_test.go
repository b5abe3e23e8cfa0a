package macos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/macos"
)

type recordingOpenExecutor struct {
	recordedCommands []execshell.CommandDetails
}

func (executor *recordingOpenExecutor) ExecuteOpen(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	return execshell.ExecutionResult{}, nil
}

type recordingPasteboardExecutor struct {
	recordedCommands []execshell.CommandDetails
}

func (executor *recordingPasteboardExecutor) ExecutePasteboard(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	return execshell.ExecutionResult{}, nil
}

func TestNewWorkspaceValidatesExecutors(t *testing.T) {
	testCases := []struct {
		name               string
		openExecutor       macos.OpenExecutor
		pasteboardExecutor macos.PasteboardExecutor
		expectedError      error
	}{
		{
			name:               "missing_open_executor",
			pasteboardExecutor: &recordingPasteboardExecutor{},
			expectedError:      macos.ErrOpenExecutorNotConfigured,
		},
		{
			name:          "missing_pasteboard_executor",
			openExecutor:  &recordingOpenExecutor{},
			expectedError: macos.ErrPasteboardExecutorNotConfigured,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			workspace, creationError := macos.NewWorkspace(testCase.openExecutor, testCase.pasteboardExecutor)
			require.ErrorIs(t, creationError, testCase.expectedError)
			require.Nil(t, workspace)
		})
	}
}

func TestOpenURLInvokesOpen(t *testing.T) {
	openExecutor := &recordingOpenExecutor{}
	workspace, creationError := macos.NewWorkspace(openExecutor, &recordingPasteboardExecutor{})
	require.NoError(t, creationError)

	openError := workspace.OpenURL(context.Background(), "https://github.com/settings/ssh/new")

	require.NoError(t, openError)
	require.Len(t, openExecutor.recordedCommands, 1)
	require.Equal(t, []string{"https://github.com/settings/ssh/new"}, openExecutor.recordedCommands[0].Arguments)
}

func TestOpenURLRequiresTarget(t *testing.T) {
	openExecutor := &recordingOpenExecutor{}
	workspace, creationError := macos.NewWorkspace(openExecutor, &recordingPasteboardExecutor{})
	require.NoError(t, creationError)

	require.ErrorIs(t, workspace.OpenURL(context.Background(), "  "), macos.ErrTargetURLRequired)
	require.Empty(t, openExecutor.recordedCommands)
}

func TestCopyToPasteboardStreamsContent(t *testing.T) {
	pasteboardExecutor := &recordingPasteboardExecutor{}
	workspace, creationError := macos.NewWorkspace(&recordingOpenExecutor{}, pasteboardExecutor)
	require.NoError(t, creationError)

	copyError := workspace.CopyToPasteboard(context.Background(), []byte("ssh-ed25519 AAAA example"))

	require.NoError(t, copyError)
	require.Len(t, pasteboardExecutor.recordedCommands, 1)
	require.Equal(t, []byte("ssh-ed25519 AAAA example"), pasteboardExecutor.recordedCommands[0].StandardInput)
}

func TestCopyToPasteboardRequiresContent(t *testing.T) {
	pasteboardExecutor := &recordingPasteboardExecutor{}
	workspace, creationError := macos.NewWorkspace(&recordingOpenExecutor{}, pasteboardExecutor)
	require.NoError(t, creationError)

	require.ErrorIs(t, workspace.CopyToPasteboard(context.Background(), nil), macos.ErrPasteboardContentRequired)
	require.Empty(t, pasteboardExecutor.recordedCommands)
}
