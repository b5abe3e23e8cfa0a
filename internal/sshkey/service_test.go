package sshkey_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/macsetup/internal/execshell"
	"github.com/temirov/macsetup/internal/sshkey"
)

type recordingExecutor struct {
	keygenError    error
	agentError     error
	keygenCommands []execshell.CommandDetails
	agentCommands  []execshell.CommandDetails
}

func (executor *recordingExecutor) ExecuteSSHKeygen(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.keygenCommands = append(executor.keygenCommands, details)
	return execshell.ExecutionResult{}, executor.keygenError
}

func (executor *recordingExecutor) ExecuteSSHAdd(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.agentCommands = append(executor.agentCommands, details)
	return execshell.ExecutionResult{}, executor.agentError
}

func TestNewManagerRequiresExecutor(t *testing.T) {
	manager, creationError := sshkey.NewManager(nil)
	require.ErrorIs(t, creationError, sshkey.ErrExecutorNotConfigured)
	require.Nil(t, manager)
}

func TestGenerateValidatesOptions(t *testing.T) {
	executor := &recordingExecutor{}
	manager, creationError := sshkey.NewManager(executor)
	require.NoError(t, creationError)

	generationError := manager.Generate(context.Background(), sshkey.GenerateOptions{Comment: "user@example.com"})
	require.ErrorIs(t, generationError, sshkey.ErrKeyFilePathRequired)

	generationError = manager.Generate(context.Background(), sshkey.GenerateOptions{KeyFilePath: "/tmp/key"})
	require.ErrorIs(t, generationError, sshkey.ErrCommentRequired)

	require.Empty(t, executor.keygenCommands)
}

func TestGenerateBuildsKeygenInvocation(t *testing.T) {
	executor := &recordingExecutor{}
	manager, creationError := sshkey.NewManager(executor)
	require.NoError(t, creationError)

	generationError := manager.Generate(context.Background(), sshkey.GenerateOptions{
		KeyFilePath: "/Users/sample/.ssh/id_ed25519_sample-host",
		Comment:     "user@example.com",
	})

	require.NoError(t, generationError)
	require.Len(t, executor.keygenCommands, 1)
	require.Equal(t,
		[]string{"-t", "ed25519", "-C", "user@example.com", "-f", "/Users/sample/.ssh/id_ed25519_sample-host", "-N", ""},
		executor.keygenCommands[0].Arguments,
	)
}

func TestGenerateWrapsExecutionFailure(t *testing.T) {
	executor := &recordingExecutor{keygenError: errors.New("exit code 1")}
	manager, creationError := sshkey.NewManager(executor)
	require.NoError(t, creationError)

	generationError := manager.Generate(context.Background(), sshkey.GenerateOptions{KeyFilePath: "/tmp/key", Comment: "user@example.com"})

	require.ErrorContains(t, generationError, "failed to generate SSH key")
}

func TestRegisterWithAgentBuildsKeychainInvocation(t *testing.T) {
	executor := &recordingExecutor{}
	manager, creationError := sshkey.NewManager(executor)
	require.NoError(t, creationError)

	registrationError := manager.RegisterWithAgent(context.Background(), "/tmp/key")

	require.NoError(t, registrationError)
	require.Len(t, executor.agentCommands, 1)
	require.Equal(t, []string{"--apple-use-keychain", "/tmp/key"}, executor.agentCommands[0].Arguments)
}

func TestRegisterWithAgentRequiresKeyPath(t *testing.T) {
	executor := &recordingExecutor{}
	manager, creationError := sshkey.NewManager(executor)
	require.NoError(t, creationError)

	registrationError := manager.RegisterWithAgent(context.Background(), "  ")

	require.ErrorIs(t, registrationError, sshkey.ErrKeyFilePathRequired)
	require.Empty(t, executor.agentCommands)
}

func TestPublicKeyPathAppendsSuffix(t *testing.T) {
	require.Equal(t, "/tmp/key.pub", sshkey.PublicKeyPath(" /tmp/key "))
}
