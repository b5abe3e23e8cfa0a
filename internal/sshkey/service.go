package sshkey

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/macsetup/internal/execshell"
)

const (
	executorMissingMessageConstant           = "ssh executor not configured"
	keyFilePathRequiredMessageConstant       = "key file path must be provided"
	commentRequiredMessageConstant           = "key comment must be provided"
	keyGenerationFailureTemplateConstant     = "failed to generate SSH key: %w"
	agentRegistrationFailureTemplateConstant = "failed to register key with the SSH agent: %w"
	keygenTypeFlagConstant                   = "-t"
	keygenKeyTypeConstant                    = "ed25519"
	keygenCommentFlagConstant                = "-C"
	keygenKeyFileFlagConstant                = "-f"
	keygenPassphraseFlagConstant             = "-N"
	emptyPassphraseConstant                  = ""
	agentUseKeychainFlagConstant             = "--apple-use-keychain"
	publicKeySuffixConstant                  = ".pub"
)

// ErrExecutorNotConfigured indicates the executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrKeyFilePathRequired indicates the key file path option was empty.
var ErrKeyFilePathRequired = errors.New(keyFilePathRequiredMessageConstant)

// ErrCommentRequired indicates the key comment option was empty.
var ErrCommentRequired = errors.New(commentRequiredMessageConstant)

// Executor runs ssh-keygen and ssh-add commands.
type Executor interface {
	ExecuteSSHKeygen(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteSSHAdd(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GenerateOptions configures a key generation request.
type GenerateOptions struct {
	KeyFilePath string
	Comment     string
}

// Manager coordinates SSH key generation and agent registration.
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

// Generate creates an ed25519 keypair without a passphrase at the requested path.
func (manager *Manager) Generate(executionContext context.Context, options GenerateOptions) error {
	trimmedKeyFilePath := strings.TrimSpace(options.KeyFilePath)
	if len(trimmedKeyFilePath) == 0 {
		return ErrKeyFilePathRequired
	}

	trimmedComment := strings.TrimSpace(options.Comment)
	if len(trimmedComment) == 0 {
		return ErrCommentRequired
	}

	_, executionError := manager.executor.ExecuteSSHKeygen(executionContext, execshell.CommandDetails{
		Arguments: []string{
			keygenTypeFlagConstant, keygenKeyTypeConstant,
			keygenCommentFlagConstant, trimmedComment,
			keygenKeyFileFlagConstant, trimmedKeyFilePath,
			keygenPassphraseFlagConstant, emptyPassphraseConstant,
		},
	})
	if executionError != nil {
		return fmt.Errorf(keyGenerationFailureTemplateConstant, executionError)
	}

	return nil
}

// RegisterWithAgent adds the private key to the keychain-backed SSH agent.
func (manager *Manager) RegisterWithAgent(executionContext context.Context, keyFilePath string) error {
	trimmedKeyFilePath := strings.TrimSpace(keyFilePath)
	if len(trimmedKeyFilePath) == 0 {
		return ErrKeyFilePathRequired
	}

	_, executionError := manager.executor.ExecuteSSHAdd(executionContext, execshell.CommandDetails{
		Arguments: []string{agentUseKeychainFlagConstant, trimmedKeyFilePath},
	})
	if executionError != nil {
		return fmt.Errorf(agentRegistrationFailureTemplateConstant, executionError)
	}

	return nil
}

// PublicKeyPath derives the public key path from the private key path.
func PublicKeyPath(keyFilePath string) string {
	return strings.TrimSpace(keyFilePath) + publicKeySuffixConstant
}
