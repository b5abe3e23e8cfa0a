package utils

import "context"

const (
	activeConfigurationFileContextKey = provisioningContextKey("activeConfigurationFile")
)

type provisioningContextKey string

// CommandContextAccessor reads and writes provisioning state carried on command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor returns a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file the root command loaded.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, activeConfigurationFileContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file recorded on the context, if any.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, pathPresent := executionContext.Value(activeConfigurationFileContextKey).(string)
	if !pathPresent {
		return "", false
	}
	return configurationFilePath, true
}
