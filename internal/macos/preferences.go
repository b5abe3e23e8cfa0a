package macos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/macsetup/internal/execshell"
)

const (
	defaultsExecutorMissingMessageConstant  = "defaults executor not configured"
	killallExecutorMissingMessageConstant   = "killall executor not configured"
	preferenceDomainRequiredMessageConstant = "preference domain must be provided"
	preferenceKeyRequiredMessageConstant    = "preference key must be provided"
	preferenceValueRequiredMessageConstant  = "preference value must be provided"
	serviceNameRequiredMessageConstant      = "service name must be provided"
	preferenceWriteFailureTemplateConstant  = "failed to write preference %s %s: %w"
	serviceRestartFailureTemplateConstant   = "failed to restart %s: %w"
	defaultsWriteSubcommandConstant         = "write"
	booleanValueTypeFlagConstant            = "-bool"
	integerValueTypeFlagConstant            = "-int"
	stringValueTypeFlagConstant             = "-string"
	floatValueTypeFlagConstant              = "-float"
)

// ErrDefaultsExecutorNotConfigured indicates the defaults executor dependency was missing.
var ErrDefaultsExecutorNotConfigured = errors.New(defaultsExecutorMissingMessageConstant)

// ErrKillallExecutorNotConfigured indicates the killall executor dependency was missing.
var ErrKillallExecutorNotConfigured = errors.New(killallExecutorMissingMessageConstant)

// ErrPreferenceDomainRequired indicates the preference domain was empty.
var ErrPreferenceDomainRequired = errors.New(preferenceDomainRequiredMessageConstant)

// ErrPreferenceKeyRequired indicates the preference key was empty.
var ErrPreferenceKeyRequired = errors.New(preferenceKeyRequiredMessageConstant)

// ErrPreferenceValueRequired indicates the preference value was empty.
var ErrPreferenceValueRequired = errors.New(preferenceValueRequiredMessageConstant)

// ErrServiceNameRequired indicates the restart target was empty.
var ErrServiceNameRequired = errors.New(serviceNameRequiredMessageConstant)

// PreferenceValueType enumerates the defaults value encodings used by provisioning.
type PreferenceValueType string

// Supported preference value types.
const (
	PreferenceValueTypeBoolean PreferenceValueType = PreferenceValueType("bool")
	PreferenceValueTypeInteger PreferenceValueType = PreferenceValueType("int")
	PreferenceValueTypeString  PreferenceValueType = PreferenceValueType("string")
	PreferenceValueTypeFloat   PreferenceValueType = PreferenceValueType("float")
)

var preferenceValueTypeFlagMapping = map[PreferenceValueType]string{
	PreferenceValueTypeBoolean: booleanValueTypeFlagConstant,
	PreferenceValueTypeInteger: integerValueTypeFlagConstant,
	PreferenceValueTypeString:  stringValueTypeFlagConstant,
	PreferenceValueTypeFloat:   floatValueTypeFlagConstant,
}

// PreferenceWrite describes a single defaults write invocation.
type PreferenceWrite struct {
	Domain    string
	Key       string
	ValueType PreferenceValueType
	Value     string
}

// DefaultsExecutor runs the defaults preference utility.
type DefaultsExecutor interface {
	ExecuteDefaults(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// KillallExecutor runs killall.
type KillallExecutor interface {
	ExecuteKillall(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// PreferenceWriter applies preference writes through the defaults utility.
type PreferenceWriter struct {
	executor DefaultsExecutor
}

// NewPreferenceWriter constructs a PreferenceWriter from the provided executor.
func NewPreferenceWriter(executor DefaultsExecutor) (*PreferenceWriter, error) {
	if executor == nil {
		return nil, ErrDefaultsExecutorNotConfigured
	}
	return &PreferenceWriter{executor: executor}, nil
}

// Write applies a single preference write.
func (writer *PreferenceWriter) Write(executionContext context.Context, preference PreferenceWrite) error {
	trimmedDomain := strings.TrimSpace(preference.Domain)
	if len(trimmedDomain) == 0 {
		return ErrPreferenceDomainRequired
	}

	trimmedKey := strings.TrimSpace(preference.Key)
	if len(trimmedKey) == 0 {
		return ErrPreferenceKeyRequired
	}

	trimmedValue := strings.TrimSpace(preference.Value)
	if len(trimmedValue) == 0 {
		return ErrPreferenceValueRequired
	}

	valueTypeFlag, valueTypeKnown := preferenceValueTypeFlagMapping[preference.ValueType]
	if !valueTypeKnown {
		valueTypeFlag = stringValueTypeFlagConstant
	}

	_, executionError := writer.executor.ExecuteDefaults(executionContext, execshell.CommandDetails{
		Arguments: []string{defaultsWriteSubcommandConstant, trimmedDomain, trimmedKey, valueTypeFlag, trimmedValue},
	})
	if executionError != nil {
		return fmt.Errorf(preferenceWriteFailureTemplateConstant, trimmedDomain, trimmedKey, executionError)
	}

	return nil
}

// ServiceRestarter restarts system services through killall.
type ServiceRestarter struct {
	executor KillallExecutor
}

// NewServiceRestarter constructs a ServiceRestarter from the provided executor.
func NewServiceRestarter(executor KillallExecutor) (*ServiceRestarter, error) {
	if executor == nil {
		return nil, ErrKillallExecutorNotConfigured
	}
	return &ServiceRestarter{executor: executor}, nil
}

// Restart terminates the named service so launchd relaunches it with fresh preferences.
func (restarter *ServiceRestarter) Restart(executionContext context.Context, serviceName string) error {
	trimmedServiceName := strings.TrimSpace(serviceName)
	if len(trimmedServiceName) == 0 {
		return ErrServiceNameRequired
	}

	_, executionError := restarter.executor.ExecuteKillall(executionContext, execshell.CommandDetails{
		Arguments: []string{trimmedServiceName},
	})
	if executionError != nil {
		return fmt.Errorf(serviceRestartFailureTemplateConstant, trimmedServiceName, executionError)
	}

	return nil
}
