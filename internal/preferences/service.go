package preferences

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/temirov/macsetup/internal/macos"
)

const (
	preferenceWriterMissingMessageConstant  = "preference writer not configured"
	serviceControllerMissingMessageConstant = "service controller not configured"
	packageInstallerMissingMessageConstant  = "package manager installer not configured"
	applyOutputWriterMissingMessageConstant = "output writer not configured"

	warningTemplateConstant          = "Warning: %v\n"
	dryRunWriteTemplateConstant      = "Would write preference %s %s (%s %s)\n"
	dryRunRestartTemplateConstant    = "Would restart %s\n"
	dryRunHomebrewMessageConstant    = "Would install Homebrew"
	homebrewInstalledMessageConstant = "Homebrew bootstrap completed."
	applySummaryTemplateConstant     = "Applied %d preference(s), %d failed.\n"
)

// ErrPreferenceWriterNotConfigured indicates the preference writer dependency was missing.
var ErrPreferenceWriterNotConfigured = errors.New(preferenceWriterMissingMessageConstant)

// ErrServiceControllerNotConfigured indicates the service controller dependency was missing.
var ErrServiceControllerNotConfigured = errors.New(serviceControllerMissingMessageConstant)

// ErrPackageInstallerNotConfigured indicates the package manager installer dependency was missing.
var ErrPackageInstallerNotConfigured = errors.New(packageInstallerMissingMessageConstant)

// ErrOutputWriterNotConfigured indicates the output writer dependency was missing.
var ErrOutputWriterNotConfigured = errors.New(applyOutputWriterMissingMessageConstant)

// PreferenceApplier writes a single preference value.
type PreferenceApplier interface {
	Write(executionContext context.Context, preference macos.PreferenceWrite) error
}

// ServiceController restarts system services.
type ServiceController interface {
	Restart(executionContext context.Context, serviceName string) error
}

// PackageManagerInstaller bootstraps the package manager.
type PackageManagerInstaller interface {
	Install(executionContext context.Context) error
}

// Dependencies enumerates external collaborators required to apply a profile.
type Dependencies struct {
	PreferenceWriter  PreferenceApplier
	ServiceController ServiceController
	PackageInstaller  PackageManagerInstaller
	Output            io.Writer
}

// Options configures a profile application run.
type Options struct {
	Profile         Profile
	DryRun          bool
	InstallHomebrew bool
}

// Result reports the observable outcomes of a profile application.
type Result struct {
	AppliedWrites     int
	FailedWrites      int
	RestartedServices []string
	HomebrewInstalled bool
}

// Service applies preference profiles.
type Service struct {
	preferenceWriter  PreferenceApplier
	serviceController ServiceController
	packageInstaller  PackageManagerInstaller
	output            io.Writer
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.PreferenceWriter == nil {
		return nil, ErrPreferenceWriterNotConfigured
	}
	if dependencies.ServiceController == nil {
		return nil, ErrServiceControllerNotConfigured
	}
	if dependencies.PackageInstaller == nil {
		return nil, ErrPackageInstallerNotConfigured
	}
	if dependencies.Output == nil {
		return nil, ErrOutputWriterNotConfigured
	}
	return &Service{
		preferenceWriter:  dependencies.PreferenceWriter,
		serviceController: dependencies.ServiceController,
		packageInstaller:  dependencies.PackageInstaller,
		output:            dependencies.Output,
	}, nil
}

// Apply validates the profile, writes every preference, restarts the listed
// services, and optionally bootstraps Homebrew. Individual write, restart, and
// install failures are reported as warnings and do not abort the run.
func (service *Service) Apply(executionContext context.Context, options Options) (Result, error) {
	if validationError := options.Profile.Validate(); validationError != nil {
		return Result{}, validationError
	}

	result := Result{}
	for _, preferenceWrite := range options.Profile.Writes() {
		if options.DryRun {
			fmt.Fprintf(service.output, dryRunWriteTemplateConstant,
				preferenceWrite.Domain, preferenceWrite.Key, preferenceWrite.ValueType, preferenceWrite.Value)
			continue
		}
		if writeError := service.preferenceWriter.Write(executionContext, preferenceWrite); writeError != nil {
			fmt.Fprintf(service.output, warningTemplateConstant, writeError)
			result.FailedWrites++
			continue
		}
		result.AppliedWrites++
	}

	for _, serviceName := range options.Profile.Restart {
		if options.DryRun {
			fmt.Fprintf(service.output, dryRunRestartTemplateConstant, serviceName)
			continue
		}
		if restartError := service.serviceController.Restart(executionContext, serviceName); restartError != nil {
			fmt.Fprintf(service.output, warningTemplateConstant, restartError)
			continue
		}
		result.RestartedServices = append(result.RestartedServices, serviceName)
	}

	if options.InstallHomebrew {
		switch {
		case options.DryRun:
			fmt.Fprintln(service.output, dryRunHomebrewMessageConstant)
		default:
			if installError := service.packageInstaller.Install(executionContext); installError != nil {
				fmt.Fprintf(service.output, warningTemplateConstant, installError)
			} else {
				result.HomebrewInstalled = true
				fmt.Fprintln(service.output, homebrewInstalledMessageConstant)
			}
		}
	}

	if !options.DryRun {
		fmt.Fprintf(service.output, applySummaryTemplateConstant, result.AppliedWrites, result.FailedWrites)
	}
	return result, nil
}
