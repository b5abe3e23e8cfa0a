package preferences

import (
	"strings"

	"github.com/temirov/macsetup/internal/pathutils"
)

var configurationHomeDirectoryExpander = pathutils.NewHomeExpander()

const (
	configurationProfileKeyConstant         = "profile"
	configurationDryRunKeyConstant          = "dry_run"
	configurationInstallHomebrewKeyConstant = "install_homebrew"
)

// Configuration captures settings for the preferences command.
type Configuration struct {
	ProfilePath     string `mapstructure:"profile"`
	DryRun          bool   `mapstructure:"dry_run"`
	InstallHomebrew bool   `mapstructure:"install_homebrew"`
}

// DefaultConfiguration returns baseline values for the preferences command.
func DefaultConfiguration() Configuration {
	return Configuration{
		InstallHomebrew: true,
	}
}

// Sanitize trims configured values and expands home-relative paths.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	trimmedProfilePath := strings.TrimSpace(configuration.ProfilePath)
	if len(trimmedProfilePath) > 0 {
		trimmedProfilePath = configurationHomeDirectoryExpander.Expand(trimmedProfilePath)
	}
	sanitized.ProfilePath = trimmedProfilePath
	return sanitized
}

// DefaultConfigurationValues produces Viper defaults for the preferences command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationProfileKeyConstant:         defaults.ProfilePath,
		rootKey + "." + configurationDryRunKeyConstant:          defaults.DryRun,
		rootKey + "." + configurationInstallHomebrewKeyConstant: defaults.InstallHomebrew,
	}
}
