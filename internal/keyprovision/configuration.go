package keyprovision

import (
	"strings"

	"github.com/temirov/macsetup/internal/pathutils"
)

var configurationHomeDirectoryExpander = pathutils.NewHomeExpander()

const (
	configurationEmailKeyConstant          = "email"
	configurationNameKeyConstant           = "name"
	configurationKeyDirectoryKeyConstant   = "key_directory"
	configurationDotfilesURLKeyConstant    = "dotfiles_repository"
	configurationDotfilesTargetKeyConstant = "dotfiles_target"
	defaultKeyDirectoryConstant            = "~/.ssh"
)

// Configuration captures settings for the ssh-key command.
type Configuration struct {
	EmailAddress            string `mapstructure:"email"`
	DisplayName             string `mapstructure:"name"`
	KeyDirectory            string `mapstructure:"key_directory"`
	DotfilesRepositoryURL   string `mapstructure:"dotfiles_repository"`
	DotfilesTargetDirectory string `mapstructure:"dotfiles_target"`
}

// DefaultConfiguration returns baseline values for the ssh-key command.
func DefaultConfiguration() Configuration {
	return Configuration{
		KeyDirectory:          defaultKeyDirectoryConstant,
		DotfilesRepositoryURL: defaultDotfilesRepositoryConstant,
	}
}

// Sanitize trims configured values and expands home-relative paths.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.EmailAddress = strings.TrimSpace(configuration.EmailAddress)
	sanitized.DisplayName = strings.TrimSpace(configuration.DisplayName)
	sanitized.KeyDirectory = expandPath(configuration.KeyDirectory)
	sanitized.DotfilesRepositoryURL = strings.TrimSpace(configuration.DotfilesRepositoryURL)
	sanitized.DotfilesTargetDirectory = expandPath(configuration.DotfilesTargetDirectory)
	return sanitized
}

// DefaultConfigurationValues produces Viper defaults for the ssh-key command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationEmailKeyConstant:          defaults.EmailAddress,
		rootKey + "." + configurationNameKeyConstant:           defaults.DisplayName,
		rootKey + "." + configurationKeyDirectoryKeyConstant:   defaults.KeyDirectory,
		rootKey + "." + configurationDotfilesURLKeyConstant:    defaults.DotfilesRepositoryURL,
		rootKey + "." + configurationDotfilesTargetKeyConstant: defaults.DotfilesTargetDirectory,
	}
}

func expandPath(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}
	return configurationHomeDirectoryExpander.Expand(trimmedPath)
}
