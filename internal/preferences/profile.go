package preferences

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/macsetup/internal/macos"
)

//go:embed default_profile.yaml
var defaultProfileContent []byte

const (
	profileParseFailureTemplateConstant = "failed to parse preference profile: %w"
	profileEmptyMessageConstant         = "preference profile contains no preference entries"
	profileEntryDomainTemplateConstant  = "preference entry %d is missing a domain"
	profileEntryKeyTemplateConstant     = "preference entry %d is missing a key"
	profileEntryValueTemplateConstant   = "preference entry %d is missing a value"
	profileEntryTypeTemplateConstant    = "preference entry %d has unsupported type %q"
	profileRestartEntryTemplateConstant = "restart entry %d is empty"
)

// ErrProfileEmpty indicates the profile declared no preference entries.
var ErrProfileEmpty = errors.New(profileEmptyMessageConstant)

var supportedValueTypes = map[string]macos.PreferenceValueType{
	string(macos.PreferenceValueTypeBoolean): macos.PreferenceValueTypeBoolean,
	string(macos.PreferenceValueTypeInteger): macos.PreferenceValueTypeInteger,
	string(macos.PreferenceValueTypeString):  macos.PreferenceValueTypeString,
	string(macos.PreferenceValueTypeFloat):   macos.PreferenceValueTypeFloat,
}

// ProfileEntry describes one defaults write.
type ProfileEntry struct {
	Domain string `yaml:"domain"`
	Key    string `yaml:"key"`
	Type   string `yaml:"type"`
	Value  string `yaml:"value"`
}

// Profile declares the preference writes and service restarts to apply.
type Profile struct {
	Preferences []ProfileEntry `yaml:"preferences"`
	Restart     []string       `yaml:"restart"`
}

// ParseProfile decodes and validates a YAML preference profile.
func ParseProfile(content []byte) (Profile, error) {
	var profile Profile
	if unmarshalError := yaml.Unmarshal(content, &profile); unmarshalError != nil {
		return Profile{}, fmt.Errorf(profileParseFailureTemplateConstant, unmarshalError)
	}
	if validationError := profile.Validate(); validationError != nil {
		return Profile{}, validationError
	}
	return profile, nil
}

// DefaultProfile returns the embedded baseline profile.
func DefaultProfile() (Profile, error) {
	return ParseProfile(defaultProfileContent)
}

// Validate checks that every entry carries a domain, key, value, and known type.
func (profile Profile) Validate() error {
	if len(profile.Preferences) == 0 {
		return ErrProfileEmpty
	}
	for entryIndex, entry := range profile.Preferences {
		if len(strings.TrimSpace(entry.Domain)) == 0 {
			return fmt.Errorf(profileEntryDomainTemplateConstant, entryIndex)
		}
		if len(strings.TrimSpace(entry.Key)) == 0 {
			return fmt.Errorf(profileEntryKeyTemplateConstant, entryIndex)
		}
		if len(strings.TrimSpace(entry.Value)) == 0 {
			return fmt.Errorf(profileEntryValueTemplateConstant, entryIndex)
		}
		if _, supported := supportedValueTypes[strings.TrimSpace(entry.Type)]; !supported {
			return fmt.Errorf(profileEntryTypeTemplateConstant, entryIndex, entry.Type)
		}
	}
	for restartIndex, serviceName := range profile.Restart {
		if len(strings.TrimSpace(serviceName)) == 0 {
			return fmt.Errorf(profileRestartEntryTemplateConstant, restartIndex)
		}
	}
	return nil
}

// Writes converts the profile entries into defaults write requests.
func (profile Profile) Writes() []macos.PreferenceWrite {
	writes := make([]macos.PreferenceWrite, 0, len(profile.Preferences))
	for _, entry := range profile.Preferences {
		writes = append(writes, macos.PreferenceWrite{
			Domain:    strings.TrimSpace(entry.Domain),
			Key:       strings.TrimSpace(entry.Key),
			ValueType: supportedValueTypes[strings.TrimSpace(entry.Type)],
			Value:     strings.TrimSpace(entry.Value),
		})
	}
	return writes
}
