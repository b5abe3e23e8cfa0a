package preferences_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/macsetup/internal/macos"
	"github.com/temirov/macsetup/internal/preferences"
)

func TestDefaultProfileCoversBaselinePreferences(t *testing.T) {
	profile, profileError := preferences.DefaultProfile()
	require.NoError(t, profileError)

	writes := profile.Writes()
	require.Len(t, writes, 8)
	require.Contains(t, writes, macos.PreferenceWrite{
		Domain:    "com.apple.assistant.support",
		Key:       "Assistant Enabled",
		ValueType: macos.PreferenceValueTypeBoolean,
		Value:     "false",
	})
	require.Contains(t, writes, macos.PreferenceWrite{
		Domain:    "com.apple.WindowManager",
		Key:       "EnableTilingByEdgeDrag",
		ValueType: macos.PreferenceValueTypeBoolean,
		Value:     "false",
	})
	require.Contains(t, writes, macos.PreferenceWrite{
		Domain:    "com.apple.dock",
		Key:       "autohide",
		ValueType: macos.PreferenceValueTypeBoolean,
		Value:     "true",
	})
	require.Contains(t, writes, macos.PreferenceWrite{
		Domain:    "NSGlobalDomain",
		Key:       "_HIHideMenuBar",
		ValueType: macos.PreferenceValueTypeBoolean,
		Value:     "true",
	})
	for _, cornerKey := range []string{"wvous-tl-corner", "wvous-tr-corner", "wvous-bl-corner", "wvous-br-corner"} {
		require.Contains(t, writes, macos.PreferenceWrite{
			Domain:    "com.apple.dock",
			Key:       cornerKey,
			ValueType: macos.PreferenceValueTypeInteger,
			Value:     "1",
		})
	}
	require.Equal(t, []string{"Dock", "SystemUIServer"}, profile.Restart)
}

func TestParseProfileValidatesEntries(t *testing.T) {
	testCases := []struct {
		name            string
		profileContent  string
		expectedMessage string
	}{
		{
			name:            "missing_domain",
			profileContent:  "preferences:\n  - key: autohide\n    type: bool\n    value: \"true\"\n",
			expectedMessage: "missing a domain",
		},
		{
			name:            "missing_key",
			profileContent:  "preferences:\n  - domain: com.apple.dock\n    type: bool\n    value: \"true\"\n",
			expectedMessage: "missing a key",
		},
		{
			name:            "missing_value",
			profileContent:  "preferences:\n  - domain: com.apple.dock\n    key: autohide\n    type: bool\n",
			expectedMessage: "missing a value",
		},
		{
			name:            "unsupported_type",
			profileContent:  "preferences:\n  - domain: com.apple.dock\n    key: autohide\n    type: data\n    value: \"true\"\n",
			expectedMessage: "unsupported type",
		},
		{
			name:            "empty_restart_entry",
			profileContent:  "preferences:\n  - domain: com.apple.dock\n    key: autohide\n    type: bool\n    value: \"true\"\nrestart:\n  - \"\"\n",
			expectedMessage: "restart entry 0 is empty",
		},
		{
			name:            "malformed_yaml",
			profileContent:  "preferences: [",
			expectedMessage: "failed to parse preference profile",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, parseError := preferences.ParseProfile([]byte(testCase.profileContent))
			require.ErrorContains(t, parseError, testCase.expectedMessage)
		})
	}
}

func TestParseProfileRejectsEmptyProfile(t *testing.T) {
	_, parseError := preferences.ParseProfile([]byte("restart:\n  - Dock\n"))
	require.ErrorIs(t, parseError, preferences.ErrProfileEmpty)
}
