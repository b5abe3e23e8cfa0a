package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/macsetup/internal/pathutils"
)

func TestExpandResolvesTildePrefixes(t *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "/Users/sample", nil
	})

	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "bare_tilde", candidatePath: "~", expectedPath: "/Users/sample"},
		{name: "tilde_with_path", candidatePath: "~/.ssh", expectedPath: filepath.Join("/Users/sample", ".ssh")},
		{name: "absolute_path_untouched", candidatePath: "/tmp/keys", expectedPath: "/tmp/keys"},
		{name: "empty_path_untouched", candidatePath: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestExpandLeavesPathWhenHomeLookupFails(t *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home directory")
	})

	require.Equal(t, "~/.ssh", expander.Expand("~/.ssh"))
}
