package keyprovision

import (
	"errors"
	"io/fs"
	"os"
	"os/user"
)

// OSFileSystem implements FileSystem over the local filesystem.
type OSFileSystem struct{}

// FileExists reports whether a file exists at the provided path.
func (OSFileSystem) FileExists(path string) (bool, error) {
	_, statError := os.Stat(path)
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, statError
}

// ReadFile returns the contents of the file at the provided path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// OSMachineIdentity implements MachineIdentity from the running system.
type OSMachineIdentity struct{}

// Username returns the login name of the current user.
func (OSMachineIdentity) Username() (string, error) {
	currentUser, lookupError := user.Current()
	if lookupError != nil {
		return "", lookupError
	}
	return currentUser.Username, nil
}

// Hostname returns the local hostname.
func (OSMachineIdentity) Hostname() (string, error) {
	return os.Hostname()
}
