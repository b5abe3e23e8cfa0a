// Package homebrew bootstraps the Homebrew package manager by downloading
// and running the official install script.
package homebrew
