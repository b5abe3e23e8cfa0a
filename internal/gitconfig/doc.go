// Package gitconfig manages global git configuration values and repository
// clones through the git CLI.
package gitconfig
