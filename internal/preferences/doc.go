// Package preferences applies macOS preference profiles: defaults writes,
// service restarts, and the Homebrew bootstrap.
package preferences
