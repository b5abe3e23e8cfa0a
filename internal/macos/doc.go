// Package macos wraps the macOS system utilities used during provisioning:
// the defaults preference store, killall service restarts, the open launcher,
// and the pbcopy pasteboard.
package macos
