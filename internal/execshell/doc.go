// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines abstractions used throughout macsetup
// to run ssh-keygen, git, defaults, and the other provisioning CLIs in a
// testable manner.
package execshell
