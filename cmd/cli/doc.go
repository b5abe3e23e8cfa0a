// Package cli assembles the macsetup root command, configuration loading,
// and structured logging for the provisioning subcommands.
package cli
