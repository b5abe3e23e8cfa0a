// Package sshkey generates ed25519 SSH keypairs through ssh-keygen and
// registers them with the keychain-backed SSH agent.
package sshkey
