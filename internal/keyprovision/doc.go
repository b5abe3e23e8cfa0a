// Package keyprovision orchestrates SSH key provisioning: key generation,
// agent registration, git identity configuration, clipboard and browser
// handoff to GitHub, the connectivity test menu, and the optional dotfiles
// clone.
package keyprovision
