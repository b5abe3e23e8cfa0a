// Package prompt reads interactive answers for provisioning flows from an
// io.Reader, covering yes/no confirmations and free-form line input.
package prompt
