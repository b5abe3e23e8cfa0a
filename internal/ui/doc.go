// Package ui renders command lifecycle events for interactive console
// sessions, translating execshell notifications into human-readable output.
package ui
