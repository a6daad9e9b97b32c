// Package ui provides the terminal user interface for checkoff.
//
// The interface is a Bubble Tea program. Model owns no todo data of its
// own: every frame renders the latest state.Snapshot taken from the
// syncer.Controller, and every intent (add, toggle, rename, delete,
// refresh) is dispatched as a tea.Cmd that calls the controller off the
// update loop. A periodic tick re-reads the snapshot so background
// refreshes show up without further input.
//
// Three modes decide where keystrokes go:
//
//   - browse: list navigation and actions
//   - compose: the new-todo text field, backed by the controller buffer
//   - edit: inline title editing for one row, backed by the edit session
//
// Theme and hide-completed choices are persisted through package prefs.
package ui
