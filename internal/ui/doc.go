// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for call assessment:
//  1. [PickerView] : Browse the filesystem and pick a call recording
//  2. [UploadView] : Watch the upload and scoring in flight
//  3. [ResultView] : Display the score card, or the failure reason
//  4. [RankingsView] : Browse the worker leaderboard
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Each upload attempt is numbered; a settle message from an abandoned attempt is
// dropped, so the result on screen always belongs to the newest upload.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
