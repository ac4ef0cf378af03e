// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui implements the operations console TUI.
//
// The console is a bubbletea program with four views: login,
// dashboard, inventory, and security. The root Model owns the session
// store and routes every message; the view sub-models own their data
// and rendering. All state lives on the model goroutine — network
// calls run as tea.Cmd functions and come back as typed result
// messages carrying the refresh sequence they were issued under, so a
// response that arrives after its view was left or superseded is
// dropped rather than applied.
//
// Capability gating is structural. When the operator's access level
// does not clear a capability, the corresponding controls and key
// bindings do not exist in that render; nothing is shown disabled.
package consoleui
