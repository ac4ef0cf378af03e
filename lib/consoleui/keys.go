// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	// Navigation within the active list.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// View switching.
	ViewDashboard key.Binding
	ViewResources key.Binding
	ViewSecurity  key.Binding

	// Feed switching within the security view.
	FeedToggle key.Binding

	// Filter.
	FilterActivate  key.Binding // Enter text filter mode.
	FilterClear     key.Binding // Clear all filters.
	CycleStatus     key.Binding // Cycle the status filter.
	CycleType       key.Binding // Cycle the type filter.
	CycleSeverity   key.Binding // Cycle the alert severity filter.

	// Refresh.
	Refresh key.Binding

	// Inventory mutations. Only honored when the operator's access
	// level clears the mutation threshold.
	NewRecord    key.Binding
	EditRecord   key.Binding
	DeleteRecord key.Binding

	// Alert lifecycle transitions.
	Investigate key.Binding
	Resolve     key.Binding

	// Forms and confirmations.
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Cancel    key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	ViewDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	ViewResources: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "inventory"),
	),
	ViewSecurity: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "security"),
	),
	FeedToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "alerts/logs"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CycleType: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "type filter"),
	),
	CycleSeverity: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "severity filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	NewRecord: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	EditRecord: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	DeleteRecord: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Investigate: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "investigate"),
	),
	Resolve: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "resolve"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "submit"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
