// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// Theme defines the color palette for the console. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Severity colors (critical, high, medium, low).
	SeverityCritical lipgloss.Color
	SeverityHigh     lipgloss.Color
	SeverityMedium   lipgloss.Color
	SeverityLow      lipgloss.Color

	// Alert lifecycle colors.
	AlertActive        lipgloss.Color
	AlertInvestigating lipgloss.Color
	AlertResolved      lipgloss.Color

	// Resource status colors.
	ResourceActive      lipgloss.Color
	ResourceMaintenance lipgloss.Color
	ResourceInactive    lipgloss.Color
	ResourceAssigned    lipgloss.Color

	// Access log outcome colors.
	OutcomeSuccess lipgloss.Color
	OutcomeDenied  lipgloss.Color
	OutcomeWarning lipgloss.Color

	// Security level badge.
	LevelNormal   lipgloss.Color
	LevelElevated lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// SeverityColor returns the color for an alert severity. Unknown
// severities render with FaintText.
func (theme Theme) SeverityColor(severity schema.AlertSeverity) lipgloss.Color {
	switch severity {
	case schema.SeverityCritical:
		return theme.SeverityCritical
	case schema.SeverityHigh:
		return theme.SeverityHigh
	case schema.SeverityMedium:
		return theme.SeverityMedium
	case schema.SeverityLow:
		return theme.SeverityLow
	default:
		return theme.FaintText
	}
}

// AlertStatusColor returns the color for an alert lifecycle state.
func (theme Theme) AlertStatusColor(status schema.AlertStatus) lipgloss.Color {
	switch status {
	case schema.AlertActive:
		return theme.AlertActive
	case schema.AlertInvestigating:
		return theme.AlertInvestigating
	case schema.AlertResolved:
		return theme.AlertResolved
	default:
		return theme.FaintText
	}
}

// ResourceStatusColor returns the color for a resource status.
func (theme Theme) ResourceStatusColor(status schema.ResourceStatus) lipgloss.Color {
	switch status {
	case schema.ResourceActive:
		return theme.ResourceActive
	case schema.ResourceMaintenance:
		return theme.ResourceMaintenance
	case schema.ResourceInactive:
		return theme.ResourceInactive
	case schema.ResourceAssigned:
		return theme.ResourceAssigned
	default:
		return theme.FaintText
	}
}

// OutcomeColor returns the color for an access log outcome.
func (theme Theme) OutcomeColor(outcome schema.AccessOutcome) lipgloss.Color {
	switch outcome {
	case schema.AccessSuccess:
		return theme.OutcomeSuccess
	case schema.AccessDenied:
		return theme.OutcomeDenied
	case schema.AccessWarning:
		return theme.OutcomeWarning
	default:
		return theme.FaintText
	}
}

// LevelColor returns the badge color for the facility security level.
func (theme Theme) LevelColor(level schema.SecurityLevel) lipgloss.Color {
	if level == schema.SecurityHigh {
		return theme.LevelElevated
	}
	return theme.LevelNormal
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SeverityCritical: lipgloss.Color("196"), // bright red
	SeverityHigh:     lipgloss.Color("208"), // orange
	SeverityMedium:   lipgloss.Color("220"), // amber
	SeverityLow:      lipgloss.Color("245"), // gray

	AlertActive:        lipgloss.Color("196"), // red
	AlertInvestigating: lipgloss.Color("220"), // amber
	AlertResolved:      lipgloss.Color("114"), // green

	ResourceActive:      lipgloss.Color("114"), // green
	ResourceMaintenance: lipgloss.Color("220"), // amber
	ResourceInactive:    lipgloss.Color("245"), // gray
	ResourceAssigned:    lipgloss.Color("75"),  // blue

	OutcomeSuccess: lipgloss.Color("114"),
	OutcomeDenied:  lipgloss.Color("196"),
	OutcomeWarning: lipgloss.Color("220"),

	LevelNormal:   lipgloss.Color("114"),
	LevelElevated: lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("203"),
}
