// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// dashboardModel renders the aggregated overview: stat cards, the
// most recent access events, and the currently active alerts. The
// data arrives as one DashboardSummary so the cards and the previews
// always describe the same instant.
type dashboardModel struct {
	theme Theme

	summary schema.DashboardSummary
	loaded  bool

	// loadProblem is the last refresh failure, shown in place of data
	// only when nothing has loaded yet. Once data is on screen a
	// failed refresh keeps the stale data visible.
	loadProblem string
}

func newDashboardModel(theme Theme) dashboardModel {
	return dashboardModel{theme: theme}
}

func (dashboard *dashboardModel) setSummary(summary schema.DashboardSummary) {
	dashboard.summary = summary
	dashboard.loaded = true
	dashboard.loadProblem = ""
}

func (dashboard *dashboardModel) setProblem(problem string) {
	if !dashboard.loaded {
		dashboard.loadProblem = problem
	}
}

func (dashboard *dashboardModel) view(width, height int) string {
	if !dashboard.loaded {
		faint := lipgloss.NewStyle().Foreground(dashboard.theme.FaintText)
		if dashboard.loadProblem != "" {
			problem := lipgloss.NewStyle().Foreground(dashboard.theme.ErrorText)
			return problem.Render("Dashboard unavailable: " + dashboard.loadProblem)
		}
		return faint.Render("Loading dashboard…")
	}

	stats := dashboard.summary.Stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		dashboard.statCard("Resources", fmt.Sprintf("%d", stats.TotalResources), dashboard.theme.NormalText),
		dashboard.statCard("Active", fmt.Sprintf("%d", stats.ActiveResources), dashboard.theme.ResourceActive),
		dashboard.statCard("Maintenance", fmt.Sprintf("%d", stats.MaintenanceResources), dashboard.theme.ResourceMaintenance),
		dashboard.statCard("Personnel", fmt.Sprintf("%d", stats.TotalUsers), dashboard.theme.NormalText),
		dashboard.statCard("Alerts", fmt.Sprintf("%d", stats.ActiveAlerts), dashboard.alertCountColor(stats.ActiveAlerts)),
	)

	sections := []string{
		cards,
		"",
		dashboard.alertsSection(width),
		"",
		dashboard.accessSection(width),
	}
	return strings.Join(sections, "\n")
}

func (dashboard *dashboardModel) alertCountColor(count int) lipgloss.Color {
	if count > 0 {
		return dashboard.theme.AlertActive
	}
	return dashboard.theme.AlertResolved
}

func (dashboard *dashboardModel) statCard(label, value string, color lipgloss.Color) string {
	valueStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(dashboard.theme.FaintText)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dashboard.theme.BorderColor).
		Padding(0, 2).
		Align(lipgloss.Center)
	return card.Render(valueStyle.Render(value) + "\n" + labelStyle.Render(label))
}

func (dashboard *dashboardModel) alertsSection(width int) string {
	header := lipgloss.NewStyle().
		Foreground(dashboard.theme.HeaderForeground).
		Bold(true).
		Render("Active Alerts")

	alerts := dashboard.summary.ActiveAlerts
	if len(alerts) == 0 {
		none := lipgloss.NewStyle().Foreground(dashboard.theme.FaintText)
		return header + "\n" + none.Render("  No active alerts")
	}

	lines := []string{header}
	for _, alert := range alerts {
		severity := lipgloss.NewStyle().
			Foreground(dashboard.theme.SeverityColor(alert.Severity)).
			Render(fmt.Sprintf("%-8s", alert.Severity.Label()))
		line := fmt.Sprintf("  %s %s — %s", severity, alert.Title, alert.Location)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}

func (dashboard *dashboardModel) accessSection(width int) string {
	header := lipgloss.NewStyle().
		Foreground(dashboard.theme.HeaderForeground).
		Bold(true).
		Render("Recent Access")

	entries := dashboard.summary.RecentAccess
	if len(entries) == 0 {
		none := lipgloss.NewStyle().Foreground(dashboard.theme.FaintText)
		return header + "\n" + none.Render("  No recent access events")
	}

	lines := []string{header}
	for _, entry := range entries {
		outcome := lipgloss.NewStyle().
			Foreground(dashboard.theme.OutcomeColor(entry.Outcome)).
			Render(fmt.Sprintf("%-7s", entry.Outcome.Label()))
		stamp := ""
		if !entry.Timestamp.IsZero() {
			stamp = entry.Timestamp.Format("15:04:05")
		}
		line := fmt.Sprintf("  %s %s  %s @ %s", stamp, outcome, entry.UserName, entry.Location)
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return strings.Join(lines, "\n")
}
