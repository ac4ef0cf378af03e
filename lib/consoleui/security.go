// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// securityFeed identifies which feed the security view is showing.
type securityFeed int

const (
	feedAlerts securityFeed = iota
	feedAccessLogs
)

// securityModel is the security view: the alert feed with lifecycle
// actions, and the access log feed. Both datasets refresh together
// under one sequence so the two feeds always describe the same
// instant. Operators below the clearance threshold get a placeholder
// instead of data; the root model never even fetches for them.
type securityModel struct {
	theme Theme
	keys  KeyMap

	// restricted is true when the operator may not view security
	// data. The view renders a notice and ignores input.
	restricted bool

	alerts []schema.SecurityAlert
	logs   []schema.AccessLogEntry
	loaded bool

	feed        securityFeed
	alertFilter AlertFilter
	filterInput textinput.Model
	// filtering means keystrokes go to the text filter input.
	filtering bool
	visible   []schema.SecurityAlert
	cursor    int
	scroll    int

	// transitioning holds the IDs of alerts with a lifecycle request
	// in flight, so a second transition on the same alert is ignored
	// until the first settles.
	transitioning map[string]bool

	loadProblem string
}

func newSecurityModel(theme Theme, keys KeyMap, restricted bool) securityModel {
	filterInput := textinput.New()
	filterInput.Placeholder = "filter"
	filterInput.CharLimit = 80
	filterInput.Prompt = "/"

	return securityModel{
		theme:         theme,
		keys:          keys,
		restricted:    restricted,
		filterInput:   filterInput,
		transitioning: make(map[string]bool),
	}
}

// setData replaces both feeds from a joint refresh.
func (security *securityModel) setData(alerts []schema.SecurityAlert, logs []schema.AccessLogEntry) {
	var selectedID string
	if security.cursor < len(security.visible) {
		selectedID = security.visible[security.cursor].ID
	}

	security.alerts = alerts
	security.logs = logs
	security.loaded = true
	security.loadProblem = ""
	security.applyFilter()

	if selectedID != "" {
		for index, alert := range security.visible {
			if alert.ID == selectedID {
				security.cursor = index
				return
			}
		}
	}
	security.clampCursor()
}

func (security *securityModel) setProblem(problem string) {
	if !security.loaded {
		security.loadProblem = problem
	}
}

func (security *securityModel) applyFilter() {
	security.alertFilter.Query = security.filterInput.Value()
	security.visible = security.alertFilter.Apply(security.alerts)
	security.clampCursor()
}

func (security *securityModel) clampCursor() {
	limit := len(security.visible)
	if security.feed == feedAccessLogs {
		limit = len(security.logs)
	}
	if security.cursor >= limit {
		security.cursor = limit - 1
	}
	if security.cursor < 0 {
		security.cursor = 0
	}
}

func (security *securityModel) selectedAlert() *schema.SecurityAlert {
	if security.feed != feedAlerts || security.cursor >= len(security.visible) {
		return nil
	}
	alert := security.visible[security.cursor]
	return &alert
}

// transitionRequest asks the root model to move an alert to a new
// lifecycle state.
type transitionRequest struct {
	alertID string
	target  schema.AlertStatus
}

// handleKey processes a key press. The returned request is non-nil
// when the operator asked for an alert transition that the lifecycle
// permits.
func (security *securityModel) handleKey(message tea.KeyMsg, pageSize int) (*transitionRequest, tea.Cmd) {
	if security.restricted {
		return nil, nil
	}
	if security.filtering {
		return nil, security.handleFilterKey(message)
	}

	switch {
	case key.Matches(message, security.keys.Up):
		security.moveCursor(-1, pageSize)
	case key.Matches(message, security.keys.Down):
		security.moveCursor(1, pageSize)
	case key.Matches(message, security.keys.PageUp):
		security.moveCursor(-pageSize, pageSize)
	case key.Matches(message, security.keys.PageDown):
		security.moveCursor(pageSize, pageSize)
	case key.Matches(message, security.keys.Home):
		security.cursor = 0
		security.scroll = 0
	case key.Matches(message, security.keys.End):
		security.cursor = len(security.visible) - 1
		if security.feed == feedAccessLogs {
			security.cursor = len(security.logs) - 1
		}
		security.clampCursor()
		security.ensureVisible(pageSize)

	case key.Matches(message, security.keys.FeedToggle):
		if security.feed == feedAlerts {
			security.feed = feedAccessLogs
		} else {
			security.feed = feedAlerts
		}
		security.cursor = 0
		security.scroll = 0

	case key.Matches(message, security.keys.FilterActivate):
		if security.feed == feedAlerts {
			security.filtering = true
			security.filterInput.Focus()
		}

	case key.Matches(message, security.keys.CycleSeverity):
		if security.feed == feedAlerts {
			security.alertFilter.CycleSeverity()
			security.applyFilter()
		}

	case key.Matches(message, security.keys.CycleStatus):
		if security.feed == feedAlerts {
			security.alertFilter.CycleStatus()
			security.applyFilter()
		}

	case key.Matches(message, security.keys.FilterClear):
		security.filterInput.SetValue("")
		security.alertFilter = AlertFilter{}
		security.applyFilter()

	case key.Matches(message, security.keys.Investigate):
		return security.transitionSelected(schema.AlertInvestigating), nil

	case key.Matches(message, security.keys.Resolve):
		return security.transitionSelected(schema.AlertResolved), nil
	}
	return nil, nil
}

func (security *securityModel) handleFilterKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, security.keys.Cancel):
		security.filterInput.SetValue("")
		security.filterInput.Blur()
		security.filtering = false
		security.applyFilter()
		return nil
	case key.Matches(message, security.keys.Submit):
		security.filterInput.Blur()
		security.filtering = false
		return nil
	}

	var cmd tea.Cmd
	security.filterInput, cmd = security.filterInput.Update(message)
	security.applyFilter()
	return cmd
}

// transitionSelected validates the requested transition against the
// alert's current state. Illegal transitions (resolving a resolved
// alert, investigating anything but an active one) are dropped here
// rather than bounced off the service.
func (security *securityModel) transitionSelected(target schema.AlertStatus) *transitionRequest {
	alert := security.selectedAlert()
	if alert == nil || security.transitioning[alert.ID] {
		return nil
	}
	for _, next := range alert.Status.NextStatuses() {
		if next == target {
			security.transitioning[alert.ID] = true
			return &transitionRequest{alertID: alert.ID, target: target}
		}
	}
	return nil
}

// transitionFinished clears the in-flight mark for an alert.
func (security *securityModel) transitionFinished(alertID string) {
	delete(security.transitioning, alertID)
}

func (security *securityModel) moveCursor(delta, pageSize int) {
	security.cursor += delta
	security.clampCursor()
	security.ensureVisible(pageSize)
}

func (security *securityModel) ensureVisible(pageSize int) {
	if pageSize <= 0 {
		return
	}
	if security.cursor < security.scroll {
		security.scroll = security.cursor
	}
	if security.cursor >= security.scroll+pageSize {
		security.scroll = security.cursor - pageSize + 1
	}
}

func (security *securityModel) view(width, height int) string {
	faint := lipgloss.NewStyle().Foreground(security.theme.FaintText)

	if security.restricted {
		notice := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(security.theme.BorderColor).
			Foreground(security.theme.FaintText).
			Padding(1, 3).
			Render("Security data requires level 2 clearance.\nContact your administrator for access.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, notice)
	}

	if !security.loaded {
		if security.loadProblem != "" {
			return lipgloss.NewStyle().Foreground(security.theme.ErrorText).
				Render("Security data unavailable: " + security.loadProblem)
		}
		return faint.Render("Loading security data…")
	}

	var lines []string
	lines = append(lines, security.feedTabs())

	pageSize := height - 2
	if pageSize < 1 {
		pageSize = 1
	}

	if security.feed == feedAlerts {
		lines = append(lines, security.alertLines(width, pageSize)...)
	} else {
		lines = append(lines, security.logLines(width, pageSize)...)
	}
	return strings.Join(lines, "\n")
}

func (security *securityModel) feedTabs() string {
	active := lipgloss.NewStyle().Foreground(security.theme.HeaderForeground).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(security.theme.FaintText)

	alertsTab := inactive.Render("Alerts")
	logsTab := inactive.Render("Access Logs")
	if security.feed == feedAlerts {
		alertsTab = active.Render("Alerts")
	} else {
		logsTab = active.Render("Access Logs")
	}

	line := alertsTab + "  " + logsTab
	if security.feed != feedAlerts {
		return line
	}
	if security.filtering {
		line += "  " + security.filterInput.View()
	} else if query := security.filterInput.Value(); query != "" {
		line += "  " + inactive.Render("/"+query)
	}
	if security.alertFilter.Severity != "" {
		line += "  " + inactive.Render("severity:"+string(security.alertFilter.Severity))
	}
	if security.alertFilter.Status != "" {
		line += "  " + inactive.Render("status:"+string(security.alertFilter.Status))
	}
	return line
}

func (security *securityModel) alertLines(width, pageSize int) []string {
	faint := lipgloss.NewStyle().Foreground(security.theme.FaintText)
	if len(security.visible) == 0 {
		if security.alertFilter.Active() {
			return []string{faint.Render("No alerts match the filter")}
		}
		return []string{faint.Render("No security alerts")}
	}

	end := security.scroll + pageSize
	if end > len(security.visible) {
		end = len(security.visible)
	}

	var lines []string
	for index := security.scroll; index < end; index++ {
		lines = append(lines, security.alertRow(security.visible[index], index == security.cursor, width))
	}
	return lines
}

func (security *securityModel) alertRow(alert schema.SecurityAlert, selected bool, width int) string {
	severity := lipgloss.NewStyle().
		Foreground(security.theme.SeverityColor(alert.Severity)).
		Render(fmt.Sprintf("%-8s", alert.Severity.Label()))
	status := lipgloss.NewStyle().
		Foreground(security.theme.AlertStatusColor(alert.Status)).
		Render(fmt.Sprintf("%-13s", alert.Status.Label()))

	marker := " "
	if security.transitioning[alert.ID] {
		marker = "…"
	}
	line := fmt.Sprintf("%s%s %s %-30s %s",
		marker, severity, status, truncatePlain(alert.Title, 30), alert.Location)
	line = ansi.Truncate(line, width, "…")

	if selected {
		return lipgloss.NewStyle().
			Background(security.theme.SelectedBackground).
			Foreground(security.theme.SelectedForeground).
			Render(line)
	}
	return line
}

func (security *securityModel) logLines(width, pageSize int) []string {
	faint := lipgloss.NewStyle().Foreground(security.theme.FaintText)
	if len(security.logs) == 0 {
		return []string{faint.Render("No access events")}
	}

	end := security.scroll + pageSize
	if end > len(security.logs) {
		end = len(security.logs)
	}

	var lines []string
	for index := security.scroll; index < end; index++ {
		entry := security.logs[index]
		outcome := lipgloss.NewStyle().
			Foreground(security.theme.OutcomeColor(entry.Outcome)).
			Render(fmt.Sprintf("%-7s", entry.Outcome.Label()))
		stamp := ""
		if !entry.Timestamp.IsZero() {
			stamp = entry.Timestamp.Format("Jan 02 15:04:05")
		}
		line := fmt.Sprintf(" %-15s %s %-20s %-18s %s",
			stamp, outcome, truncatePlain(entry.UserName, 20),
			truncatePlain(entry.Action, 18), entry.Location)
		line = ansi.Truncate(line, width, "…")
		if index == security.cursor {
			line = lipgloss.NewStyle().
				Background(security.theme.SelectedBackground).
				Foreground(security.theme.SelectedForeground).
				Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}
