// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

func securityFixture(restricted bool) securityModel {
	security := newSecurityModel(DefaultTheme, DefaultKeyMap, restricted)
	security.setData([]schema.SecurityAlert{
		{ID: "a-1", Title: "Perimeter breach", Severity: schema.SeverityCritical, Status: schema.AlertActive, Location: "North Gate"},
		{ID: "a-2", Title: "Badge reuse", Severity: schema.SeverityMedium, Status: schema.AlertInvestigating, Location: "Lab"},
		{ID: "a-3", Title: "Old incident", Severity: schema.SeverityLow, Status: schema.AlertResolved, Location: "Lobby"},
	}, []schema.AccessLogEntry{
		{ID: "l-1", UserName: "bruce.wayne", Action: "login", Location: "Console", Outcome: schema.AccessSuccess},
	})
	return security
}

func TestTransitionFollowsLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		cursor  int
		target  schema.AlertStatus
		allowed bool
	}{
		{"active to investigating", 0, schema.AlertInvestigating, true},
		{"active straight to resolved", 0, schema.AlertResolved, true},
		{"investigating to resolved", 1, schema.AlertResolved, true},
		{"investigating back to investigating", 1, schema.AlertInvestigating, false},
		{"resolved is terminal", 2, schema.AlertResolved, false},
		{"resolved cannot reopen", 2, schema.AlertInvestigating, false},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			security := securityFixture(false)
			security.cursor = testCase.cursor
			request := security.transitionSelected(testCase.target)
			if testCase.allowed && request == nil {
				t.Fatal("legal transition rejected")
			}
			if !testCase.allowed && request != nil {
				t.Fatalf("illegal transition produced request %+v", request)
			}
		})
	}
}

func TestTransitionSingleFlightPerAlert(t *testing.T) {
	security := securityFixture(false)
	security.cursor = 0

	if request := security.transitionSelected(schema.AlertInvestigating); request == nil {
		t.Fatal("first transition rejected")
	}
	if request := security.transitionSelected(schema.AlertResolved); request != nil {
		t.Fatal("second transition accepted while the first was in flight")
	}

	security.transitionFinished("a-1")
	if request := security.transitionSelected(schema.AlertResolved); request == nil {
		t.Fatal("transition rejected after the previous one settled")
	}
}

func TestRestrictedViewShowsPlaceholderAndIgnoresInput(t *testing.T) {
	security := securityFixture(true)

	rendered := security.view(80, 24)
	if !strings.Contains(rendered, "clearance") {
		t.Errorf("restricted view missing clearance notice:\n%s", rendered)
	}
	if strings.Contains(rendered, "Perimeter breach") {
		t.Error("restricted view leaked alert data")
	}

	investigateKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}}
	if request, _ := security.handleKey(investigateKey, 20); request != nil {
		t.Fatalf("restricted view accepted a transition: %+v", request)
	}
}

func TestSeverityFilterNarrowsAlerts(t *testing.T) {
	security := securityFixture(false)
	security.alertFilter.Severity = schema.SeverityCritical
	security.applyFilter()

	if len(security.visible) != 1 || security.visible[0].ID != "a-1" {
		t.Fatalf("filtered alerts = %+v", security.visible)
	}
}

func TestStatusFilterCyclesThroughLifecycle(t *testing.T) {
	security := securityFixture(false)

	statusKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
	security.handleKey(statusKey, 20)

	if security.alertFilter.Status != schema.AlertActive {
		t.Fatalf("status filter = %q after one cycle, want %q",
			security.alertFilter.Status, schema.AlertActive)
	}
	if len(security.visible) != 1 || security.visible[0].ID != "a-1" {
		t.Fatalf("filtered alerts = %+v", security.visible)
	}
}

func TestTextFilterNarrowsAlerts(t *testing.T) {
	security := securityFixture(false)

	slash := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
	security.handleKey(slash, 20)
	if !security.filtering {
		t.Fatal("/ did not enter filter mode")
	}

	for _, r := range "badge" {
		keystroke := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		security.handleKey(keystroke, 20)
	}
	if len(security.visible) != 1 || security.visible[0].ID != "a-2" {
		t.Fatalf("text filter kept %+v", security.visible)
	}

	// Enter keeps the filter; Esc clears everything.
	security.handleKey(tea.KeyMsg{Type: tea.KeyEnter}, 20)
	if security.filtering || len(security.visible) != 1 {
		t.Fatal("enter did not keep the filter")
	}
	security.handleKey(tea.KeyMsg{Type: tea.KeyEsc}, 20)
	if security.alertFilter.Active() || len(security.visible) != 3 {
		t.Fatalf("esc did not clear the filter: %+v", security.alertFilter)
	}
}

func TestCursorFollowsAlertAcrossRefresh(t *testing.T) {
	security := securityFixture(false)
	security.cursor = 1 // a-2

	// A refresh reorders the feed; the cursor follows the alert.
	security.setData([]schema.SecurityAlert{
		{ID: "a-2", Title: "Badge reuse", Severity: schema.SeverityMedium, Status: schema.AlertInvestigating},
		{ID: "a-1", Title: "Perimeter breach", Severity: schema.SeverityCritical, Status: schema.AlertActive},
	}, nil)

	if selected := security.selectedAlert(); selected == nil || selected.ID != "a-2" {
		t.Fatalf("cursor did not follow alert: %+v", selected)
	}
}
