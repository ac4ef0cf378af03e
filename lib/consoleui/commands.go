// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sentinel-ops/sentinel/lib/api"
	"github.com/sentinel-ops/sentinel/lib/schema"
	"github.com/sentinel-ops/sentinel/lib/session"
)

// Result messages. Refresh results carry the sequence they were
// issued under so the model can reject responses that were superseded
// while in flight.

type loginResultMsg struct {
	user schema.User
	err  error
}

type dashboardLoadedMsg struct {
	sequence uint64
	summary  schema.DashboardSummary
	err      error
}

type resourcesLoadedMsg struct {
	sequence  uint64
	resources []schema.Resource
	err       error
}

type securityLoadedMsg struct {
	sequence uint64
	alerts   []schema.SecurityAlert
	logs     []schema.AccessLogEntry
	err      error
}

type resourceSavedMsg struct {
	created bool
	err     error
}

type resourceDeletedMsg struct {
	id  string
	err error
}

type alertTransitionedMsg struct {
	alertID string
	target  schema.AlertStatus
	err     error
}

// refreshTickMsg fires when a view's refresh interval elapses. It
// carries the phase it was scheduled under; the model drops ticks
// whose phase has been reset since.
type refreshTickMsg struct {
	view  View
	phase uint64
}

func loginCommand(store *session.Store, timeout time.Duration, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := store.Login(ctx, username, password)
		return loginResultMsg{user: user, err: err}
	}
}

func loadDashboard(client *api.Client, timeout time.Duration, sequence uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		summary, err := client.DashboardStats(ctx)
		return dashboardLoadedMsg{sequence: sequence, summary: summary, err: err}
	}
}

func loadResources(client *api.Client, timeout time.Duration, sequence uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resources, err := client.Resources(ctx)
		return resourcesLoadedMsg{sequence: sequence, resources: resources, err: err}
	}
}

// loadSecurity fetches the alert and access log feeds together under
// one sequence. A failure of either leaves both unapplied, so the two
// feeds never show data from different instants.
func loadSecurity(client *api.Client, timeout time.Duration, sequence uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		alerts, err := client.SecurityAlerts(ctx)
		if err != nil {
			return securityLoadedMsg{sequence: sequence, err: err}
		}
		logs, err := client.AccessLogs(ctx)
		if err != nil {
			return securityLoadedMsg{sequence: sequence, err: err}
		}
		return securityLoadedMsg{sequence: sequence, alerts: alerts, logs: logs}
	}
}

func saveResource(client *api.Client, timeout time.Duration, id string, draft schema.ResourceDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if id == "" {
			_, err := client.CreateResource(ctx, draft)
			return resourceSavedMsg{created: true, err: err}
		}
		_, err := client.UpdateResource(ctx, id, draft)
		return resourceSavedMsg{err: err}
	}
}

func deleteResource(client *api.Client, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.DeleteResource(ctx, id)
		return resourceDeletedMsg{id: id, err: err}
	}
}

func transitionAlert(client *api.Client, timeout time.Duration, alertID string, target schema.AlertStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.UpdateAlertStatus(ctx, alertID, target)
		return alertTransitionedMsg{alertID: alertID, target: target, err: err}
	}
}

// waitForTick blocks on the scheduler's clock channel and delivers a
// refreshTickMsg stamped with the phase captured at scheduling time.
func waitForTick(wait <-chan time.Time, view View, phase uint64) tea.Cmd {
	return func() tea.Msg {
		<-wait
		return refreshTickMsg{view: view, phase: phase}
	}
}
