// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sentinel-ops/sentinel/lib/api"
	"github.com/sentinel-ops/sentinel/lib/clock"
	"github.com/sentinel-ops/sentinel/lib/schema"
	"github.com/sentinel-ops/sentinel/lib/session"
)

// stubService is an in-memory stand-in for the operations service,
// covering the routes the console exercises. It accepts any
// credential and enforces the alert lifecycle the way the real
// service does.
type stubService struct {
	mu        sync.Mutex
	user      schema.User
	resources []schema.Resource
	alerts    []schema.SecurityAlert
	logs      []schema.AccessLogEntry
	nextID    int
}

func (service *stubService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-test",
			"token_type":   "bearer",
			"user":         service.user,
		})
	})
	mux.HandleFunc("GET /api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(schema.DashboardSummary{})
	})
	mux.HandleFunc("GET /api/resources", func(w http.ResponseWriter, r *http.Request) {
		service.mu.Lock()
		defer service.mu.Unlock()
		json.NewEncoder(w).Encode(service.resources)
	})
	mux.HandleFunc("POST /api/resources", func(w http.ResponseWriter, r *http.Request) {
		var draft schema.ResourceDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		service.mu.Lock()
		defer service.mu.Unlock()
		service.nextID++
		record := schema.Resource{
			ID:              fmt.Sprintf("r-%d", service.nextID),
			Name:            draft.Name,
			Type:            draft.Type,
			Category:        draft.Category,
			Location:        draft.Location,
			Status:          draft.Status,
			AssignedTo:      draft.AssignedTo,
			Description:     draft.Description,
			AcquisitionDate: draft.AcquisitionDate,
		}
		service.resources = append(service.resources, record)
		json.NewEncoder(w).Encode(record)
	})
	mux.HandleFunc("GET /api/security-alerts", func(w http.ResponseWriter, r *http.Request) {
		service.mu.Lock()
		defer service.mu.Unlock()
		json.NewEncoder(w).Encode(service.alerts)
	})
	mux.HandleFunc("GET /api/access-logs", func(w http.ResponseWriter, r *http.Request) {
		service.mu.Lock()
		defer service.mu.Unlock()
		json.NewEncoder(w).Encode(service.logs)
	})
	mux.HandleFunc("PUT /api/security-alerts/{id}", func(w http.ResponseWriter, r *http.Request) {
		target := schema.AlertStatus(r.URL.Query().Get("status"))
		service.mu.Lock()
		defer service.mu.Unlock()
		for index := range service.alerts {
			if service.alerts[index].ID != r.PathValue("id") {
				continue
			}
			for _, next := range service.alerts[index].Status.NextStatuses() {
				if next == target {
					service.alerts[index].Status = target
					json.NewEncoder(w).Encode(map[string]string{"message": "updated"})
					return
				}
			}
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid status transition"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Alert not found"})
	})
	return mux
}

// authenticatedModel builds a console model signed in as the given
// operator, backed by an empty stub service.
func authenticatedModel(t *testing.T, user schema.User) Model {
	t.Helper()
	return serviceModel(t, &stubService{user: user})
}

// serviceModel builds a console model signed in against the given
// stub service.
func serviceModel(t *testing.T, service *stubService) Model {
	t.Helper()

	server := httptest.NewServer(service.handler())
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	store := session.NewStore(session.Config{
		Client: client,
		Path:   filepath.Join(t.TempDir(), "session.json"),
		Clock:  clock.Fake(time.Now()),
	})
	if _, err := store.Login(context.Background(), service.user.Username, "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	model := NewModel(Config{
		Client: client,
		Store:  store,
		Clock:  clock.Fake(time.Now()),
	})
	model.ready = true
	model.width = 100
	model.height = 30
	return model
}

// collectMsgs runs a command tree and gathers the messages from
// commands that settle quickly. Commands that block — timer waits on
// the fake clock, notice fades — are abandoned after a grace period.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			var msgs []tea.Msg
			for _, member := range batch {
				msgs = append(msgs, collectMsgs(member)...)
			}
			return msgs
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func securityAdmin() schema.User {
	return schema.User{
		ID: "u-1", Username: "bruce.wayne", FullName: "Bruce Wayne",
		Role: schema.RoleSecurityAdmin, AccessLevel: schema.ClearanceSecurityAdmin,
	}
}

func employee() schema.User {
	return schema.User{
		ID: "u-3", Username: "alfred.pennyworth", FullName: "Alfred Pennyworth",
		Role: schema.RoleEmployee, AccessLevel: schema.ClearanceEmployee,
	}
}

func TestOpensOnDashboardWhenSessionRestored(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())
	if model.view != ViewDashboard {
		t.Fatalf("view = %v, want ViewDashboard", model.view)
	}
}

func TestStaleDashboardResponseDropped(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())

	sequence, ok := model.dashboardPoll.Begin()
	if !ok {
		t.Fatal("Begin refused")
	}
	// The operator switches away before the response lands.
	model.dashboardPoll.ResetPhase()

	summary := schema.DashboardSummary{Stats: schema.DashboardStats{TotalResources: 42}}
	updated, _ := model.Update(dashboardLoadedMsg{sequence: sequence, summary: summary})

	if updated.(Model).dashboard.loaded {
		t.Fatal("superseded dashboard response was applied")
	}
}

func TestCurrentDashboardResponseApplied(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())

	sequence, _ := model.dashboardPoll.Begin()
	summary := schema.DashboardSummary{Stats: schema.DashboardStats{TotalResources: 42}}
	updated, _ := model.Update(dashboardLoadedMsg{sequence: sequence, summary: summary})

	result := updated.(Model)
	if !result.dashboard.loaded || result.dashboard.summary.Stats.TotalResources != 42 {
		t.Fatalf("dashboard = %+v", result.dashboard.summary)
	}
}

func TestUnauthorizedTearsDownSessionOnce(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())

	rejection := &api.APIError{StatusCode: 401, Message: "Could not validate credentials"}

	sequence, _ := model.securityPoll.Begin()
	updated, _ := model.Update(securityLoadedMsg{sequence: sequence, err: rejection})
	result := updated.(Model)

	if result.view != ViewLogin {
		t.Fatalf("view = %v after 401, want ViewLogin", result.view)
	}
	if result.store.Status() != session.Expired {
		t.Fatalf("store status = %v, want Expired", result.store.Status())
	}

	// A second in-flight request failing with the same 401 must not
	// disturb the login form.
	again, _ := result.Update(dashboardLoadedMsg{sequence: 99, err: rejection})
	if again.(Model).view != ViewLogin {
		t.Fatal("second 401 moved the view")
	}
}

func TestEmployeeSecurityViewIsRestricted(t *testing.T) {
	model := authenticatedModel(t, employee())

	if !model.security.restricted {
		t.Fatal("employee security view not restricted")
	}
	if cmd := model.activateView(ViewSecurity); cmd != nil {
		t.Fatal("restricted security view issued a fetch")
	}

	model.view = ViewSecurity
	rendered := model.View()
	if !strings.Contains(rendered, "clearance") {
		t.Error("restricted placeholder missing from render")
	}
}

func TestEmployeeMutationKeysAreDead(t *testing.T) {
	model := authenticatedModel(t, employee())
	model.view = ViewResources
	model.resources.setResources([]schema.Resource{
		{ID: "r-1", Name: "Grapple Gun", Type: schema.ResourceEquipment, Status: schema.ResourceActive},
	})

	newKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
	updated, _ := model.Update(newKey)
	result := updated.(Model)

	if result.resources.mode != resourceListing || result.resources.form != nil {
		t.Fatal("employee opened the resource form")
	}

	if strings.Contains(result.helpLine(), "n new") {
		t.Error("help line advertises a gated binding")
	}
}

func TestAdminMutationKeysOpenForm(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())
	model.view = ViewResources
	model.resources.setResources([]schema.Resource{
		{ID: "r-1", Name: "Grapple Gun", Type: schema.ResourceEquipment, Status: schema.ResourceActive},
	})

	newKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
	updated, _ := model.Update(newKey)
	result := updated.(Model)

	if result.resources.mode != resourceEditing || result.resources.form == nil {
		t.Fatal("admin could not open the resource form")
	}
}

func TestStaleTickDoesNotRefresh(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())

	stalePhase := model.dashboardPoll.Phase()
	model.dashboardPoll.ResetPhase()

	updated, cmd := model.Update(refreshTickMsg{view: ViewDashboard, phase: stalePhase})
	if cmd != nil {
		t.Fatal("stale tick produced a refresh command")
	}
	if updated.(Model).view != ViewDashboard {
		t.Fatal("tick handling moved the view")
	}
}

func TestTickForInactiveViewDropped(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())
	model.view = ViewResources

	phase := model.dashboardPoll.Phase()
	_, cmd := model.Update(refreshTickMsg{view: ViewDashboard, phase: phase})
	if cmd != nil {
		t.Fatal("tick for a background view produced a command")
	}
}

func TestInventoryTickRefreshes(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())
	model.view = ViewResources

	phase := model.resourcesPoll.Phase()
	_, cmd := model.Update(refreshTickMsg{view: ViewResources, phase: phase})
	if cmd == nil {
		t.Fatal("inventory tick did not start a refresh")
	}
	if _, ok := model.resourcesPoll.Begin(); ok {
		t.Fatal("tick refresh did not claim the single-flight slot")
	}
}

func TestCreateRoundTripRefreshesInventory(t *testing.T) {
	service := &stubService{user: securityAdmin()}
	model := serviceModel(t, service)
	model.view = ViewResources

	draft := schema.ResourceDraft{
		Name:            "Sonar Lens",
		Type:            schema.ResourceEquipment,
		Category:        "Field Equipment",
		Location:        "Armory",
		Status:          schema.ResourceActive,
		AcquisitionDate: schema.NewTime(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	saved := saveResource(model.client, time.Second, "", draft)()
	if msg := saved.(resourceSavedMsg); msg.err != nil || !msg.created {
		t.Fatalf("save result = %+v", msg)
	}

	updated, cmd := model.Update(saved)
	result := updated.(Model)
	for _, msg := range collectMsgs(cmd) {
		next, _ := result.Update(msg)
		result = next.(Model)
	}

	var created *schema.Resource
	for index := range result.resources.all {
		if result.resources.all[index].Name == draft.Name {
			created = &result.resources.all[index]
			break
		}
	}
	if created == nil {
		t.Fatalf("re-fetched inventory missing the created record: %+v", result.resources.all)
	}
	if created.ID == "" {
		t.Error("created record has no service-assigned id")
	}
	if created.Type != draft.Type || created.Category != draft.Category ||
		created.Location != draft.Location || created.Status != draft.Status {
		t.Fatalf("created record %+v does not match draft %+v", created, draft)
	}
}

func TestAlertTransitionScenario(t *testing.T) {
	service := &stubService{
		user: securityAdmin(),
		alerts: []schema.SecurityAlert{
			{ID: "a-1", Title: "Perimeter breach", Severity: schema.SeverityCritical, Status: schema.AlertActive},
		},
	}
	model := serviceModel(t, service)
	model.view = ViewSecurity

	// Seed the feed with the initial fetch.
	sequence, _ := model.securityPoll.Begin()
	seeded, _ := model.Update(loadSecurity(model.client, time.Second, sequence)())
	model = seeded.(Model)

	transition := func(target schema.AlertStatus) {
		t.Helper()
		message := transitionAlert(model.client, time.Second, "a-1", target)()
		if err := message.(alertTransitionedMsg).err; err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
		updated, cmd := model.Update(message)
		model = updated.(Model)
		for _, msg := range collectMsgs(cmd) {
			next, _ := model.Update(msg)
			model = next.(Model)
		}
	}

	transition(schema.AlertInvestigating)
	if got := model.security.visible[0].Status; got != schema.AlertInvestigating {
		t.Fatalf("status after first transition = %s", got)
	}
	transition(schema.AlertResolved)
	if got := model.security.visible[0].Status; got != schema.AlertResolved {
		t.Fatalf("status after second transition = %s", got)
	}

	// The backend rejects reopening a resolved alert; the displayed
	// status must stay Resolved and the reason must surface.
	message := transitionAlert(model.client, time.Second, "a-1", schema.AlertInvestigating)()
	if err := message.(alertTransitionedMsg).err; err == nil {
		t.Fatal("backend accepted reopening a resolved alert")
	}
	updated, _ := model.Update(message)
	model = updated.(Model)

	if got := model.security.visible[0].Status; got != schema.AlertResolved {
		t.Fatalf("status after rejected transition = %s, want resolved", got)
	}
	if !strings.Contains(model.notice, "Invalid status transition") {
		t.Fatalf("rejection reason not surfaced, notice = %q", model.notice)
	}
}

func TestMutationResultKeepsCurrentView(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())
	model.view = ViewDashboard

	updated, _ := model.Update(resourceSavedMsg{created: true})
	if updated.(Model).view != ViewDashboard {
		t.Fatal("save result yanked the view back to the inventory")
	}

	updated, _ = model.Update(resourceDeletedMsg{id: "r-1"})
	if updated.(Model).view != ViewDashboard {
		t.Fatal("delete result yanked the view back to the inventory")
	}
}

func TestLogoutReturnsToLoginForm(t *testing.T) {
	model := authenticatedModel(t, securityAdmin())

	logoutKey := tea.KeyMsg{Type: tea.KeyCtrlX}
	updated, _ := model.Update(logoutKey)
	result := updated.(Model)

	if result.view != ViewLogin {
		t.Fatalf("view = %v after logout, want ViewLogin", result.view)
	}
	if result.store.Status() != session.Unauthenticated {
		t.Fatalf("store status = %v, want Unauthenticated", result.store.Status())
	}
}
