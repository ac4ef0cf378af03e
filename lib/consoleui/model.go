// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentinel-ops/sentinel/lib/access"
	"github.com/sentinel-ops/sentinel/lib/api"
	"github.com/sentinel-ops/sentinel/lib/clock"
	"github.com/sentinel-ops/sentinel/lib/poll"
	"github.com/sentinel-ops/sentinel/lib/schema"
	"github.com/sentinel-ops/sentinel/lib/session"
)

// View identifies which screen is active.
type View int

const (
	// ViewLogin is the credential entry form.
	ViewLogin View = iota
	// ViewDashboard is the aggregated overview.
	ViewDashboard
	// ViewResources is the inventory table.
	ViewResources
	// ViewSecurity is the alert and access log feeds.
	ViewSecurity
)

// Config carries the dependencies for the console model.
type Config struct {
	Client *api.Client
	Store  *session.Store

	// Clock paces the background refresh. Defaults to the real clock.
	Clock clock.Clock

	// Logger for lifecycle events. Route it through a LogHandler to
	// surface warnings in the status bar.
	Logger *slog.Logger

	// RefreshInterval is the cadence of background refresh for the
	// dashboard and security views.
	RefreshInterval time.Duration

	// RequestTimeout bounds each API request issued by a command.
	RequestTimeout time.Duration

	// ShowDemoHint displays the seeded demo credentials on the login
	// form.
	ShowDemoHint bool
}

// Model is the top-level bubbletea model for the console.
type Model struct {
	client *api.Client
	store  *session.Store
	clk    clock.Clock
	logger *slog.Logger
	theme  Theme
	keys   KeyMap

	requestTimeout time.Duration

	width  int
	height int
	ready  bool

	view View
	user schema.User

	login     loginModel
	dashboard dashboardModel
	resources resourcesModel
	security  securityModel

	// One scheduler per data view. All three poll on a timer while
	// their view is active; schedulers also provide single-flight and
	// stale suppression for manual and post-mutation refreshes.
	dashboardPoll *poll.Scheduler
	resourcesPoll *poll.Scheduler
	securityPoll  *poll.Scheduler

	// Status bar notice. The generation guards the fade timer: a new
	// notice invalidates the fade scheduled for the old one.
	notice           string
	noticeLevel      slog.Level
	noticeGeneration int
}

// NewModel creates the console model. If the session store already
// holds a restored session, the console opens on the dashboard;
// otherwise it opens on the login form.
func NewModel(config Config) Model {
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	refreshInterval := config.RefreshInterval
	if refreshInterval <= 0 {
		refreshInterval = 20 * time.Second
	}
	requestTimeout := config.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	model := Model{
		client:         config.Client,
		store:          config.Store,
		clk:            clk,
		logger:         logger,
		theme:          DefaultTheme,
		keys:           DefaultKeyMap,
		requestTimeout: requestTimeout,
		view:           ViewLogin,
		login:          newLoginModel(DefaultTheme, DefaultKeyMap, config.ShowDemoHint),
		dashboard:      newDashboardModel(DefaultTheme),
		resources:      newResourcesModel(DefaultTheme, DefaultKeyMap, false),
		security:       newSecurityModel(DefaultTheme, DefaultKeyMap, true),
		dashboardPoll:  poll.NewScheduler(clk, refreshInterval),
		resourcesPoll:  poll.NewScheduler(clk, refreshInterval),
		securityPoll:   poll.NewScheduler(clk, refreshInterval),
	}

	if config.Store != nil && config.Store.Status() == session.Authenticated {
		model.enterSession(config.Store.User())
	}
	return model
}

// enterSession rebuilds the data views for the authenticated operator
// and lands on the dashboard. The capability decisions made here are
// structural: a view built without a capability has no code path that
// renders the gated controls.
func (model *Model) enterSession(user schema.User) {
	model.user = user
	model.resources = newResourcesModel(model.theme, model.keys, access.CanMutateInventory(user))
	model.security = newSecurityModel(model.theme, model.keys, !access.CanViewSecurityData(user))
	model.dashboard = newDashboardModel(model.theme)
	model.view = ViewDashboard
}

// leaveSession returns to the login form with an explanatory note.
func (model *Model) leaveSession(note string) {
	model.user = schema.User{}
	model.view = ViewLogin
	model.login.reset(note)
	// Stale phases mean in-flight responses and pending ticks from
	// the old session are dropped on arrival.
	model.dashboardPoll.ResetPhase()
	model.resourcesPoll.ResetPhase()
	model.securityPoll.ResetPhase()
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if model.view == ViewDashboard {
		return model.activateView(ViewDashboard)
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case tea.KeyMsg:
		return model.handleKey(message)

	case loginResultMsg:
		return model.handleLoginResult(message)

	case dashboardLoadedMsg:
		model.dashboardPoll.Finish(message.sequence)
		if message.err != nil {
			return model.handleLoadError(message.err, ViewDashboard)
		}
		if model.dashboardPoll.Apply(message.sequence) {
			model.dashboard.setSummary(message.summary)
		}

	case resourcesLoadedMsg:
		model.resourcesPoll.Finish(message.sequence)
		if message.err != nil {
			return model.handleLoadError(message.err, ViewResources)
		}
		if model.resourcesPoll.Apply(message.sequence) {
			model.resources.setResources(message.resources)
		}

	case securityLoadedMsg:
		model.securityPoll.Finish(message.sequence)
		if message.err != nil {
			return model.handleLoadError(message.err, ViewSecurity)
		}
		if model.securityPoll.Apply(message.sequence) {
			model.security.setData(message.alerts, message.logs)
		}

	case resourceSavedMsg:
		return model.handleResourceSaved(message)

	case resourceDeletedMsg:
		return model.handleResourceDeleted(message)

	case alertTransitionedMsg:
		return model.handleAlertTransitioned(message)

	case refreshTickMsg:
		return model.handleRefreshTick(message)

	case logRecordMsg:
		model.notice = message.Summary
		model.noticeLevel = message.Level
		model.noticeGeneration++
		generation := model.noticeGeneration
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{generation: generation}
		})

	case logRecordFadeMsg:
		if message.generation == model.noticeGeneration {
			model.notice = ""
		}
	}

	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.view == ViewLogin {
		if message.String() == "ctrl+c" {
			return model, tea.Quit
		}
		cmd, submit := model.login.handleKey(message)
		if submit != nil {
			return model, loginCommand(model.store, model.requestTimeout, submit.username, submit.password)
		}
		return model, cmd
	}

	// While a text input or confirmation owns the keyboard, global
	// bindings are suspended so typed characters reach the input.
	captured := (model.view == ViewResources && model.resources.mode != resourceListing) ||
		(model.view == ViewSecurity && model.security.filtering)
	if !captured {
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.Logout):
			model.store.Logout()
			model.leaveSession("")
			return model, textinput.Blink

		case key.Matches(message, model.keys.ViewDashboard):
			return model, model.activateView(ViewDashboard)

		case key.Matches(message, model.keys.ViewResources):
			return model, model.activateView(ViewResources)

		case key.Matches(message, model.keys.ViewSecurity):
			return model, model.activateView(ViewSecurity)

		case key.Matches(message, model.keys.Refresh):
			return model, model.refreshActiveView()
		}
	}

	switch model.view {
	case ViewResources:
		intent, cmd := model.resources.handleKey(message, model.bodyHeight())
		switch intent {
		case resourceIntentSave:
			form := model.resources.form
			draft, _ := form.validate()
			return model, saveResource(model.client, model.requestTimeout, form.editingID, draft)
		case resourceIntentDelete:
			if record := model.resources.deleting; record != nil {
				return model, deleteResource(model.client, model.requestTimeout, record.ID)
			}
		}
		return model, cmd

	case ViewSecurity:
		request, cmd := model.security.handleKey(message, model.bodyHeight())
		if request != nil {
			return model, transitionAlert(model.client, model.requestTimeout, request.alertID, request.target)
		}
		return model, cmd
	}
	return model, nil
}

// activateView switches to a view and starts its refresh cycle. The
// phase reset invalidates whatever the previous view left in flight.
func (model *Model) activateView(view View) tea.Cmd {
	model.view = view
	switch view {
	case ViewDashboard:
		model.dashboardPoll.ResetPhase()
		return tea.Batch(
			model.beginRefresh(ViewDashboard),
			model.scheduleTick(ViewDashboard),
		)
	case ViewResources:
		model.resourcesPoll.ResetPhase()
		return tea.Batch(
			model.beginRefresh(ViewResources),
			model.scheduleTick(ViewResources),
		)
	case ViewSecurity:
		if model.security.restricted {
			return nil
		}
		model.securityPoll.ResetPhase()
		return tea.Batch(
			model.beginRefresh(ViewSecurity),
			model.scheduleTick(ViewSecurity),
		)
	}
	return nil
}

// refreshActiveView is the manual refresh path. Resetting the phase
// first means a concurrent timer-driven refresh cannot land on top of
// the one the operator just asked for.
func (model *Model) refreshActiveView() tea.Cmd {
	return model.activateView(model.view)
}

// beginRefresh claims the single-flight slot for a view and returns
// the load command, or nil when a refresh is already running.
func (model *Model) beginRefresh(view View) tea.Cmd {
	scheduler := model.schedulerFor(view)
	if scheduler == nil {
		return nil
	}
	sequence, ok := scheduler.Begin()
	if !ok {
		return nil
	}
	switch view {
	case ViewDashboard:
		return loadDashboard(model.client, model.requestTimeout, sequence)
	case ViewResources:
		return loadResources(model.client, model.requestTimeout, sequence)
	case ViewSecurity:
		return loadSecurity(model.client, model.requestTimeout, sequence)
	}
	return nil
}

func (model *Model) scheduleTick(view View) tea.Cmd {
	scheduler := model.schedulerFor(view)
	if scheduler == nil {
		return nil
	}
	return waitForTick(scheduler.Wait(), view, scheduler.Phase())
}

func (model *Model) schedulerFor(view View) *poll.Scheduler {
	switch view {
	case ViewDashboard:
		return model.dashboardPoll
	case ViewResources:
		return model.resourcesPoll
	case ViewSecurity:
		return model.securityPoll
	}
	return nil
}

func (model Model) handleRefreshTick(message refreshTickMsg) (tea.Model, tea.Cmd) {
	scheduler := model.schedulerFor(message.view)
	if scheduler == nil || !scheduler.ValidTick(message.phase) {
		// The phase moved (manual refresh, view switch, or logout)
		// after this tick was scheduled. The new phase owns the tick
		// chain now.
		return model, nil
	}
	if message.view != model.view {
		return model, nil
	}
	return model, tea.Batch(
		model.beginRefresh(message.view),
		model.scheduleTick(message.view),
	)
}

func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.login.finish(api.Reason(message.err))
		return model, nil
	}
	model.enterSession(message.user)
	return model, model.activateView(ViewDashboard)
}

// handleLoadError routes a refresh failure: credential rejections
// tear down the session, everything else becomes a status bar notice
// and, when the view has no data yet, an inline problem.
func (model Model) handleLoadError(err error, view View) (tea.Model, tea.Cmd) {
	if handled, cmd := model.handleUnauthorized(err); handled {
		return model, cmd
	}
	reason := api.Reason(err)
	switch view {
	case ViewDashboard:
		model.dashboard.setProblem(reason)
	case ViewResources:
		model.resources.setProblem(reason)
	case ViewSecurity:
		model.security.setProblem(reason)
	}
	return model.showNotice(reason, slog.LevelWarn)
}

// handleUnauthorized checks for a 401 and, on the first one for this
// credential, tears the session down and returns to the login form.
func (model *Model) handleUnauthorized(err error) (bool, tea.Cmd) {
	if !api.IsUnauthorized(err) {
		return false, nil
	}
	if model.store.HandleUnauthorized() {
		model.leaveSession("Session expired — please sign in again")
		return true, textinput.Blink
	}
	// Another in-flight request already tore the session down.
	return true, nil
}

func (model Model) handleResourceSaved(message resourceSavedMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if handled, cmd := model.handleUnauthorized(message.err); handled {
			return model, cmd
		}
		model.resources.saveFinished(api.Reason(message.err))
		return model, nil
	}
	model.resources.saveFinished("")
	notice := "Resource updated"
	if message.created {
		notice = "Resource created"
	}
	// Refresh only when the operator is still looking at the
	// inventory; switching away mid-request must stick.
	updated, fadeCmd := model.showNotice(notice, slog.LevelInfo)
	if updated.view == ViewResources {
		refreshCmd := updated.activateView(ViewResources)
		return updated, tea.Batch(fadeCmd, refreshCmd)
	}
	return updated, fadeCmd
}

func (model Model) handleResourceDeleted(message resourceDeletedMsg) (tea.Model, tea.Cmd) {
	model.resources.deleteFinished()
	if message.err != nil {
		if handled, cmd := model.handleUnauthorized(message.err); handled {
			return model, cmd
		}
		return model.showNotice(api.Reason(message.err), slog.LevelWarn)
	}
	updated, fadeCmd := model.showNotice("Resource deleted", slog.LevelInfo)
	if updated.view == ViewResources {
		refreshCmd := updated.activateView(ViewResources)
		return updated, tea.Batch(fadeCmd, refreshCmd)
	}
	return updated, fadeCmd
}

func (model Model) handleAlertTransitioned(message alertTransitionedMsg) (tea.Model, tea.Cmd) {
	model.security.transitionFinished(message.alertID)
	if message.err != nil {
		if handled, cmd := model.handleUnauthorized(message.err); handled {
			return model, cmd
		}
		return model.showNotice(api.Reason(message.err), slog.LevelWarn)
	}
	// Re-fetch immediately so the feed reflects the transition and
	// any service-side effects (a resolved alert gains resolved_at,
	// the dashboard's active count changes on its next refresh).
	updated, fadeCmd := model.showNotice("Alert "+message.target.Label(), slog.LevelInfo)
	if updated.view == ViewSecurity {
		refreshCmd := updated.activateView(ViewSecurity)
		return updated, tea.Batch(fadeCmd, refreshCmd)
	}
	return updated, fadeCmd
}

// showNotice puts a message in the status bar and schedules its fade.
func (model Model) showNotice(notice string, level slog.Level) (Model, tea.Cmd) {
	model.notice = notice
	model.noticeLevel = level
	model.noticeGeneration++
	generation := model.noticeGeneration
	return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return logRecordFadeMsg{generation: generation}
	})
}

func (model Model) bodyHeight() int {
	height := model.height - 3 // header, divider, status bar
	if height < 1 {
		return 1
	}
	return height
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}
	if model.view == ViewLogin {
		return model.login.view(model.width, model.height)
	}

	body := ""
	switch model.view {
	case ViewDashboard:
		body = model.dashboard.view(model.width, model.bodyHeight())
	case ViewResources:
		body = model.resources.view(model.width, model.bodyHeight())
	case ViewSecurity:
		body = model.security.view(model.width, model.bodyHeight())
	}

	sections := []string{
		model.headerView(),
		body,
		model.statusBarView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (model Model) headerView() string {
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	activeTab := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Underline(true)
	inactiveTab := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	tab := func(label string, view View) string {
		if model.view == view {
			return activeTab.Render(label)
		}
		return inactiveTab.Render(label)
	}

	left := titleStyle.Render("SENTINEL") + "  " +
		tab("1 Dashboard", ViewDashboard) + "  " +
		tab("2 Inventory", ViewResources) + "  " +
		tab("3 Security", ViewSecurity)

	right := faint.Render(model.user.FullName + " · " + model.user.Role.Label())
	if model.dashboard.loaded {
		level := model.dashboard.summary.Stats.SecurityLevel
		badge := lipgloss.NewStyle().
			Foreground(model.theme.LevelColor(level)).
			Bold(true).
			Render(" [" + level.Label() + "]")
		right += badge
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	header := left + strings.Repeat(" ", gap) + right
	divider := lipgloss.NewStyle().Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", max(model.width, 1)))
	return header + "\n" + divider
}

func (model Model) statusBarView() string {
	if model.notice != "" {
		color := model.theme.FaintText
		switch {
		case model.noticeLevel >= slog.LevelError:
			color = model.theme.ErrorText
		case model.noticeLevel >= slog.LevelWarn:
			color = model.theme.SeverityMedium
		}
		return lipgloss.NewStyle().Foreground(color).Render(model.notice)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(model.helpLine())
}

// helpLine lists the bindings live in the current view and mode.
// Gated bindings appear only when the operator holds the capability.
func (model Model) helpLine() string {
	switch model.view {
	case ViewResources:
		parts := []string{"j/k move", "/ filter", "s status", "t type", "r refresh"}
		if model.resources.canMutate {
			parts = append(parts, "n new", "e edit", "d delete")
		}
		parts = append(parts, "C-x logout", "q quit")
		return strings.Join(parts, " · ")
	case ViewSecurity:
		if model.security.restricted {
			return "1 dashboard · 2 inventory · C-x logout · q quit"
		}
		return "j/k move · Tab feeds · / filter · s status · v severity · i investigate · o resolve · r refresh · C-x logout · q quit"
	default:
		return "1 dashboard · 2 inventory · 3 security · r refresh · C-x logout · q quit"
	}
}
