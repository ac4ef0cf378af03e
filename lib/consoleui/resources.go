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

// resourceMode says what the inventory view is doing with input.
type resourceMode int

const (
	// resourceListing means navigation keys move the list cursor.
	resourceListing resourceMode = iota
	// resourceFiltering means keystrokes go to the filter input.
	resourceFiltering
	// resourceEditing means the create/edit form is open.
	resourceEditing
	// resourceConfirmingDelete means the y/N delete prompt is open.
	resourceConfirmingDelete
)

// resourcesModel is the inventory view: a filterable table of records
// with create, edit, and delete available to operators who clear the
// mutation threshold.
type resourcesModel struct {
	theme Theme
	keys  KeyMap

	// canMutate gates the create/edit/delete bindings. When false the
	// bindings are dead and the help line omits them.
	canMutate bool

	// all is the unfiltered list from the last refresh; visible is
	// the filtered projection the cursor moves through.
	all     []schema.Resource
	visible []schema.Resource
	loaded  bool

	filter      ResourceFilter
	filterInput textinput.Model

	mode         resourceMode
	cursor       int
	scrollOffset int

	form     *resourceForm
	deleting *schema.Resource

	loadProblem string
}

func newResourcesModel(theme Theme, keys KeyMap, canMutate bool) resourcesModel {
	filterInput := textinput.New()
	filterInput.Placeholder = "filter"
	filterInput.CharLimit = 80
	filterInput.Prompt = "/"

	return resourcesModel{
		theme:       theme,
		keys:        keys,
		canMutate:   canMutate,
		filterInput: filterInput,
	}
}

// setResources replaces the data from a refresh. The cursor stays on
// the same record when it survives the refresh and the filter.
func (resources *resourcesModel) setResources(records []schema.Resource) {
	var selectedID string
	if resources.cursor < len(resources.visible) {
		selectedID = resources.visible[resources.cursor].ID
	}

	resources.all = records
	resources.loaded = true
	resources.loadProblem = ""
	resources.applyFilter()

	if selectedID != "" {
		for index, record := range resources.visible {
			if record.ID == selectedID {
				resources.cursor = index
				return
			}
		}
	}
	resources.clampCursor()
}

func (resources *resourcesModel) setProblem(problem string) {
	if !resources.loaded {
		resources.loadProblem = problem
	}
}

func (resources *resourcesModel) applyFilter() {
	resources.filter.Query = resources.filterInput.Value()
	resources.visible = resources.filter.Apply(resources.all)
	resources.clampCursor()
}

func (resources *resourcesModel) clampCursor() {
	if resources.cursor >= len(resources.visible) {
		resources.cursor = len(resources.visible) - 1
	}
	if resources.cursor < 0 {
		resources.cursor = 0
	}
}

func (resources *resourcesModel) selected() *schema.Resource {
	if resources.cursor < len(resources.visible) {
		record := resources.visible[resources.cursor]
		return &record
	}
	return nil
}

// resourceIntent reports what the view wants the root model to do.
type resourceIntent int

const (
	resourceIntentNone resourceIntent = iota
	// resourceIntentSave asks for a create or update request.
	resourceIntentSave
	// resourceIntentDelete asks for a delete request.
	resourceIntentDelete
)

// handleKey processes a key press and returns any follow-up intent
// for the root model to execute.
func (resources *resourcesModel) handleKey(message tea.KeyMsg, pageSize int) (resourceIntent, tea.Cmd) {
	switch resources.mode {
	case resourceFiltering:
		return resources.handleFilterKey(message)
	case resourceEditing:
		return resources.handleFormKey(message)
	case resourceConfirmingDelete:
		return resources.handleConfirmKey(message)
	}

	switch {
	case key.Matches(message, resources.keys.Up):
		resources.moveCursor(-1, pageSize)
	case key.Matches(message, resources.keys.Down):
		resources.moveCursor(1, pageSize)
	case key.Matches(message, resources.keys.PageUp):
		resources.moveCursor(-pageSize, pageSize)
	case key.Matches(message, resources.keys.PageDown):
		resources.moveCursor(pageSize, pageSize)
	case key.Matches(message, resources.keys.Home):
		resources.cursor = 0
		resources.scrollOffset = 0
	case key.Matches(message, resources.keys.End):
		resources.cursor = len(resources.visible) - 1
		resources.clampCursor()
		resources.ensureVisible(pageSize)

	case key.Matches(message, resources.keys.FilterActivate):
		resources.mode = resourceFiltering
		resources.filterInput.Focus()

	case key.Matches(message, resources.keys.FilterClear):
		resources.filterInput.SetValue("")
		resources.filter = ResourceFilter{}
		resources.applyFilter()

	case key.Matches(message, resources.keys.CycleStatus):
		resources.filter.CycleStatus()
		resources.applyFilter()

	case key.Matches(message, resources.keys.CycleType):
		resources.filter.CycleType()
		resources.applyFilter()

	case resources.canMutate && key.Matches(message, resources.keys.NewRecord):
		resources.form = newResourceForm(resources.theme, resources.keys, "", schema.ResourceDraft{})
		resources.mode = resourceEditing

	case resources.canMutate && key.Matches(message, resources.keys.EditRecord):
		if record := resources.selected(); record != nil {
			resources.form = newResourceForm(resources.theme, resources.keys, record.ID, schema.DraftFromResource(*record))
			resources.mode = resourceEditing
		}

	case resources.canMutate && key.Matches(message, resources.keys.DeleteRecord):
		if record := resources.selected(); record != nil {
			resources.deleting = record
			resources.mode = resourceConfirmingDelete
		}
	}
	return resourceIntentNone, nil
}

func (resources *resourcesModel) handleFilterKey(message tea.KeyMsg) (resourceIntent, tea.Cmd) {
	switch {
	case key.Matches(message, resources.keys.Cancel):
		resources.filterInput.SetValue("")
		resources.filterInput.Blur()
		resources.mode = resourceListing
		resources.applyFilter()
		return resourceIntentNone, nil
	case key.Matches(message, resources.keys.Submit):
		resources.filterInput.Blur()
		resources.mode = resourceListing
		return resourceIntentNone, nil
	}

	var cmd tea.Cmd
	resources.filterInput, cmd = resources.filterInput.Update(message)
	resources.applyFilter()
	return resourceIntentNone, cmd
}

func (resources *resourcesModel) handleFormKey(message tea.KeyMsg) (resourceIntent, tea.Cmd) {
	action, cmd := resources.form.handleKey(message)
	switch action {
	case formCancel:
		resources.form = nil
		resources.mode = resourceListing
		return resourceIntentNone, nil
	case formSubmit:
		if _, ok := resources.form.validate(); ok {
			resources.form.submitting = true
			return resourceIntentSave, nil
		}
		// Validation failed: the form stays open with the problems
		// listed and nothing is sent.
		return resourceIntentNone, nil
	}
	return resourceIntentNone, cmd
}

func (resources *resourcesModel) handleConfirmKey(message tea.KeyMsg) (resourceIntent, tea.Cmd) {
	switch message.String() {
	case "y", "Y":
		resources.mode = resourceListing
		return resourceIntentDelete, nil
	default:
		// Anything but an explicit yes declines.
		resources.deleting = nil
		resources.mode = resourceListing
		return resourceIntentNone, nil
	}
}

func (resources *resourcesModel) moveCursor(delta, pageSize int) {
	resources.cursor += delta
	resources.clampCursor()
	resources.ensureVisible(pageSize)
}

func (resources *resourcesModel) ensureVisible(pageSize int) {
	if pageSize <= 0 {
		return
	}
	if resources.cursor < resources.scrollOffset {
		resources.scrollOffset = resources.cursor
	}
	if resources.cursor >= resources.scrollOffset+pageSize {
		resources.scrollOffset = resources.cursor - pageSize + 1
	}
}

// saveFinished records the outcome of a create/update request.
func (resources *resourcesModel) saveFinished(problem string) {
	if resources.form == nil {
		return
	}
	if problem != "" {
		resources.form.finish(problem)
		return
	}
	resources.form = nil
	resources.mode = resourceListing
}

// deleteFinished records the outcome of a delete request.
func (resources *resourcesModel) deleteFinished() {
	resources.deleting = nil
}

func (resources *resourcesModel) view(width, height int) string {
	if resources.mode == resourceEditing && resources.form != nil {
		return resources.form.view(width, height)
	}

	faint := lipgloss.NewStyle().Foreground(resources.theme.FaintText)
	if !resources.loaded {
		if resources.loadProblem != "" {
			return lipgloss.NewStyle().Foreground(resources.theme.ErrorText).
				Render("Inventory unavailable: " + resources.loadProblem)
		}
		return faint.Render("Loading inventory…")
	}

	var lines []string
	lines = append(lines, resources.filterLine(width))

	if resources.mode == resourceConfirmingDelete && resources.deleting != nil {
		prompt := lipgloss.NewStyle().Foreground(resources.theme.ErrorText).Bold(true)
		lines = append(lines, prompt.Render(
			fmt.Sprintf("Delete %q? This cannot be undone. [y/N]", resources.deleting.Name)))
	}

	if len(resources.visible) == 0 {
		if resources.filter.Active() {
			lines = append(lines, faint.Render("No records match the filter"))
		} else {
			lines = append(lines, faint.Render("No inventory records"))
		}
		return strings.Join(lines, "\n")
	}

	pageSize := height - len(lines) - 1
	if pageSize < 1 {
		pageSize = 1
	}
	end := resources.scrollOffset + pageSize
	if end > len(resources.visible) {
		end = len(resources.visible)
	}

	for index := resources.scrollOffset; index < end; index++ {
		lines = append(lines, resources.rowView(resources.visible[index], index == resources.cursor, width))
	}
	lines = append(lines, faint.Render(
		fmt.Sprintf("%d/%d records", len(resources.visible), len(resources.all))))
	return strings.Join(lines, "\n")
}

func (resources *resourcesModel) filterLine(width int) string {
	faint := lipgloss.NewStyle().Foreground(resources.theme.FaintText)

	var parts []string
	if resources.mode == resourceFiltering {
		parts = append(parts, resources.filterInput.View())
	} else if query := resources.filterInput.Value(); query != "" {
		parts = append(parts, "/"+query)
	}
	if resources.filter.Status != "" {
		parts = append(parts, "status:"+string(resources.filter.Status))
	}
	if resources.filter.Type != "" {
		parts = append(parts, "type:"+string(resources.filter.Type))
	}
	if len(parts) == 0 {
		return faint.Render("Inventory")
	}
	return faint.Render("Inventory  " + strings.Join(parts, "  "))
}

func (resources *resourcesModel) rowView(record schema.Resource, selected bool, width int) string {
	statusStyle := lipgloss.NewStyle().Foreground(resources.theme.ResourceStatusColor(record.Status))
	status := statusStyle.Render(fmt.Sprintf("%-11s", record.Status.Label()))

	assignee := record.AssignedTo
	if assignee == "" {
		assignee = "—"
	}
	line := fmt.Sprintf(" %-15s %s %-24s %-20s %s",
		record.Type.Label(), status, truncatePlain(record.Name, 24),
		truncatePlain(record.Location, 20), assignee)
	line = ansi.Truncate(line, width, "…")

	if selected {
		return lipgloss.NewStyle().
			Background(resources.theme.SelectedBackground).
			Foreground(resources.theme.SelectedForeground).
			Render(line)
	}
	return line
}

// truncatePlain shortens an unstyled string to at most width cells.
func truncatePlain(value string, width int) string {
	return ansi.Truncate(value, width, "…")
}
