// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

// Field order in the resource form.
const (
	fieldName = iota
	fieldType
	fieldCategory
	fieldLocation
	fieldStatus
	fieldAssignedTo
	fieldDescription
	fieldAcquisitionDate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Type",
	"Category",
	"Location",
	"Status",
	"Assigned to",
	"Description",
	"Acquired (YYYY-MM-DD)",
}

// resourceForm is the create/edit modal for an inventory record. Type
// and status are selectors cycled with left/right; the remaining
// fields are free text. Submission validates the draft locally and
// keeps the form open with the problems listed when validation fails,
// so nothing reaches the service until the draft is complete.
type resourceForm struct {
	theme Theme
	keys  KeyMap

	// editingID is the record being edited, empty for a new record.
	editingID string

	inputs      [fieldCount]textinput.Model
	typeIndex   int
	statusIndex int
	focused     int

	// submitting is true while the save request is in flight.
	submitting bool

	// problem lists missing fields or the service's rejection.
	problem string
}

func newResourceForm(theme Theme, keys KeyMap, editingID string, draft schema.ResourceDraft) *resourceForm {
	form := &resourceForm{
		theme:     theme,
		keys:      keys,
		editingID: editingID,
	}
	for index := range form.inputs {
		input := textinput.New()
		input.CharLimit = 120
		form.inputs[index] = input
	}
	form.inputs[fieldName].SetValue(draft.Name)
	form.inputs[fieldCategory].SetValue(draft.Category)
	form.inputs[fieldLocation].SetValue(draft.Location)
	form.inputs[fieldAssignedTo].SetValue(draft.AssignedTo)
	form.inputs[fieldDescription].SetValue(draft.Description)
	if !draft.AcquisitionDate.IsZero() {
		form.inputs[fieldAcquisitionDate].SetValue(draft.AcquisitionDate.Format("2006-01-02"))
	}

	form.typeIndex = indexOf(schema.ResourceTypes, draft.Type)
	form.statusIndex = indexOf(schema.ResourceStatuses, draft.Status)
	form.inputs[fieldName].Focus()
	return form
}

// indexOf returns the position of value in options, or -1 when the
// value is unset or unknown (a fresh form with no selection yet).
func indexOf[T comparable](options []T, value T) int {
	for index, option := range options {
		if option == value {
			return index
		}
	}
	return -1
}

// formAction reports what the form wants the root model to do after a
// key press.
type formAction int

const (
	formContinue formAction = iota
	formCancel
	formSubmit
)

func (form *resourceForm) handleKey(message tea.KeyMsg) (formAction, tea.Cmd) {
	if form.submitting {
		return formContinue, nil
	}

	switch {
	case key.Matches(message, form.keys.Cancel):
		return formCancel, nil

	case key.Matches(message, form.keys.Submit):
		return formSubmit, nil

	case message.String() == "tab":
		form.moveFocus(1)
		return formContinue, nil

	case message.String() == "shift+tab":
		form.moveFocus(-1)
		return formContinue, nil
	}

	switch form.focused {
	case fieldType:
		form.typeIndex = form.cycleSelector(message, form.typeIndex, len(schema.ResourceTypes))
		return formContinue, nil
	case fieldStatus:
		form.statusIndex = form.cycleSelector(message, form.statusIndex, len(schema.ResourceStatuses))
		return formContinue, nil
	}

	var cmd tea.Cmd
	form.inputs[form.focused], cmd = form.inputs[form.focused].Update(message)
	return formContinue, cmd
}

func (form *resourceForm) cycleSelector(message tea.KeyMsg, current, count int) int {
	switch message.String() {
	case "left", "h":
		if current <= 0 {
			return count - 1
		}
		return current - 1
	case "right", "l", " ":
		return (current + 1) % count
	}
	return current
}

func (form *resourceForm) moveFocus(delta int) {
	form.inputs[form.focused].Blur()
	form.focused = (form.focused + delta + fieldCount) % fieldCount
	form.inputs[form.focused].Focus()
}

// draft assembles the current field values into a ResourceDraft.
func (form *resourceForm) draft() schema.ResourceDraft {
	draft := schema.ResourceDraft{
		Name:        strings.TrimSpace(form.inputs[fieldName].Value()),
		Category:    strings.TrimSpace(form.inputs[fieldCategory].Value()),
		Location:    strings.TrimSpace(form.inputs[fieldLocation].Value()),
		AssignedTo:  strings.TrimSpace(form.inputs[fieldAssignedTo].Value()),
		Description: strings.TrimSpace(form.inputs[fieldDescription].Value()),
	}
	if form.typeIndex >= 0 {
		draft.Type = schema.ResourceTypes[form.typeIndex]
	}
	if form.statusIndex >= 0 {
		draft.Status = schema.ResourceStatuses[form.statusIndex]
	}
	if raw := strings.TrimSpace(form.inputs[fieldAcquisitionDate].Value()); raw != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
			draft.AcquisitionDate = schema.NewTime(parsed)
		}
	}
	return draft
}

// validate checks the draft and records any problem on the form. It
// returns the draft and whether it is ready to send.
func (form *resourceForm) validate() (schema.ResourceDraft, bool) {
	draft := form.draft()
	if err := schema.ValidateDraft(draft); err != nil {
		form.problem = err.Error()
		return draft, false
	}
	if raw := strings.TrimSpace(form.inputs[fieldAcquisitionDate].Value()); raw != "" && draft.AcquisitionDate.IsZero() {
		form.problem = "Acquired date must be YYYY-MM-DD"
		return draft, false
	}
	form.problem = ""
	return draft, true
}

func (form *resourceForm) finish(problem string) {
	form.submitting = false
	form.problem = problem
}

func (form *resourceForm) view(width, height int) string {
	labelStyle := lipgloss.NewStyle().Foreground(form.theme.FaintText)
	focusedLabel := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground)
	titleStyle := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true)

	title := "New Resource"
	if form.editingID != "" {
		title = "Edit Resource"
	}

	lines := []string{titleStyle.Render(title), ""}
	for field := 0; field < fieldCount; field++ {
		label := fieldLabels[field]
		style := labelStyle
		if field == form.focused {
			style = focusedLabel
		}
		lines = append(lines, style.Render(label))
		lines = append(lines, form.fieldView(field))
	}

	lines = append(lines, "")
	switch {
	case form.submitting:
		lines = append(lines, labelStyle.Render("Saving…"))
	case form.problem != "":
		problemStyle := lipgloss.NewStyle().Foreground(form.theme.ErrorText)
		lines = append(lines, problemStyle.Render(form.problem))
	default:
		lines = append(lines, labelStyle.Render("Enter to save, Esc to cancel"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(form.theme.BorderColor).
		Padding(1, 2)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(strings.Join(lines, "\n")))
}

func (form *resourceForm) fieldView(field int) string {
	switch field {
	case fieldType:
		return form.selectorView(typeLabels(), form.typeIndex, field == form.focused)
	case fieldStatus:
		return form.selectorView(statusLabels(), form.statusIndex, field == form.focused)
	default:
		return form.inputs[field].View()
	}
}

func (form *resourceForm) selectorView(labels []string, selected int, focused bool) string {
	normal := lipgloss.NewStyle().Foreground(form.theme.FaintText)
	active := lipgloss.NewStyle().Foreground(form.theme.NormalText).Bold(true)
	if focused {
		active = active.Underline(true)
	}

	parts := make([]string, len(labels))
	for index, label := range labels {
		if index == selected {
			parts[index] = active.Render("[" + label + "]")
		} else {
			parts[index] = normal.Render(" " + label + " ")
		}
	}
	if selected < 0 {
		hint := normal.Render("(none)")
		return hint + " " + strings.Join(parts, " ")
	}
	return strings.Join(parts, " ")
}

func typeLabels() []string {
	labels := make([]string, len(schema.ResourceTypes))
	for index, resourceType := range schema.ResourceTypes {
		labels[index] = resourceType.Label()
	}
	return labels
}

func statusLabels() []string {
	labels := make([]string, len(schema.ResourceStatuses))
	for index, status := range schema.ResourceStatuses {
		labels[index] = status.Label()
	}
	return labels
}
