// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginModel is the credential entry form. It owns two text inputs
// and submits through the root model, which runs the login as a
// command and delivers the result back as a loginResultMsg.
type loginModel struct {
	theme Theme
	keys  KeyMap

	username textinput.Model
	password textinput.Model
	focused  int // 0 = username, 1 = password.

	// submitting is true while a login request is in flight. The form
	// ignores further submits until the result arrives.
	submitting bool

	// problem is the message shown under the form: a rejection from
	// the service, a transport failure, or a session-expired note.
	problem string

	// showDemoHint displays the seeded demo credentials under the
	// form. Configuration-controlled; meant for evaluation setups.
	showDemoHint bool
}

func newLoginModel(theme Theme, keys KeyMap, showDemoHint bool) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{
		theme:        theme,
		keys:         keys,
		username:     username,
		password:     password,
		showDemoHint: showDemoHint,
	}
}

// submitRequest carries the entered credentials up to the root model.
type submitRequest struct {
	username string
	password string
}

// handleKey processes a key press. The second return value is non-nil
// when the form wants a login attempt started.
func (login *loginModel) handleKey(message tea.KeyMsg) (tea.Cmd, *submitRequest) {
	if login.submitting {
		return nil, nil
	}

	switch {
	case key.Matches(message, login.keys.Submit):
		username := strings.TrimSpace(login.username.Value())
		password := login.password.Value()
		if username == "" || password == "" {
			login.problem = "Username and password are required"
			return nil, nil
		}
		login.submitting = true
		login.problem = ""
		return nil, &submitRequest{username: username, password: password}

	case key.Matches(message, login.keys.NextField), key.Matches(message, login.keys.PrevField):
		login.toggleFocus()
		return nil, nil
	}

	var cmd tea.Cmd
	if login.focused == 0 {
		login.username, cmd = login.username.Update(message)
	} else {
		login.password, cmd = login.password.Update(message)
	}
	return cmd, nil
}

func (login *loginModel) toggleFocus() {
	if login.focused == 0 {
		login.focused = 1
		login.username.Blur()
		login.password.Focus()
	} else {
		login.focused = 0
		login.password.Blur()
		login.username.Focus()
	}
}

// finish records the outcome of a login attempt. On rejection the
// password clears but the username stays, matching what an operator
// retyping a password expects.
func (login *loginModel) finish(problem string) {
	login.submitting = false
	login.problem = problem
	if problem != "" {
		login.password.SetValue("")
	}
}

// reset clears the form for a fresh session, keeping an explanatory
// note such as "Session expired".
func (login *loginModel) reset(note string) {
	login.submitting = false
	login.problem = note
	login.password.SetValue("")
	login.username.SetValue("")
	login.password.Blur()
	login.username.Focus()
	login.focused = 0
}

func (login *loginModel) view(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(login.theme.HeaderForeground).
		Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(login.theme.FaintText)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(login.theme.BorderColor).
		Padding(1, 3)

	lines := []string{
		titleStyle.Render("Sentinel Operations Console"),
		"",
		labelStyle.Render("Username"),
		login.username.View(),
		"",
		labelStyle.Render("Password"),
		login.password.View(),
		"",
	}

	switch {
	case login.submitting:
		lines = append(lines, labelStyle.Render("Signing in…"))
	case login.problem != "":
		problemStyle := lipgloss.NewStyle().Foreground(login.theme.ErrorText)
		lines = append(lines, problemStyle.Render(login.problem))
	default:
		lines = append(lines, labelStyle.Render("Enter to sign in, Tab to switch fields"))
	}

	if login.showDemoHint {
		hintStyle := lipgloss.NewStyle().Foreground(login.theme.HelpText)
		lines = append(lines,
			"",
			hintStyle.Render("Demo: bruce.wayne/batman123  lucius.fox/foxtech123"),
			hintStyle.Render("      alfred.pennyworth/alfred123"),
		)
	}

	form := boxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
