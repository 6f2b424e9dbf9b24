package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of text inputs with one focused field. Forms are
// long-lived; opening or leaving their view resets them so stale input and
// errors never survive a visit.
type form struct {
	title  string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newLoginForm() *form {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return &form{title: "Log in", inputs: []textinput.Model{username, password}}
}

func newRegisterForm() *form {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword

	return &form{title: "Register", inputs: []textinput.Model{username, email, password, confirm}}
}

// next moves focus to the following field, wrapping around.
func (f *form) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update routes a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values returns the trimmed field values in declaration order.
func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, input := range f.inputs {
		out[i] = strings.TrimSpace(input.Value())
	}
	return out
}

// reset clears every field and any inline error, refocusing the first field.
func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
	f.errMsg = ""
}

// setError places an inline error under the form; cleared on the next submit.
func (f *form) setError(msg string) {
	f.errMsg = msg
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(f.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}
