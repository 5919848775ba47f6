package main

import (
	"context"
	"errors"
	"strings"

	"turn2law_web/models"
	"turn2law_web/services/i18n"
	"turn2law_web/services/waitlist"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// submitResultMsg carries the outcome of Form.Submit back to the event loop
type submitResultMsg struct {
	err error
}

// model is the terminal waitlist form. Field state lives in the shared
// waitlist.Form; the model only mirrors it for display.
type model struct {
	ctx  context.Context
	form *waitlist.Form
	lang string

	inputs  map[string]textinput.Model
	roleIdx int // index into models.RoleOptions, -1 when nothing is picked
	focus   int // index into models.WaitlistFields
	spinner spinner.Model

	errors     waitlist.FieldErrors
	failure    string
	submitting bool
	submitted  bool
}

func newModel(ctx context.Context, form *waitlist.Form, lang string) model {
	m := model{
		ctx:     ctx,
		form:    form,
		lang:    lang,
		inputs:  make(map[string]textinput.Model),
		roleIdx: -1,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		errors:  waitlist.FieldErrors{},
	}

	for _, field := range models.WaitlistFields {
		if field == models.FieldRole {
			continue
		}
		ti := textinput.New()
		ti.Placeholder = m.t("waitlist." + field + "_placeholder")
		ti.Width = 60
		ti.CharLimit = 500
		m.inputs[field] = ti
	}
	m.setFocus(0)
	return m
}

func (m model) t(key string) string {
	return i18n.Translate(m.lang, key)
}

func (m model) focusedField() string {
	return models.WaitlistFields[m.focus]
}

func (m *model) setFocus(i int) {
	n := len(models.WaitlistFields)
	m.focus = (i%n + n) % n
	for field, ti := range m.inputs {
		if field == m.focusedField() {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[field] = ti
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.finishSubmit(msg.err), nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.submitted {
			return m.updateSubmitted(msg)
		}

		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			return m.submit()
		}

		if m.focusedField() == models.FieldRole {
			switch msg.String() {
			case "left", "h":
				if m.roleIdx < 0 {
					m.pickRole(len(models.RoleOptions) - 1)
				} else {
					m.pickRole(m.roleIdx - 1)
				}
			case "right", "l", " ":
				m.pickRole(m.roleIdx + 1)
			}
			return m, nil
		}
	}

	return m.updateInput(msg)
}

func (m model) updateSubmitted(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.form.Reset()
		m.submitted = false
		m.roleIdx = -1
		m.errors = waitlist.FieldErrors{}
		m.failure = ""
		for field, ti := range m.inputs {
			ti.Reset()
			m.inputs[field] = ti
		}
		m.setFocus(0)
		return m, textinput.Blink
	}
	return m, nil
}

// updateInput forwards msg to the focused text input and pushes the new
// value into the form for live validation
func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	field := m.focusedField()
	ti, ok := m.inputs[field]
	if !ok {
		return m, nil
	}

	before := ti.Value()
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[field] = ti

	if ti.Value() != before {
		m.setField(field, ti.Value())
	}
	return m, cmd
}

func (m *model) setField(field, value string) {
	messages, err := m.form.Set(field, strings.TrimSpace(value))
	if err != nil {
		return
	}
	if len(messages) == 0 {
		delete(m.errors, field)
	} else {
		m.errors[field] = messages
	}
}

func (m *model) pickRole(i int) {
	n := len(models.RoleOptions)
	m.roleIdx = (i%n + n) % n
	m.setField(models.FieldRole, models.RoleOptions[m.roleIdx].Value)
}

// submit starts one submission. Enter while one is outstanding does nothing.
func (m model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.failure = ""
	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

func (m model) submitCmd() tea.Cmd {
	ctx, form := m.ctx, m.form
	return func() tea.Msg {
		return submitResultMsg{err: form.Submit(ctx)}
	}
}

func (m model) finishSubmit(err error) model {
	if errors.Is(err, waitlist.ErrSubmissionInFlight) {
		return m
	}
	m.submitting = false

	snap := m.form.Snapshot()
	m.submitted = snap.State == waitlist.StateSubmitted
	m.errors = snap.Errors
	if m.errors == nil {
		m.errors = waitlist.FieldErrors{}
	}
	m.failure = ""
	if msg := snap.FailureMessage(); msg != "" {
		m.failure = m.t(msg)
	}
	return m
}

// View implements tea.Model.
func (m model) View() string {
	if m.submitted {
		content := styles.Success.Render(m.t("waitlist.success.title")) + "\n\n"
		content += styles.Subtitle.Render(m.t("waitlist.success.body")) + "\n\n"
		content += styles.Help.Render("n: " + m.t("waitlist.reset") + "  q: quit")
		return styles.Box.Render(content)
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(m.t("waitlist.title")+" "+m.t("waitlist.title_highlight")) + "\n")
	b.WriteString(styles.Subtitle.Render(m.t("waitlist.subtitle")) + "\n\n")

	for i, field := range models.WaitlistFields {
		label := styles.Label
		if i == m.focus {
			label = styles.Focused
		}
		b.WriteString(label.Render(m.fieldLabel(field)) + "\n")

		if field == models.FieldRole {
			b.WriteString("  " + m.roleView() + "\n")
		} else {
			b.WriteString(m.inputs[field].View() + "\n")
		}
		for _, msg := range m.errors[field] {
			b.WriteString(styles.Error.Render("  "+m.t(msg)) + "\n")
		}
		b.WriteString("\n")
	}

	if m.failure != "" {
		b.WriteString(styles.Failure.Render(m.failure) + "\n\n")
	}

	if m.submitting {
		b.WriteString(m.spinner.View() + " " + m.t("waitlist.submitting") + "\n\n")
	} else {
		b.WriteString(styles.Button.Render(m.t("waitlist.submit")) + "\n\n")
	}

	b.WriteString(styles.Help.Render("tab/shift+tab: move  ←/→: role  enter: submit  esc: quit"))
	return styles.Box.Render(b.String())
}

func (m model) fieldLabel(field string) string {
	switch field {
	case models.FieldRole:
		return m.t("waitlist.role_label") + " *"
	case models.FieldFullName, models.FieldEmail:
		return m.t("waitlist."+field) + " *"
	default:
		return m.t("waitlist." + field)
	}
}

func (m model) roleView() string {
	if m.roleIdx < 0 {
		return styles.Help.Render("‹ " + m.t("waitlist.role_placeholder") + " ›")
	}
	return "‹ " + m.t(models.RoleOptions[m.roleIdx].LabelKey) + " ›"
}
