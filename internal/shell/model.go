// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package shell

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	prompt        = "openphoto> "
	maxTranscript = 1000
)

type commandDoneMsg struct {
	result Result
	err    error
}

// model is the full-screen shell: a transcript of previous commands above
// a prompt.
type model struct {
	ctx     context.Context
	session *Session

	input      textinput.Model
	transcript []string
	history    []string
	// histIdx == len(history) means "not browsing history"
	histIdx int

	running bool
	height  int
}

func newModel(ctx context.Context, session *Session) model {
	input := textinput.New()
	input.Prompt = promptStyle.Render(prompt)
	input.Placeholder = "help"
	input.Focus()

	return model{
		ctx:     ctx,
		session: session,
		input:   input,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - len(prompt) - 2
		return m, nil

	case commandDoneMsg:
		m.running = false
		if msg.err != nil {
			m.appendOutput(errorStyle.Render("error: " + msg.err.Error()))
			return m, nil
		}
		m.appendOutput(msg.result.Output)
		if msg.result.Quit {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.clear):
			m.transcript = nil
			return m, nil
		case m.running:
			return m, nil
		case key.Matches(msg, keys.submit):
			return m.submit()
		case key.Matches(msg, keys.prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, keys.next):
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.appendOutput(prompt + line)
	if line == "" {
		return m, nil
	}

	if len(m.history) == 0 || m.history[len(m.history)-1] != line {
		m.history = append(m.history, line)
	}
	m.histIdx = len(m.history)
	m.running = true

	ctx, session := m.ctx, m.session
	return m, func() tea.Msg {
		res, err := session.Execute(ctx, line)
		return commandDoneMsg{result: res, err: err}
	}
}

func (m *model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.histIdx + step
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.history) {
		m.histIdx = len(m.history)
		m.input.SetValue("")
		return
	}
	m.histIdx = idx
	m.input.SetValue(m.history[idx])
	m.input.CursorEnd()
}

func (m *model) appendOutput(text string) {
	if text == "" {
		return
	}
	m.transcript = append(m.transcript, strings.Split(text, "\n")...)
	if extra := len(m.transcript) - maxTranscript; extra > 0 {
		m.transcript = m.transcript[extra:]
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("openphoto shell · " + m.session.Host()))
	b.WriteString("\n\n")

	lines := m.transcript
	// title, blank line, prompt and help take four lines
	if m.height > 0 {
		if room := m.height - 4; room >= 0 && len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.running {
		b.WriteString(helpStyle.Render("running..."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: run · ↑/↓: history · ctrl+l: clear · ctrl+c: quit"))

	return appStyle.Render(b.String())
}
