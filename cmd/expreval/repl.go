package main

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/expreval"
)

// replHistory is the number of scrollback lines the prompt keeps visible.
const replHistory = 100

// runREPL starts the interactive prompt. Each entered expression evaluates
// immediately and its rendering joins the scrollback.
func runREPL(sess *expreval.Session, env *expreval.Env) error {
	p := tea.NewProgram(newREPLModel(sess, env))

	_, err := p.Run()

	return err
}

// replModel is the bubbletea model for the interactive prompt.
type replModel struct {
	sess  *expreval.Session
	env   *expreval.Env
	lines []string
	input []rune
}

func newREPLModel(sess *expreval.Session, env *expreval.Env) *replModel {
	return &replModel{
		sess: sess,
		env:  env,
	}
}

func (m *replModel) Init() tea.Cmd {
	return nil
}

// Update handles key input: printable characters extend the input line,
// enter evaluates it, and ctrl+c, ctrl+d, or esc quit.
func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch s := keyMsg.String(); s {
	case "ctrl+c", "ctrl+d", "esc":
		return m, tea.Quit

	case "enter":
		expr := strings.TrimSpace(string(m.input))
		m.input = m.input[:0]

		if expr == "" {
			return m, nil
		}

		v := m.sess.Eval(expr, m.env)
		m.appendLine("> " + expr)
		m.appendLine(v.String())
		// The rendering above copied everything it needs.
		m.sess.Cleanup()

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case "space":
		m.input = append(m.input, ' ')

	default:
		r := []rune(s)
		if len(r) == 1 {
			m.input = append(m.input, r[0])
		}
	}

	return m, nil
}

func (m *replModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > replHistory {
		m.lines = m.lines[len(m.lines)-replHistory:]
	}
}

func (m *replModel) View() tea.View {
	var b strings.Builder

	b.WriteString("expreval — enter an expression, ctrl+d quits\n\n")

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("> ")
	b.WriteString(string(m.input))

	return tea.NewView(b.String())
}
