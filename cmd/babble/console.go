package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"babble/gen"
	"babble/transform"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive generation console",
		RunE: func(_ *cobra.Command, _ []string) error {
			g, pipe, err := newSession()
			if err != nil {
				return err
			}
			m := consoleModel{
				g:    g,
				pipe: pipe,
				seed: opts.seed,
				mode: "sentence",
			}
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

type consoleModel struct {
	g    *gen.Generator
	pipe *transform.Pipeline

	seed    int64
	mode    string // sentence, paragraph, text
	input   string
	history []string
	errMsg  string
}

func (m consoleModel) Init() tea.Cmd { return nil }

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		m = m.run(strings.TrimSpace(m.input))
		m.input = ""
		return m, nil

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		m.input += key.String()
		return m, nil
	}
}

// run executes one console line: empty means generate, a leading colon means
// a session command.
func (m consoleModel) run(line string) consoleModel {
	m.errMsg = ""
	if !strings.HasPrefix(line, ":") {
		return m.generate()
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		m.errMsg = "empty command"
		return m
	}

	switch fields[0] {
	case "seed":
		if len(fields) != 2 {
			m.errMsg = "usage: :seed <n>"
			return m
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			m.errMsg = "bad seed: " + fields[1]
			return m
		}
		m.seed = n
		m.g.SetSeed(n)
		m.history = append(m.history, labelStyle.Render(fmt.Sprintf("seed set to %d", n)))

	case "mode":
		if len(fields) != 2 {
			m.errMsg = "usage: :mode sentence|paragraph|text"
			return m
		}
		switch fields[1] {
		case "sentence", "paragraph", "text":
			m.mode = fields[1]
		default:
			m.errMsg = "unknown mode: " + fields[1]
		}

	case "arch":
		name := ""
		if len(fields) == 2 {
			name = fields[1]
		}
		if err := m.g.SetArchetype(name); err != nil {
			m.errMsg = err.Error()
			return m
		}
		m.history = append(m.history, labelStyle.Render("archetype: "+orNone(name)))

	case "transform":
		names := fields[1:]
		pipe, err := transform.NewRegistry().NewPipeline(names)
		if err != nil {
			m.errMsg = err.Error()
			return m
		}
		m.pipe = pipe
		m.history = append(m.history, labelStyle.Render("transforms: "+orNone(strings.Join(names, " "))))

	case "quit", "q":
		// handled as a key normally; kept for muscle memory
		m.errMsg = "press esc or ctrl+c to quit"

	default:
		m.errMsg = "unknown command: " + fields[0]
	}
	return m
}

func (m consoleModel) generate() consoleModel {
	var (
		res gen.Result
		err error
	)
	switch m.mode {
	case "paragraph":
		res, err = m.g.Paragraph(gen.ParagraphOptions{})
	case "text":
		res, err = m.g.Text(gen.TextOptions{})
	default:
		res, err = m.g.Sentence(gen.SentenceOptions{})
	}
	if err != nil {
		m.errMsg = err.Error()
		return m
	}

	m.history = append(m.history, outputStyle.Render(m.pipe.Apply(res.Text)))
	if len(m.history) > 12 {
		m.history = m.history[len(m.history)-12:]
	}
	return m
}

func (m consoleModel) View() string {
	rule := ruleStyle.Render(strings.Repeat("─", 60)) + "\n"

	var b strings.Builder
	b.WriteString(headerStyle.Render("babble console") + "\n")
	b.WriteString(rule)
	b.WriteString(labelStyle.Render(fmt.Sprintf("seed %d | mode %s | enter generates, :seed :mode :arch :transform", m.seed, m.mode)) + "\n")
	b.WriteString(rule)

	if len(m.history) == 0 {
		b.WriteString(labelStyle.Render("(nothing generated yet)") + "\n")
	}
	for _, line := range m.history {
		b.WriteString(line + "\n")
	}
	b.WriteString(rule)

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("> " + m.input + "_\n")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
