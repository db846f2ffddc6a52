package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"copytree/internal/appconfig"
	cprogress "copytree/internal/progress"
)

func cmdLogger() interface {
	Warn(msg string, args ...any)
} {
	return appconfig.NewLogger("cli")
}

// newReporter builds a cprogress.Reporter for a CLI run and, unless the run
// is quiet, attaches a bubbletea-rendered progress bar writing to stderr as
// one of its observers; it does not check whether stderr is a terminal. The core engine never imports
// bubbletea itself (SPEC_FULL.md §4.I); this is the one place the TUI
// stack is wired in.
func newReporter(fv *FlagValues) *cprogress.Reporter {
	r := cprogress.NewReporter(cprogress.DefaultThrottle)
	if fv.Quiet {
		return r
	}
	view := newProgressProgram(r)
	go view.run()
	return r
}

// progressModel is a bubbletea model rendering the current stage and a
// bubbles/progress bar on a single lipgloss-styled line, using the
// bubbletea/bubbles/lipgloss stack declared in go.mod for a preview-style
// terminal UI.
type progressModel struct {
	bar     progress.Model
	stage   cprogress.Stage
	percent int
	message string
	done    bool
}

type progressMsg cprogress.Event

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.stage = msg.Stage
		m.percent = msg.Percent
		m.message = msg.Message
		if msg.Kind == cprogress.KindStageEnd && msg.Percent == 100 {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model)
		return m, cmd
	default:
		return m, nil
	}
}

var stageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s %3d%%  %s\n",
		stageStyle.Render(string(m.stage)), m.bar.ViewAs(float64(m.percent)/100), m.percent, m.message)
}

// progressProgram couples a bubbletea program to the cprogress.Reporter
// observer that feeds it events.
type progressProgram struct {
	prog *tea.Program
}

func newProgressProgram(r *cprogress.Reporter) *progressProgram {
	model := progressModel{bar: progress.New(progress.WithDefaultGradient())}
	prog := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	r.Subscribe(func(ev cprogress.Event) {
		prog.Send(progressMsg(ev))
	})
	return &progressProgram{prog: prog}
}

func (p *progressProgram) run() {
	_, _ = p.prog.Run()
}
