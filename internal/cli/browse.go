package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/internal/integration"
	"github.com/laporte-eng/jobnav/internal/observability"
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/cobra"
)

// browseItem is one openable location of a job.
type browseItem struct {
	label  string
	target models.Target
	dept   models.Department
}

// browseItems lists the locations offered for a job, in display order.
var browseItems = []browseItem{
	{label: "Job folder", target: models.TargetJob},
	{label: "QC reports (balance)", target: models.TargetQC, dept: models.DeptBalance},
	{label: "QC reports (assembly)", target: models.TargetQC, dept: models.DeptAssembly},
	{label: "QC reports (blading)", target: models.TargetQC, dept: models.DeptBlading},
	{label: "Issued prints", target: models.TargetPrints},
	{label: "Pictures", target: models.TargetPictures},
}

type browseModel struct {
	job      models.JobNumber
	launcher *integration.Launcher
	cursor   int
	width    int

	// Per-item outcome of the last open, keyed by index.
	paths  map[int]string
	failed map[int]bool

	busy bool
	note *observability.Notification
}

// openResultMsg carries the outcome of an open back to the model.
type openResultMsg struct {
	index int
	path  string
	ok    bool
	note  *observability.Notification
}

// Style definitions.
var (
	browseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	browseCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	browseOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	browseFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	browsePathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	browseErrorPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 1)

	browseHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newBrowseModel(job models.JobNumber, launcher *integration.Launcher) browseModel {
	return browseModel{
		job:      job,
		launcher: launcher,
		paths:    make(map[int]string),
		failed:   make(map[int]bool),
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(browseItems)-1 {
				m.cursor++
			}
			return m, nil
		case "c":
			m.note = nil
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.openItem(m.cursor)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case openResultMsg:
		m.busy = false
		if msg.path != "" {
			m.paths[msg.index] = msg.path
		}
		m.failed[msg.index] = !msg.ok
		m.note = msg.note
		return m, nil
	}

	return m, nil
}

// openItem resolves and opens an item off the UI loop. Resolution is lazy so
// QC folders are only created for the department actually chosen.
func (m browseModel) openItem(index int) tea.Cmd {
	item := browseItems[index]
	job := m.job
	launcher := m.launcher
	return func() tea.Msg {
		var note *observability.Notification
		l := launcher.WithNotifier(observability.NotifierFunc(func(n observability.Notification) error {
			note = &n
			return nil
		}))
		path, ok := l.Open(item.target, job.String(), item.dept)
		return openResultMsg{index: index, path: path, ok: ok, note: note}
	}
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(browseTitleStyle.Render(fmt.Sprintf(" jobnav %s ", m.job)))
	b.WriteString("\n\n")

	for i, item := range browseItems {
		cursor := "  "
		label := item.label
		if i == m.cursor {
			cursor = browseCursorStyle.Render("> ")
			label = browseCursorStyle.Render(label)
		}

		mark := " "
		if failed, seen := m.failed[i]; seen {
			if failed {
				mark = browseFailStyle.Render("x")
			} else {
				mark = browseOKStyle.Render("v")
			}
		}

		b.WriteString(fmt.Sprintf("%s%s %-24s", cursor, mark, label))
		if p, ok := m.paths[i]; ok {
			b.WriteString(" " + browsePathStyle.Render(p))
		}
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n  Opening...\n")
	}

	if m.note != nil {
		panel := browseFailStyle.Bold(true).Render(m.note.Title) + "\n" + m.note.Message
		if m.note.Kind != "" {
			panel += "\n" + browsePathStyle.Render("("+m.note.Kind+")")
		}
		style := browseErrorPanelStyle
		if m.width > 8 {
			style = style.Width(m.width - 4)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(panel))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("up/down: move | enter: open | c: clear error | q: quit"))
	return b.String()
}

var browseCmd = &cobra.Command{
	Use:   "browse <job>",
	Short: "Interactive browser for a job's locations",
	Long: `Launch an interactive terminal view listing a job's folder, department
QC report folders, issued prints and pictures.

Move with up/down, open with enter, quit with q. Failures are shown in an
error panel instead of exiting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Launcher == nil {
			return fmt.Errorf("launcher not initialized")
		}
		job, err := core.JobNumberFromArg(args[0])
		if err != nil {
			return err
		}
		p := tea.NewProgram(newBrowseModel(job, Launcher), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
