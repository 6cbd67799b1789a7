package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kmehta/boltgroup/internal/config"
	"github.com/kmehta/boltgroup/internal/icr"
)

const historyCapacity = 200

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	paramsStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	resultStyle      = lipgloss.NewStyle().Padding(1, 2)
	convergedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type param struct {
	name   string
	get    func(m *Model) string
	adjust func(m *Model, dir int)
}

// Model holds the connection parameters under exploration and the
// latest solve outcome.
type Model struct {
	cfg      *config.Config
	selected int
	result   icr.Result
	patErr   error
	history  []float64
	initial  config.Config
}

var params = []param{
	{
		name:   "rows",
		get:    func(m *Model) string { return fmt.Sprintf("%d", m.cfg.Pattern.Rows) },
		adjust: func(m *Model, dir int) { m.cfg.Pattern.Rows = max(1, m.cfg.Pattern.Rows+dir) },
	},
	{
		name:   "cols",
		get:    func(m *Model) string { return fmt.Sprintf("%d", m.cfg.Pattern.Cols) },
		adjust: func(m *Model, dir int) { m.cfg.Pattern.Cols = max(1, m.cfg.Pattern.Cols+dir) },
	},
	{
		name: "row spacing",
		get:  func(m *Model) string { return fmt.Sprintf("%.2f", m.cfg.Pattern.RowSpacing) },
		adjust: func(m *Model, dir int) {
			m.cfg.Pattern.RowSpacing = adjustPositive(m.cfg.Pattern.RowSpacing, dir)
		},
	},
	{
		name: "col spacing",
		get:  func(m *Model) string { return fmt.Sprintf("%.2f", m.cfg.Pattern.ColSpacing) },
		adjust: func(m *Model, dir int) {
			m.cfg.Pattern.ColSpacing = adjustPositive(m.cfg.Pattern.ColSpacing, dir)
		},
	},
	{
		name: "eccentricity",
		get:  func(m *Model) string { return fmt.Sprintf("%.2f", m.cfg.Load.Eccentricity) },
		adjust: func(m *Model, dir int) {
			m.cfg.Load.Eccentricity += float64(dir) * 0.5
		},
	},
	{
		name: "rotation",
		get:  func(m *Model) string { return fmt.Sprintf("%.0f deg", m.cfg.Load.Rotation) },
		adjust: func(m *Model, dir int) {
			m.cfg.Load.Rotation += float64(dir) * 5
		},
	},
}

func adjustPositive(v float64, dir int) float64 {
	v += float64(dir) * 0.25
	if v < 0.25 {
		v = 0.25
	}
	return v
}

func NewModel(cfg *config.Config) *Model {
	m := &Model{cfg: cfg, initial: *cfg}
	m.solve()
	return m
}

func (m *Model) solve() {
	m.history = m.history[:0]
	pattern, err := m.cfg.GeomPattern()
	if err != nil {
		m.patErr = err
		m.result = icr.Result{}
		return
	}
	m.patErr = nil
	m.result = icr.SolveWithOptions(pattern, m.cfg.LoadCase(), m.cfg.SolverOptions(),
		func(iteration int, xRo, yRo, imbalance float64) {
			if len(m.history) < historyCapacity {
				m.history = append(m.history, imbalance)
			}
		})
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "j":
			m.selected = (m.selected + 1) % len(params)
		case "shift+tab", "up", "k":
			m.selected = (m.selected + len(params) - 1) % len(params)
		case "right", "l", "+", "=":
			params[m.selected].adjust(m, 1)
			m.solve()
		case "left", "h", "-", "_":
			params[m.selected].adjust(m, -1)
			m.solve()
		case "r":
			*m.cfg = m.initial
			m.solve()
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var left strings.Builder
	for i, p := range params {
		label := labelStyle.Render(p.name)
		value := valueStyle.Render(p.get(m))
		if i == m.selected {
			label = activeParamStyle.Render("> " + p.name)
			value = activeParamStyle.Render(p.get(m))
			left.WriteString(fmt.Sprintf("%s %s\n", label, value))
			continue
		}
		left.WriteString(fmt.Sprintf("  %s %s\n", label, value))
	}

	var right strings.Builder
	fasteners := m.cfg.Pattern.Rows * m.cfg.Pattern.Cols
	right.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("fasteners"), fasteners))
	switch {
	case m.patErr != nil:
		right.WriteString(failedStyle.Render(fmt.Sprintf("invalid: %v", m.patErr)) + "\n")
	case m.result.Converged:
		right.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("C"),
			convergedStyle.Render(fmt.Sprintf("%.4f", m.result.Coefficient))))
		right.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("iterations"), m.result.Iterations))
	default:
		right.WriteString(failedStyle.Render("did not converge") + "\n")
		right.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render("iterations"), m.result.Iterations))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paramsStyle.Render(left.String()),
		resultStyle.Render(right.String()),
	)

	graph := ""
	if len(m.history) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("force imbalance per iteration"),
		))
	}

	help := helpStyle.Render("tab/j/k select · h/l adjust · r reset · q quit")

	return headerStyle.Render("bolt group explorer") + "\n" + body + "\n" + graph + "\n" + help + "\n"
}

// Run starts the interactive explorer.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg))
	_, err := p.Run()
	return err
}
