package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/phase"
)

type phasesState int

const (
	phasesStatePick phasesState = iota
	phasesStateBrowse
	phasesStateChecklist
)

type PhasesModel struct {
	CommonModel
	phaseSvc *phase.Service

	state phasesState
	form  *huh.Form
	table table.Model

	phases      []*phase.WorkPhase
	milestoneID uuid.UUID

	// Checklist cursor over the selected phase's deliverables
	checklistIdx int
	selected     *phase.WorkPhase

	// Form binding
	milestoneInput string

	loading bool
	err     error
	status  string
}

func NewPhasesModel(phaseSvc *phase.Service) PhasesModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Status", Width: 13},
		{Title: "Progress", Width: 9},
		{Title: "Name", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := PhasesModel{
		phaseSvc: phaseSvc,
		table:    t,
		state:    phasesStatePick,
	}
	m.form = m.newPickForm()

	return m
}

func (m PhasesModel) Title() string { return "Work Phases" }
func (m PhasesModel) ShortHelp() string {
	switch m.state {
	case phasesStatePick:
		return "Enter: load milestone | Esc: back"
	case phasesStateChecklist:
		return "Esc: back | space: toggle item | m: mark phase complete"
	}

	return "Esc: back | enter: checklist | m: mark complete | r: refresh"
}

func (m PhasesModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m PhasesModel) newPickForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("milestone_id").
				Title("Milestone ID").
				Placeholder("00000000-0000-0000-0000-000000000000").
				Value(&m.milestoneInput).
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid UUID")
					}
					return nil
				}),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m PhasesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPhasesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.phases = msg.phases
		m.err = nil
		m.refreshTable()

		// Keep the checklist pointed at the reloaded phase.
		if m.selected != nil {
			m.selected = m.findPhase(m.selected.ID)
			if m.selected == nil {
				m.state = phasesStateBrowse
			}
		}
		return m, nil

	case phaseActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		return m, m.loadPhasesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case phasesStatePick:
		return m.updatePick(msg)
	case phasesStateBrowse:
		return m.updateBrowse(msg)
	case phasesStateChecklist:
		return m.updateChecklist(msg)
	}

	return m, nil
}

func (m PhasesModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.milestoneID = uuid.MustParse(strings.TrimSpace(m.form.GetString("milestone_id")))
	m.state = phasesStateBrowse
	m.loading = true

	return m, m.loadPhasesCmd()
}

func (m PhasesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPhasesCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.phases) {
				m.selected = m.phases[idx]
				m.checklistIdx = 0
				m.state = phasesStateChecklist
			}
			return m, nil
		case "m":
			return m, m.markCompleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PhasesModel) updateChecklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.selected == nil {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = phasesStateBrowse
		m.selected = nil
		return m, nil
	case "up", "k":
		if m.checklistIdx > 0 {
			m.checklistIdx--
		}
	case "down", "j":
		if m.checklistIdx < len(m.selected.Deliverables)-1 {
			m.checklistIdx++
		}
	case " ":
		if m.checklistIdx >= 0 && m.checklistIdx < len(m.selected.Deliverables) {
			return m, m.toggleCmd(m.selected.Deliverables[m.checklistIdx].ID)
		}
	case "m":
		return m, m.markCompleteCmd()
	}

	return m, nil
}

func (m PhasesModel) View() string {
	if m.state == phasesStatePick {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			"Load Milestone\n\n" + m.form.View(),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading phases...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == phasesStateChecklist && m.selected != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.checklistView())
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m PhasesModel) checklistView() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s — %d%%\n\n", m.selected.Name, phase.Progress(m.selected)))

	if len(m.selected.Deliverables) == 0 {
		sb.WriteString("No checklist items")
	}

	for i, d := range m.selected.Deliverables {
		cursor := "  "
		if i == m.checklistIdx {
			cursor = "> "
		}

		check := "[ ]"
		if d.Completed {
			check = "[x]"
		}

		sb.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, d.Name))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(44).
		Render(sb.String())
}

func (m *PhasesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.phases))
	for _, p := range m.phases {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.Order),
			string(p.Status),
			fmt.Sprintf("%d%%", phase.Progress(p)),
			p.Name,
		})
	}
	m.table.SetRows(rows)
}

func (m PhasesModel) findPhase(id uuid.UUID) *phase.WorkPhase {
	for _, p := range m.phases {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// Messages

type loadPhasesMsg struct {
	phases []*phase.WorkPhase
	err    error
}

func (m PhasesModel) loadPhasesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		phases, err := m.phaseSvc.List(ctx, m.milestoneID)
		return loadPhasesMsg{phases: phases, err: err}
	}
}

type phaseActionMsg struct {
	status string
	err    error
}

func (m PhasesModel) toggleCmd(deliverableID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.phaseSvc.ToggleDeliverable(ctx, deliverableID)
		if err != nil {
			return phaseActionMsg{err: err}
		}

		state := "open"
		if d.Completed {
			state = "done"
		}

		return phaseActionMsg{status: fmt.Sprintf("%q is now %s", d.Name, state)}
	}
}

func (m PhasesModel) markCompleteCmd() tea.Cmd {
	var id uuid.UUID

	switch {
	case m.selected != nil:
		id = m.selected.ID
	default:
		idx := m.table.Cursor()
		if idx < 0 || idx >= len(m.phases) {
			return nil
		}
		id = m.phases[idx].ID
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.phaseSvc.MarkComplete(ctx, id)
		if err != nil {
			return phaseActionMsg{err: err}
		}

		return phaseActionMsg{status: fmt.Sprintf("Phase %q completed", p.Name)}
	}
}
