package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/milestone"
)

type milestonesState int

const (
	milestonesStatePick milestonesState = iota
	milestonesStateBrowse
)

type MilestonesModel struct {
	CommonModel
	milestoneSvc *milestone.Service

	state milestonesState
	form  *huh.Form
	table table.Model

	milestones []*milestone.Milestone
	projectID  uuid.UUID

	// Form binding
	projectInput string

	loading bool
	err     error
	status  string
}

func NewMilestonesModel(milestoneSvc *milestone.Service) MilestonesModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 11},
		{Title: "Progress", Width: 9},
		{Title: "Amount", Width: 10},
		{Title: "Title", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	m := MilestonesModel{
		milestoneSvc: milestoneSvc,
		table:        t,
		state:        milestonesStatePick,
	}
	m.form = m.newPickForm()

	return m
}

func (m MilestonesModel) Title() string { return "Milestones" }
func (m MilestonesModel) ShortHelp() string {
	if m.state == milestonesStatePick {
		return "Enter: load project | Esc: back"
	}

	return "Esc: back | a: activate | c: complete | p: mark paid | r: refresh"
}

func (m MilestonesModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m MilestonesModel) newPickForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("project_id").
				Title("Project ID").
				Placeholder("00000000-0000-0000-0000-000000000000").
				Value(&m.projectInput).
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid UUID")
					}
					return nil
				}),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m MilestonesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMilestonesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.milestones = msg.milestones
		m.err = nil
		m.refreshTable()
		return m, nil

	case milestoneTransitionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Milestone is now %s", msg.status)
		}
		return m, m.loadMilestonesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case milestonesStatePick:
		return m.updatePick(msg)
	case milestonesStateBrowse:
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m MilestonesModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.projectID = uuid.MustParse(strings.TrimSpace(m.form.GetString("project_id")))
	m.state = milestonesStateBrowse
	m.loading = true

	return m, m.loadMilestonesCmd()
}

func (m MilestonesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadMilestonesCmd()
		case "a":
			return m, m.transitionCmd(m.milestoneSvc.Activate)
		case "c":
			return m, m.transitionCmd(m.milestoneSvc.MarkCompleted)
		case "p":
			return m, m.transitionCmd(m.milestoneSvc.MarkPaid)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m MilestonesModel) View() string {
	if m.state == milestonesStatePick {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			"Load Project\n\n" + m.form.View(),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading milestones...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MilestonesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.milestones))
	for _, ms := range m.milestones {
		rows = append(rows, table.Row{
			FormatDate(ms.DueDate),
			string(ms.Status),
			fmt.Sprintf("%d%%", ms.Progress()),
			FormatAmount(ms.Amount),
			ms.Title,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadMilestonesMsg struct {
	milestones []*milestone.Milestone
	err        error
}

func (m MilestonesModel) loadMilestonesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		milestones, err := m.milestoneSvc.ListByProject(ctx, m.projectID)
		return loadMilestonesMsg{milestones: milestones, err: err}
	}
}

type milestoneTransitionMsg struct {
	status milestone.Status
	err    error
}

func (m MilestonesModel) transitionCmd(apply func(context.Context, uuid.UUID) (*milestone.Milestone, error)) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.milestones) {
		return nil
	}

	id := m.milestones[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ms, err := apply(ctx, id)
		if err != nil {
			return milestoneTransitionMsg{err: err}
		}

		return milestoneTransitionMsg{status: ms.Status}
	}
}
