package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/importer"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/phase"
)

type importState int

const (
	importStateForm importState = iota
	importStateRunning
	importStateDone
)

type ImportPlanModel struct {
	CommonModel
	importSvc    *importer.Service
	milestoneSvc *milestone.Service
	phaseSvc     *phase.Service

	state importState
	form  *huh.Form

	// Form bindings
	projectInput string
	pathInput    string

	imported []*milestone.Milestone
	err      error
}

func NewImportPlanModel(importSvc *importer.Service, milestoneSvc *milestone.Service, phaseSvc *phase.Service) ImportPlanModel {
	m := ImportPlanModel{
		importSvc:    importSvc,
		milestoneSvc: milestoneSvc,
		phaseSvc:     phaseSvc,
		state:        importStateForm,
	}
	m.form = m.newForm()

	return m
}

func (m ImportPlanModel) Title() string { return "Import Plan" }
func (m ImportPlanModel) ShortHelp() string {
	if m.state == importStateDone {
		return "Esc: back | n: import another"
	}

	return "Enter: import | Esc: back"
}

func (m ImportPlanModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportPlanModel) newForm() *huh.Form {
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
			huh.NewInput().
				Key("path").
				Title("Plan CSV file").
				Placeholder("~/plans/website.csv").
				Value(&m.pathInput).
				Validate(func(s string) error {
					if _, err := os.Stat(expandHome(s)); err != nil {
						return fmt.Errorf("cannot read file: %v", err)
					}
					return nil
				}),
		),
	).WithWidth(56).WithShowHelp(false)
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}

	return path
}

func (m ImportPlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(importDoneMsg); ok {
		m.state = importStateDone
		m.imported = msg.milestones
		m.err = msg.err
		return m, nil
	}

	if m.state == importStateDone {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				m.state = importStateForm
				m.imported = nil
				m.err = nil
				m.form = m.newForm()
				return m, m.form.Init()
			}
		}
		return m, nil
	}

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

	projectID := uuid.MustParse(strings.TrimSpace(m.form.GetString("project_id")))
	path := expandHome(m.form.GetString("path"))
	m.state = importStateRunning

	return m, m.importCmd(projectID, path)
}

func (m ImportPlanModel) View() string {
	switch m.state {
	case importStateForm:
		return lipgloss.NewStyle().Padding(1, 2).Render("Import Project Plan\n\n" + m.form.View())
	case importStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Importing plan...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Import failed: %v", m.err))
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Imported %d milestones\n\n", len(m.imported)))
	for _, ms := range m.imported {
		sb.WriteString(fmt.Sprintf("  %s  %s  (%d phases)\n", FormatDate(ms.DueDate), FormatAmount(ms.Amount), len(ms.Phases)))
		sb.WriteString(fmt.Sprintf("    %s\n", ms.Title))
	}

	content := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(60).
		Render(sb.String())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type importDoneMsg struct {
	milestones []*milestone.Milestone
	err        error
}

func (m ImportPlanModel) importCmd(projectID uuid.UUID, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		plan, err := m.importSvc.Import(importer.FormatPlanCSV, f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		created := make([]*milestone.Milestone, 0, len(plan))

		for _, pm := range plan {
			ms, err := m.milestoneSvc.Create(ctx, milestone.CreateParams{
				ProjectID: projectID,
				Title:     pm.Title,
				Amount:    pm.Amount,
				DueDate:   pm.DueDate,
			})
			if err != nil {
				return importDoneMsg{milestones: created, err: fmt.Errorf("milestone %q: %w", pm.Title, err)}
			}

			for _, pp := range pm.Phases {
				ph, err := m.phaseSvc.AddPhase(ctx, ms.ID, phase.AddPhaseParams{
					Name:  pp.Name,
					Order: pp.Order,
				})
				if err != nil {
					return importDoneMsg{milestones: created, err: fmt.Errorf("phase %q: %w", pp.Name, err)}
				}

				for _, name := range pp.Deliverables {
					if _, err := m.phaseSvc.AddDeliverable(ctx, ph.ID, name); err != nil {
						return importDoneMsg{milestones: created, err: fmt.Errorf("deliverable %q: %w", name, err)}
					}
				}

				ms.Phases = append(ms.Phases, ph)
			}

			created = append(created, ms)
		}

		return importDoneMsg{milestones: created}
	}
}
