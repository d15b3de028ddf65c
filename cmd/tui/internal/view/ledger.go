package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/ledger"
	"github.com/lbastos/worklane/internal/milestone"
	"github.com/lbastos/worklane/internal/project"
)

type ledgerState int

const (
	ledgerStatePick ledgerState = iota
	ledgerStateShow
)

type LedgerModel struct {
	CommonModel
	projectSvc *project.Service

	state ledgerState
	form  *huh.Form

	projectID uuid.UUID
	project   *project.Project
	totals    ledger.Totals

	// Form binding
	projectInput string

	loading bool
	err     error
}

func NewLedgerModel(projectSvc *project.Service) LedgerModel {
	m := LedgerModel{
		projectSvc: projectSvc,
		state:      ledgerStatePick,
	}
	m.form = m.newPickForm()

	return m
}

func (m LedgerModel) Title() string { return "Payment Ledger" }
func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStatePick {
		return "Enter: load project | Esc: back"
	}

	return "Esc: back | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LedgerModel) newPickForm() *huh.Form {
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

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(loadLedgerMsg); ok {
		m.loading = false
		m.project = msg.project
		m.totals = msg.totals
		m.err = msg.err
		return m, nil
	}

	if m.state == ledgerStatePick {
		return m.updatePick(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadLedgerCmd()
		}
	}

	return m, nil
}

func (m LedgerModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	m.state = ledgerStateShow
	m.loading = true

	return m, m.loadLedgerCmd()
}

func (m LedgerModel) View() string {
	if m.state == ledgerStatePick {
		return lipgloss.NewStyle().Padding(1, 2).Render("Load Project\n\n" + m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var sb strings.Builder

	p := m.project
	sb.WriteString(fmt.Sprintf("%s — %s (%s)\n\n", p.Title, p.ClientName, p.Currency))

	label := lipgloss.NewStyle().Width(10)
	sb.WriteString(label.Render("Paid") + FormatAmount(m.totals.Paid) + "\n")
	sb.WriteString(label.Render("Escrow") + FormatAmount(m.totals.Escrow) + "\n")
	sb.WriteString(label.Render("Pending") + FormatAmount(m.totals.Pending) + "\n")
	sb.WriteString(label.Render("Total") + FormatAmount(m.totals.Sum()) + "\n")

	sb.WriteString("\nMilestones:\n")
	for _, ms := range p.Milestones {
		sb.WriteString(fmt.Sprintf("  %-10s %s  %s\n", bucketFor(ms), FormatAmount(ms.Amount), ms.Title))
	}

	content := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(60).
		Render(sb.String())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func bucketFor(m *milestone.Milestone) string {
	approved := m.Delivery != nil && m.Delivery.Status == delivery.StatusApproved

	switch {
	case m.Status == milestone.StatusPaid:
		return "paid"
	case m.Status == milestone.StatusCompleted && approved:
		return "escrow"
	default:
		return "pending"
	}
}

// Messages

type loadLedgerMsg struct {
	project *project.Project
	totals  ledger.Totals
	err     error
}

func (m LedgerModel) loadLedgerCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.projectSvc.Load(ctx, m.projectID)
		if err != nil {
			return loadLedgerMsg{err: err}
		}

		return loadLedgerMsg{project: p, totals: ledger.Compute(p)}
	}
}
