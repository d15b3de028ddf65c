package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/lbastos/worklane/cmd/tui/internal/view"
	"github.com/lbastos/worklane/internal/config"
	"github.com/lbastos/worklane/internal/database"
	"github.com/lbastos/worklane/internal/delivery"
	deliveryStore "github.com/lbastos/worklane/internal/delivery/store"
	"github.com/lbastos/worklane/internal/importer"
	"github.com/lbastos/worklane/internal/importer/plancsv"
	"github.com/lbastos/worklane/internal/milestone"
	milestoneStore "github.com/lbastos/worklane/internal/milestone/store"
	"github.com/lbastos/worklane/internal/notify"
	"github.com/lbastos/worklane/internal/phase"
	phaseStore "github.com/lbastos/worklane/internal/phase/store"
	"github.com/lbastos/worklane/internal/project"
	projectStore "github.com/lbastos/worklane/internal/project/store"
	"github.com/lbastos/worklane/internal/workflow"
)

type model struct {
	milestoneService *milestone.Service
	phaseService     *phase.Service
	deliveryService  *delivery.Service
	projectService   *project.Service
	importService    *importer.Service

	currentView View

	milestonesView view.MilestonesModel
	phasesView     view.PhasesModel
	deliveryView   view.DeliveryModel
	ledgerView     view.LedgerModel
	importView     view.ImportPlanModel
}

type View int

const (
	ViewMenu       View = 0
	ViewMilestones View = 1
	ViewPhases     View = 2
	ViewDelivery   View = 3
	ViewLedger     View = 4
	ViewImport     View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	guard := workflow.NewGuard()
	notifier := notify.Log{}

	milestoneSvc := milestone.NewService(milestoneStore.New(db), guard, notifier)
	phaseSvc := phase.NewService(phaseStore.New(db), guard, notifier)
	deliverySvc := delivery.NewService(deliveryStore.New(db), guard, notifier)
	projectSvc := project.NewService(projectStore.New(db), milestoneSvc)
	importSvc := importer.NewService(plancsv.NewParser())

	return model{
		milestoneService: milestoneSvc,
		phaseService:     phaseSvc,
		deliveryService:  deliverySvc,
		projectService:   projectSvc,
		importService:    importSvc,
		currentView:      ViewMenu,
		milestonesView:   view.NewMilestonesModel(milestoneSvc),
		phasesView:       view.NewPhasesModel(phaseSvc),
		deliveryView:     view.NewDeliveryModel(deliverySvc),
		ledgerView:       view.NewLedgerModel(projectSvc),
		importView:       view.NewImportPlanModel(importSvc, milestoneSvc, phaseSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewMilestones
				m.milestonesView = view.NewMilestonesModel(m.milestoneService)

				return m, m.milestonesView.Init()
			case "2":
				m.currentView = ViewPhases
				m.phasesView = view.NewPhasesModel(m.phaseService)

				return m, m.phasesView.Init()
			case "3":
				m.currentView = ViewDelivery
				m.deliveryView = view.NewDeliveryModel(m.deliveryService)

				return m, m.deliveryView.Init()
			case "4":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.projectService)

				return m, m.ledgerView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportPlanModel(m.importService, m.milestoneService, m.phaseService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewMilestones:
		var newModel tea.Model
		newModel, cmd = m.milestonesView.Update(msg)
		m.milestonesView = newModel.(view.MilestonesModel)
	case ViewPhases:
		var newModel tea.Model
		newModel, cmd = m.phasesView.Update(msg)
		m.phasesView = newModel.(view.PhasesModel)
	case ViewDelivery:
		var newModel tea.Model
		newModel, cmd = m.deliveryView.Update(msg)
		m.deliveryView = newModel.(view.DeliveryModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportPlanModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Worklane TUI\n\n" +
				"1. Milestones\n" +
				"2. Phases & Checklist\n" +
				"3. Delivery\n" +
				"4. Payment Ledger\n" +
				"5. Import Plan\n\n" +
				"q. Quit",
		)
	case ViewMilestones:
		return m.milestonesView.View()
	case ViewPhases:
		return m.phasesView.View()
	case ViewDelivery:
		return m.deliveryView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
