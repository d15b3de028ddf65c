package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lbastos/worklane/internal/delivery"
	"github.com/lbastos/worklane/internal/workflow"
)

type deliveryState int

const (
	deliveryStatePick deliveryState = iota
	deliveryStateShow
	deliveryStateEditNotes
	deliveryStateAddLink
	deliveryStateRevision
)

type DeliveryModel struct {
	CommonModel
	deliverySvc *delivery.Service

	state deliveryState
	form  *huh.Form

	milestoneID uuid.UUID
	delivery    *delivery.Delivery

	// Form bindings
	milestoneInput string
	notesInput     string
	linkTitle      string
	linkURL        string
	linkType       string
	revisionInput  string

	loading bool
	err     error
	status  string
}

func NewDeliveryModel(deliverySvc *delivery.Service) DeliveryModel {
	m := DeliveryModel{
		deliverySvc: deliverySvc,
		state:       deliveryStatePick,
	}
	m.form = m.newPickForm()

	return m
}

func (m DeliveryModel) Title() string { return "Delivery" }
func (m DeliveryModel) ShortHelp() string {
	switch m.state {
	case deliveryStatePick:
		return "Enter: load milestone | Esc: back"
	case deliveryStateShow:
		return "Esc: back | n: notes | l: add link | s: submit | a: approve | v: request revision | r: refresh"
	}

	return "Enter: save | Esc: cancel"
}

func (m DeliveryModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m DeliveryModel) newPickForm() *huh.Form {
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

func (m DeliveryModel) newNotesForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("notes").
				Title("Delivery Notes").
				Value(&m.notesInput),
		),
	).WithWidth(64).WithShowHelp(false)
}

func (m DeliveryModel) newLinkForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.linkTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("url").
				Title("URL").
				Value(&m.linkURL),
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Google Drive", string(delivery.LinkGoogleDrive)),
					huh.NewOption("Dropbox", string(delivery.LinkDropbox)),
					huh.NewOption("Figma", string(delivery.LinkFigma)),
					huh.NewOption("GitHub", string(delivery.LinkGitHub)),
					huh.NewOption("Other", string(delivery.LinkOther)),
				).
				Value(&m.linkType),
		),
	).WithWidth(64).WithShowHelp(false)
}

func (m DeliveryModel) newRevisionForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("notes").
				Title("Revision Notes").
				Value(&m.revisionInput).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("revision notes are required")
					}
					return nil
				}),
		),
	).WithWidth(64).WithShowHelp(false)
}

func (m DeliveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDeliveryMsg:
		m.loading = false
		m.delivery = msg.delivery
		m.err = msg.err
		return m, nil

	case deliveryActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = msg.status
		m.delivery = msg.delivery
		return m, nil
	}

	switch m.state {
	case deliveryStatePick:
		return m.updatePick(msg)
	case deliveryStateShow:
		return m.updateShow(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m DeliveryModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	m.state = deliveryStateShow
	m.loading = true

	return m, m.loadDeliveryCmd()
}

func (m DeliveryModel) updateShow(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadDeliveryCmd()
	case "n":
		if m.delivery != nil {
			m.notesInput = m.delivery.Notes
		}
		m.state = deliveryStateEditNotes
		m.form = m.newNotesForm()
		return m, m.form.Init()
	case "l":
		m.linkTitle, m.linkURL, m.linkType = "", "", string(delivery.LinkOther)
		m.state = deliveryStateAddLink
		m.form = m.newLinkForm()
		return m, m.form.Init()
	case "s":
		return m, m.actionCmd("Delivery submitted", func() (*delivery.Delivery, error) {
			ctx, cancel := DbCtx()
			defer cancel()
			return m.deliverySvc.Submit(ctx, m.milestoneID)
		})
	case "a":
		return m, m.actionCmd("Delivery approved", func() (*delivery.Delivery, error) {
			ctx, cancel := DbCtx()
			defer cancel()
			return m.deliverySvc.Approve(ctx, m.milestoneID)
		})
	case "v":
		m.revisionInput = ""
		m.state = deliveryStateRevision
		m.form = m.newRevisionForm()
		return m, m.form.Init()
	}

	return m, nil
}

func (m DeliveryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = deliveryStateShow
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case deliveryStateEditNotes:
		notes := m.form.GetString("notes")
		m.state = deliveryStateShow
		return m, m.actionCmd("Notes saved", func() (*delivery.Delivery, error) {
			ctx, cancel := DbCtx()
			defer cancel()
			return m.deliverySvc.SaveDraft(ctx, m.milestoneID, delivery.DraftParams{
				Notes: notes,
				Links: existingLinkParams(m.delivery),
			})
		})

	case deliveryStateAddLink:
		params := delivery.DraftParams{
			Links: append(existingLinkParams(m.delivery), delivery.LinkParams{
				Title: m.form.GetString("title"),
				URL:   m.form.GetString("url"),
				Type:  delivery.LinkType(m.form.GetString("type")),
			}),
		}
		if m.delivery != nil {
			params.Notes = m.delivery.Notes
		}
		m.state = deliveryStateShow
		return m, m.actionCmd("Link added", func() (*delivery.Delivery, error) {
			ctx, cancel := DbCtx()
			defer cancel()
			return m.deliverySvc.SaveDraft(ctx, m.milestoneID, params)
		})

	case deliveryStateRevision:
		notes := m.form.GetString("notes")
		m.state = deliveryStateShow
		return m, m.actionCmd("Revision requested", func() (*delivery.Delivery, error) {
			ctx, cancel := DbCtx()
			defer cancel()
			return m.deliverySvc.RequestRevision(ctx, m.milestoneID, notes)
		})
	}

	return m, nil
}

// existingLinkParams re-submits the current links so SaveDraft's replace
// semantics keep them.
func existingLinkParams(d *delivery.Delivery) []delivery.LinkParams {
	if d == nil {
		return nil
	}

	params := make([]delivery.LinkParams, 0, len(d.Links))
	for _, l := range d.Links {
		params = append(params, delivery.LinkParams{Title: l.Title, URL: l.URL, Type: l.Type})
	}

	return params
}

func (m DeliveryModel) View() string {
	switch m.state {
	case deliveryStatePick:
		return lipgloss.NewStyle().Padding(1, 2).Render("Load Delivery\n\n" + m.form.View())
	case deliveryStateEditNotes, deliveryStateAddLink, deliveryStateRevision:
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading delivery...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.delivery == nil {
		return lipgloss.NewStyle().Padding(2).Render("No delivery yet. Press n to start a draft.")
	}

	var sb strings.Builder

	d := m.delivery
	sb.WriteString(fmt.Sprintf("Status: %s\n", d.Status))

	if d.SubmittedAt != nil {
		sb.WriteString(fmt.Sprintf("Submitted: %s\n", FormatDate(*d.SubmittedAt)))
	}
	if d.ApprovedAt != nil {
		sb.WriteString(fmt.Sprintf("Approved: %s\n", FormatDate(*d.ApprovedAt)))
	}
	if d.RevisionNotes != "" {
		sb.WriteString(fmt.Sprintf("Revision notes: %s\n", d.RevisionNotes))
	}

	sb.WriteString("\nNotes:\n")
	if d.Notes == "" {
		sb.WriteString("  (none)\n")
	} else {
		sb.WriteString("  " + d.Notes + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nFiles (%d):\n", len(d.Files)))
	for _, f := range d.Files {
		sb.WriteString(fmt.Sprintf("  %s (v%d, %d bytes)\n", f.Name, f.Version, f.Size))
	}

	sb.WriteString(fmt.Sprintf("\nLinks (%d):\n", len(d.Links)))
	for _, l := range d.Links {
		sb.WriteString(fmt.Sprintf("  %s [%s] %s\n", l.Title, l.Type, l.URL))
	}

	content := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(70).
		Render(sb.String())

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadDeliveryMsg struct {
	delivery *delivery.Delivery
	err      error
}

func (m DeliveryModel) loadDeliveryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.deliverySvc.Get(ctx, m.milestoneID)
		if errors.Is(err, workflow.ErrNotFound) {
			// Drafts are created lazily, absence is normal.
			return loadDeliveryMsg{}
		}

		return loadDeliveryMsg{delivery: d, err: err}
	}
}

type deliveryActionMsg struct {
	delivery *delivery.Delivery
	status   string
	err      error
}

func (m DeliveryModel) actionCmd(status string, apply func() (*delivery.Delivery, error)) tea.Cmd {
	return func() tea.Msg {
		d, err := apply()
		if err != nil {
			return deliveryActionMsg{delivery: m.delivery, err: err}
		}

		return deliveryActionMsg{delivery: d, status: status}
	}
}
