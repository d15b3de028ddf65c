// Package plancsv parses milestone plan spreadsheets exported as CSV.
//
// Expected columns: milestone, amount, due date, phase, phase order,
// deliverable. Rows are grouped top-down: a blank milestone cell continues
// the previous milestone, a blank phase cell continues the previous phase,
// and each non-blank deliverable cell adds one checklist item.
package plancsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/lbastos/worklane/internal/encoding"
	"github.com/lbastos/worklane/internal/importer"
	"github.com/lbastos/worklane/internal/workflow"
)

const (
	colMilestone   = "milestone"
	colAmount      = "amount"
	colDueDate     = "due date"
	colPhase       = "phase"
	colPhaseOrder  = "phase order"
	colDeliverable = "deliverable"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]importer.PlanMilestone, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if headerIdx == -1 {
		return nil, workflow.Validation("no plan header found: expected milestone and amount columns")
	}

	return parseRows(cols, rows[headerIdx+1:])
}

// detectHeader scans rows for one that names at least the milestone and
// amount columns. Spreadsheet exports often carry title rows above the
// header, so the first rows are not trusted blindly.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := colIndex{}

		for i, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case colMilestone, colAmount, colDueDate, colPhase, colPhaseOrder, colDeliverable:
				cols[strings.ToLower(strings.TrimSpace(cell))] = i
			}
		}

		_, hasMilestone := cols[colMilestone]
		_, hasAmount := cols[colAmount]

		if hasMilestone && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, -1
}

func parseRows(cols colIndex, rows [][]string) ([]importer.PlanMilestone, error) {
	var plan []importer.PlanMilestone

	var (
		current      *importer.PlanMilestone
		currentPhase *importer.PlanPhase
	)

	for i, row := range rows {
		line := i + 2 // 1-based, after the header

		title := cell(row, cols, colMilestone)
		if title != "" {
			amount, err := parseAmount(cell(row, cols, colAmount))
			if err != nil {
				return nil, workflow.Validation("line %d: invalid amount: %v", line, err)
			}

			if amount <= 0 {
				return nil, workflow.Validation("line %d: milestone amount must be positive", line)
			}

			dueDate, err := parseDate(cell(row, cols, colDueDate))
			if err != nil {
				return nil, workflow.Validation("line %d: invalid due date: %v", line, err)
			}

			plan = append(plan, importer.PlanMilestone{
				Title:   title,
				Amount:  amount,
				DueDate: dueDate,
			})
			current = &plan[len(plan)-1]
			currentPhase = nil
		}

		phaseName := cell(row, cols, colPhase)
		if phaseName != "" {
			if current == nil {
				return nil, workflow.Validation("line %d: phase %q has no milestone", line, phaseName)
			}

			order, err := parseOrder(cell(row, cols, colPhaseOrder), len(current.Phases)+1)
			if err != nil {
				return nil, workflow.Validation("line %d: invalid phase order: %v", line, err)
			}

			for _, existing := range current.Phases {
				if existing.Order == order {
					return nil, workflow.Validation("line %d: duplicate phase order %d in milestone %q", line, order, current.Title)
				}
			}

			current.Phases = append(current.Phases, importer.PlanPhase{
				Name:  phaseName,
				Order: order,
			})
			currentPhase = &current.Phases[len(current.Phases)-1]
		}

		if deliverable := cell(row, cols, colDeliverable); deliverable != "" {
			if currentPhase == nil {
				return nil, workflow.Validation("line %d: deliverable %q has no phase", line, deliverable)
			}

			currentPhase.Deliverables = append(currentPhase.Deliverables, deliverable)
		}
	}

	return plan, nil
}

func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// parseOrder falls back to the next sequential order when the cell is blank.
func parseOrder(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}

	return strconv.Atoi(s)
}

var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("due date is required")
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
