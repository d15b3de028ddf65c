package plancsv_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbastos/worklane/internal/importer/plancsv"
	"github.com/lbastos/worklane/internal/workflow"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_FullPlan(t *testing.T) {
	csv := `milestone,amount,due date,phase,phase order,deliverable
Design,1500.00,2026-09-15,Research,1,Competitor analysis
,,,,,Moodboard
,,,Mockups,2,Homepage mockup
Development,3000.00,2026-10-30,Build,1,Deployed staging site
`

	p := plancsv.NewParser()
	plan, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, plan, 2)

	design := plan[0]
	assert.Equal(t, "Design", design.Title)
	assert.Equal(t, int64(150000), design.Amount)
	assert.Equal(t, date(2026, 9, 15), design.DueDate)
	require.Len(t, design.Phases, 2)
	assert.Equal(t, "Research", design.Phases[0].Name)
	assert.Equal(t, 1, design.Phases[0].Order)
	assert.Equal(t, []string{"Competitor analysis", "Moodboard"}, design.Phases[0].Deliverables)
	assert.Equal(t, "Mockups", design.Phases[1].Name)
	assert.Equal(t, 2, design.Phases[1].Order)

	dev := plan[1]
	assert.Equal(t, "Development", dev.Title)
	assert.Equal(t, int64(300000), dev.Amount)
	require.Len(t, dev.Phases, 1)
	assert.Equal(t, []string{"Deployed staging site"}, dev.Phases[0].Deliverables)
}

func TestParser_SkipsPreamble(t *testing.T) {
	csv := `Project plan export - 2026-08-31
Client,Acme Corp

milestone,amount,due date,phase,phase order,deliverable
Design,500,2026-09-01,,,
`

	p := plancsv.NewParser()
	plan, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, int64(50000), plan[0].Amount)
	assert.Empty(t, plan[0].Phases)
}

func TestParser_EuropeanAmounts(t *testing.T) {
	csv := `milestone,amount,due date
Design,"1.500,00",15-09-2026
`

	p := plancsv.NewParser()
	plan, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, int64(150000), plan[0].Amount)
	assert.Equal(t, date(2026, 9, 15), plan[0].DueDate)
}

func TestParser_BlankOrderFallsBackToSequence(t *testing.T) {
	csv := `milestone,amount,due date,phase,phase order
Design,500,2026-09-01,Research,
,,,Mockups,
`

	p := plancsv.NewParser()
	plan, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, plan[0].Phases, 2)
	assert.Equal(t, 1, plan[0].Phases[0].Order)
	assert.Equal(t, 2, plan[0].Phases[1].Order)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "NoHeader",
			csv:  "just,some,cells\n1,2,3\n",
		},
		{
			name: "NonPositiveAmount",
			csv:  "milestone,amount,due date\nDesign,0,2026-09-01\n",
		},
		{
			name: "BadAmount",
			csv:  "milestone,amount,due date\nDesign,abc,2026-09-01\n",
		},
		{
			name: "MissingDueDate",
			csv:  "milestone,amount,due date\nDesign,500,\n",
		},
		{
			name: "DuplicatePhaseOrder",
			csv: "milestone,amount,due date,phase,phase order\n" +
				"Design,500,2026-09-01,Research,1\n,,,Mockups,1\n",
		},
		{
			name: "PhaseWithoutMilestone",
			csv:  "milestone,amount,due date,phase,phase order\n,,,Research,1\n",
		},
		{
			name: "DeliverableWithoutPhase",
			csv:  "milestone,amount,due date,phase,phase order,deliverable\nDesign,500,2026-09-01,,,Moodboard\n",
		},
	}

	p := plancsv.NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, workflow.ErrValidation)
		})
	}
}
