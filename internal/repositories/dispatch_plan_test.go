package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomward0606/StockSystem/internal/models"
)

func line(id, quantity, sent int, backOrder bool) *models.OrderLine {
	return &models.OrderLine{
		ID:           id,
		PartNumber:   "P" + string(rune('0'+id)),
		Quantity:     quantity,
		QuantitySent: sent,
		BackOrder:    backOrder,
	}
}

func TestPlanDispatchAcceptsWithinRemaining(t *testing.T) {
	outstanding := []*models.OrderLine{line(1, 10, 0, false)}

	plan := planDispatch(outstanding, map[int]int{1: 4}, nil)

	require.Len(t, plan.Sends, 1)
	assert.Equal(t, 4, plan.Sends[0].Qty)
	assert.Equal(t, models.OutcomeDispatched, plan.outcome())
}

func TestPlanDispatchSkipsOutOfRangeQuantities(t *testing.T) {
	tests := []struct {
		name string
		qty  int
	}{
		{"zero", 0},
		{"negative", -3},
		{"exceeds remaining", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// remaining = 6
			outstanding := []*models.OrderLine{line(1, 10, 4, false)}

			plan := planDispatch(outstanding, map[int]int{1: tt.qty}, nil)

			assert.Empty(t, plan.Sends)
			assert.Equal(t, models.OutcomeNoOp, plan.outcome())
		})
	}
}

// Scenario from the dispatch rules: requested=10, sent=0; send 4, then try 7
// against remaining 6.
func TestPlanDispatchPartialThenOverRequest(t *testing.T) {
	l := line(1, 10, 0, false)

	plan := planDispatch([]*models.OrderLine{l}, map[int]int{1: 4}, nil)
	require.Len(t, plan.Sends, 1)

	// Simulate the committed increment.
	l.QuantitySent += plan.Sends[0].Qty
	assert.Equal(t, 4, l.QuantitySent)
	assert.Equal(t, 6, l.Remaining())

	plan = planDispatch([]*models.OrderLine{l}, map[int]int{1: 7}, nil)
	assert.Empty(t, plan.Sends)
	assert.Equal(t, models.OutcomeNoOp, plan.outcome())
	assert.Equal(t, 4, l.QuantitySent)
}

func TestPlanDispatchSendingExactRemainingIsAccepted(t *testing.T) {
	outstanding := []*models.OrderLine{line(1, 10, 4, false)}

	plan := planDispatch(outstanding, map[int]int{1: 6}, nil)

	require.Len(t, plan.Sends, 1)
	assert.Equal(t, 6, plan.Sends[0].Qty)
}

func TestPlanDispatchFlagChangesAreIndependentOfSends(t *testing.T) {
	outstanding := []*models.OrderLine{
		line(1, 5, 0, false),
		line(2, 5, 0, true),
	}

	// Line 1: rejected send but a real flag change. Line 2: flag already set.
	plan := planDispatch(outstanding,
		map[int]int{1: 99},
		map[int]bool{1: true, 2: true},
	)

	assert.Empty(t, plan.Sends)
	require.Len(t, plan.Flags, 1)
	assert.Equal(t, 1, plan.Flags[0].LineID)
	assert.True(t, plan.Flags[0].Flag)
	assert.Equal(t, models.OutcomeFlagsUpdated, plan.outcome())
}

func TestPlanDispatchUnchangedFlagIsNotRecorded(t *testing.T) {
	outstanding := []*models.OrderLine{line(1, 5, 0, true)}

	plan := planDispatch(outstanding, nil, map[int]bool{1: true})

	assert.Empty(t, plan.Flags)
	assert.Equal(t, models.OutcomeNoOp, plan.outcome())
}

func TestPlanDispatchIgnoresLinesOutsideOutstandingSet(t *testing.T) {
	outstanding := []*models.OrderLine{line(1, 5, 0, false)}

	// Line 99 is not in the outstanding set; both its send and flag update
	// are ignored.
	plan := planDispatch(outstanding, map[int]int{99: 2}, map[int]bool{99: true})

	assert.Empty(t, plan.Sends)
	assert.Empty(t, plan.Flags)
}

func TestPlanDispatchPreservesSubmissionOrder(t *testing.T) {
	outstanding := []*models.OrderLine{
		line(1, 5, 0, false),
		line(2, 5, 0, false),
		line(3, 5, 0, false),
	}

	plan := planDispatch(outstanding, map[int]int{3: 1, 1: 2, 2: 3}, nil)

	require.Len(t, plan.Sends, 3)
	assert.Equal(t, 1, plan.Sends[0].Line.ID)
	assert.Equal(t, 2, plan.Sends[1].Line.ID)
	assert.Equal(t, 3, plan.Sends[2].Line.ID)
}

func TestPlanDispatchMixedSendAndFlags(t *testing.T) {
	outstanding := []*models.OrderLine{
		line(1, 10, 0, false),
		line(2, 10, 9, false),
	}

	plan := planDispatch(outstanding,
		map[int]int{1: 5, 2: 2}, // line 2 exceeds remaining 1
		map[int]bool{2: true},
	)

	require.Len(t, plan.Sends, 1)
	assert.Equal(t, 1, plan.Sends[0].Line.ID)
	require.Len(t, plan.Flags, 1)
	assert.Equal(t, 2, plan.Flags[0].LineID)
	// Any accepted send wins the outcome even when flags changed too.
	assert.Equal(t, models.OutcomeDispatched, plan.outcome())
}
