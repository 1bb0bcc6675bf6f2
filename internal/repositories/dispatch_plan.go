package repositories

import "github.com/tomward0606/StockSystem/internal/models"

// plannedSend is one accepted per-line send.
type plannedSend struct {
	Line *models.OrderLine
	Qty  int
}

// plannedFlag is one back-order flag change.
type plannedFlag struct {
	LineID int
	Flag   bool
}

// dispatchPlan is what a dispatch transaction will commit: accepted sends
// and flag changes, in line submission order.
type dispatchPlan struct {
	Sends []plannedSend
	Flags []plannedFlag
}

// planDispatch applies the reconciliation rules to the engineer's
// outstanding lines. A requested quantity is accepted only when
// 0 < q <= remaining; anything else is silently skipped for that line,
// since there is nothing valid to send. Flag updates are independent of
// send acceptance and only recorded when they actually change the line.
//
// The caller must hold row locks on the outstanding lines so remaining
// cannot move between planning and commit.
func planDispatch(outstanding []*models.OrderLine, send map[int]int, flags map[int]bool) dispatchPlan {
	var plan dispatchPlan

	for _, line := range outstanding {
		if q, ok := send[line.ID]; ok {
			if q > 0 && q <= line.Remaining() {
				plan.Sends = append(plan.Sends, plannedSend{Line: line, Qty: q})
			}
		}

		if desired, ok := flags[line.ID]; ok && desired != line.BackOrder {
			plan.Flags = append(plan.Flags, plannedFlag{LineID: line.ID, Flag: desired})
		}
	}

	return plan
}

// outcome reports which of the three commit paths the plan takes.
func (p dispatchPlan) outcome() models.DispatchOutcome {
	switch {
	case len(p.Sends) > 0:
		return models.OutcomeDispatched
	case len(p.Flags) > 0:
		return models.OutcomeFlagsUpdated
	default:
		return models.OutcomeNoOp
	}
}
