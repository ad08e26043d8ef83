package reconcile

import (
	"github.com/guttosm/tracepulse/internal/domain/models"
)

// filterValid drops records that fail the settlement-window,
// when-issued, special-condition or as-of criteria. The settlement
// bound is checked twice, once against the reported days-to-settle
// field and once against the span between settlement and execution
// dates: either may be populated, and both must independently stay
// inside the window when they are.
func filterValid(trades []models.TradeMessage, rep *Report) []models.TradeMessage {
	kept := make([]models.TradeMessage, 0, len(trades))
	for _, m := range trades {
		switch {
		case !settlementOK(m):
			rep.DroppedSettlement++
		case m.WhenIssued == whenIssuedYes:
			rep.DroppedWhenIssued++
		case m.SpecialCondition != "":
			rep.DroppedSpecialCondition++
		case m.AsOfCode != "":
			rep.DroppedAsOf++
		default:
			kept = append(kept, m)
		}
	}
	return kept
}

func settlementOK(m models.TradeMessage) bool {
	if m.DaysToSettle.Valid && m.DaysToSettle.Int64 > maxSettlementDays {
		return false
	}
	if !m.SettlementDate.IsZero() {
		days := int64(m.SettlementDate.Sub(m.ExecutionDate).Hours() / 24)
		if days > maxSettlementDays {
			return false
		}
	}
	return true
}
