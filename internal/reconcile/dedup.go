package reconcile

import (
	"github.com/guttosm/tracepulse/internal/domain/models"
)

// dedupAgency removes the double-count left by riskless-principal
// trades: one economic transaction reported as a customer-side SELL
// and a customer-side BUY. SELL legs are kept unconditionally; a BUY
// leg survives only when no SELL leg shares (security, execution date,
// volume, price). Dealer-side reports are principal trades and pass
// through untouched.
func dedupAgency(trades []models.TradeMessage, rep *Report) []models.TradeMessage {
	sells := make(map[agencyKey]bool)
	for _, m := range trades {
		if m.Counterparty == counterpartyCustomer && m.Side == sideSell {
			sells[agencyKeyOf(m)] = true
		}
	}
	if len(sells) == 0 {
		return trades
	}

	kept := make([]models.TradeMessage, 0, len(trades))
	for _, m := range trades {
		if m.Counterparty == counterpartyCustomer && m.Side == sideBuy && sells[agencyKeyOf(m)] {
			rep.AgencyBuysDropped++
			continue
		}
		kept = append(kept, m)
	}
	return kept
}
