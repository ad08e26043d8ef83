package reconcile

import (
	"sort"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

// formatOutput sorts the survivors by (security, execution date,
// execution time) ascending, with sequence as the final tie-break for
// a stable result, and projects them onto the clean-trade schema. The
// execution time is normalized to HH:MM:SS.
func formatOutput(trades []models.TradeMessage) []models.CleanTrade {
	sort.Slice(trades, func(i, j int) bool {
		a, b := trades[i], trades[j]
		if a.CUSIP != b.CUSIP {
			return a.CUSIP < b.CUSIP
		}
		if !a.ExecutionDate.Equal(b.ExecutionDate) {
			return a.ExecutionDate.Before(b.ExecutionDate)
		}
		if !a.ExecutionTime.Equal(b.ExecutionTime) {
			return a.ExecutionTime.Before(b.ExecutionTime)
		}
		return a.MessageSeq < b.MessageSeq
	})

	out := make([]models.CleanTrade, 0, len(trades))
	for _, m := range trades {
		out = append(out, models.CleanTrade{
			CUSIP:         m.CUSIP,
			MessageSeq:    m.MessageSeq,
			ExecutionDate: m.ExecutionDate,
			ExecutionTime: m.ExecutionTime.Format(timeKeyLayout),
			Price:         m.Price,
			Yield:         m.Yield,
			Volume:        m.Volume,
			Side:          m.Side,
			Counterparty:  m.Counterparty,
		})
	}
	return out
}
