package reconcile

import (
	"github.com/guttosm/tracepulse/internal/domain/models"
)

// postEraResolver implements the reporting conventions in force from
// the cutover date onward. Corrections arrive as replacement reports
// (the superseded original is struck by its own cancellation record),
// so correction and cancellation resolution collapse into one
// presence-based anti-join, and reversals carry a reliable sequence
// reference back to the trade they undo.
type postEraResolver struct{}

// resolveCorrections keeps the trade-role and correction-role messages
// that no cancellation or correction-cancellation matches. The match
// key is the business key alone: cancellations restate the trade's
// economics rather than always referencing it by sequence. Removal is
// presence-based set subtraction, not 1:1 pairing.
func (postEraResolver) resolveCorrections(era []models.TradeMessage, rep *Report) []models.TradeMessage {
	var candidates []models.TradeMessage
	cancels := make(map[businessKey]int)
	for _, m := range era {
		switch postRole(m.StatusCode) {
		case RoleTrade, RoleCorrection:
			candidates = append(candidates, m)
		case RoleCancellation, RoleCorrectionCancellation:
			cancels[businessKeyOf(m)]++
		case RoleReversal:
			// Picked up by resolveReversals.
		default:
			rep.UnknownStatusCodes++
		}
	}
	if len(cancels) == 0 {
		return candidates
	}

	matched := make(map[businessKey]int, len(cancels))
	kept := make([]models.TradeMessage, 0, len(candidates))
	for _, m := range candidates {
		k := businessKeyOf(m)
		if _, ok := cancels[k]; ok {
			matched[k]++
			rep.TradesCancelled++
			continue
		}
		kept = append(kept, m)
	}
	for k, n := range cancels {
		switch hits := matched[k]; {
		case hits == 0:
			rep.DanglingCancellations += n
		case hits > 1:
			rep.MultiMatchCancellations++
		}
	}
	return kept
}

// resolveReversals removes every candidate a reversal message points
// at: the reversal's orig sequence must equal the candidate's own
// sequence and the business keys must agree. Reversals whose reference
// is absent or matches nothing are counted, not applied.
func (postEraResolver) resolveReversals(candidates, era []models.TradeMessage, rep *Report) []models.TradeMessage {
	reversals := make(map[referenceKey]int)
	for _, m := range era {
		if postRole(m.StatusCode) != RoleReversal {
			continue
		}
		if !m.OrigMessageSeq.Valid {
			rep.DanglingReversals++
			continue
		}
		reversals[referenceKey{businessKeyOf(m), m.OrigMessageSeq.Int64}]++
	}
	if len(reversals) == 0 {
		return candidates
	}

	matched := make(map[referenceKey]int, len(reversals))
	kept := make([]models.TradeMessage, 0, len(candidates))
	for _, m := range candidates {
		k := referenceKey{businessKeyOf(m), m.MessageSeq}
		if _, ok := reversals[k]; ok {
			matched[k]++
			rep.TradesReversed++
			continue
		}
		kept = append(kept, m)
	}
	for k, n := range reversals {
		if matched[k] == 0 {
			rep.DanglingReversals += n
		}
	}
	return kept
}
