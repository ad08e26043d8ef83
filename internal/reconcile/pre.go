package reconcile

import (
	"sort"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

// preEraResolver implements the reporting conventions in force before
// the cutover date. Corrections are standalone messages that supersede
// the report they reference and may themselves be corrected later, so
// resolution runs as a fixed-point worklist; cancellations ride the
// same loop because a cancellation may strike a correction that has
// not been promoted yet. Reversals carry no reliable back-reference in
// this era and are matched by group position instead.
type preEraResolver struct{}

// resolveCorrections runs the iterative chain resolution. Each pass
// first applies pending cancellations to the surviving candidates
// (matched on the restated business key plus orig-sequence against the
// candidate's own sequence), then promotes pending corrections whose
// orig-sequence references a surviving candidate within the
// (security, execution date) scope: the referenced candidate is
// removed and the correction joins the candidate set so that
// corrections of corrections resolve on a later pass.
//
// The loop ends when both pending sets are empty or a full pass
// applies nothing. The stagnation guard bounds the loop by the initial
// pending count and keeps malformed cyclic or dangling references from
// spinning; whatever is still pending at exit is reported, never
// applied.
func (preEraResolver) resolveCorrections(era []models.TradeMessage, rep *Report) []models.TradeMessage {
	var candidates, corrections, cancels []models.TradeMessage
	for _, m := range era {
		switch preRole(m.StatusCode) {
		case RoleTrade:
			candidates = append(candidates, m)
		case RoleCorrection:
			if !m.OrigMessageSeq.Valid {
				rep.DanglingCorrections++
				continue
			}
			corrections = append(corrections, m)
		case RoleCancellation:
			if !m.OrigMessageSeq.Valid {
				rep.DanglingCancellations++
				continue
			}
			cancels = append(cancels, m)
		default:
			rep.UnknownStatusCodes++
		}
	}

	for len(corrections) > 0 || len(cancels) > 0 {
		rep.ChainPasses++
		applied := 0

		if len(cancels) > 0 {
			refs := make(map[referenceKey]int, len(cancels))
			for _, c := range cancels {
				refs[referenceKey{businessKeyOf(c), c.OrigMessageSeq.Int64}]++
			}

			matched := make(map[referenceKey]int, len(refs))
			kept := candidates[:0]
			for _, m := range candidates {
				k := referenceKey{businessKeyOf(m), m.MessageSeq}
				if _, ok := refs[k]; ok {
					matched[k]++
					rep.TradesCancelled++
					applied++
					continue
				}
				kept = append(kept, m)
			}
			candidates = kept

			for k := range refs {
				if matched[k] > 1 {
					rep.MultiMatchCancellations++
				}
			}
			pending := cancels[:0]
			for _, c := range cancels {
				if matched[referenceKey{businessKeyOf(c), c.OrigMessageSeq.Int64}] == 0 {
					pending = append(pending, c)
				}
			}
			cancels = pending
		}

		if len(corrections) > 0 {
			live := make(map[chainKey]bool, len(candidates))
			for _, m := range candidates {
				live[chainKeyOf(m)] = true
			}

			applying := make(map[chainKey]bool)
			var promoted []models.TradeMessage
			pending := corrections[:0]
			for _, c := range corrections {
				target := chainKey{
					cusip:    c.CUSIP,
					execDate: c.ExecutionDate.Format(dateKeyLayout),
					seq:      c.OrigMessageSeq.Int64,
				}
				if live[target] {
					applying[target] = true
					promoted = append(promoted, c)
					rep.CorrectionsApplied++
					applied++
					continue
				}
				pending = append(pending, c)
			}
			corrections = pending

			if len(applying) > 0 {
				kept := candidates[:0]
				for _, m := range candidates {
					if applying[chainKeyOf(m)] {
						continue
					}
					kept = append(kept, m)
				}
				candidates = append(kept, promoted...)
			}
		}

		if applied == 0 {
			break
		}
	}

	rep.DanglingCorrections += len(corrections)
	rep.DanglingCancellations += len(cancels)
	return candidates
}

// resolveReversals applies the record-reversal step: within each group
// sharing (security, execution date, volume, price, side,
// counterparty), messages are ordered by execution time, report date,
// report time (sequence breaks residual ties) and numbered 1..n. A
// reversal-flagged message at group position k strikes the k-th
// non-reversal message of the group; every reversal-flagged message is
// then dropped. A position with no non-reversal occupant counts as a
// dangling reversal.
func (preEraResolver) resolveReversals(candidates, _ []models.TradeMessage, rep *Report) []models.TradeMessage {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return lessByGroupOrder(candidates[order[a]], candidates[order[b]])
	})

	type group struct {
		size      int   // joint position counter over all group messages
		members   []int // candidate indexes of non-reversal messages, in order
		reversals []int // joint positions held by reversal-flagged messages
	}
	groups := make(map[groupKey]*group)
	flagged := false
	for _, i := range order {
		m := candidates[i]
		gk := groupKeyOf(m)
		g := groups[gk]
		if g == nil {
			g = &group{}
			groups[gk] = g
		}
		g.size++
		if m.AsOfCode == asOfReversal {
			g.reversals = append(g.reversals, g.size)
			flagged = true
		} else {
			g.members = append(g.members, i)
		}
	}
	if !flagged {
		return candidates
	}

	drop := make(map[int]bool)
	for _, g := range groups {
		for _, pos := range g.reversals {
			if pos >= 1 && pos <= len(g.members) {
				drop[g.members[pos-1]] = true
				rep.TradesReversed++
			} else {
				rep.DanglingReversals++
			}
		}
	}

	kept := make([]models.TradeMessage, 0, len(candidates))
	for i, m := range candidates {
		if m.AsOfCode == asOfReversal || drop[i] {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func lessByGroupOrder(a, b models.TradeMessage) bool {
	if !a.ExecutionTime.Equal(b.ExecutionTime) {
		return a.ExecutionTime.Before(b.ExecutionTime)
	}
	if !a.ReportDate.Equal(b.ReportDate) {
		return a.ReportDate.Before(b.ReportDate)
	}
	if !a.ReportTime.Equal(b.ReportTime) {
		return a.ReportTime.Before(b.ReportTime)
	}
	return a.MessageSeq < b.MessageSeq
}
