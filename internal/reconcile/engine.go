// Package reconcile resolves a raw stream of enhanced TRACE bond-trade
// messages into the set of trades that actually executed. Each message
// is a trade report, correction, cancellation or reversal; the engine
// applies corrections, strikes cancelled and reversed reports, removes
// the duplicate leg of riskless-principal pairs and drops records that
// fail validity checks.
//
// Reporting conventions changed on a fixed cutover date, so messages
// are split into two eras and each era is resolved by its own rule
// set. The engine is a pure function of its input and the cutover
// date: it keeps no state between invocations and never mutates the
// messages it is given, it only decides which survive.
package reconcile

import (
	"time"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

// eraResolver is one era's rule set. resolveCorrections takes the full
// era partition and returns the trade-role messages surviving
// correction and cancellation matching; resolveReversals removes
// reversed trades from those survivors, consulting the era partition
// again for reversal messages that are not themselves candidates.
type eraResolver interface {
	resolveCorrections(era []models.TradeMessage, rep *Report) []models.TradeMessage
	resolveReversals(candidates, era []models.TradeMessage, rep *Report) []models.TradeMessage
}

// Engine reconciles raw trade messages. Construct once per cutover
// date with New; Run may be called any number of times and from
// independent goroutines, each invocation is self-contained.
type Engine struct {
	cutover time.Time
}

// New returns an Engine that splits eras at the given cutover date.
func New(cutover time.Time) *Engine {
	return &Engine{cutover: cutover}
}

// Run resolves msgs into clean trades and reports what happened along
// the way. The input is treated as read-only; output is always
// complete, never partial: anomalies in the data reduce to counters on
// the report, not errors.
func (e *Engine) Run(msgs []models.TradeMessage) ([]models.CleanTrade, *Report) {
	rep := &Report{InputMessages: len(msgs)}

	pre, post := splitByRegime(msgs, e.cutover)
	rep.PreEraMessages = len(pre)
	rep.PostEraMessages = len(post)

	eras := []struct {
		resolver eraResolver
		msgs     []models.TradeMessage
	}{
		{preEraResolver{}, pre},
		{postEraResolver{}, post},
	}

	var survivors []models.TradeMessage
	for _, era := range eras {
		kept := era.resolver.resolveCorrections(era.msgs, rep)
		kept = era.resolver.resolveReversals(kept, era.msgs, rep)
		survivors = append(survivors, kept...)
	}

	survivors = dedupAgency(survivors, rep)
	survivors = filterValid(survivors, rep)

	out := formatOutput(survivors)
	rep.CleanTrades = len(out)
	return out, rep
}
