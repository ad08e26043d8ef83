package reconcile

import (
	"github.com/guttosm/tracepulse/internal/domain/models"
)

const (
	dateKeyLayout = "2006-01-02"
	timeKeyLayout = "15:04:05"
)

// businessKey is the economic fingerprint of a trade report: every
// field a cancellation restates when it strikes a trade, deliberately
// without sequence numbers. Dates and times are formatted and decimals
// rendered through String(), which trims trailing zeros, so values
// compare equal regardless of source scale or time.Time internals.
type businessKey struct {
	cusip    string
	volume   string
	price    string
	side     string
	cpty     string
	execDate string
	execTime string
}

func businessKeyOf(m models.TradeMessage) businessKey {
	return businessKey{
		cusip:    m.CUSIP,
		volume:   m.Volume.String(),
		price:    m.Price.String(),
		side:     m.Side,
		cpty:     m.Counterparty,
		execDate: m.ExecutionDate.Format(dateKeyLayout),
		execTime: m.ExecutionTime.Format(timeKeyLayout),
	}
}

// referenceKey ties a business key to a sequence number: the trade's
// own sequence on one side of the join, the orig-sequence reference
// carried by a cancellation or reversal on the other.
type referenceKey struct {
	businessKey
	seq int64
}

// chainKey identifies a message inside the pre-cutover sequence
// uniqueness scope (security + execution date). Correction chains join
// on it alone: a correction restates the economics, so the business
// key of the original cannot participate.
type chainKey struct {
	cusip    string
	execDate string
	seq      int64
}

func chainKeyOf(m models.TradeMessage) chainKey {
	return chainKey{
		cusip:    m.CUSIP,
		execDate: m.ExecutionDate.Format(dateKeyLayout),
		seq:      m.MessageSeq,
	}
}

// groupKey buckets messages sharing everything but execution time.
// Pre-cutover reversal positions are assigned within these groups.
type groupKey struct {
	cusip    string
	execDate string
	volume   string
	price    string
	side     string
	cpty     string
}

func groupKeyOf(m models.TradeMessage) groupKey {
	return groupKey{
		cusip:    m.CUSIP,
		execDate: m.ExecutionDate.Format(dateKeyLayout),
		volume:   m.Volume.String(),
		price:    m.Price.String(),
		side:     m.Side,
		cpty:     m.Counterparty,
	}
}

// agencyKey matches the two customer legs of a riskless-principal
// pair.
type agencyKey struct {
	cusip    string
	execDate string
	volume   string
	price    string
}

func agencyKeyOf(m models.TradeMessage) agencyKey {
	return agencyKey{
		cusip:    m.CUSIP,
		execDate: m.ExecutionDate.Format(dateKeyLayout),
		volume:   m.Volume.String(),
		price:    m.Price.String(),
	}
}
