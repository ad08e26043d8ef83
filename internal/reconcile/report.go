package reconcile

// Report carries the diagnostic counters for one engine invocation.
// Anomalies are data-quality signals, never failures: a reference that
// matches nothing simply causes no removal, but the source data is
// known to be fragile here and callers want the counts.
type Report struct {
	InputMessages   int
	PreEraMessages  int
	PostEraMessages int

	UnknownStatusCodes int

	TradesCancelled         int
	DanglingCancellations   int
	MultiMatchCancellations int

	CorrectionsApplied  int
	DanglingCorrections int
	ChainPasses         int

	TradesReversed    int
	DanglingReversals int

	AgencyBuysDropped int

	DroppedSettlement       int
	DroppedWhenIssued       int
	DroppedSpecialCondition int
	DroppedAsOf             int

	CleanTrades int
}

// Anomalies sums the data-integrity oddities seen during the run:
// unknown status codes plus cancellation, correction and reversal
// references that matched nothing, and cancellation keys that matched
// more than one surviving record.
func (r *Report) Anomalies() int {
	return r.UnknownStatusCodes +
		r.DanglingCancellations +
		r.MultiMatchCancellations +
		r.DanglingCorrections +
		r.DanglingReversals
}
