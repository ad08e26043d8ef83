package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CleanTrade is one as-executed trade produced by the reconciliation
// engine: an original report with every correction applied and every
// cancellation, reversal, same-trade duplicate and validity failure
// removed.
//
// ExecutionTime is normalized to HH:MM:SS. MessageSeq carries the
// sequence number of the surviving message so a clean trade can always
// be traced back to the raw report it came from.
type CleanTrade struct {
	CUSIP         string
	MessageSeq    int64
	ExecutionDate time.Time
	ExecutionTime string
	Price         decimal.Decimal
	Yield         decimal.NullDecimal
	Volume        decimal.Decimal
	Side          string
	Counterparty  string
}

// TradeSummary aggregates clean trades for a single CUSIP over a
// reporting window.
//
// Fields:
//   - CUSIP: The instrument the aggregation was computed for.
//   - TradeCount: Number of clean trades in the window.
//   - TotalVolume: Sum of par value traded across the window.
//   - MaxPrice: The highest price observed in the window.
//   - MaxDailyVolume: The largest single-day total par value in the window.
//
// This model backs the /api/v1/trades/summary endpoint.
type TradeSummary struct {
	CUSIP          string
	TradeCount     int64
	TotalVolume    decimal.Decimal
	MaxPrice       decimal.Decimal
	MaxDailyVolume decimal.Decimal
}

// ReconciliationRecord describes one completed reconciliation batch for
// the reconciliation_log table. BatchKey identifies the batch (CUSIP
// set plus date window), RunID the run that produced it.
type ReconciliationRecord struct {
	BatchKey     string
	RunID        string
	CusipCount   int
	StartDate    time.Time
	EndDate      time.Time
	MessageCount int
	TradeCount   int
	AnomalyCount int
}
