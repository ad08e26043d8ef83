package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TradeMessage represents one raw enhanced TRACE report message as stored
// in the trace_messages table. A message is either an original trade report
// or a follow-up (correction, cancellation, reversal) that references an
// earlier message.
//
// Records are immutable once fetched: the reconciliation engine never
// mutates a message, it only decides which messages survive.
//
// Column mapping (source column → model field):
//
//	 cusip_id        → CUSIP (9-char instrument identifier)
//	 msg_seq_nb      → MessageSeq (unique per CUSIP+execution date pre-cutover,
//	                   per CUSIP post-cutover)
//	 orig_msg_seq_nb → OrigMessageSeq (sequence of the superseded message, if any)
//	 trc_st          → StatusCode (era-specific code, e.g. T/W/C pre, T/R/X/C/Y post)
//	 entrd_vol_qt    → Volume (par value traded)
//	 rptd_pr         → Price
//	 yld_pt          → Yield (optional)
//	 rpt_side_cd     → Side (B or S)
//	 cntra_mp_id     → Counterparty (C customer, D dealer)
//	 trd_exctn_dt/tm → ExecutionDate / ExecutionTime
//	 trd_rpt_dt/tm   → ReportDate / ReportTime
//	 stlmnt_dt       → SettlementDate (zero value when absent)
//	 days_to_sttl_ct → DaysToSettle (reported settlement days, optional)
//	 asof_cd         → AsOfCode (empty when absent)
//	 wis_fl          → WhenIssued (Y/N)
//	 spcl_trd_fl     → SpecialCondition (empty when absent)
type TradeMessage struct {
	CUSIP            string
	MessageSeq       int64
	OrigMessageSeq   sql.NullInt64
	StatusCode       string
	Volume           decimal.Decimal
	Price            decimal.Decimal
	Yield            decimal.NullDecimal
	Side             string
	Counterparty     string
	ExecutionDate    time.Time
	ExecutionTime    time.Time
	ReportDate       time.Time
	ReportTime       time.Time
	SettlementDate   time.Time
	DaysToSettle     sql.NullInt64
	AsOfCode         string
	WhenIssued       string
	SpecialCondition string
}
