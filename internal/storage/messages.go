package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

// MessagesRepository reads raw TRACE messages for the engine. It
// performs no business logic: every keep/drop decision belongs to the
// reconciliation pipeline.
type MessagesRepository interface {
	FetchMessages(ctx context.Context, cusips []string, start, end time.Time) ([]models.TradeMessage, error)
}

type messagesRepository struct {
	db *sql.DB
}

func NewMessagesRepository(db *sql.DB) MessagesRepository {
	return &messagesRepository{db: db}
}

const fetchMessagesQuery = `
	SELECT cusip_id, msg_seq_nb, orig_msg_seq_nb, trc_st,
	       entrd_vol_qt, rptd_pr, yld_pt, rpt_side_cd, cntra_mp_id,
	       trd_exctn_dt, trd_exctn_tm, trd_rpt_dt, trd_rpt_tm,
	       stlmnt_dt, days_to_sttl_ct, asof_cd, wis_fl, spcl_trd_fl
	FROM trace_messages
	WHERE cusip_id = ANY($1)
	  AND trd_exctn_dt >= $2
	  AND trd_exctn_dt <= $3
	ORDER BY cusip_id, trd_exctn_dt, msg_seq_nb`

// FetchMessages returns every message for the given CUSIPs whose trade
// executed inside [start, end]. Follow-up messages restate the
// execution date of the report they refer to, so filtering on the
// execution date keeps message families together.
func (r *messagesRepository) FetchMessages(ctx context.Context, cusips []string, start, end time.Time) ([]models.TradeMessage, error) {
	rows, err := r.db.QueryContext(ctx, fetchMessagesQuery, pq.Array(cusips), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.TradeMessage
	for rows.Next() {
		var (
			m          models.TradeMessage
			execTime   sql.NullString
			reportTime sql.NullString
			settlement sql.NullTime
			asOf       sql.NullString
			whenIssued sql.NullString
			special    sql.NullString
		)
		if err := rows.Scan(
			&m.CUSIP, &m.MessageSeq, &m.OrigMessageSeq, &m.StatusCode,
			&m.Volume, &m.Price, &m.Yield, &m.Side, &m.Counterparty,
			&m.ExecutionDate, &execTime, &m.ReportDate, &reportTime,
			&settlement, &m.DaysToSettle, &asOf, &whenIssued, &special,
		); err != nil {
			return nil, err
		}
		if m.ExecutionTime, err = parseClock(execTime); err != nil {
			return nil, err
		}
		if m.ReportTime, err = parseClock(reportTime); err != nil {
			return nil, err
		}
		if settlement.Valid {
			m.SettlementDate = settlement.Time
		}
		m.AsOfCode = asOf.String
		m.WhenIssued = whenIssued.String
		m.SpecialCondition = special.String
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// parseClock converts a TIME column's textual form into a clock-only
// time.Time. NULL maps to the zero value.
func parseClock(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("15:04:05.999999", s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time value %q: %w", s.String, err)
	}
	return t, nil
}
