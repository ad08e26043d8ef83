package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pq "github.com/lib/pq"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

// CleanTradesRepository owns the engine's output table and the
// reconciliation ledger that makes batch runs idempotent.
type CleanTradesRepository interface {
	InsertCleanTradesBatch(trades []models.CleanTrade) error
	DeleteCleanTrades(cusips []string, start, end time.Time) error
	ListCleanTrades(ctx context.Context, cusip string, start, end *time.Time, limit int) ([]models.CleanTrade, error)
	GetTradeSummary(ctx context.Context, cusip string, start, end *time.Time) (*models.TradeSummary, error)
	HasReconciliationForBatch(batchKey string) (bool, error)
	UpsertReconciliationLog(rec models.ReconciliationRecord) error
}

type cleanTradesRepository struct {
	db *sql.DB
}

func NewCleanTradesRepository(db *sql.DB) CleanTradesRepository {
	return &cleanTradesRepository{db: db}
}

// InsertCleanTradesBatch bulk-loads one batch's output in a single
// transaction.
func (r *cleanTradesRepository) InsertCleanTradesBatch(trades []models.CleanTrade) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"clean_trades",
		"cusip_id",
		"msg_seq_nb",
		"trd_exctn_dt",
		"trd_exctn_tm",
		"rptd_pr",
		"yld_pt",
		"entrd_vol_qt",
		"rpt_side_cd",
		"cntra_mp_id",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range trades {
		if _, err := stmt.Exec(
			rec.CUSIP,
			rec.MessageSeq,
			rec.ExecutionDate,
			rec.ExecutionTime,
			rec.Price,
			rec.Yield,
			rec.Volume,
			rec.Side,
			rec.Counterparty,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// DeleteCleanTrades removes a batch's prior output so a forced rerun
// starts from a blank slate.
func (r *cleanTradesRepository) DeleteCleanTrades(cusips []string, start, end time.Time) error {
	_, err := r.db.Exec(`
		DELETE FROM clean_trades
		WHERE cusip_id = ANY($1)
		  AND trd_exctn_dt >= $2
		  AND trd_exctn_dt <= $3
	`, pq.Array(cusips), start, end)
	return err
}

// ListCleanTrades returns clean trades for one CUSIP, newest window
// limits applied by the caller through the optional dates and limit.
func (r *cleanTradesRepository) ListCleanTrades(ctx context.Context, cusip string, start, end *time.Time, limit int) ([]models.CleanTrade, error) {
	conditions, args := scopeConditions(cusip, start, end)

	query := fmt.Sprintf(`
		SELECT cusip_id, msg_seq_nb, trd_exctn_dt, trd_exctn_tm,
		       rptd_pr, yld_pt, entrd_vol_qt, rpt_side_cd, cntra_mp_id
		FROM clean_trades
		WHERE %s
		ORDER BY trd_exctn_dt, trd_exctn_tm, msg_seq_nb
		LIMIT $%d
	`, conditions, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CleanTrade
	for rows.Next() {
		var tr models.CleanTrade
		if err := rows.Scan(
			&tr.CUSIP, &tr.MessageSeq, &tr.ExecutionDate, &tr.ExecutionTime,
			&tr.Price, &tr.Yield, &tr.Volume, &tr.Side, &tr.Counterparty,
		); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// GetTradeSummary aggregates one CUSIP's clean trades: trade count,
// total volume, max price and the largest single-day volume.
func (r *cleanTradesRepository) GetTradeSummary(ctx context.Context, cusip string, start, end *time.Time) (*models.TradeSummary, error) {
	conditions, args := scopeConditions(cusip, start, end)

	query := fmt.Sprintf(`
		WITH scoped AS (
			SELECT trd_exctn_dt, rptd_pr, entrd_vol_qt
			FROM clean_trades
			WHERE %s
		), daily AS (
			SELECT trd_exctn_dt, SUM(entrd_vol_qt) AS daily_volume
			FROM scoped
			GROUP BY trd_exctn_dt
		)
		SELECT
			(SELECT COUNT(*) FROM scoped) AS trade_count,
			(SELECT COALESCE(SUM(entrd_vol_qt), 0) FROM scoped) AS total_volume,
			(SELECT MAX(rptd_pr) FROM scoped) AS max_price,
			(SELECT MAX(daily_volume) FROM daily) AS max_daily_volume
	`, conditions)

	var (
		count       int64
		totalVolume decimal.Decimal
		maxPrice    decimal.NullDecimal
		maxDaily    decimal.NullDecimal
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count, &totalVolume, &maxPrice, &maxDaily); err != nil {
		return nil, err
	}

	// No rows in range means no summary, not a zeroed one.
	if count == 0 {
		return nil, nil
	}

	return &models.TradeSummary{
		CUSIP:          cusip,
		TradeCount:     count,
		TotalVolume:    totalVolume,
		MaxPrice:       maxPrice.Decimal,
		MaxDailyVolume: maxDaily.Decimal,
	}, nil
}

// HasReconciliationForBatch reports whether a batch key already has a
// ledger entry.
func (r *cleanTradesRepository) HasReconciliationForBatch(batchKey string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM reconciliation_log WHERE batch_key = $1)`, batchKey).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertReconciliationLog records (or refreshes) a batch's ledger
// entry.
func (r *cleanTradesRepository) UpsertReconciliationLog(rec models.ReconciliationRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO reconciliation_log (batch_key, run_id, cusip_count, start_date, end_date, message_count, trade_count, anomaly_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (batch_key)
		DO UPDATE SET run_id = EXCLUDED.run_id,
					  cusip_count = EXCLUDED.cusip_count,
					  start_date = EXCLUDED.start_date,
					  end_date = EXCLUDED.end_date,
					  message_count = EXCLUDED.message_count,
					  trade_count = EXCLUDED.trade_count,
					  anomaly_count = EXCLUDED.anomaly_count,
					  reconciled_at = NOW()
	`, rec.BatchKey, rec.RunID, rec.CusipCount, rec.StartDate, rec.EndDate, rec.MessageCount, rec.TradeCount, rec.AnomalyCount)
	return err
}

// scopeConditions builds the shared WHERE clause for CUSIP-scoped
// queries. $1 is always the CUSIP; date placeholders depend on which
// bounds are set.
func scopeConditions(cusip string, start, end *time.Time) (string, []interface{}) {
	conditions := "cusip_id = $1"
	args := []interface{}{cusip}
	if start != nil {
		conditions += fmt.Sprintf(" AND trd_exctn_dt >= $%d", len(args)+1)
		args = append(args, *start)
	}
	if end != nil {
		conditions += fmt.Sprintf(" AND trd_exctn_dt <= $%d", len(args)+1)
		args = append(args, *end)
	}
	return conditions, args
}
