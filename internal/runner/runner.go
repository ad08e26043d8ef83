// Package runner orchestrates reconciliation runs: it validates the
// requested window, partitions the CUSIP universe into batches, and
// reconciles the batches concurrently, persisting clean trades and a
// ledger entry per batch.
package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tracepulse/internal/domain/models"
	"github.com/guttosm/tracepulse/internal/logger"
	"github.com/guttosm/tracepulse/internal/reconcile"
	"github.com/guttosm/tracepulse/internal/storage"
)

const (
	dateLayout = "2006-01-02"

	// maxParallelCap bounds the number of concurrent batch workers.
	maxParallelCap = 8
)

// earliestSupported is the first date the message source carries data
// for. Windows starting before it cannot be served.
var earliestSupported = time.Date(2002, time.July, 1, 0, 0, 0, 0, time.UTC)

// Precondition errors returned by Run before any work starts.
var (
	ErrNoCusips     = errors.New("cusip set is empty")
	ErrBadWindow    = errors.New("start date must be before end date")
	ErrWindowEarly  = errors.New("start date precedes the earliest supported source date (2002-07-01)")
	ErrWindowFuture = errors.New("end date is in the future")
	ErrNoCutover    = errors.New("regime cutover date is not configured")
)

// Constructor indirection so tests can substitute fakes.
var (
	messagesRepoCtor = func(db *sql.DB) storage.MessagesRepository {
		return storage.NewMessagesRepository(db)
	}
	tradesRepoCtor = func(db *sql.DB) storage.CleanTradesRepository {
		return storage.NewCleanTradesRepository(db)
	}
	newRunID = uuid.NewString
)

// Options configures a reconciliation run.
type Options struct {
	Cusips    []string
	StartDate time.Time
	EndDate   time.Time
	Cutover   time.Time
	BatchSize int
	Parallel  int
	Force     bool
}

// Run reconciles the requested CUSIPs over the requested window.
//
// The universe is partitioned into batches (Options.BatchSize, default
// DefaultBatchSize) and each batch is processed independently: fetch
// raw messages, resolve them through the reconciliation engine, insert
// the surviving clean trades, and record the batch in the
// reconciliation ledger. Batches already present in the ledger are
// skipped unless Options.Force is set, in which case their previous
// output is deleted and rebuilt.
func Run(ctx context.Context, db *sql.DB, opts Options) error {
	if err := validate(db, opts); err != nil {
		return err
	}

	msgRepo := messagesRepoCtor(db)
	tradeRepo := tradesRepoCtor(db)
	engine := reconcile.New(opts.Cutover)

	batches := Partition(opts.Cusips, opts.BatchSize)
	maxParallel := parallelism(opts.Parallel)

	log := logger.With("runner")
	log.Info().
		Int("cusips", len(opts.Cusips)).
		Int("batches", len(batches)).
		Int("max_parallel", maxParallel).
		Str("start", opts.StartDate.Format(dateLayout)).
		Str("end", opts.EndDate.Format(dateLayout)).
		Bool("force", opts.Force).
		Msg("Reconciliation run starting")

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, batch := range batches {
		idx := i + 1
		cusips := batch

		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			return runBatch(gctx, idx, len(batches), engine, msgRepo, tradeRepo, cusips, opts)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Int("batches", len(batches)).Msg("Reconciliation run finished")
	return nil
}

// runBatch reconciles a single batch end to end.
func runBatch(
	ctx context.Context,
	idx, total int,
	engine *reconcile.Engine,
	msgRepo storage.MessagesRepository,
	tradeRepo storage.CleanTradesRepository,
	cusips []string,
	opts Options,
) error {
	started := time.Now()
	key := batchKey(cusips, opts.StartDate, opts.EndDate)
	log := logger.With("runner")

	exists, err := tradeRepo.HasReconciliationForBatch(key)
	if err != nil {
		return fmt.Errorf("batch %d/%d: checking reconciliation ledger: %w", idx, total, err)
	}
	if exists && !opts.Force {
		log.Info().
			Int("batch", idx).
			Int("total", total).
			Str("batch_key", key).
			Msg("Batch already reconciled, skipping")
		return nil
	}
	if exists {
		if err := tradeRepo.DeleteCleanTrades(cusips, opts.StartDate, opts.EndDate); err != nil {
			return fmt.Errorf("batch %d/%d: deleting previous output: %w", idx, total, err)
		}
	}

	msgs, err := msgRepo.FetchMessages(ctx, cusips, opts.StartDate, opts.EndDate)
	if err != nil {
		return fmt.Errorf("batch %d/%d: fetching messages: %w", idx, total, err)
	}

	trades, report := engine.Run(msgs)

	if len(trades) > 0 {
		if err := tradeRepo.InsertCleanTradesBatch(trades); err != nil {
			return fmt.Errorf("batch %d/%d: inserting clean trades: %w", idx, total, err)
		}
	}

	rec := models.ReconciliationRecord{
		BatchKey:     key,
		RunID:        newRunID(),
		CusipCount:   len(cusips),
		StartDate:    opts.StartDate,
		EndDate:      opts.EndDate,
		MessageCount: report.InputMessages,
		TradeCount:   report.CleanTrades,
		AnomalyCount: report.Anomalies(),
	}
	if err := tradeRepo.UpsertReconciliationLog(rec); err != nil {
		return fmt.Errorf("batch %d/%d: recording reconciliation: %w", idx, total, err)
	}

	log.Info().
		Int("batch", idx).
		Int("total", total).
		Int("messages", report.InputMessages).
		Int("trades", report.CleanTrades).
		Int("anomalies", report.Anomalies()).
		Dur("elapsed", time.Since(started)).
		Msg("Batch reconciled")

	if report.Anomalies() > 0 {
		log.Warn().
			Int("batch", idx).
			Int("unknown_status_codes", report.UnknownStatusCodes).
			Int("dangling_cancellations", report.DanglingCancellations).
			Int("multi_match_cancellations", report.MultiMatchCancellations).
			Int("dangling_corrections", report.DanglingCorrections).
			Int("dangling_reversals", report.DanglingReversals).
			Msg("Batch reported data anomalies")
	}
	return nil
}

// validate checks the run preconditions in order; the first violation
// wins.
func validate(db *sql.DB, opts Options) error {
	if len(opts.Cusips) == 0 {
		return ErrNoCusips
	}
	if !opts.StartDate.Before(opts.EndDate) {
		return ErrBadWindow
	}
	if opts.StartDate.Before(earliestSupported) {
		return ErrWindowEarly
	}
	if opts.EndDate.After(time.Now()) {
		return ErrWindowFuture
	}
	if opts.Cutover.IsZero() {
		return ErrNoCutover
	}
	if db == nil {
		return errors.New("database handle is nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database is not reachable: %w", err)
	}
	return nil
}

// parallelism resolves the worker count: an explicit request is clamped
// to [1, maxParallelCap]; otherwise the default is min(NumCPU, cap).
func parallelism(requested int) int {
	if requested > 0 {
		if requested > maxParallelCap {
			return maxParallelCap
		}
		return requested
	}
	if n := runtime.NumCPU(); n < maxParallelCap {
		return n
	}
	return maxParallelCap
}
