package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

type stubRepo struct {
	trades  []models.CleanTrade
	summary *models.TradeSummary
	err     error
}

func (s *stubRepo) InsertCleanTradesBatch(_ []models.CleanTrade) error           { return nil }
func (s *stubRepo) DeleteCleanTrades(_ []string, _ time.Time, _ time.Time) error { return nil }
func (s *stubRepo) ListCleanTrades(_ context.Context, _ string, _ *time.Time, _ *time.Time, _ int) ([]models.CleanTrade, error) {
	return s.trades, s.err
}
func (s *stubRepo) GetTradeSummary(_ context.Context, _ string, _ *time.Time, _ *time.Time) (*models.TradeSummary, error) {
	return s.summary, s.err
}
func (s *stubRepo) HasReconciliationForBatch(_ string) (bool, error)          { return false, nil }
func (s *stubRepo) UpsertReconciliationLog(_ models.ReconciliationRecord) error { return nil }

func TestTradeQueryService_ListTrades(t *testing.T) {
	cases := []struct {
		name    string
		repo    *stubRepo
		wantLen int
		wantErr bool
	}{
		{
			name: "success",
			repo: &stubRepo{trades: []models.CleanTrade{
				{CUSIP: "594918AB5", MessageSeq: 1, Price: decimal.NewFromFloat(99.5)},
				{CUSIP: "594918AB5", MessageSeq: 2, Price: decimal.NewFromFloat(99.75)},
			}},
			wantLen: 2,
		},
		{
			name:    "error",
			repo:    &stubRepo{err: errors.New("boom")},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTradeQueryService(tc.repo)
			out, err := svc.ListTrades(context.Background(), "594918AB5", nil, nil, 100)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got out=%+v", out)
				}
				return
			}
			if err != nil || len(out) != tc.wantLen {
				t.Fatalf("unexpected: out=%+v err=%v", out, err)
			}
		})
	}
}

func TestTradeQueryService_GetTradeSummary(t *testing.T) {
	cases := []struct {
		name    string
		repo    *stubRepo
		wantNil bool
		wantErr bool
	}{
		{
			name: "success",
			repo: &stubRepo{summary: &models.TradeSummary{
				CUSIP:          "594918AB5",
				TradeCount:     4,
				TotalVolume:    decimal.NewFromInt(450000),
				MaxPrice:       decimal.NewFromFloat(102),
				MaxDailyVolume: decimal.NewFromInt(200000),
			}},
		},
		{
			name:    "no data",
			repo:    &stubRepo{},
			wantNil: true,
		},
		{
			name:    "error",
			repo:    &stubRepo{err: errors.New("boom")},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTradeQueryService(tc.repo)
			out, err := svc.GetTradeSummary(context.Background(), "594918AB5", nil, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got out=%+v", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantNil != (out == nil) {
				t.Fatalf("nil mismatch: out=%+v", out)
			}
			if out != nil && out.TradeCount != 4 {
				t.Fatalf("trade count: got %d", out.TradeCount)
			}
		})
	}
}
