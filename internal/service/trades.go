package service

import (
	"context"
	"time"

	"github.com/guttosm/tracepulse/internal/domain/models"
	"github.com/guttosm/tracepulse/internal/storage"
)

// TradeQueryService defines the read-side business logic over
// reconciled trades.
type TradeQueryService interface {
	ListTrades(ctx context.Context, cusip string, startDate *time.Time, endDate *time.Time, limit int) ([]models.CleanTrade, error)
	GetTradeSummary(ctx context.Context, cusip string, startDate *time.Time, endDate *time.Time) (*models.TradeSummary, error)
}

type tradeQueryService struct {
	repo storage.CleanTradesRepository
}

func NewTradeQueryService(repo storage.CleanTradesRepository) TradeQueryService {
	return &tradeQueryService{repo: repo}
}

func (s *tradeQueryService) ListTrades(ctx context.Context, cusip string, startDate *time.Time, endDate *time.Time, limit int) ([]models.CleanTrade, error) {
	return s.repo.ListCleanTrades(ctx, cusip, startDate, endDate, limit)
}

func (s *tradeQueryService) GetTradeSummary(ctx context.Context, cusip string, startDate *time.Time, endDate *time.Time) (*models.TradeSummary, error) {
	return s.repo.GetTradeSummary(ctx, cusip, startDate, endDate)
}
