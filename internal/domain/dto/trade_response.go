package dto

import "github.com/guttosm/tracepulse/internal/domain/models"

// TradeResponse represents one clean trade as returned by the
// GET /api/v1/trades endpoint.
//
// Fields match the API contract and may differ from internal domain
// models: decimals are rendered as strings to keep exact precision on
// the wire, and the execution timestamp is split into its date and
// clock parts the way TRACE reports them.
type TradeResponse struct {
	CUSIP         string `json:"cusip" example:"594918AB5"`
	MessageSeq    int64  `json:"message_seq" example:"4521"`
	ExecutionDate string `json:"execution_date" example:"2012-03-15"`
	ExecutionTime string `json:"execution_time" example:"14:30:00"`
	Price         string `json:"price" example:"99.875"`
	Yield         string `json:"yield,omitempty" example:"4.125"`
	Volume        string `json:"volume" example:"250000"`
	Side          string `json:"side" example:"B"`
	Counterparty  string `json:"counterparty" example:"C"`
}

// TradeSummaryResponse represents the JSON structure returned by the
// GET /api/v1/trades/summary endpoint.
type TradeSummaryResponse struct {
	CUSIP          string `json:"cusip" example:"594918AB5"`
	TradeCount     int64  `json:"trade_count" example:"1284"`
	TotalVolume    string `json:"total_volume" example:"18250000"`
	MaxPrice       string `json:"max_price" example:"101.25"`
	MaxDailyVolume string `json:"max_daily_volume" example:"2400000"`
}

// NewTradeResponse maps a domain clean trade onto its wire representation.
func NewTradeResponse(t models.CleanTrade) TradeResponse {
	resp := TradeResponse{
		CUSIP:         t.CUSIP,
		MessageSeq:    t.MessageSeq,
		ExecutionDate: t.ExecutionDate.Format("2006-01-02"),
		ExecutionTime: t.ExecutionTime,
		Price:         t.Price.String(),
		Volume:        t.Volume.String(),
		Side:          t.Side,
		Counterparty:  t.Counterparty,
	}
	if t.Yield.Valid {
		resp.Yield = t.Yield.Decimal.String()
	}
	return resp
}

// NewTradeSummaryResponse maps a domain trade summary onto its wire
// representation.
func NewTradeSummaryResponse(s models.TradeSummary) TradeSummaryResponse {
	return TradeSummaryResponse{
		CUSIP:          s.CUSIP,
		TradeCount:     s.TradeCount,
		TotalVolume:    s.TotalVolume.String(),
		MaxPrice:       s.MaxPrice.String(),
		MaxDailyVolume: s.MaxDailyVolume.String(),
	}
}
