package reconcile

import (
	"testing"

	"github.com/guttosm/tracepulse/internal/domain/models"
)

func agencyLeg(seq int64, side string) models.TradeMessage {
	m := postMsg(seq)
	m.Counterparty = "C"
	m.Side = side
	return m
}

func TestDedupAgency_BuyExplainedBySellDropped(t *testing.T) {
	sell := agencyLeg(1, "S")
	buy := agencyLeg(2, "B")

	rep := &Report{}
	out := dedupAgency([]models.TradeMessage{sell, buy}, rep)
	if len(out) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out))
	}
	if out[0].Side != "S" {
		t.Fatalf("the sell leg must be the one kept, got %+v", out[0])
	}
	if rep.AgencyBuysDropped != 1 {
		t.Errorf("agency buys dropped: want 1 got %d", rep.AgencyBuysDropped)
	}
}

func TestDedupAgency_UnmatchedBuySurvives(t *testing.T) {
	buy := agencyLeg(1, "B")
	sell := agencyLeg(2, "S")
	sell.Price = dec("101.5")

	rep := &Report{}
	out := dedupAgency([]models.TradeMessage{buy, sell}, rep)
	if len(out) != 2 {
		t.Fatalf("buy without a matching sell must survive, got %d", len(out))
	}
	if rep.AgencyBuysDropped != 0 {
		t.Errorf("agency buys dropped: want 0 got %d", rep.AgencyBuysDropped)
	}
}

func TestDedupAgency_DealerTradesPassThrough(t *testing.T) {
	buy := postMsg(1)
	buy.Side = "B"
	sell := postMsg(2)

	rep := &Report{}
	out := dedupAgency([]models.TradeMessage{buy, sell}, rep)
	if len(out) != 2 {
		t.Fatalf("principal trades must pass through untouched, got %d", len(out))
	}
}

func TestDedupAgency_CustomerBuyWithDealerSellSurvives(t *testing.T) {
	buy := agencyLeg(1, "B")
	dealerSell := postMsg(2)

	rep := &Report{}
	out := dedupAgency([]models.TradeMessage{buy, dealerSell}, rep)
	if len(out) != 2 {
		t.Fatalf("a dealer sell must not explain a customer buy, got %d survivors", len(out))
	}
}
