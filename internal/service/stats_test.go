package service

import (
	"context"
	"testing"

	"tradejournal/internal/store"
	"tradejournal/internal/store/memstore"
)

func TestStats_Overview(t *testing.T) {
	st := memstore.New()
	st.Seed(store.Snapshot{
		"a": {"date": "2026-01-10", "profitLoss": 100.0, "fee": 2.0},
		"b": {"date": "2026-01-11", "profitLoss": -50.0, "fee": 3.0},
		"c": {"date": "2026-01-12", "profitLoss": "25", "fee": "junk"},
		"d": {"date": "2026-01-13"},
	})

	svc := &StatsService{Store: st}
	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalTrades != 4 {
		t.Fatalf("trades=%d want 4", ov.TotalTrades)
	}
	if ov.TotalProfitLoss != 75 {
		t.Fatalf("total pl=%v want 75", ov.TotalProfitLoss)
	}
	if ov.TotalFees != 5 {
		t.Fatalf("fees=%v want 5", ov.TotalFees)
	}
	if ov.NetProfit != 70 {
		t.Fatalf("net=%v want 70", ov.NetProfit)
	}
	if ov.WinRatePct != 50 {
		t.Fatalf("win rate=%v want 50", ov.WinRatePct)
	}
}

func TestStats_EmptyJournal(t *testing.T) {
	svc := &StatsService{Store: memstore.New()}
	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalTrades != 0 || ov.WinRatePct != 0 {
		t.Fatalf("empty journal must zero out: %+v", ov)
	}
}
