package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradejournal/internal/journal"
	"tradejournal/internal/store"
)

// Overview is the header-card summary of the journal.
type Overview struct {
	TotalTrades     int     `json:"totalTrades"`
	TotalProfitLoss float64 `json:"totalProfitLoss"`
	TotalFees       float64 `json:"totalFees"`
	NetProfit       float64 `json:"netProfit"`
	WinRatePct      float64 `json:"winRatePct"`
}

type StatsService struct {
	Store  store.Store
	Logger *zap.Logger
}

// Overview aggregates the current collection. Sums run through decimal so
// the totals do not drift with float accumulation.
func (s *StatsService) Overview(ctx context.Context) (Overview, error) {
	snap, err := s.Store.GetOnce(ctx)
	if err != nil {
		return Overview{}, &journal.PersistenceError{Op: "stats", Err: err}
	}

	var (
		totalPL = decimal.Zero
		fees    = decimal.Zero
		wins    int
	)
	for id, doc := range snap {
		rec := journal.Sanitize(id, doc)
		totalPL = totalPL.Add(decimal.NewFromFloat(rec.ProfitLoss))
		fees = fees.Add(decimal.NewFromFloat(rec.Fee))
		if rec.ProfitLoss > 0 {
			wins++
		}
	}

	ov := Overview{
		TotalTrades:     len(snap),
		TotalProfitLoss: totalPL.InexactFloat64(),
		TotalFees:       fees.InexactFloat64(),
		NetProfit:       totalPL.Sub(fees).InexactFloat64(),
	}
	if ov.TotalTrades > 0 {
		ov.WinRatePct = decimal.NewFromInt(int64(wins)).
			Div(decimal.NewFromInt(int64(ov.TotalTrades))).
			Mul(decimal.NewFromInt(100)).
			InexactFloat64()
	}
	return ov, nil
}

// LogDaily is the cron entry: one summary line per schedule tick.
func (s *StatsService) LogDaily(ctx context.Context) {
	ov, err := s.Overview(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("daily stats failed", zap.Error(err))
		}
		return
	}
	if s.Logger != nil {
		s.Logger.Info("journal summary",
			zap.Int("trades", ov.TotalTrades),
			zap.Float64("total_pl", ov.TotalProfitLoss),
			zap.Float64("net_profit", ov.NetProfit),
			zap.Float64("win_rate_pct", ov.WinRatePct),
		)
	}
}
