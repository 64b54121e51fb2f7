package journal

import (
	"encoding/json"
	"testing"
)

func TestSanitize_EmptyInput(t *testing.T) {
	rec := Sanitize("t1", nil)
	if rec.ID != "t1" {
		t.Fatalf("id=%q want t1", rec.ID)
	}
	if rec.Date != "" || rec.Strategy != "" || rec.Memo != "" {
		t.Fatalf("string fields not defaulted: %+v", rec.TradeFields)
	}
	if rec.Side != SideLong {
		t.Fatalf("side=%q want default LONG", rec.Side)
	}
	if rec.EntryPrice != 0 || rec.Quantity != 0 || rec.ProfitLoss != 0 {
		t.Fatalf("numeric fields not defaulted: %+v", rec.TradeFields)
	}
	if rec.Checklist != (Checklist{}) {
		t.Fatalf("checklist not all-false: %+v", rec.Checklist)
	}
}

func TestSanitize_WrongTypesNeverPanic(t *testing.T) {
	raw := map[string]any{
		"date":       42,
		"type":       []any{"매수"},
		"entryPrice": map[string]any{"v": 1},
		"quantity":   true,
		"strategy":   nil,
		"checklist":  []any{"not", "an", "object"},
		"unknown":    "dropped",
	}
	rec := Sanitize("x", raw)
	if rec.Date != "" {
		t.Fatalf("date=%q want empty", rec.Date)
	}
	if rec.Side != SideLong {
		t.Fatalf("side=%q want LONG", rec.Side)
	}
	if rec.EntryPrice != 0 || rec.Quantity != 0 {
		t.Fatalf("numbers=%v,%v want 0,0", rec.EntryPrice, rec.Quantity)
	}
	if rec.Checklist != (Checklist{}) {
		t.Fatalf("non-object checklist must be replaced wholesale: %+v", rec.Checklist)
	}
}

func TestSanitize_NumericStrings(t *testing.T) {
	raw := map[string]any{
		"entryPrice": "2345.5",
		"quantity":   json.Number("3"),
		"fee":        int64(7),
		"exitPrice":  " 12 ",
	}
	f := SanitizeFields(raw)
	if f.EntryPrice != 2345.5 {
		t.Fatalf("entryPrice=%v want 2345.5", f.EntryPrice)
	}
	if f.Quantity != 3 {
		t.Fatalf("quantity=%v want 3", f.Quantity)
	}
	if f.Fee != 7 {
		t.Fatalf("fee=%v want 7", f.Fee)
	}
	if f.ExitPrice != 12 {
		t.Fatalf("exitPrice=%v want 12", f.ExitPrice)
	}
}

func TestSanitize_SideLabels(t *testing.T) {
	cases := map[string]Side{
		"매수":    SideLong,
		"매도":    SideShort,
		"LONG":  SideLong,
		"SHORT": SideShort,
		"sell":  SideShort,
		"???":   SideLong,
		"":      SideLong,
	}
	for label, want := range cases {
		if got := ParseSide(label); got != want {
			t.Fatalf("ParseSide(%q)=%q want %q", label, got, want)
		}
	}
}

func TestSanitize_ChecklistDeepMerge(t *testing.T) {
	raw := map[string]any{
		"checklist": map[string]any{
			"tradingRules": map[string]any{
				"checkPrevMarket": true,
				"bogusRule":       true,
			},
		},
	}
	f := SanitizeFields(raw)
	if !f.Checklist.TradingRules.CheckPrevMarket {
		t.Fatalf("checkPrevMarket must survive the merge")
	}
	if f.Checklist.TradingRules.CheckKeyLevels || f.Checklist.TradingRules.ProfitTrailing {
		t.Fatalf("unset trading rules must default false: %+v", f.Checklist.TradingRules)
	}
	if f.Checklist.TimeRules != (TimeRules{}) {
		t.Fatalf("timeRules must default all-false: %+v", f.Checklist.TimeRules)
	}
}

func TestSanitize_LegacyNotesField(t *testing.T) {
	f := SanitizeFields(map[string]any{"notes": "old revision"})
	if f.Memo != "old revision" {
		t.Fatalf("memo=%q want legacy notes value", f.Memo)
	}
	f = SanitizeFields(map[string]any{"memo": "new", "notes": "old"})
	if f.Memo != "new" {
		t.Fatalf("memo=%q want new field to win", f.Memo)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	in := TradeFields{
		Date:       "2026-01-15",
		Side:       SideShort,
		Strategy:   "ktr",
		Memo:       "note",
		Session:    "asia",
		EntryPrice: 2000,
		ExitPrice:  1950,
		Quantity:   3,
		Fee:        1.5,
		ProfitLoss: 150,
	}
	in.Checklist.TimeRules.SleepAt12 = true
	in.Checklist.TradingRules.CandleClose = true

	out := SanitizeFields(in.Document())
	if out != in {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}
