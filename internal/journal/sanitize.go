package journal

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Sanitize turns a raw store document into a complete TradeRecord. It is
// total: any combination of missing, null, mistyped, or extra fields yields a
// fully defaulted record instead of an error. The subscription feed depends
// on this to survive documents written under older schema revisions.
func Sanitize(id string, raw map[string]any) TradeRecord {
	return TradeRecord{ID: id, TradeFields: SanitizeFields(raw)}
}

// SanitizeFields sanitizes the non-id portion of a raw document.
func SanitizeFields(raw map[string]any) TradeFields {
	f := TradeFields{
		Date:     strField(raw, "date"),
		Side:     ParseSide(strField(raw, "type")),
		Strategy: strField(raw, "strategy"),
		Session:  strField(raw, "session"),

		EntryPrice:  numField(raw, "entryPrice"),
		ExitPrice:   numField(raw, "exitPrice"),
		Quantity:    numField(raw, "quantity"),
		Fee:         numField(raw, "fee"),
		Margin:      numField(raw, "margin"),
		Risk:        numField(raw, "risk"),
		Sections:    numField(raw, "sections"),
		EntryKTR:    numField(raw, "entryKTR"),
		ProfitLoss:  numField(raw, "profitLoss"),
		TargetPrice: numField(raw, "targetPrice"),
		StopLoss:    numField(raw, "stopLoss"),
		EntryStart:  numField(raw, "entryStart"),
		EntryEnd:    numField(raw, "entryEnd"),
		TPStart:     numField(raw, "tpStart"),
		TPEnd:       numField(raw, "tpEnd"),
		SLStart:     numField(raw, "slStart"),
		SLEnd:       numField(raw, "slEnd"),
	}

	// One revision stored notes under "notes" before it became "memo".
	f.Memo = strField(raw, "memo")
	if f.Memo == "" {
		f.Memo = strField(raw, "notes")
	}

	if raw != nil {
		f.Checklist = sanitizeChecklist(raw["checklist"])
	}
	return f
}

func strField(raw map[string]any, key string) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// numField accepts every numeric representation that has shown up in stored
// documents: JSON floats, integers, json.Number, and numeric strings.
func numField(raw map[string]any, key string) float64 {
	if raw == nil {
		return 0
	}
	switch v := raw[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0
		}
		return n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func boolKey(raw map[string]any, key string) bool {
	b, _ := raw[key].(bool)
	return b
}

// sanitizeChecklist deep-merges a raw checklist value with the all-false
// default. A record written before a rule existed still gets every key; a
// non-object value (null, array, string) is replaced wholesale. Unknown keys
// are dropped.
func sanitizeChecklist(v any) Checklist {
	var cl Checklist
	obj, ok := v.(map[string]any)
	if !ok {
		return cl
	}
	if tr, ok := obj["timeRules"].(map[string]any); ok {
		cl.TimeRules = TimeRules{
			Mindset1:      boolKey(tr, "mindset1"),
			Mindset2:      boolKey(tr, "mindset2"),
			PositionSize:  boolKey(tr, "positionSize"),
			CheckInterval: boolKey(tr, "checkInterval"),
			SleepAt12:     boolKey(tr, "sleepAt12"),
		}
	}
	if tr, ok := obj["tradingRules"].(map[string]any); ok {
		cl.TradingRules = TradingRules{
			CheckPrevMarket: boolKey(tr, "checkPrevMarket"),
			CheckKeyLevels:  boolKey(tr, "checkKeyLevels"),
			AsiaSession:     boolKey(tr, "asiaSession"),
			MinPosition:     boolKey(tr, "minPosition"),
			CandleClose:     boolKey(tr, "candleClose"),
			NoDoubleEntry:   boolKey(tr, "noDoubleEntry"),
			EMADistance:     boolKey(tr, "emaDistance"),
			AvoidFirstZone:  boolKey(tr, "avoidFirstZone"),
			ProfitTrailing:  boolKey(tr, "profitTrailing"),
		}
	}
	return cl
}
