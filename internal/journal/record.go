package journal

// Side is the direction of a trade. Stored records may carry the Korean
// broker labels (매수 buy, 매도 sell) from earlier schema revisions.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// ParseSide maps any historical label onto a valid Side. Anything
// unrecognized falls back to LONG.
func ParseSide(raw string) Side {
	switch raw {
	case string(SideLong), "매수", "long", "BUY", "buy":
		return SideLong
	case string(SideShort), "매도", "short", "SELL", "sell":
		return SideShort
	default:
		return SideLong
	}
}

// TimeRules are the discretionary time-limit checks of the rulebook.
type TimeRules struct {
	Mindset1      bool `json:"mindset1"`
	Mindset2      bool `json:"mindset2"`
	PositionSize  bool `json:"positionSize"`
	CheckInterval bool `json:"checkInterval"`
	SleepAt12     bool `json:"sleepAt12"`
}

// TradingRules are the discretionary entry/exit checks of the rulebook.
type TradingRules struct {
	CheckPrevMarket bool `json:"checkPrevMarket"`
	CheckKeyLevels  bool `json:"checkKeyLevels"`
	AsiaSession     bool `json:"asiaSession"`
	MinPosition     bool `json:"minPosition"`
	CandleClose     bool `json:"candleClose"`
	NoDoubleEntry   bool `json:"noDoubleEntry"`
	EMADistance     bool `json:"emaDistance"`
	AvoidFirstZone  bool `json:"avoidFirstZone"`
	ProfitTrailing  bool `json:"profitTrailing"`
}

// Checklist is the fixed-shape rule checklist attached to every trade.
// The zero value is the all-false default.
type Checklist struct {
	TimeRules    TimeRules    `json:"timeRules"`
	TradingRules TradingRules `json:"tradingRules"`
}

// TradeFields is everything a trade record carries except its store-assigned
// id. The numeric fields are the superset accumulated across schema
// revisions; records written under older revisions simply leave the newer
// ones at zero.
type TradeFields struct {
	Date     string `json:"date"`
	Side     Side   `json:"type"`
	Strategy string `json:"strategy"`
	Memo     string `json:"memo"`
	Session  string `json:"session"`

	EntryPrice  float64 `json:"entryPrice"`
	ExitPrice   float64 `json:"exitPrice"`
	Quantity    float64 `json:"quantity"`
	Fee         float64 `json:"fee"`
	Margin      float64 `json:"margin"`
	Risk        float64 `json:"risk"`
	Sections    float64 `json:"sections"`
	EntryKTR    float64 `json:"entryKTR"`
	ProfitLoss  float64 `json:"profitLoss"`
	TargetPrice float64 `json:"targetPrice"`
	StopLoss    float64 `json:"stopLoss"`
	EntryStart  float64 `json:"entryStart"`
	EntryEnd    float64 `json:"entryEnd"`
	TPStart     float64 `json:"tpStart"`
	TPEnd       float64 `json:"tpEnd"`
	SLStart     float64 `json:"slStart"`
	SLEnd       float64 `json:"slEnd"`

	Checklist Checklist `json:"checklist"`
}

// TradeRecord is one logged transaction as seen by consumers: fully typed,
// fully defaulted, addressed by the id the store assigned at creation.
type TradeRecord struct {
	ID string `json:"id"`
	TradeFields
}

// Document flattens the fields into the map shape the external store
// persists. Sanitize is its inverse for well-formed input.
func (f TradeFields) Document() map[string]any {
	return map[string]any{
		"date":        f.Date,
		"type":        string(f.Side),
		"strategy":    f.Strategy,
		"memo":        f.Memo,
		"session":     f.Session,
		"entryPrice":  f.EntryPrice,
		"exitPrice":   f.ExitPrice,
		"quantity":    f.Quantity,
		"fee":         f.Fee,
		"margin":      f.Margin,
		"risk":        f.Risk,
		"sections":    f.Sections,
		"entryKTR":    f.EntryKTR,
		"profitLoss":  f.ProfitLoss,
		"targetPrice": f.TargetPrice,
		"stopLoss":    f.StopLoss,
		"entryStart":  f.EntryStart,
		"entryEnd":    f.EntryEnd,
		"tpStart":     f.TPStart,
		"tpEnd":       f.TPEnd,
		"slStart":     f.SLStart,
		"slEnd":       f.SLEnd,
		"checklist": map[string]any{
			"timeRules": map[string]any{
				"mindset1":      f.Checklist.TimeRules.Mindset1,
				"mindset2":      f.Checklist.TimeRules.Mindset2,
				"positionSize":  f.Checklist.TimeRules.PositionSize,
				"checkInterval": f.Checklist.TimeRules.CheckInterval,
				"sleepAt12":     f.Checklist.TimeRules.SleepAt12,
			},
			"tradingRules": map[string]any{
				"checkPrevMarket": f.Checklist.TradingRules.CheckPrevMarket,
				"checkKeyLevels":  f.Checklist.TradingRules.CheckKeyLevels,
				"asiaSession":     f.Checklist.TradingRules.AsiaSession,
				"minPosition":     f.Checklist.TradingRules.MinPosition,
				"candleClose":     f.Checklist.TradingRules.CandleClose,
				"noDoubleEntry":   f.Checklist.TradingRules.NoDoubleEntry,
				"emaDistance":     f.Checklist.TradingRules.EMADistance,
				"avoidFirstZone":  f.Checklist.TradingRules.AvoidFirstZone,
				"profitTrailing":  f.Checklist.TradingRules.ProfitTrailing,
			},
		},
	}
}
