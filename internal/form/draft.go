// Package form bridges the two representations of a trade: the editable
// draft, where numeric fields are strings that may be blank while the user
// is typing, and the persisted fields, where every value is fully typed.
package form

import "tradejournal/internal/journal"

// Draft is the in-progress form state. Numeric fields hold the raw input
// text so an empty box stays empty instead of showing "0".
type Draft struct {
	Date     string `json:"date"`
	Side     string `json:"type"`
	Strategy string `json:"strategy"`
	Memo     string `json:"memo"`
	Session  string `json:"session"`

	EntryPrice  string `json:"entryPrice"`
	ExitPrice   string `json:"exitPrice"`
	Quantity    string `json:"quantity"`
	Fee         string `json:"fee"`
	Margin      string `json:"margin"`
	Risk        string `json:"risk"`
	Sections    string `json:"sections"`
	EntryKTR    string `json:"entryKTR"`
	ProfitLoss  string `json:"profitLoss"`
	TargetPrice string `json:"targetPrice"`
	StopLoss    string `json:"stopLoss"`
	EntryStart  string `json:"entryStart"`
	EntryEnd    string `json:"entryEnd"`
	TPStart     string `json:"tpStart"`
	TPEnd       string `json:"tpEnd"`
	SLStart     string `json:"slStart"`
	SLEnd       string `json:"slEnd"`

	Checklist journal.Checklist `json:"checklist"`
}
