package form

import (
	"strconv"
	"strings"
	"time"

	"tradejournal/internal/journal"
)

// Policy selects which fields ToPersisted requires. The journal's revisions
// never agreed on one set, so both ship and config picks.
type Policy string

const (
	// PolicyBasic requires a date and a strategy label.
	PolicyBasic Policy = "basic"
	// PolicyStrict additionally requires a positive entry price and quantity.
	PolicyStrict Policy = "strict"
)

func ParsePolicy(raw string) Policy {
	if strings.EqualFold(strings.TrimSpace(raw), string(PolicyStrict)) {
		return PolicyStrict
	}
	return PolicyBasic
}

// Adapter converts between Draft and journal.TradeFields. Conversions are
// pure; inputs are never mutated.
type Adapter struct {
	Policy Policy
}

// ToEditable builds a draft from a record, or a blank draft for a new trade:
// today's date, LONG, empty numeric boxes, all-false checklist. An existing
// record passes through the sanitizer so documents written under older
// checklist schemas still populate every checkbox.
func (a Adapter) ToEditable(rec *journal.TradeRecord) Draft {
	if rec == nil {
		return Draft{
			Date: time.Now().Format("2006-01-02"),
			Side: string(journal.SideLong),
		}
	}
	f := journal.SanitizeFields(rec.Document())
	return Draft{
		Date:     f.Date,
		Side:     string(f.Side),
		Strategy: f.Strategy,
		Memo:     f.Memo,
		Session:  f.Session,

		EntryPrice:  editableNum(f.EntryPrice),
		ExitPrice:   editableNum(f.ExitPrice),
		Quantity:    editableNum(f.Quantity),
		Fee:         editableNum(f.Fee),
		Margin:      editableNum(f.Margin),
		Risk:        editableNum(f.Risk),
		Sections:    editableNum(f.Sections),
		EntryKTR:    editableNum(f.EntryKTR),
		ProfitLoss:  editableNum(f.ProfitLoss),
		TargetPrice: editableNum(f.TargetPrice),
		StopLoss:    editableNum(f.StopLoss),
		EntryStart:  editableNum(f.EntryStart),
		EntryEnd:    editableNum(f.EntryEnd),
		TPStart:     editableNum(f.TPStart),
		TPEnd:       editableNum(f.TPEnd),
		SLStart:     editableNum(f.SLStart),
		SLEnd:       editableNum(f.SLEnd),

		Checklist: f.Checklist,
	}
}

// ToPersisted coerces a draft into fully typed fields, defaulting blank or
// unparseable numeric inputs to 0. A *journal.ValidationError carries one
// message per offending field so the caller can highlight them individually.
func (a Adapter) ToPersisted(d Draft) (journal.TradeFields, error) {
	f := journal.TradeFields{
		Date:     strings.TrimSpace(d.Date),
		Side:     journal.ParseSide(strings.TrimSpace(d.Side)),
		Strategy: strings.TrimSpace(d.Strategy),
		Memo:     d.Memo,
		Session:  strings.TrimSpace(d.Session),

		EntryPrice:  persistedNum(d.EntryPrice),
		ExitPrice:   persistedNum(d.ExitPrice),
		Quantity:    persistedNum(d.Quantity),
		Fee:         persistedNum(d.Fee),
		Margin:      persistedNum(d.Margin),
		Risk:        persistedNum(d.Risk),
		Sections:    persistedNum(d.Sections),
		EntryKTR:    persistedNum(d.EntryKTR),
		ProfitLoss:  persistedNum(d.ProfitLoss),
		TargetPrice: persistedNum(d.TargetPrice),
		StopLoss:    persistedNum(d.StopLoss),
		EntryStart:  persistedNum(d.EntryStart),
		EntryEnd:    persistedNum(d.EntryEnd),
		TPStart:     persistedNum(d.TPStart),
		TPEnd:       persistedNum(d.TPEnd),
		SLStart:     persistedNum(d.SLStart),
		SLEnd:       persistedNum(d.SLEnd),

		Checklist: d.Checklist,
	}

	fields := map[string]string{}
	if f.Date == "" {
		fields["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		fields["date"] = "date must be YYYY-MM-DD"
	}
	if f.Strategy == "" {
		fields["strategy"] = "strategy is required"
	}
	if a.Policy == PolicyStrict {
		if f.EntryPrice <= 0 {
			fields["entryPrice"] = "entry price must be greater than zero"
		}
		if f.Quantity <= 0 {
			fields["quantity"] = "quantity must be greater than zero"
		}
	}
	if len(fields) > 0 {
		return journal.TradeFields{}, &journal.ValidationError{Fields: fields}
	}
	return f, nil
}

// SuggestProfit derives a profit figure from the draft's current inputs. The
// caller may offer it as a suggestion; the persisted value stays whatever the
// draft carries.
func (a Adapter) SuggestProfit(d Draft) float64 {
	return journal.SuggestedProfit(
		journal.ParseSide(strings.TrimSpace(d.Side)),
		persistedNum(d.EntryPrice),
		persistedNum(d.ExitPrice),
		persistedNum(d.Quantity),
	)
}

func editableNum(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func persistedNum(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
