package journal

import "testing"

func TestSuggestedProfit_Long(t *testing.T) {
	got := SuggestedProfit(SideLong, 2000, 2050, 2)
	if got != 100 {
		t.Fatalf("long profit=%v want 100", got)
	}
}

func TestSuggestedProfit_Short(t *testing.T) {
	got := SuggestedProfit(SideShort, 2000, 1950, 3)
	if got != 150 {
		t.Fatalf("short profit=%v want 150", got)
	}
}

func TestSuggestedProfit_Loss(t *testing.T) {
	if got := SuggestedProfit(SideLong, 2050, 2000, 2); got != -100 {
		t.Fatalf("long loss=%v want -100", got)
	}
	if got := SuggestedProfit(SideShort, 1950, 2000, 3); got != -150 {
		t.Fatalf("short loss=%v want -150", got)
	}
}

func TestSuggestedProfit_DecimalExactness(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into the suggestion.
	if got := SuggestedProfit(SideLong, 0.1, 0.3, 10); got != 2 {
		t.Fatalf("profit=%v want exactly 2", got)
	}
}
