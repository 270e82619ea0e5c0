package dashboard

import (
	"time"

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/shopspring/decimal"
)

// Summary holds the period totals plus the all-time running balance.
// Amounts are decimals and marshal as strings on the wire.
type Summary struct {
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	NetBalance           decimal.Decimal `json:"netBalance"`
	TotalStartingBalance decimal.Decimal `json:"totalStartingBalance"`
	CurrentBalance       decimal.Decimal `json:"currentBalance"`
}

// Transaction is one row of the merged income/expense listing.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

// ChartPoint is one day of the income-vs-expense series. Days with no
// activity on one side carry a zero for that side; days with no activity at
// all are absent.
type ChartPoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategorySlice is one category's share of the period total.
type CategorySlice struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// MonthlyPoint is one month's total, keyed by the first of the month.
type MonthlyPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Period is an optional inclusive date window. A nil bound means unbounded
// on that side. End is stored exclusive (start of the day after the
// requested end) so that records at any time on the end date are included.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether any bound is set.
func (p Period) Bounded() bool {
	return p.Start != nil || p.End != nil
}

// ParsePeriod validates the optional startDate/endDate query values. Both
// accept a plain ISO date or an RFC3339 timestamp. A window with
// startDate > endDate is not rejected; it simply matches nothing.
func ParsePeriod(startDate, endDate string) (Period, error) {
	var p Period

	if startDate != "" {
		t, err := parseDateParam(startDate)
		if err != nil {
			return Period{}, internal.NewValidationFieldError("startDate", "startDate must be an ISO date", internal.ErrCodeInvalidDate)
		}
		p.Start = &t
	}

	if endDate != "" {
		t, dateOnly, err := parseEndParam(endDate)
		if err != nil {
			return Period{}, internal.NewValidationFieldError("endDate", "endDate must be an ISO date", internal.ErrCodeInvalidDate)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1)
		} else {
			// exact timestamps stay inclusive under the `date < end` query
			t = t.Add(time.Nanosecond)
		}
		p.End = &t
	}

	return p, nil
}

func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseEndParam(s string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
