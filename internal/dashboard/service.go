package dashboard

import (
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/ErdhyErnando/moneta/internal/record"
	"github.com/shopspring/decimal"
)

const DefaultTransactionLimit = 10

var (
	ErrInvalidYear = internal.NewValidationError("year must be an integer", internal.ErrCodeInvalidYear)
	ErrInvalidKind = internal.NewValidationError("kind must be income or expense", internal.ErrCodeInvalidKind)
)

// TransactionRow is a record joined to its category name, as fetched for the
// recent-transactions listing.
type TransactionRow struct {
	ID           int64
	Date         time.Time
	Description  *string
	CategoryName string
	Amount       decimal.Decimal
}

// DailyTotal is one day's summed amount for one record kind.
type DailyTotal struct {
	Day   string
	Total decimal.Decimal
}

// CategoryTotal is one category's summed amount for one record kind.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// MonthlyTotal is one month's summed amount, keyed "YYYY-MM-01".
type MonthlyTotal struct {
	Month string
	Total decimal.Decimal
}

// Repository issues the owner-scoped aggregate queries. Every method treats
// an unbounded period side as no filter on that side.
type Repository interface {
	SumAmount(kind record.Kind, userID int64, period Period) (decimal.Decimal, error)
	RecentRecords(kind record.Kind, userID int64, period Period, limit int) ([]TransactionRow, error)
	DailyTotals(kind record.Kind, userID int64, period Period) ([]DailyTotal, error)
	CategoryTotals(kind record.Kind, userID int64, period Period) ([]CategoryTotal, error)
	MonthlyTotals(kind record.Kind, userID int64, year int) ([]MonthlyTotal, error)
}

// Service produces the read-only derived views behind the dashboard: period
// totals, the merged transaction feed, the daily chart series, category
// breakdowns and monthly totals. Everything is stateless; each call is one
// or more aggregate queries plus in-memory pivoting.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Summary computes the period income/expense totals and the all-time running
// balance. The all-time components deliberately ignore the period: the
// current balance is a property of the account, not of the window being
// viewed. A window matching no rows yields zeros, never an error.
func (s *Service) Summary(userID int64, period Period) (*Summary, error) {
	periodIncome, err := s.repo.SumAmount(record.KindIncome, userID, period)
	if err != nil {
		return nil, s.storageErr("summary period income", err, userID)
	}

	periodExpenses, err := s.repo.SumAmount(record.KindExpense, userID, period)
	if err != nil {
		return nil, s.storageErr("summary period expenses", err, userID)
	}

	allTime := Period{}
	allIncome, err := s.repo.SumAmount(record.KindIncome, userID, allTime)
	if err != nil {
		return nil, s.storageErr("summary all-time income", err, userID)
	}

	allExpenses, err := s.repo.SumAmount(record.KindExpense, userID, allTime)
	if err != nil {
		return nil, s.storageErr("summary all-time expenses", err, userID)
	}

	startingBalance, err := s.repo.SumAmount(record.KindStartingBalance, userID, allTime)
	if err != nil {
		return nil, s.storageErr("summary starting balance", err, userID)
	}

	return &Summary{
		TotalIncome:          periodIncome,
		TotalExpenses:        periodExpenses,
		NetBalance:           periodIncome.Sub(periodExpenses),
		TotalStartingBalance: startingBalance,
		CurrentBalance:       startingBalance.Add(allIncome).Sub(allExpenses),
	}, nil
}

// RecentTransactions merges the owner's incomes and expenses into one
// date-descending feed of at most limit rows. Each source is fetched with
// its own ORDER BY date DESC LIMIT n; n rows per source is a covering bound
// for the global top n, so the merge-sort-truncate below is exact.
func (s *Service) RecentTransactions(userID int64, period Period, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}

	incomes, err := s.repo.RecentRecords(record.KindIncome, userID, period, limit)
	if err != nil {
		return nil, s.storageErr("recent incomes", err, userID)
	}

	expenses, err := s.repo.RecentRecords(record.KindExpense, userID, period, limit)
	if err != nil {
		return nil, s.storageErr("recent expenses", err, userID)
	}

	transactions := make([]Transaction, 0, len(incomes)+len(expenses))
	for _, row := range incomes {
		transactions = append(transactions, rowToTransaction(row, "income"))
	}
	for _, row := range expenses {
		transactions = append(transactions, rowToTransaction(row, "expense"))
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	if len(transactions) > limit {
		transactions = transactions[:limit]
	}

	return transactions, nil
}

// ChartSeries pivots the daily income and expense totals into one
// date-ascending series. A date present on only one side gets a zero for
// the other; dates with no records at all are absent (the UI does not
// gap-fill either).
func (s *Service) ChartSeries(userID int64, period Period) ([]ChartPoint, error) {
	incomeTotals, err := s.repo.DailyTotals(record.KindIncome, userID, period)
	if err != nil {
		return nil, s.storageErr("chart income totals", err, userID)
	}

	expenseTotals, err := s.repo.DailyTotals(record.KindExpense, userID, period)
	if err != nil {
		return nil, s.storageErr("chart expense totals", err, userID)
	}

	points := make(map[string]*ChartPoint, len(incomeTotals)+len(expenseTotals))
	for _, dt := range incomeTotals {
		points[dt.Day] = &ChartPoint{Date: dt.Day, Income: dt.Total, Expense: decimal.Zero}
	}
	for _, dt := range expenseTotals {
		if p, ok := points[dt.Day]; ok {
			p.Expense = dt.Total
		} else {
			points[dt.Day] = &ChartPoint{Date: dt.Day, Income: decimal.Zero, Expense: dt.Total}
		}
	}

	series := make([]ChartPoint, 0, len(points))
	for _, p := range points {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series, nil
}

// CategoryBreakdown groups the period's records of one kind by category and
// attaches each category's share of the grand total. Categories with no
// matching rows are omitted. When the grand total is zero every percentage
// is zero; there is no division.
func (s *Service) CategoryBreakdown(userID int64, kind record.Kind, period Period) ([]CategorySlice, error) {
	if err := checkBreakdownKind(kind); err != nil {
		return nil, err
	}

	totals, err := s.repo.CategoryTotals(kind, userID, period)
	if err != nil {
		return nil, s.storageErr("category totals", err, userID)
	}

	grandTotal := decimal.Zero
	for _, ct := range totals {
		grandTotal = grandTotal.Add(ct.Total)
	}

	slices := make([]CategorySlice, 0, len(totals))
	for _, ct := range totals {
		percentage := 0.0
		if grandTotal.Sign() > 0 {
			percentage, _ = ct.Total.Div(grandTotal).Mul(decimal.NewFromInt(100)).Float64()
		}
		slices = append(slices, CategorySlice{
			Name:       ct.Name,
			Amount:     ct.Total,
			Percentage: percentage,
		})
	}

	// descending by amount for a stable, presentation-friendly order
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})

	return slices, nil
}

// MonthlySeries sums one kind's records per calendar month of the given
// year. Months with no activity are absent; the UI zero-fills all twelve
// when rendering.
func (s *Service) MonthlySeries(userID int64, kind record.Kind, year int) ([]MonthlyPoint, error) {
	if err := checkBreakdownKind(kind); err != nil {
		return nil, err
	}

	totals, err := s.repo.MonthlyTotals(kind, userID, year)
	if err != nil {
		return nil, s.storageErr("monthly totals", err, userID)
	}

	points := make([]MonthlyPoint, 0, len(totals))
	for _, mt := range totals {
		points = append(points, MonthlyPoint{Month: mt.Month, Amount: mt.Total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})

	return points, nil
}

// ParseYear validates the year query parameter, defaulting to the current
// year when absent. Non-numeric input is a caller error, not a silent zero.
func ParseYear(raw string) (int, error) {
	if raw == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidYear
	}
	return year, nil
}

// ParseKind validates the kind query parameter, defaulting to expense (the
// dashboard's pie and bar charts are expense-centric).
func ParseKind(raw string) (record.Kind, error) {
	if raw == "" {
		return record.KindExpense, nil
	}
	kind := record.Kind(raw)
	if err := checkBreakdownKind(kind); err != nil {
		return "", err
	}
	return kind, nil
}

func checkBreakdownKind(kind record.Kind) error {
	if kind != record.KindIncome && kind != record.KindExpense {
		return ErrInvalidKind
	}
	return nil
}

func rowToTransaction(row TransactionRow, txType string) Transaction {
	desc := ""
	if row.Description != nil {
		desc = *row.Description
	}
	return Transaction{
		ID:          row.ID,
		Date:        row.Date,
		Description: desc,
		Category:    row.CategoryName,
		Amount:      row.Amount,
		Type:        txType,
	}
}

func (s *Service) storageErr(op string, err error, userID int64) error {
	s.logger.Error("dashboard query failed", "op", op, "error", err, "user_id", userID)
	return internal.NewInternalError("failed to load dashboard data", err)
}
