package postgres

import (
	"time"

	"github.com/ErdhyErnando/moneta/internal/dashboard"
	"github.com/ErdhyErnando/moneta/internal/record"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository implements dashboard.Repository with aggregate SQL.
// Date truncation and month extraction differ between Postgres and the
// SQLite used by the test suites, so those expressions are picked per
// dialect.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) sqlite() bool {
	return r.db.Dialector.Name() == "sqlite"
}

func (r *DashboardRepository) dayExpr() string {
	if r.sqlite() {
		return "date(date)"
	}
	return "date::date::text"
}

func (r *DashboardRepository) monthExpr() string {
	if r.sqlite() {
		return "strftime('%Y-%m-01', date)"
	}
	return "to_char(date, 'YYYY-MM-01')"
}

func (r *DashboardRepository) yearExpr() string {
	if r.sqlite() {
		return "CAST(strftime('%Y', date) AS INTEGER)"
	}
	return "EXTRACT(YEAR FROM date)"
}

// scoped builds the common owner/period filter for one record table.
func (r *DashboardRepository) scoped(kind record.Kind, userID int64, period dashboard.Period) *gorm.DB {
	q := r.db.Table(kind.Table()).Where("user_id = ?", userID)
	if period.Start != nil {
		q = q.Where("date >= ?", *period.Start)
	}
	if period.End != nil {
		q = q.Where("date < ?", *period.End)
	}
	return q
}

func (r *DashboardRepository) SumAmount(kind record.Kind, userID int64, period dashboard.Period) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.scoped(kind, userID, period).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *DashboardRepository) RecentRecords(kind record.Kind, userID int64, period dashboard.Period, limit int) ([]dashboard.TransactionRow, error) {
	table := kind.Table()
	var rows []struct {
		ID           int64
		Date         time.Time
		Description  *string
		CategoryName string
		Amount       decimal.Decimal
	}
	err := r.scoped(kind, userID, period).
		Select(table + ".id, " + table + ".date, " + table + ".description, " +
			table + ".amount, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = " + table + ".category_id").
		Order(table + ".date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]dashboard.TransactionRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dashboard.TransactionRow{
			ID:           row.ID,
			Date:         row.Date,
			Description:  row.Description,
			CategoryName: row.CategoryName,
			Amount:       row.Amount,
		})
	}
	return result, nil
}

func (r *DashboardRepository) DailyTotals(kind record.Kind, userID int64, period dashboard.Period) ([]dashboard.DailyTotal, error) {
	day := r.dayExpr()
	var rows []struct {
		Day   string
		Total decimal.Decimal
	}
	err := r.scoped(kind, userID, period).
		Select(day + " AS day, COALESCE(SUM(amount), 0) AS total").
		Group(day).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]dashboard.DailyTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, dashboard.DailyTotal{Day: row.Day, Total: row.Total})
	}
	return totals, nil
}

func (r *DashboardRepository) CategoryTotals(kind record.Kind, userID int64, period dashboard.Period) ([]dashboard.CategoryTotal, error) {
	table := kind.Table()
	var rows []struct {
		Name  string
		Total decimal.Decimal
	}
	err := r.scoped(kind, userID, period).
		Select("categories.name AS name, COALESCE(SUM("+table+".amount), 0) AS total").
		Joins("JOIN categories ON categories.id = "+table+".category_id").
		Group(table + ".category_id, categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]dashboard.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, dashboard.CategoryTotal{Name: row.Name, Total: row.Total})
	}
	return totals, nil
}

func (r *DashboardRepository) MonthlyTotals(kind record.Kind, userID int64, year int) ([]dashboard.MonthlyTotal, error) {
	month := r.monthExpr()
	var rows []struct {
		Month string
		Total decimal.Decimal
	}
	err := r.db.Table(kind.Table()).
		Where("user_id = ?", userID).
		Where(r.yearExpr()+" = ?", year).
		Select(month + " AS month, COALESCE(SUM(amount), 0) AS total").
		Group(month).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]dashboard.MonthlyTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, dashboard.MonthlyTotal{Month: row.Month, Total: row.Total})
	}
	return totals, nil
}
