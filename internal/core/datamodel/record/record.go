package record

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects which of the three parallel record tables an operation
// targets. Incomes, expenses and starting balances share one shape.
type Kind string

const (
	KindIncome          Kind = "income"
	KindExpense         Kind = "expense"
	KindStartingBalance Kind = "starting_balance"
)

// Table returns the backing table name for the kind.
func (k Kind) Table() string {
	switch k {
	case KindIncome:
		return "incomes"
	case KindExpense:
		return "expenses"
	case KindStartingBalance:
		return "starting_balances"
	}
	return ""
}

// CategoryType returns the category type a record of this kind must
// reference.
func (k Kind) CategoryType() string {
	return string(k)
}

func (k Kind) Valid() bool {
	return k.Table() != ""
}

// Record is the persistence model shared by incomes, expenses and starting
// balances. The table is chosen per query via Kind.Table(), so the struct
// itself carries no TableName.
type Record struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date" gorm:"not null"`
	UserID      int64           `json:"user_id" gorm:"column:user_id;not null"`
	CategoryID  int64           `json:"category_id" gorm:"column:category_id;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

// WithCategory is the read shape for listings: a record joined to its
// category's display name.
type WithCategory struct {
	Record
	CategoryName string `json:"category_name" gorm:"column:category_name"`
}
