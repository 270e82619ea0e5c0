package category

// Category types. A category tags records of exactly one kind; the type is
// immutable once created.
const (
	TypeIncome          = "income"
	TypeExpense         = "expense"
	TypeStartingBalance = "starting_balance"
)

// Category is the persistence model for record grouping tags. Categories are
// global (shared across users) and never deleted automatically.
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Type string `json:"type" gorm:"not null"`
}

func (Category) TableName() string {
	return "categories"
}

// ValidType reports whether t is one of the three supported category types.
func ValidType(t string) bool {
	switch t {
	case TypeIncome, TypeExpense, TypeStartingBalance:
		return true
	}
	return false
}
