package record

import (
	"time"

	"github.com/ErdhyErnando/moneta/internal"
	recordDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/record"
	"github.com/shopspring/decimal"
)

// Kind aliases the datamodel kind so callers only import this package.
type Kind = recordDatamodel.Kind

const (
	KindIncome          = recordDatamodel.KindIncome
	KindExpense         = recordDatamodel.KindExpense
	KindStartingBalance = recordDatamodel.KindStartingBalance
)

var (
	ErrRecordNotFound   = internal.NewNotFoundError("Record not found", internal.ErrCodeRecordNotFound)
	ErrCategoryNotFound = internal.NewValidationError("category does not exist", internal.ErrCodeInvalidCategory)
	ErrCategoryMismatch = internal.NewValidationError("category type does not match record kind", internal.ErrCodeCategoryMismatch)
)

// Record is the service-facing view of a financial entry, with the category
// display name resolved for listings.
type Record struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	UserID       int64           `json:"userId"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func FromDataModel(r *recordDatamodel.Record) *Record {
	desc := ""
	if r.Description != nil {
		desc = *r.Description
	}
	return &Record{
		ID:          r.ID,
		Amount:      r.Amount,
		Description: desc,
		Date:        r.Date,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModelWithCategory(r *recordDatamodel.WithCategory) *Record {
	rec := FromDataModel(&r.Record)
	rec.CategoryName = r.CategoryName
	return rec
}

func FromDataModelSlice(rows []*recordDatamodel.WithCategory) []*Record {
	result := make([]*Record, len(rows))
	for i, row := range rows {
		result[i] = FromDataModelWithCategory(row)
	}
	return result
}
