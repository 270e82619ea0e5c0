package record

import (
	"time"

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/shopspring/decimal"
)

// WriteRecordDTO is the request payload for creating or updating a record.
// Amounts arrive as decimal strings to avoid float drift on the wire.
type WriteRecordDTO struct {
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	CategoryID  int64   `json:"categoryId"`

	amount decimal.Decimal
	date   time.Time
}

// Validate parses and checks the payload. The parsed amount and date are
// retained for the service.
func (dto *WriteRecordDTO) Validate() error {
	if dto.Amount == "" {
		return internal.NewValidationFieldError("amount", "amount is required", internal.ErrCodeInvalidAmount)
	}
	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		return internal.NewValidationFieldError("amount", "amount must be a decimal number", internal.ErrCodeInvalidAmount)
	}
	if amount.Sign() <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	dto.amount = amount.Round(2)

	if dto.Date == "" {
		return internal.NewValidationFieldError("date", "date is required", internal.ErrCodeInvalidDate)
	}
	date, err := parseDate(dto.Date)
	if err != nil {
		return internal.NewValidationFieldError("date", "date must be an ISO date or timestamp", internal.ErrCodeInvalidDate)
	}
	dto.date = date

	if dto.CategoryID <= 0 {
		return internal.NewValidationFieldError("categoryId", "categoryId is required", internal.ErrCodeInvalidCategory)
	}

	return nil
}

func (dto *WriteRecordDTO) ParsedAmount() decimal.Decimal { return dto.amount }
func (dto *WriteRecordDTO) ParsedDate() time.Time         { return dto.date }

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
