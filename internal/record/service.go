package record

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/ErdhyErnando/moneta/internal/category"
	recordDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/record"
	"github.com/ErdhyErnando/moneta/internal/core/events"
)

// Repository defines the data access methods for the three record tables.
// The kind selects the table; every read and write is owner-scoped.
type Repository interface {
	Create(kind Kind, rec *recordDatamodel.Record) error
	GetByID(kind Kind, id, userID int64) (*recordDatamodel.Record, error)
	ListByUser(kind Kind, userID int64) ([]*recordDatamodel.WithCategory, error)
	Update(kind Kind, rec *recordDatamodel.Record) error
	Delete(kind Kind, id, userID int64) (bool, error)
}

// CategoryGetter resolves categories for the write-time type check.
type CategoryGetter interface {
	GetCategoryByID(id int64) (*category.Category, error)
}

// EventPublisher receives record-change events for the audit trail.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service implements owner-scoped CRUD over incomes, expenses and starting
// balances. A record's category must carry the matching type; income records
// pointing at expense categories are rejected at write time.
type Service struct {
	repo       Repository
	categories CategoryGetter
	bus        EventPublisher
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryGetter, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		bus:        bus,
		logger:     logger,
	}
}

// ListRecords returns the owner's records of one kind, date-descending, with
// category names resolved.
func (s *Service) ListRecords(kind Kind, userID int64) ([]*Record, error) {
	rows, err := s.repo.ListByUser(kind, userID)
	if err != nil {
		s.logger.Error("failed to list records", "error", err, "kind", kind, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// CreateRecord validates the payload, checks the category type and inserts
// the row.
func (s *Service) CreateRecord(ctx context.Context, kind Kind, userID int64, dto *WriteRecordDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("record validation failed", "error", err, "kind", kind, "user_id", userID)
		return nil, err
	}

	if err := s.checkCategory(kind, dto.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &recordDatamodel.Record{
		Amount:      dto.ParsedAmount(),
		Description: dto.Description,
		Date:        dto.ParsedDate(),
		UserID:      userID,
		CategoryID:  dto.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(kind, rec); err != nil {
		s.logger.Error("failed to create record", "error", err, "kind", kind, "user_id", userID)
		return nil, err
	}

	s.logger.Info("record created",
		"record_id", rec.ID,
		"kind", kind,
		"user_id", userID,
		"amount", rec.Amount.String())

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewRecordCreatedEvent(rec.ID, string(kind), userID, rec.Amount.String()))
	}

	return FromDataModel(rec), nil
}

// UpdateRecord replaces the mutable fields of an owned record. Rows that do
// not exist or belong to another owner surface as not found.
func (s *Service) UpdateRecord(ctx context.Context, kind Kind, id, userID int64, dto *WriteRecordDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("record validation failed", "error", err, "kind", kind, "record_id", id)
		return nil, err
	}

	rec, err := s.repo.GetByID(kind, id, userID)
	if err != nil {
		s.logger.Error("failed to load record for update", "error", err, "kind", kind, "record_id", id)
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}

	if err := s.checkCategory(kind, dto.CategoryID); err != nil {
		return nil, err
	}

	rec.Amount = dto.ParsedAmount()
	rec.Description = dto.Description
	rec.Date = dto.ParsedDate()
	rec.CategoryID = dto.CategoryID
	rec.UpdatedAt = time.Now()

	if err := s.repo.Update(kind, rec); err != nil {
		s.logger.Error("failed to update record", "error", err, "kind", kind, "record_id", id)
		return nil, err
	}

	s.logger.Info("record updated", "record_id", id, "kind", kind, "user_id", userID)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewRecordUpdatedEvent(id, string(kind), userID, rec.Amount.String()))
	}

	return FromDataModel(rec), nil
}

// DeleteRecord removes an owned record; deleting another owner's row is
// indistinguishable from deleting a missing one.
func (s *Service) DeleteRecord(ctx context.Context, kind Kind, id, userID int64) error {
	rec, err := s.repo.GetByID(kind, id, userID)
	if err != nil {
		s.logger.Error("failed to load record for delete", "error", err, "kind", kind, "record_id", id)
		return err
	}
	if rec == nil {
		return ErrRecordNotFound
	}

	deleted, err := s.repo.Delete(kind, id, userID)
	if err != nil {
		s.logger.Error("failed to delete record", "error", err, "kind", kind, "record_id", id)
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}

	s.logger.Info("record deleted", "record_id", id, "kind", kind, "user_id", userID)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewRecordDeletedEvent(id, string(kind), userID, rec.Amount.String()))
	}

	return nil
}

func (s *Service) checkCategory(kind Kind, categoryID int64) error {
	cat, err := s.categories.GetCategoryByID(categoryID)
	if errors.Is(err, category.ErrCategoryNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		s.logger.Error("failed to resolve category", "error", err, "category_id", categoryID)
		return internal.NewInternalError("failed to resolve category", err)
	}
	if cat == nil {
		return ErrCategoryNotFound
	}
	if cat.Type != kind.CategoryType() {
		s.logger.Warn("category type mismatch",
			"kind", kind,
			"category_id", categoryID,
			"category_type", cat.Type)
		return ErrCategoryMismatch
	}
	return nil
}
