package postgres

import (
	recordDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/record"
	"github.com/ErdhyErnando/moneta/internal/record"
	"gorm.io/gorm"
)

// RecordRepository implements record.Repository using GORM. The same struct
// serves all three record tables; the kind picks the table per query.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) record.Repository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(kind record.Kind, rec *recordDatamodel.Record) error {
	return r.db.Table(kind.Table()).Create(rec).Error
}

func (r *RecordRepository) GetByID(kind record.Kind, id, userID int64) (*recordDatamodel.Record, error) {
	var rec recordDatamodel.Record
	err := r.db.Table(kind.Table()).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) ListByUser(kind record.Kind, userID int64) ([]*recordDatamodel.WithCategory, error) {
	var rows []*recordDatamodel.WithCategory
	table := kind.Table()
	err := r.db.Table(table).
		Select(table+".*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = "+table+".category_id").
		Where(table+".user_id = ?", userID).
		Order(table + ".date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *RecordRepository) Update(kind record.Kind, rec *recordDatamodel.Record) error {
	return r.db.Table(kind.Table()).
		Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
		Updates(map[string]interface{}{
			"amount":      rec.Amount,
			"description": rec.Description,
			"date":        rec.Date,
			"category_id": rec.CategoryID,
			"updated_at":  rec.UpdatedAt,
		}).Error
}

func (r *RecordRepository) Delete(kind record.Kind, id, userID int64) (bool, error) {
	res := r.db.Table(kind.Table()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&recordDatamodel.Record{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
