package postgres

import (
	"errors"

	"github.com/ErdhyErnando/moneta/internal/auth"
	userDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository implements auth.Repository using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) GetUserByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *AuthRepository) CreateSession(session *userDatamodel.Session) error {
	return r.db.Create(session).Error
}

func (r *AuthRepository) GetSessionByToken(token string) (*userDatamodel.Session, error) {
	var s userDatamodel.Session
	if err := r.db.Where("token = ?", token).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *AuthRepository) DeleteSession(token string) error {
	return r.db.Where("token = ?", token).Delete(&userDatamodel.Session{}).Error
}
