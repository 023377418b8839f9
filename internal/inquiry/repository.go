package inquiry

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("inquiry not found")
	ErrInvalidStatus = errors.New("invalid inquiry status")
)

type Repository interface {
	Create(db *gorm.DB, inq *Inquiry) error
	GetByID(db *gorm.DB, id uint) (*Inquiry, error)
	List(db *gorm.DB, status string) ([]Inquiry, error)
	UpdateStatus(db *gorm.DB, id uint, status string) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, inq *Inquiry) error {
	if inq.Status == "" {
		inq.Status = StatusNew
	}
	return db.Create(inq).Error
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Inquiry, error) {
	var inq Inquiry
	if err := db.First(&inq, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inq, nil
}

func (r *repositoryImpl) List(db *gorm.DB, status string) ([]Inquiry, error) {
	var list []Inquiry
	q := db.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) UpdateStatus(db *gorm.DB, id uint, status string) error {
	if !validStatus(status) {
		return ErrInvalidStatus
	}
	res := db.Model(&Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Inquiry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
