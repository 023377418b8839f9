package wip

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority")
)

type Repository interface {
	Create(db *gorm.DB, t *WipTask) error
	GetByID(db *gorm.DB, id uint) (*WipTask, error)
	List(db *gorm.DB, includeComplete bool) ([]WipTask, error)
	// Update rewrites the editable fields; it reports whether the assignee
	// changed so the handler can notify the new owner.
	Update(db *gorm.DB, id uint, t *WipTask) (reassigned bool, out *WipTask, err error)
	ToggleComplete(db *gorm.DB, id uint) (*WipTask, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, t *WipTask) error {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !validPriority(t.Priority) {
		return ErrInvalidPriority
	}
	return db.Create(t).Error
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*WipTask, error) {
	var t WipTask
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repositoryImpl) List(db *gorm.DB, includeComplete bool) ([]WipTask, error) {
	var list []WipTask
	q := db.Order("created_at desc")
	if !includeComplete {
		q = q.Where("is_complete = ?", false)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, t *WipTask) (bool, *WipTask, error) {
	var existing WipTask
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, ErrNotFound
		}
		return false, nil, err
	}
	if t.Priority != "" && !validPriority(t.Priority) {
		return false, nil, ErrInvalidPriority
	}

	reassigned := t.AssignedTo != "" && t.AssignedTo != existing.AssignedTo

	existing.Title = t.Title
	existing.TitleDe = t.TitleDe
	existing.NextStep = t.NextStep
	if t.Priority != "" {
		existing.Priority = t.Priority
	}
	existing.AssignedTo = t.AssignedTo
	existing.Status = t.Status
	if err := db.Save(&existing).Error; err != nil {
		return false, nil, err
	}
	return reassigned, &existing, nil
}

// ToggleComplete flips the flag and keeps completed_at in lockstep with it.
func (r *repositoryImpl) ToggleComplete(db *gorm.DB, id uint) (*WipTask, error) {
	var t WipTask
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.IsComplete = !t.IsComplete
	if t.IsComplete {
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	if err := db.Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&WipTask{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
