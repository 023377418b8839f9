package yacht

import (
	"errors"
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/property"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("yacht not found")
	ErrDuplicateSlug    = errors.New("slug already in use")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

type Repository interface {
	Create(db *gorm.DB, y *Yacht) error
	GetByID(db *gorm.DB, id uint) (*Yacht, error)
	GetBySlug(db *gorm.DB, slug string, activeOnly bool) (*Yacht, error)
	List(db *gorm.DB, activeOnly bool) ([]Yacht, error)
	Update(db *gorm.DB, id uint, fields UpdatePayload) error
	Delete(db *gorm.DB, id uint) error

	AddImage(db *gorm.DB, img *YachtImage) error
	DeleteImage(db *gorm.DB, yachtID, imageID uint) (*YachtImage, error)
	SetFeaturedImage(db *gorm.DB, yachtID, imageID uint) error
	ReorderImages(db *gorm.DB, yachtID uint, imageIDs []uint) error

	ListAvailability(db *gorm.DB, yachtID uint, upcomingOnly bool) ([]YachtAvailability, error)
	CreateAvailability(db *gorm.DB, a *YachtAvailability) error
	UpdateAvailability(db *gorm.DB, yachtID, availabilityID uint, a *YachtAvailability) error
	DeleteAvailability(db *gorm.DB, yachtID, availabilityID uint) error

	LinkProperties(db *gorm.DB, yachtID uint, links []PropertyLink) error
	ListPropertyLinks(db *gorm.DB, yachtID uint) ([]property.PropertyYachtOption, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, y *Yacht) error {
	var count int64
	if err := db.Model(&Yacht{}).Where("slug = ?", y.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSlug
	}
	if err := db.Create(y).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Yacht, error) {
	var y Yacht
	err := db.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order asc, id asc") }).
		Preload("Availability", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date asc") }).
		First(&y, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &y, err
}

func (r *repositoryImpl) GetBySlug(db *gorm.DB, slug string, activeOnly bool) (*Yacht, error) {
	var y Yacht
	q := db.Where("slug = ?", slug)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order asc, id asc") }).
		First(&y).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &y, err
}

func (r *repositoryImpl) List(db *gorm.DB, activeOnly bool) ([]Yacht, error) {
	var list []Yacht
	q := db.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order asc, id asc") })
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, fields UpdatePayload) error {
	var existing Yacht
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if slug, ok := fields["slug"]; ok {
		if s, _ := slug.(string); s != "" && s != existing.Slug {
			var count int64
			if err := db.Model(&Yacht{}).Where("slug = ? AND id <> ?", s, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateSlug
			}
		}
	}
	return db.Model(&existing).Updates(map[string]interface{}(fields)).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Yacht{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) AddImage(db *gorm.DB, img *YachtImage) error {
	var count int64
	if err := db.Model(&Yacht{}).Where("id = ?", img.YachtID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidReference
	}
	return db.Create(img).Error
}

func (r *repositoryImpl) DeleteImage(db *gorm.DB, yachtID, imageID uint) (*YachtImage, error) {
	var img YachtImage
	if err := db.Where("id = ? AND yacht_id = ?", imageID, yachtID).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := db.Delete(&img).Error; err != nil {
		return nil, err
	}
	if img.IsFeatured {
		if err := db.Model(&Yacht{}).Where("id = ?", yachtID).
			Update("featured_image", "").Error; err != nil {
			return nil, err
		}
	}
	return &img, nil
}

// SetFeaturedImage keeps the per-yacht singleton: one transaction unsets the
// rest, sets the target and mirrors the URL onto the yacht row.
func (r *repositoryImpl) SetFeaturedImage(db *gorm.DB, yachtID, imageID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var img YachtImage
		if err := tx.Where("id = ? AND yacht_id = ?", imageID, yachtID).First(&img).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&YachtImage{}).
			Where("yacht_id = ? AND id <> ?", yachtID, imageID).
			Update("is_featured", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&YachtImage{}).Where("id = ?", imageID).
			Update("is_featured", true).Error; err != nil {
			return err
		}
		return tx.Model(&Yacht{}).Where("id = ?", yachtID).
			Update("featured_image", img.ImageURL).Error
	})
}

func (r *repositoryImpl) ReorderImages(db *gorm.DB, yachtID uint, imageIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range imageIDs {
			res := tx.Model(&YachtImage{}).
				Where("id = ? AND yacht_id = ?", id, yachtID).
				Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

func (r *repositoryImpl) ListAvailability(db *gorm.DB, yachtID uint, upcomingOnly bool) ([]YachtAvailability, error) {
	var list []YachtAvailability
	q := db.Where("yacht_id = ?", yachtID)
	if upcomingOnly {
		today := time.Now().Format("2006-01-02")
		q = q.Where("end_date >= ?", today)
	}
	err := q.Order("start_date asc").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) CreateAvailability(db *gorm.DB, a *YachtAvailability) error {
	var count int64
	if err := db.Model(&Yacht{}).Where("id = ?", a.YachtID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidReference
	}
	if a.Status == "" {
		a.Status = property.AvailabilityAvailable
	}
	return db.Create(a).Error
}

func (r *repositoryImpl) UpdateAvailability(db *gorm.DB, yachtID, availabilityID uint, a *YachtAvailability) error {
	var existing YachtAvailability
	if err := db.Where("id = ? AND yacht_id = ?", availabilityID, yachtID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	existing.StartDate = a.StartDate
	existing.EndDate = a.EndDate
	existing.PricePerPeriod = a.PricePerPeriod
	existing.MinStay = a.MinStay
	existing.Status = a.Status
	existing.Notes = a.Notes
	return db.Save(&existing).Error
}

func (r *repositoryImpl) DeleteAvailability(db *gorm.DB, yachtID, availabilityID uint) error {
	res := db.Where("id = ? AND yacht_id = ?", availabilityID, yachtID).Delete(&YachtAvailability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkProperties is the yacht side of the cross-sell pairing; same
// full-replace, single-transaction semantics as the property side.
func (r *repositoryImpl) LinkProperties(db *gorm.DB, yachtID uint, links []PropertyLink) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Yacht{}).Where("id = ?", yachtID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if len(links) > 0 {
			ids := make([]uint, 0, len(links))
			for _, l := range links {
				ids = append(ids, l.PropertyID)
			}
			var found int64
			if err := tx.Table("properties").Where("id IN ?", ids).Count(&found).Error; err != nil {
				return err
			}
			if found != int64(len(ids)) {
				return ErrInvalidReference
			}
		}
		if err := tx.Where("yacht_id = ?", yachtID).Delete(&property.PropertyYachtOption{}).Error; err != nil {
			return err
		}
		for _, l := range links {
			opt := property.PropertyYachtOption{
				PropertyID:    l.PropertyID,
				YachtID:       yachtID,
				IsRecommended: l.IsRecommended,
				SpecialRate:   l.SpecialRate,
			}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repositoryImpl) ListPropertyLinks(db *gorm.DB, yachtID uint) ([]property.PropertyYachtOption, error) {
	var list []property.PropertyYachtOption
	err := db.Where("yacht_id = ?", yachtID).Find(&list).Error
	return list, err
}
