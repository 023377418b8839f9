package property

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, p *Property) error
	GetByID(db *gorm.DB, id uint) (*Property, error)
	GetBySlug(db *gorm.DB, slug string, activeOnly bool) (*Property, error)
	List(db *gorm.DB, activeOnly bool) ([]Property, error)
	Update(db *gorm.DB, id uint, fields UpdatePayload) error
	Delete(db *gorm.DB, id uint) error

	AddImage(db *gorm.DB, img *PropertyImage) error
	UpdateImage(db *gorm.DB, propertyID, imageID uint, fields UpdatePayload) error
	DeleteImage(db *gorm.DB, propertyID, imageID uint) (*PropertyImage, error)
	SetFeaturedImage(db *gorm.DB, propertyID, imageID uint) error
	SetHeroFeatured(db *gorm.DB, propertyID uint) error
	ReorderImages(db *gorm.DB, propertyID uint, imageIDs []uint) error

	ListAvailability(db *gorm.DB, propertyID uint, upcomingOnly bool) ([]PropertyAvailability, error)
	CreateAvailability(db *gorm.DB, a *PropertyAvailability) error
	UpdateAvailability(db *gorm.DB, propertyID, availabilityID uint, a *PropertyAvailability) error
	DeleteAvailability(db *gorm.DB, propertyID, availabilityID uint) error

	LinkYachts(db *gorm.DB, propertyID uint, links []YachtLink) error
	ListYachtLinks(db *gorm.DB, propertyID uint) ([]PropertyYachtOption, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *Property) error {
	var count int64
	if err := db.Model(&Property{}).Where("slug = ?", p.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSlug
	}
	if err := db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Property, error) {
	var p Property
	err := db.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order asc, id asc") }).
		Preload("Availability", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date asc") }).
		Preload("YachtOptions").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repositoryImpl) GetBySlug(db *gorm.DB, slug string, activeOnly bool) (*Property, error) {
	var p Property
	q := db.Where("slug = ?", slug)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order asc, id asc") }).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repositoryImpl) List(db *gorm.DB, activeOnly bool) ([]Property, error) {
	var list []Property
	q := db.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("display_order asc, id asc") })
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

// Update applies a partial update. Keys present in fields are written, nil
// values included; absent columns keep their prior value.
func (r *repositoryImpl) Update(db *gorm.DB, id uint, fields UpdatePayload) error {
	var existing Property
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
			if err := db.Model(&Property{}).Where("slug = ? AND id <> ?", s, id).Count(&count).Error; err != nil {
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
	res := db.Delete(&Property{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) AddImage(db *gorm.DB, img *PropertyImage) error {
	var count int64
	if err := db.Model(&Property{}).Where("id = ?", img.PropertyID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidReference
	}
	return db.Create(img).Error
}

var imageUpdatableColumns = map[string]bool{
	"image_url": true, "caption": true, "caption_de": true,
	"display_order": true, "image_type": true,
}

func (r *repositoryImpl) UpdateImage(db *gorm.DB, propertyID, imageID uint, fields UpdatePayload) error {
	var img PropertyImage
	if err := db.Where("id = ? AND property_id = ?", imageID, propertyID).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	filtered := map[string]interface{}{}
	for col, v := range fields {
		if imageUpdatableColumns[col] {
			filtered[col] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return db.Model(&img).Updates(filtered).Error
}

func (r *repositoryImpl) DeleteImage(db *gorm.DB, propertyID, imageID uint) (*PropertyImage, error) {
	var img PropertyImage
	if err := db.Where("id = ? AND property_id = ?", imageID, propertyID).First(&img).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := db.Delete(&img).Error; err != nil {
		return nil, err
	}
	// Keep the parent's mirror consistent when the featured image goes away.
	if img.IsFeatured {
		if err := db.Model(&Property{}).Where("id = ?", propertyID).
			Update("featured_image", "").Error; err != nil {
			return nil, err
		}
	}
	return &img, nil
}

// SetFeaturedImage makes imageID the single featured image of its property
// and mirrors its URL onto the parent row. Runs in one transaction so two
// concurrent calls cannot leave zero or two images flagged.
func (r *repositoryImpl) SetFeaturedImage(db *gorm.DB, propertyID, imageID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var img PropertyImage
		if err := tx.Where("id = ? AND property_id = ?", imageID, propertyID).First(&img).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&PropertyImage{}).
			Where("property_id = ? AND id <> ?", propertyID, imageID).
			Update("is_featured", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&PropertyImage{}).Where("id = ?", imageID).
			Update("is_featured", true).Error; err != nil {
			return err
		}
		return tx.Model(&Property{}).Where("id = ?", propertyID).
			Update("featured_image", img.ImageURL).Error
	})
}

// SetHeroFeatured makes propertyID the single hero-featured property across
// the whole table. Same transactional shape as SetFeaturedImage, wider scope.
func (r *repositoryImpl) SetHeroFeatured(db *gorm.DB, propertyID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&Property{}).Where("id <> ?", propertyID).
			Update("is_hero_featured", false).Error; err != nil {
			return err
		}
		return tx.Model(&Property{}).Where("id = ?", propertyID).
			Update("is_hero_featured", true).Error
	})
}

// ReorderImages rewrites display_order for the listed image ids, scoped to
// the property. Images not listed keep their order.
func (r *repositoryImpl) ReorderImages(db *gorm.DB, propertyID uint, imageIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range imageIDs {
			res := tx.Model(&PropertyImage{}).
				Where("id = ? AND property_id = ?", id, propertyID).
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

func (r *repositoryImpl) ListAvailability(db *gorm.DB, propertyID uint, upcomingOnly bool) ([]PropertyAvailability, error) {
	var list []PropertyAvailability
	q := db.Where("property_id = ?", propertyID)
	if upcomingOnly {
		today := time.Now().Format("2006-01-02")
		q = q.Where("end_date >= ?", today)
	}
	err := q.Order("start_date asc").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) CreateAvailability(db *gorm.DB, a *PropertyAvailability) error {
	var count int64
	if err := db.Model(&Property{}).Where("id = ?", a.PropertyID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidReference
	}
	if a.Status == "" {
		a.Status = AvailabilityAvailable
	}
	return db.Create(a).Error
}

func (r *repositoryImpl) UpdateAvailability(db *gorm.DB, propertyID, availabilityID uint, a *PropertyAvailability) error {
	var existing PropertyAvailability
	if err := db.Where("id = ? AND property_id = ?", availabilityID, propertyID).First(&existing).Error; err != nil {
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

func (r *repositoryImpl) DeleteAvailability(db *gorm.DB, propertyID, availabilityID uint) error {
	res := db.Where("id = ? AND property_id = ?", availabilityID, propertyID).Delete(&PropertyAvailability{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkYachts replaces the property's cross-sell set whole: callers resend the
// complete desired set each time. Delete and inserts share one transaction so
// a failed insert cannot leave the set half-replaced.
func (r *repositoryImpl) LinkYachts(db *gorm.DB, propertyID uint, links []YachtLink) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if len(links) > 0 {
			ids := make([]uint, 0, len(links))
			for _, l := range links {
				ids = append(ids, l.YachtID)
			}
			var found int64
			if err := tx.Table("yachts").Where("id IN ?", ids).Count(&found).Error; err != nil {
				return err
			}
			if found != int64(len(ids)) {
				return ErrInvalidReference
			}
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&PropertyYachtOption{}).Error; err != nil {
			return err
		}
		for _, l := range links {
			opt := PropertyYachtOption{
				PropertyID:    propertyID,
				YachtID:       l.YachtID,
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

func (r *repositoryImpl) ListYachtLinks(db *gorm.DB, propertyID uint) ([]PropertyYachtOption, error) {
	var list []PropertyYachtOption
	err := db.Where("property_id = ?", propertyID).Find(&list).Error
	return list, err
}
