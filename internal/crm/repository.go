package crm

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("a customer with this email already exists")
	ErrInvalidStage   = errors.New("invalid deal stage")
)

// CustomerFields is the upsert payload coming from an inquiry.
type CustomerFields struct {
	Name  string
	Phone string
	Notes string
}

type Repository interface {
	// Customers
	CreateCustomer(db *gorm.DB, c *Customer) error
	GetCustomer(db *gorm.DB, id uint) (*Customer, error)
	ListCustomers(db *gorm.DB) ([]Customer, error)
	UpdateCustomer(db *gorm.DB, id uint, c *Customer) error
	DeleteCustomer(db *gorm.DB, id uint) error
	UpsertCustomerByEmail(db *gorm.DB, email string, fields CustomerFields) (*Customer, error)

	// Deals
	CreateDeal(db *gorm.DB, d *Deal) error
	GetDeal(db *gorm.DB, id uint) (*Deal, error)
	ListDeals(db *gorm.DB) ([]Deal, error)
	UpdateDeal(db *gorm.DB, id uint, d *Deal) error
	UpdateDealStage(db *gorm.DB, id uint, newStage string) (*Deal, error)
	DeleteDeal(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) CreateCustomer(db *gorm.DB, c *Customer) error {
	var count int64
	if err := db.Model(&Customer{}).Where("email = ?", c.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	if c.Status == "" {
		c.Status = StageLead
	}
	return db.Create(c).Error
}

func (r *repositoryImpl) GetCustomer(db *gorm.DB, id uint) (*Customer, error) {
	var c Customer
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListCustomers(db *gorm.DB) ([]Customer, error) {
	var list []Customer
	err := db.Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) UpdateCustomer(db *gorm.DB, id uint, c *Customer) error {
	var existing Customer
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	existing.Name = c.Name
	existing.Email = c.Email
	existing.Phone = c.Phone
	existing.Notes = c.Notes
	existing.Source = c.Source
	existing.Status = c.Status
	existing.Tags = c.Tags
	return db.Save(&existing).Error
}

func (r *repositoryImpl) DeleteCustomer(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Customer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		// Deals keep existing but lose the reference.
		return tx.Model(&Deal{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error
	})
}

// UpsertCustomerByEmail is the inquiry-side write: a new email inserts a lead
// sourced from the website; an existing customer only gets a phone backfill
// when none was stored. CRM data entered by staff is never overwritten here.
func (r *repositoryImpl) UpsertCustomerByEmail(db *gorm.DB, email string, fields CustomerFields) (*Customer, error) {
	var existing Customer
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Phone == "" && fields.Phone != "" {
			if err := db.Model(&existing).Update("phone", fields.Phone).Error; err != nil {
				return nil, err
			}
			existing.Phone = fields.Phone
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := Customer{
		Name:   fields.Name,
		Email:  email,
		Phone:  fields.Phone,
		Notes:  fields.Notes,
		Source: "website",
		Status: StageLead,
	}
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) CreateDeal(db *gorm.DB, d *Deal) error {
	if d.Stage == "" {
		d.Stage = StageLead
	}
	if !validStage(d.Stage) {
		return ErrInvalidStage
	}
	if terminalStage(d.Stage) && d.ClosedAt == nil {
		now := time.Now()
		d.ClosedAt = &now
	}
	return db.Create(d).Error
}

func (r *repositoryImpl) GetDeal(db *gorm.DB, id uint) (*Deal, error) {
	var d Deal
	if err := db.Preload("Customer").First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repositoryImpl) ListDeals(db *gorm.DB) ([]Deal, error) {
	var list []Deal
	err := db.Preload("Customer").Order("created_at desc").Find(&list).Error
	return list, err
}

// UpdateDeal rewrites the editable fields but routes stage changes through
// the same closed_at rule as UpdateDealStage.
func (r *repositoryImpl) UpdateDeal(db *gorm.DB, id uint, d *Deal) error {
	var existing Deal
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d.Stage != "" && !validStage(d.Stage) {
		return ErrInvalidStage
	}
	if d.Stage != "" && d.Stage != existing.Stage && terminalStage(d.Stage) {
		now := time.Now()
		existing.ClosedAt = &now
	}
	existing.Title = d.Title
	existing.Value = d.Value
	if d.Stage != "" {
		existing.Stage = d.Stage
	}
	existing.CustomerID = d.CustomerID
	existing.Probability = d.Probability
	existing.ExpectedCloseDate = d.ExpectedCloseDate
	existing.Owner = d.Owner
	return db.Save(&existing).Error
}

// UpdateDealStage moves a deal through the pipeline. Entering won or lost
// stamps closed_at in the same update; any other transition leaves closed_at
// alone, including reopening a closed deal. The old timestamp is kept as
// history.
func (r *repositoryImpl) UpdateDealStage(db *gorm.DB, id uint, newStage string) (*Deal, error) {
	if !validStage(newStage) {
		return nil, ErrInvalidStage
	}
	var d Deal
	if err := db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"stage": newStage}
	if terminalStage(newStage) {
		updates["closed_at"] = time.Now()
	}
	if err := db.Model(&d).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repositoryImpl) DeleteDeal(db *gorm.DB, id uint) error {
	res := db.Delete(&Deal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
