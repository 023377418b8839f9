package crm

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Customer{}, &Deal{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestUpsertCustomerByEmailNew(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	c, err := repo.UpsertCustomerByEmail(db, "ana@example.com", CustomerFields{
		Name:  "Ana Kovac",
		Phone: "+385 91 000 0000",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("upsert did not persist the customer")
	}
	if c.Status != StageLead {
		t.Errorf("status = %q, want %q", c.Status, StageLead)
	}
	if c.Source != "website" {
		t.Errorf("source = %q, want website", c.Source)
	}
}

func TestUpsertCustomerByEmailExisting(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	seed := &Customer{Name: "Ana Kovac", Email: "ana@example.com", Phone: "+385 91 111 1111", Status: "qualified"}
	if err := repo.CreateCustomer(db, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c, err := repo.UpsertCustomerByEmail(db, "ana@example.com", CustomerFields{
		Name:  "A. Kovac",
		Phone: "+385 91 999 9999",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if c.ID != seed.ID {
		t.Errorf("upsert created a second customer, id %d != %d", c.ID, seed.ID)
	}
	if c.Phone != "+385 91 111 1111" {
		t.Errorf("phone = %q, staff-entered phone must not be overwritten", c.Phone)
	}
	if c.Name != "Ana Kovac" {
		t.Errorf("name = %q, staff-entered name must not be overwritten", c.Name)
	}
	if c.Status != "qualified" {
		t.Errorf("status = %q, must keep the staff-set pipeline status", c.Status)
	}
}

func TestUpsertCustomerByEmailPhoneBackfill(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	seed := &Customer{Name: "Ana Kovac", Email: "ana@example.com"}
	if err := repo.CreateCustomer(db, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c, err := repo.UpsertCustomerByEmail(db, "ana@example.com", CustomerFields{Phone: "+385 91 222 2222"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if c.Phone != "+385 91 222 2222" {
		t.Errorf("phone = %q, empty phone should be backfilled", c.Phone)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	if err := repo.CreateCustomer(db, &Customer{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := repo.CreateCustomer(db, &Customer{Name: "Other", Email: "ana@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestUpdateDealStageTerminalStampsClosedAt(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	d := &Deal{Title: "Summer week, Villa Ana"}
	if err := repo.CreateDeal(db, d); err != nil {
		t.Fatalf("create deal: %v", err)
	}
	if d.Stage != StageLead {
		t.Errorf("stage = %q, want default %q", d.Stage, StageLead)
	}
	if d.ClosedAt != nil {
		t.Error("closed_at should be nil on an open deal")
	}

	if _, err := repo.UpdateDealStage(db, d.ID, StageProposal); err != nil {
		t.Fatalf("move to proposal: %v", err)
	}
	got, err := repo.GetDeal(db, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ClosedAt != nil {
		t.Error("proposal must not stamp closed_at")
	}

	if _, err := repo.UpdateDealStage(db, d.ID, StageWon); err != nil {
		t.Fatalf("move to won: %v", err)
	}
	got, err = repo.GetDeal(db, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ClosedAt == nil {
		t.Fatal("won must stamp closed_at")
	}
	closed := *got.ClosedAt

	// Reopening keeps the historical timestamp.
	if _, err := repo.UpdateDealStage(db, d.ID, StageInterested); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = repo.GetDeal(db, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stage != StageInterested {
		t.Errorf("stage = %q, want %q", got.Stage, StageInterested)
	}
	if got.ClosedAt == nil || !got.ClosedAt.Equal(closed) {
		t.Errorf("closed_at = %v, want kept %v", got.ClosedAt, closed)
	}
}

func TestUpdateDealStageInvalid(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	d := &Deal{Title: "Test"}
	if err := repo.CreateDeal(db, d); err != nil {
		t.Fatalf("create deal: %v", err)
	}
	if _, err := repo.UpdateDealStage(db, d.ID, "archived"); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("err = %v, want ErrInvalidStage", err)
	}
}

func TestDeleteCustomerDetachesDeals(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	c := &Customer{Name: "Ana", Email: "ana@example.com"}
	if err := repo.CreateCustomer(db, c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	d := &Deal{Title: "Summer week", CustomerID: &c.ID}
	if err := repo.CreateDeal(db, d); err != nil {
		t.Fatalf("seed deal: %v", err)
	}

	if err := repo.DeleteCustomer(db, c.ID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	got, err := repo.GetDeal(db, d.ID)
	if err != nil {
		t.Fatalf("get deal: %v", err)
	}
	if got.CustomerID != nil {
		t.Errorf("deal customer_id = %v, want nil after customer delete", *got.CustomerID)
	}
}
