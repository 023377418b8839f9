package wip

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
	if err := db.AutoMigrate(&WipTask{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateDefaultsPriority(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	task := &WipTask{Title: "Replace pool photos"}
	if err := repo.Create(db, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("priority = %q, want %q", task.Priority, PriorityMedium)
	}

	err := repo.Create(db, &WipTask{Title: "Bad", Priority: "urgent-ish"})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("err = %v, want ErrInvalidPriority", err)
	}
}

func TestToggleComplete(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	task := &WipTask{Title: "Replace pool photos"}
	if err := repo.Create(db, task); err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := repo.ToggleComplete(db, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done.IsComplete || done.CompletedAt == nil {
		t.Errorf("toggled task = %+v, want complete with timestamp", done)
	}

	reopened, err := repo.ToggleComplete(db, task.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if reopened.IsComplete || reopened.CompletedAt != nil {
		t.Errorf("reopened task = %+v, want open with no timestamp", reopened)
	}
}

func TestUpdateReportsReassignment(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	task := &WipTask{Title: "Replace pool photos", AssignedTo: "Marko"}
	if err := repo.Create(db, task); err != nil {
		t.Fatalf("create: %v", err)
	}

	reassigned, _, err := repo.Update(db, task.ID, &WipTask{Title: "Replace pool photos", AssignedTo: "Marko"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if reassigned {
		t.Error("same assignee must not count as a reassignment")
	}

	reassigned, out, err := repo.Update(db, task.ID, &WipTask{Title: "Replace pool photos", AssignedTo: "Petra"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reassigned {
		t.Error("new assignee must count as a reassignment")
	}
	if out.AssignedTo != "Petra" {
		t.Errorf("assignedTo = %q, want Petra", out.AssignedTo)
	}
}
