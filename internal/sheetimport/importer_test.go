package sheetimport

import (
	"testing"

	"github.com/xuri/excelize/v2"
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
	if err := db.AutoMigrate(&SheetAvailability{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Istria")
	set := func(cell, value string) {
		if err := f.SetCellValue("Istria", cell, value); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	set("B1", "Villa Ana (8)")
	set("C1", "Villa Mira (6)")
	set("A2", "05.06.-12.06.")
	set("B2", "4.500")
	set("C2", "owner")
	set("A3", "12.06.-19.06.")
	set("B3", "booked")
	set("C3", "a.A")
	return f
}

func TestImportWorkbook(t *testing.T) {
	db := testDB(t)
	f := testWorkbook(t)
	defer f.Close()

	imp := Importer{DB: db, Year: 2026}
	sum, err := imp.ImportWorkbook(f)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Sheets != 1 {
		t.Errorf("sheets = %d, want 1", sum.Sheets)
	}
	if sum.Imported != 4 {
		t.Errorf("imported = %d, want 4", sum.Imported)
	}
	if sum.Failed != 0 {
		t.Errorf("failed = %d, want 0", sum.Failed)
	}

	var cell SheetAvailability
	err = db.Where("region = ? AND week_label = ? AND property_name = ?",
		"Istria", "05.06.-12.06.", "Villa Ana").First(&cell).Error
	if err != nil {
		t.Fatalf("lookup cell: %v", err)
	}
	if cell.Status != StatusAvailable {
		t.Errorf("status = %q, want %q", cell.Status, StatusAvailable)
	}
	if cell.PropertyCapacity == nil || *cell.PropertyCapacity != 8 {
		t.Errorf("capacity = %v, want 8", cell.PropertyCapacity)
	}
	if cell.WeekStart == nil || cell.WeekStart.Format("2006-01-02") != "2026-06-05" {
		t.Errorf("week start = %v, want 2026-06-05", cell.WeekStart)
	}
}

func TestImportWorkbookIdempotent(t *testing.T) {
	db := testDB(t)
	f := testWorkbook(t)
	defer f.Close()

	imp := Importer{DB: db, Year: 2026}
	if _, err := imp.ImportWorkbook(f); err != nil {
		t.Fatalf("first import: %v", err)
	}

	// Source changed between runs: one cell flips to booked.
	if err := f.SetCellValue("Istria", "B2", "booked"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if _, err := imp.ImportWorkbook(f); err != nil {
		t.Fatalf("second import: %v", err)
	}

	var count int64
	if err := db.Model(&SheetAvailability{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Errorf("row count after re-import = %d, want 4", count)
	}

	var cell SheetAvailability
	err := db.Where("region = ? AND week_label = ? AND property_name = ?",
		"Istria", "05.06.-12.06.", "Villa Ana").First(&cell).Error
	if err != nil {
		t.Fatalf("lookup cell: %v", err)
	}
	if cell.Status != StatusBooked {
		t.Errorf("status after re-import = %q, want %q", cell.Status, StatusBooked)
	}
}

// One rejected cell must not abort the sheet: the failure is counted and the
// neighboring cells still land.
func TestImportWorkbookContinuesAfterCellFailure(t *testing.T) {
	db := testDB(t)
	f := testWorkbook(t)
	defer f.Close()

	err := db.Exec(`CREATE TRIGGER reject_villa_mira BEFORE INSERT ON sheet_availabilities
		WHEN NEW.property_name = 'Villa Mira'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`).Error
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	imp := Importer{DB: db, Year: 2026}
	sum, err := imp.ImportWorkbook(f)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Failed != 2 {
		t.Errorf("failed = %d, want 2", sum.Failed)
	}
	if sum.Imported != 2 {
		t.Errorf("imported = %d, want 2", sum.Imported)
	}

	var count int64
	if err := db.Model(&SheetAvailability{}).
		Where("property_name = ?", "Villa Ana").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("Villa Ana cells = %d, want 2 despite the neighbor failing", count)
	}
}

func TestImportWorkbookSkipsTemplateSheets(t *testing.T) {
	db := testDB(t)
	f := testWorkbook(t)
	defer f.Close()

	if _, err := f.NewSheet("Template 2027"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("Template 2027", "B1", "Villa Ana (8)"); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	imp := Importer{DB: db, Year: 2026}
	sum, err := imp.ImportWorkbook(f)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Sheets != 1 {
		t.Errorf("sheets = %d, want 1", sum.Sheets)
	}
}
