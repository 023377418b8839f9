package sheetimport

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Summary is what one run reports: cells that made it into staging and
// cells that were skipped or failed.
type Summary struct {
	Sheets   int
	Imported int
	Skipped  int
	Failed   int
}

// Importer walks every sheet of a planning workbook and upserts one staging
// row per grid cell. The layout per sheet: row 1 holds property labels from
// column B on, column A holds week labels from row 2 down, the grid holds
// the status cells. The sheet name is the region.
type Importer struct {
	DB *gorm.DB
	// Year anchors the "DD.MM.-DD.MM." week labels.
	Year int
}

// skipSheet filters out non-data sheets by name.
func skipSheet(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "template") || strings.Contains(n, "archive")
}

// FetchWorkbook downloads an .xlsx export of the workbook by its external ID.
func FetchWorkbook(sheetID string) (*excelize.File, error) {
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=xlsx", sheetID)
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch workbook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch workbook: status %d", resp.StatusCode)
	}
	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	return f, nil
}

// ImportWorkbook runs the whole workbook. One bad cell never aborts the run:
// the failure is logged with its position and the loop moves on, because
// each cell is independently idempotent.
func (imp *Importer) ImportWorkbook(f *excelize.File) (Summary, error) {
	var sum Summary
	for _, sheet := range f.GetSheetList() {
		if skipSheet(sheet) {
			continue
		}
		sum.Sheets++
		if err := imp.importSheet(f, sheet, &sum); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (imp *Importer) importSheet(f *excelize.File, sheet string, sum *Summary) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil
	}

	header := rows[0]
	for rowIdx, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		weekLabel := strings.TrimSpace(row[0])
		weekStart, weekEnd := ParseWeekLabel(weekLabel, imp.Year)

		for colIdx := 1; colIdx < len(header); colIdx++ {
			label := strings.TrimSpace(header[colIdx])
			if label == "" {
				sum.Skipped++
				continue
			}
			raw := ""
			if colIdx < len(row) {
				raw = row[colIdx]
			}
			name, capacity := ParsePropertyLabel(label)

			cell := SheetAvailability{
				Region:           sheet,
				WeekLabel:        weekLabel,
				WeekStart:        weekStart,
				WeekEnd:          weekEnd,
				PropertyName:     name,
				PropertyCapacity: capacity,
				Status:           ClassifyStatus(raw),
				RawValue:         strings.TrimSpace(raw),
				ImportedAt:       time.Now(),
			}
			if err := imp.upsertCell(&cell); err != nil {
				// Row/column context for whoever fixes the sheet.
				log.Printf("sheet %q row %d col %d (%s / %s): %v",
					sheet, rowIdx+2, colIdx+1, weekLabel, name, err)
				sum.Failed++
				continue
			}
			sum.Imported++
		}
	}
	return nil
}

// upsertCell inserts or refreshes the staging row keyed by the natural key.
// A re-run with unchanged source only churns imported_at.
func (imp *Importer) upsertCell(cell *SheetAvailability) error {
	return imp.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "region"}, {Name: "week_label"}, {Name: "property_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "raw_value", "imported_at",
			"week_start", "week_end", "property_capacity",
		}),
	}).Create(cell).Error
}
