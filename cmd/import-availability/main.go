package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/sheetimport"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils/db"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	sheetID := flag.String("sheet", os.Getenv("AVAILABILITY_SHEET_ID"), "Google Sheets document id")
	year := flag.Int("year", time.Now().Year(), "season year the week labels belong to")
	flag.Parse()

	if *sheetID == "" {
		log.Fatal("no sheet id: pass -sheet or set AVAILABILITY_SHEET_ID")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}
	if err := database.AutoMigrate(&sheetimport.SheetAvailability{}); err != nil {
		log.Fatal("automigrate failed:", err)
	}

	wb, err := sheetimport.FetchWorkbook(*sheetID)
	if err != nil {
		log.Fatal("could not fetch workbook:", err)
	}
	defer wb.Close()

	imp := sheetimport.Importer{DB: database, Year: *year}
	summary, err := imp.ImportWorkbook(wb)
	if err != nil {
		log.Fatal("import failed:", err)
	}

	log.Printf("done: %d sheets, %d cells imported, %d skipped, %d failed",
		summary.Sheets, summary.Imported, summary.Skipped, summary.Failed)
}
