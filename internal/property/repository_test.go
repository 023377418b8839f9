package property

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
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
	if err := db.AutoMigrate(&Property{}, &PropertyImage{}, &PropertyAvailability{}, &PropertyYachtOption{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	// The yacht side lives in its own package; link checks only need the table.
	if err := db.Exec("CREATE TABLE yachts (id INTEGER PRIMARY KEY AUTOINCREMENT, slug TEXT)").Error; err != nil {
		t.Fatalf("create yachts table: %v", err)
	}
	return db
}

func mustDate(t *testing.T, s string) utils.Date {
	t.Helper()
	var d utils.Date
	if err := d.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func seedProperty(t *testing.T, db *gorm.DB, name, slug string) *Property {
	t.Helper()
	p := &Property{Name: name, Slug: slug, IsActive: true}
	if err := NewRepository().Create(db, p); err != nil {
		t.Fatalf("seed property %s: %v", slug, err)
	}
	return p
}

// An explicit false must survive the INSERT: a draft listing created with
// isActive:false must not show up on the public list.
func TestCreateInactiveListingStaysInactive(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	p := &Property{Name: "Villa Draft", Slug: "villa-draft", IsActive: false}
	if err := repo.Create(db, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(db, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsActive {
		t.Error("isActive = true, explicit false was lost on create")
	}

	public, err := repo.List(db, true)
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(public) != 0 {
		t.Errorf("public list = %d listings, inactive listing leaked", len(public))
	}

	all, err := repo.List(db, false)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("admin list = %d listings, want 1", len(all))
	}
}

func TestCreateAvailabilityMinStayZero(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p := seedProperty(t, db, "Villa Ana", "villa-ana")

	a := &PropertyAvailability{
		PropertyID: p.ID,
		StartDate:  mustDate(t, "2026-07-04"),
		EndDate:    mustDate(t, "2026-07-11"),
		MinStay:    0,
	}
	if err := repo.CreateAvailability(db, a); err != nil {
		t.Fatalf("create availability: %v", err)
	}

	list, err := repo.ListAvailability(db, p.ID, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("windows = %d, want 1", len(list))
	}
	if list[0].MinStay != 0 {
		t.Errorf("minStay = %d, explicit 0 was replaced", list[0].MinStay)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	seedProperty(t, db, "Villa Ana", "villa-ana")

	err := repo.Create(db, &Property{Name: "Other", Slug: "villa-ana"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("err = %v, want ErrDuplicateSlug", err)
	}
}

func TestUpdateAbsentVsNull(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p := seedProperty(t, db, "Villa Ana", "villa-ana")
	if err := db.Model(p).Updates(map[string]interface{}{
		"region": "Istria", "bedrooms": 4,
	}).Error; err != nil {
		t.Fatalf("seed columns: %v", err)
	}

	// region present as null clears it; bedrooms absent stays untouched.
	var fields UpdatePayload
	if err := json.Unmarshal([]byte(`{"region": null, "name": "Villa Ana II"}`), &fields); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if err := repo.Update(db, p.ID, fields); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(db, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Villa Ana II" {
		t.Errorf("name = %q, want %q", got.Name, "Villa Ana II")
	}
	if got.Region != "" {
		t.Errorf("region = %q, want cleared", got.Region)
	}
	if got.Bedrooms != 4 {
		t.Errorf("bedrooms = %d, want 4 (untouched)", got.Bedrooms)
	}
}

func TestUpdateIgnoresUnknownFields(t *testing.T) {
	var fields UpdatePayload
	if err := json.Unmarshal([]byte(`{"name": "X", "isHeroFeatured": true, "dropTable": 1}`), &fields); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, ok := fields["name"]; !ok {
		t.Error("name should survive the allowlist")
	}
	if _, ok := fields["is_hero_featured"]; ok {
		t.Error("isHeroFeatured must not be reachable through partial updates")
	}
	if len(fields) != 1 {
		t.Errorf("payload = %v, want only name", fields)
	}
}

func TestSetFeaturedImageSingleton(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p := seedProperty(t, db, "Villa Ana", "villa-ana")

	imgs := []PropertyImage{
		{PropertyID: p.ID, ImageURL: "https://cdn.example.com/a.jpg"},
		{PropertyID: p.ID, ImageURL: "https://cdn.example.com/b.jpg"},
		{PropertyID: p.ID, ImageURL: "https://cdn.example.com/c.jpg"},
	}
	for i := range imgs {
		if err := repo.AddImage(db, &imgs[i]); err != nil {
			t.Fatalf("add image: %v", err)
		}
	}

	if err := repo.SetFeaturedImage(db, p.ID, imgs[0].ID); err != nil {
		t.Fatalf("set featured: %v", err)
	}
	if err := repo.SetFeaturedImage(db, p.ID, imgs[2].ID); err != nil {
		t.Fatalf("set featured again: %v", err)
	}

	var count int64
	if err := db.Model(&PropertyImage{}).
		Where("property_id = ? AND is_featured = ?", p.ID, true).
		Count(&count).Error; err != nil {
		t.Fatalf("count featured: %v", err)
	}
	if count != 1 {
		t.Errorf("featured images = %d, want exactly 1", count)
	}

	got, err := repo.GetByID(db, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FeaturedImage != "https://cdn.example.com/c.jpg" {
		t.Errorf("parent featured mirror = %q, want c.jpg url", got.FeaturedImage)
	}
}

func TestSetFeaturedImageWrongProperty(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p1 := seedProperty(t, db, "Villa Ana", "villa-ana")
	p2 := seedProperty(t, db, "Villa Mira", "villa-mira")

	img := PropertyImage{PropertyID: p1.ID, ImageURL: "https://cdn.example.com/a.jpg"}
	if err := repo.AddImage(db, &img); err != nil {
		t.Fatalf("add image: %v", err)
	}

	if err := repo.SetFeaturedImage(db, p2.ID, img.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetHeroFeaturedSingleton(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p1 := seedProperty(t, db, "Villa Ana", "villa-ana")
	p2 := seedProperty(t, db, "Villa Mira", "villa-mira")

	if err := repo.SetHeroFeatured(db, p1.ID); err != nil {
		t.Fatalf("set hero: %v", err)
	}
	if err := repo.SetHeroFeatured(db, p2.ID); err != nil {
		t.Fatalf("move hero: %v", err)
	}

	var count int64
	if err := db.Model(&Property{}).Where("is_hero_featured = ?", true).Count(&count).Error; err != nil {
		t.Fatalf("count hero: %v", err)
	}
	if count != 1 {
		t.Errorf("hero properties = %d, want exactly 1", count)
	}

	got, err := repo.GetByID(db, p2.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsHeroFeatured {
		t.Error("p2 should be hero featured")
	}
}

func TestDeleteFeaturedImageClearsMirror(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p := seedProperty(t, db, "Villa Ana", "villa-ana")

	img := PropertyImage{PropertyID: p.ID, ImageURL: "https://cdn.example.com/a.jpg"}
	if err := repo.AddImage(db, &img); err != nil {
		t.Fatalf("add image: %v", err)
	}
	if err := repo.SetFeaturedImage(db, p.ID, img.ID); err != nil {
		t.Fatalf("set featured: %v", err)
	}

	if _, err := repo.DeleteImage(db, p.ID, img.ID); err != nil {
		t.Fatalf("delete image: %v", err)
	}
	got, err := repo.GetByID(db, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FeaturedImage != "" {
		t.Errorf("featured mirror = %q, want cleared", got.FeaturedImage)
	}
}

func TestLinkYachtsReplacesWholeSet(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p := seedProperty(t, db, "Villa Ana", "villa-ana")

	for _, slug := range []string{"sunseeker", "lagoon", "princess"} {
		if err := db.Exec("INSERT INTO yachts (slug) VALUES (?)", slug).Error; err != nil {
			t.Fatalf("seed yacht: %v", err)
		}
	}

	if err := repo.LinkYachts(db, p.ID, []YachtLink{{YachtID: 1}, {YachtID: 2, IsRecommended: true}}); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := repo.LinkYachts(db, p.ID, []YachtLink{{YachtID: 3}}); err != nil {
		t.Fatalf("relink: %v", err)
	}

	links, err := repo.ListYachtLinks(db, p.ID)
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links) != 1 || links[0].YachtID != 3 {
		t.Errorf("links = %+v, want only yacht 3", links)
	}
}

func TestLinkYachtsUnknownYacht(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	p := seedProperty(t, db, "Villa Ana", "villa-ana")

	err := repo.LinkYachts(db, p.ID, []YachtLink{{YachtID: 99}})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("err = %v, want ErrInvalidReference", err)
	}

	links, err := repo.ListYachtLinks(db, p.ID)
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("links = %+v, want none after failed replace", links)
	}
}
