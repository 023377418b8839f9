package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/AdriaticEscapes/api-backoffice/internal/crm"
	"github.com/AdriaticEscapes/api-backoffice/internal/inquiry"
	"github.com/AdriaticEscapes/api-backoffice/internal/locale"
	"github.com/AdriaticEscapes/api-backoffice/internal/media"
	"github.com/AdriaticEscapes/api-backoffice/internal/notifier"
	"github.com/AdriaticEscapes/api-backoffice/internal/property"
	"github.com/AdriaticEscapes/api-backoffice/internal/session"
	"github.com/AdriaticEscapes/api-backoffice/internal/sheetimport"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils/db"
	"github.com/AdriaticEscapes/api-backoffice/internal/wip"
	"github.com/AdriaticEscapes/api-backoffice/internal/yacht"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func buildNotifier(ctx context.Context) notifier.Notifier {
	var targets notifier.Multi
	email, err := notifier.NewEmailNotifier(ctx)
	if err != nil {
		log.Printf("email notifier disabled: %v", err)
	} else if email != nil {
		targets = append(targets, email)
	}
	if hook := notifier.NewWebhookNotifier(); hook != nil {
		targets = append(targets, hook)
	}
	if len(targets) == 0 {
		return notifier.Noop{}
	}
	return targets
}

func main() {
	godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}

	if err := database.AutoMigrate(
		&session.AdminUser{},
		&session.AdminSession{},
		&property.Property{},
		&property.PropertyImage{},
		&property.PropertyAvailability{},
		&property.PropertyYachtOption{},
		&yacht.Yacht{},
		&yacht.YachtImage{},
		&yacht.YachtAvailability{},
		&inquiry.Inquiry{},
		&crm.Customer{},
		&crm.Deal{},
		&wip.WipTask{},
		&sheetimport.SheetAvailability{},
	); err != nil {
		log.Fatal("automigrate failed:", err)
	}

	ctx := context.Background()
	mediaStore, err := media.NewS3Storage(ctx)
	if err != nil {
		log.Fatal("media storage init failed:", err)
	}
	notify := buildNotifier(ctx)

	// Handlers
	sessionHandler := session.NewHandler(database)
	propertyHandler := property.NewHandler(database, mediaStore)
	yachtHandler := yacht.NewHandler(database, mediaStore)
	inquiryHandler := inquiry.NewHandler(database, notify)
	crmHandler := crm.NewHandler(database)
	wipHandler := wip.NewHandler(database, notify)
	mediaHandler := media.NewHandler(mediaStore)

	r := mux.NewRouter()
	r.Use(locale.Middleware)

	// Public routes
	r.HandleFunc("/api/properties", propertyHandler.ListPublic).Methods("GET")
	r.HandleFunc("/api/properties/{slug}", propertyHandler.GetBySlug).Methods("GET")
	r.HandleFunc("/api/properties/{slug}/availability", propertyHandler.ListAvailabilityPublic).Methods("GET")
	r.HandleFunc("/api/yachts", yachtHandler.ListPublic).Methods("GET")
	r.HandleFunc("/api/yachts/{slug}", yachtHandler.GetBySlug).Methods("GET")
	r.HandleFunc("/api/yachts/{slug}/availability", yachtHandler.ListAvailabilityPublic).Methods("GET")
	r.HandleFunc("/api/inquiries", inquiryHandler.Create).Methods("POST")
	r.HandleFunc("/api/admin/login", sessionHandler.Login).Methods("POST")
	// Logout stays outside the guard: clearing an already-cleared cookie is
	// a success, not a 401.
	r.HandleFunc("/api/admin/logout", sessionHandler.Logout).Methods("POST")

	// Admin routes, all behind the session cookie
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(session.RequireAdmin(database, sessionHandler.Repository))

	admin.HandleFunc("/me", sessionHandler.Me).Methods("GET")
	admin.HandleFunc("/password", sessionHandler.ChangePassword).Methods("PUT")

	admin.HandleFunc("/uploads", mediaHandler.Upload).Methods("POST")

	admin.HandleFunc("/properties", propertyHandler.ListAdmin).Methods("GET")
	admin.HandleFunc("/properties", propertyHandler.Create).Methods("POST")
	admin.HandleFunc("/properties/{id}", propertyHandler.GetByID).Methods("GET")
	admin.HandleFunc("/properties/{id}", propertyHandler.Update).Methods("PUT")
	admin.HandleFunc("/properties/{id}", propertyHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/properties/{id}/hero", propertyHandler.SetHeroFeatured).Methods("PUT")
	admin.HandleFunc("/properties/{id}/images", propertyHandler.AddImage).Methods("POST")
	admin.HandleFunc("/properties/{id}/images/reorder", propertyHandler.ReorderImages).Methods("PUT")
	admin.HandleFunc("/properties/{id}/images/{imageId}", propertyHandler.UpdateImage).Methods("PUT")
	admin.HandleFunc("/properties/{id}/images/{imageId}", propertyHandler.DeleteImage).Methods("DELETE")
	admin.HandleFunc("/properties/{id}/images/{imageId}/featured", propertyHandler.SetFeaturedImage).Methods("PUT")
	admin.HandleFunc("/properties/{id}/availability", propertyHandler.ListAvailabilityAdmin).Methods("GET")
	admin.HandleFunc("/properties/{id}/availability", propertyHandler.CreateAvailability).Methods("POST")
	admin.HandleFunc("/properties/{id}/availability/{availabilityId}", propertyHandler.UpdateAvailability).Methods("PUT")
	admin.HandleFunc("/properties/{id}/availability/{availabilityId}", propertyHandler.DeleteAvailability).Methods("DELETE")
	admin.HandleFunc("/properties/{id}/yachts", propertyHandler.ListYachtLinks).Methods("GET")
	admin.HandleFunc("/properties/{id}/yachts", propertyHandler.LinkYachts).Methods("PUT")

	admin.HandleFunc("/yachts", yachtHandler.ListAdmin).Methods("GET")
	admin.HandleFunc("/yachts", yachtHandler.Create).Methods("POST")
	admin.HandleFunc("/yachts/{id}", yachtHandler.GetByID).Methods("GET")
	admin.HandleFunc("/yachts/{id}", yachtHandler.Update).Methods("PUT")
	admin.HandleFunc("/yachts/{id}", yachtHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/yachts/{id}/images", yachtHandler.AddImage).Methods("POST")
	admin.HandleFunc("/yachts/{id}/images/reorder", yachtHandler.ReorderImages).Methods("PUT")
	admin.HandleFunc("/yachts/{id}/images/{imageId}", yachtHandler.DeleteImage).Methods("DELETE")
	admin.HandleFunc("/yachts/{id}/images/{imageId}/featured", yachtHandler.SetFeaturedImage).Methods("PUT")
	admin.HandleFunc("/yachts/{id}/availability", yachtHandler.ListAvailabilityAdmin).Methods("GET")
	admin.HandleFunc("/yachts/{id}/availability", yachtHandler.CreateAvailability).Methods("POST")
	admin.HandleFunc("/yachts/{id}/availability/{availabilityId}", yachtHandler.UpdateAvailability).Methods("PUT")
	admin.HandleFunc("/yachts/{id}/availability/{availabilityId}", yachtHandler.DeleteAvailability).Methods("DELETE")
	admin.HandleFunc("/yachts/{id}/properties", yachtHandler.ListPropertyLinks).Methods("GET")
	admin.HandleFunc("/yachts/{id}/properties", yachtHandler.LinkProperties).Methods("PUT")

	admin.HandleFunc("/inquiries", inquiryHandler.List).Methods("GET")
	admin.HandleFunc("/inquiries/{id}", inquiryHandler.GetByID).Methods("GET")
	admin.HandleFunc("/inquiries/{id}", inquiryHandler.UpdateStatus).Methods("PUT")
	admin.HandleFunc("/inquiries/{id}", inquiryHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/customers", crmHandler.ListCustomers).Methods("GET")
	admin.HandleFunc("/customers", crmHandler.CreateCustomer).Methods("POST")
	admin.HandleFunc("/customers/{id}", crmHandler.GetCustomer).Methods("GET")
	admin.HandleFunc("/customers/{id}", crmHandler.UpdateCustomer).Methods("PUT")
	admin.HandleFunc("/customers/{id}", crmHandler.DeleteCustomer).Methods("DELETE")

	admin.HandleFunc("/deals", crmHandler.ListDeals).Methods("GET")
	admin.HandleFunc("/deals", crmHandler.CreateDeal).Methods("POST")
	admin.HandleFunc("/deals/{id}", crmHandler.GetDeal).Methods("GET")
	admin.HandleFunc("/deals/{id}", crmHandler.UpdateDeal).Methods("PUT")
	admin.HandleFunc("/deals/{id}/stage", crmHandler.UpdateDealStage).Methods("PUT")
	admin.HandleFunc("/deals/{id}", crmHandler.DeleteDeal).Methods("DELETE")

	admin.HandleFunc("/wip", wipHandler.List).Methods("GET")
	admin.HandleFunc("/wip", wipHandler.Create).Methods("POST")
	admin.HandleFunc("/wip/{id}", wipHandler.GetByID).Methods("GET")
	admin.HandleFunc("/wip/{id}", wipHandler.Update).Methods("PUT")
	admin.HandleFunc("/wip/{id}/toggle", wipHandler.ToggleComplete).Methods("PUT")
	admin.HandleFunc("/wip/{id}", wipHandler.Delete).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("ADMIN_ORIGIN"), "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
