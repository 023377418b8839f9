package session

import (
	"context"
	"net/http"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"gorm.io/gorm"
)

type ctxKey string

// CtxAdminUser holds the *AdminUser resolved from the request cookie.
const CtxAdminUser ctxKey = "adminUser"

// RequireAdmin resolves the admin_session cookie and rejects the request with
// a bare 401 when it cannot. Handlers behind it may assume CtxAdminUser is set.
// The response never says whether the token was absent, unknown or expired.
func RequireAdmin(db *gorm.DB, repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			var token string
			if c, err := r.Cookie(CookieName); err == nil {
				token = c.Value
			}
			user, err := repo.Validate(db, token)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), CtxAdminUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the admin user placed by RequireAdmin.
func UserFromContext(ctx context.Context) *AdminUser {
	u, _ := ctx.Value(CtxAdminUser).(*AdminUser)
	return u
}
