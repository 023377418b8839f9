// Package locale derives the visitor's language from the request, never from
// server state: cookie first, then the host the site was reached on.
package locale

import (
	"net"
	"net/http"
	"os"
	"strings"
)

// CookieName is the locale preference cookie read by the rendering layer.
const CookieName = "locale"

const (
	LocaleEN = "en"
	LocaleDE = "de"
)

// FromHost maps a request host to a locale: .de hosts and the configured
// German domain serve German, everything else English.
func FromHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	if strings.HasSuffix(host, ".de") {
		return LocaleDE
	}
	if germanHost := os.Getenv("GERMAN_DOMAIN"); germanHost != "" &&
		(host == germanHost || strings.HasSuffix(host, "."+germanHost)) {
		return LocaleDE
	}
	return LocaleEN
}

// Middleware sets the locale cookie for cookieless visitors on a German
// host. English needs no cookie: it is the default everywhere. An existing
// cookie wins, explicit visitor choice beats the host rule.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(CookieName); err != nil {
			if loc := FromHost(r.Host); loc == LocaleDE {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    loc,
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}
