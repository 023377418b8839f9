package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromHost(t *testing.T) {
	t.Setenv("GERMAN_DOMAIN", "adria-urlaub.example")

	cases := []struct {
		host string
		want string
	}{
		{"adriaticescapes.com", LocaleEN},
		{"adriaticescapes.com:8080", LocaleEN},
		{"adriaticescapes.de", LocaleDE},
		{"www.adriaticescapes.de:443", LocaleDE},
		{"adria-urlaub.example", LocaleDE},
		{"www.adria-urlaub.example", LocaleDE},
		{"localhost:3000", LocaleEN},
	}
	for _, tc := range cases {
		if got := FromHost(tc.host); got != tc.want {
			t.Errorf("FromHost(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}

func TestMiddlewareSetsCookieOnGermanHost(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "adriaticescapes.de"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == CookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatal("no locale cookie set")
	}
	if found.Value != LocaleDE {
		t.Errorf("cookie = %q, want %q", found.Value, LocaleDE)
	}
}

// English is the default; an .com visitor gets no cookie at all.
func TestMiddlewareNoCookieOnEnglishHost(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "adriaticescapes.com"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			t.Errorf("cookie %q set on an English host", c.Value)
		}
	}
}

// A visitor's explicit choice survives visiting the other domain.
func TestMiddlewareKeepsExistingCookie(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "adriaticescapes.de"
	req.AddCookie(&http.Cookie{Name: CookieName, Value: LocaleEN})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			t.Errorf("middleware reset the cookie to %q over an existing choice", c.Value)
		}
	}
}
