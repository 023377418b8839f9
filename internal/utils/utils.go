package utils

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

// RespondJSON writes v as the JSON response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError writes the standard {success:false, error} failure body.
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a listing name into a URL-safe slug: lowercase,
// non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
