package utils

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsAjax reports whether the request came from client-side script and
// expects a JSON body instead of a redirect. Mirrors the usual trio of
// markers: the XHR header, a json Accept header, or X-Requested-With.
func IsAjax(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "json")
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
