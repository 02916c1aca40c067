package router

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
)

// Customer IDs end up in cache keys and upstream query strings, so they are
// restricted to a conservative alphabet.
var customerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// requireCustomerID rejects requests whose {customerID} path param is malformed.
func requireCustomerID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !customerIDPattern.MatchString(chi.URLParam(r, "customerID")) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid customer id"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
