package route

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"seminar-checkin/internal/utils"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminMiddleware guards the operator surface behind the shared admin
// key. Session/auth proper is out of scope; this is the whole gate.
func AdminMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(AdminKeyHeader))
		if key == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Admin key header not found"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(as.Config.GetAdminAPIKey())) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid admin key"))
			return
		}
		next(w, r)
	}
}
