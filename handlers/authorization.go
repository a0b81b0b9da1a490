package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"bitbucket.org/creachadair/stringset"
)

const HEADER_USER_ID = "X-User-ID"

// AdminAuthorizer lets users edit their own profile and admins edit anyone's.
type AdminAuthorizer struct {
	admins stringset.Set
}

func NewAdminAuthorizer(adminUserIds []string) AdminAuthorizer {
	return AdminAuthorizer{admins: stringset.New(adminUserIds...)}
}

func (a AdminAuthorizer) CanEditUser(_ context.Context, actorId string, userId string) bool {
	if actorId == "" {
		return false
	}
	return actorId == userId || a.admins.Contains(actorId)
}

func isAuthorized(r *http.Request, apiKey string) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) == 1
}

// requireAdmin rejects requests without the admin api key or an acting user.
func requireAdmin(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isAuthorized(r, apiKey) {
				writeError(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}
			if r.Header.Get(HEADER_USER_ID) == "" {
				writeError(w, http.StatusBadRequest, "missing "+HEADER_USER_ID+" header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
