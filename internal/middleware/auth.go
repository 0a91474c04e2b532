// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dishcovery/go-dishcovery/internal/services/user_services"
)

// NewJWTMiddleware validates the token from the Authorization header or
// the auth_token cookie. API requests get a 401 JSON body; page requests
// are redirected to the login form.
func NewJWTMiddleware(authService *user_services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				cookie, err := r.Cookie("auth_token")
				if err != nil {
					rejectUnauthenticated(w, r)
					return
				}
				token = cookie.Value
			}

			userID, err := authService.ValidateJWTToken(token)
			if err != nil {
				log.Printf("[AuthMiddleware] Invalid token: %v", err)
				clearAuthCookie(w)
				rejectUnauthenticated(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			// Kept for forwarding as a bearer credential to the backend.
			ctx = context.WithValue(ctx, AuthTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID pulls the authenticated user id out of the request context.
func UserID(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	return userID, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
