// File: internal/handlers/auth_handlers.go
package handlers

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dishcovery/go-dishcovery/internal/services/history"
	"github.com/dishcovery/go-dishcovery/internal/services/user_services"
)

var (
	usernameRegex     = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	passwordMinLength = 8
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	AuthService *user_services.AuthService
	History     *history.Manager
}

func NewAuthHandler(authService *user_services.AuthService, historyManager *history.Manager) *AuthHandler {
	return &AuthHandler{AuthService: authService, History: historyManager}
}

// validateInput ensures that username, email, and password meet basic rules.
func validateInput(username, email, password string) (string, string, string, string) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	var errMsg string
	switch {
	case !usernameRegex.MatchString(username):
		errMsg = "Username must be 3-20 characters, alphanumeric or underscore."
	case !emailRegex.MatchString(email):
		errMsg = "Email address format invalid."
	case len(password) < passwordMinLength:
		errMsg = "Password must be at least 8 characters."
	}
	return username, email, password, errMsg
}

// Register handles new user registrations, including form validation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username, email, password, errMsg := validateInput(
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("password"),
	)
	if errMsg != "" {
		renderTemplate(w, "register.html", map[string]interface{}{"Error": errMsg})
		return
	}

	if _, err := h.AuthService.Register(r.Context(), username, email, password); err != nil {
		log.Printf("Registration error: %v", err)
		renderTemplate(w, "register.html", map[string]interface{}{"Error": err.Error()})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login validates credentials, sets the auth cookie, and redirects to the
// dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := strings.TrimSpace(r.FormValue("password"))
	if username == "" || password == "" {
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Username and password are required."})
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		log.Printf("Login error: %v", err)
		renderTemplate(w, "login.html", map[string]interface{}{"Error": "Invalid username or password."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the auth cookie and drops the user's history session so
// no chat state survives sign-out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("auth_token"); err == nil {
		if userID, err := h.AuthService.ValidateJWTToken(cookie.Value); err == nil {
			h.History.Drop(strconv.FormatUint(uint64(userID), 10))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
