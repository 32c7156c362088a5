package token

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie carries the admin token for HTML admin pages. API clients
// send a Bearer header instead.
const SessionCookie = "admin_token"

type ctxKey struct{}

// Verifier checks a raw token and reports the authenticated username.
// The admin gates depend only on this interface so tests can substitute
// a fake.
type Verifier interface {
	Verify(tokenString string) (string, error)
}

// Auth issues and verifies HS256 admin tokens against a bcrypt'd user table.
type Auth struct {
	SigningKey []byte
	Users      map[string]string
}

func New(signingKey string, users map[string]string) *Auth {
	return &Auth{SigningKey: []byte(signingKey), Users: users}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetToken authenticates a username/password pair and returns a signed JWT.
func (a *Auth) GetToken(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	storedPassword, ok := a.Users[creds.Username]
	if !ok || !checkPasswordHash(creds.Password, storedPassword) {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": creds.Username,
		"exp":      time.Now().Add(time.Hour * 1).Unix(),
	})

	tokenString, err := token.SignedString(a.SigningKey)
	if err != nil {
		http.Error(w, "Could not sign token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(time.Hour * 1),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": tokenString})
}

// Verify parses and validates a signed token, returning the username claim.
func (a *Auth) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.SigningKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", errors.New("token has no username claim")
	}
	return username, nil
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// JwtMiddleware guards API routes. Requests without a valid Bearer token
// are rejected before the protected handler runs.
func JwtMiddleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				http.Error(w, "Forbidden", http.StatusUnauthorized)
				return
			}

			username, err := v.Verify(tokenString)
			if err != nil {
				http.Error(w, "Forbidden", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePage guards HTML admin pages. An unauthenticated request gets
// exactly one redirect to the login page and no protected bytes; nothing
// of the wrapped page is written before the token check has decided.
func RequirePage(v Verifier, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				if cookie, err := r.Cookie(SessionCookie); err == nil {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			username, err := v.Verify(tokenString)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated username, or "" outside a
// gated route.
func UserFromContext(ctx context.Context) string {
	username, _ := ctx.Value(ctxKey{}).(string)
	return username
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
