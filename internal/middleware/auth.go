package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/autocare360/autocare-go/internal/crypto"
	"github.com/autocare360/autocare-go/internal/model"
	"github.com/autocare360/autocare-go/internal/repository"
)

type contextKey string

const authUserKey contextKey = "authUser"

// UserFinder is the store lookup the middleware needs to resolve the
// current identity. Satisfied by repository.UserRepository.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Authenticator validates bearer tokens and resolves the current user.
// The user record is re-read from the store on every request rather
// than trusted from stale token claims, so profile edits and account
// deletion take effect immediately.
type Authenticator struct {
	users  UserFinder
	secret string
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(users UserFinder, secret string) *Authenticator {
	return &Authenticator{users: users, secret: secret}
}

// Require returns middleware that rejects requests without a valid
// bearer token with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			writeJSONError(w, statusForAuthError(err), err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(withAuthUser(r.Context(), user)))
	})
}

// Optional returns middleware that attaches the identity when a valid
// bearer token is present and otherwise lets the request proceed
// anonymously.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.authenticate(r); err == nil {
			r = r.WithContext(withAuthUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

var (
	errTokenRequired = errors.New("Access token required")
	errUserNotFound  = errors.New("User not found")
	errAuthFailed    = errors.New("Authentication failed")
)

// statusForAuthError maps authentication failures to a status code.
// Only token problems and a genuinely missing subject are 401; a
// storage failure during the identity re-read is an internal error,
// not a reason for the client to discard its session.
func statusForAuthError(err error) int {
	if errors.Is(err, errAuthFailed) {
		return http.StatusInternalServerError
	}
	return http.StatusUnauthorized
}

func (a *Authenticator) authenticate(r *http.Request) (*model.AuthUser, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errTokenRequired
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return nil, errTokenRequired
	}

	claims, err := crypto.ValidateToken(token, a.secret)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errUserNotFound
		}
		return nil, errAuthFailed
	}

	return &model.AuthUser{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Vehicle:   user.Vehicle,
	}, nil
}

func withAuthUser(ctx context.Context, user *model.AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// AuthUserFromContext extracts the authenticated identity from the
// request context.
func AuthUserFromContext(ctx context.Context) (*model.AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(*model.AuthUser)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
