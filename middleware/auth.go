package middleware

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"veloura/models"
	"veloura/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// Auth gates page routes on the signed token cookie. Both variants decode
// the cookie, resolve the user and attach it to the request context; failure
// redirects with a flash message instead of returning a structured error.
type Auth struct {
	Users  *mongo.Collection
	JWTKey []byte
	Flash  *utils.Flash

	// findUser resolves a claimed email to a user; swappable in tests.
	findUser func(ctx context.Context, email string) (*models.User, error)
}

// NewAuth creates the authentication middleware.
func NewAuth(users *mongo.Collection, jwtKey []byte, flash *utils.Flash) *Auth {
	a := &Auth{Users: users, JWTKey: jwtKey, Flash: flash}
	a.findUser = a.findUserByEmail
	return a
}

func (a *Auth) findUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var user models.User
	if err := a.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the user resolved by IsLoggedIn or IsOwner.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}

// IsLoggedIn requires a valid token cookie resolving to a known user.
func (a *Auth) IsLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolve(r)
		if err != nil {
			a.Flash.Error(w, r, "You need to login first")
			http.Redirect(w, r, "/users/login", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsOwner requires a valid token cookie resolving to an owner-role user.
func (a *Auth) IsOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolve(r)
		if err != nil {
			a.Flash.Error(w, r, "You need to login as an owner to access this page")
			http.Redirect(w, r, "/users/login", http.StatusFound)
			return
		}
		if !user.IsOwner() {
			a.Flash.Error(w, r, "Access denied. Owner privileges required.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalUser resolves the user when a valid token is present. An invalid or
// missing token means an anonymous visitor, never an error.
func (a *Auth) OptionalUser(r *http.Request) *models.User {
	user, err := a.resolve(r)
	if err != nil {
		return nil
	}
	return user
}

func (a *Auth) resolve(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie("token")
	if err != nil || cookie.Value == "" {
		return nil, http.ErrNoCookie
	}

	claims, err := utils.ParseToken(cookie.Value, a.JWTKey)
	if err != nil {
		return nil, err
	}

	return a.findUser(r.Context(), claims.Email)
}
