package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"veloura/models"
	"veloura/utils"
)

func newTestAuth() *Auth {
	return NewAuth(nil, []byte("test-key"), utils.NewFlash("test-secret"))
}

// The gate must redirect and never run the protected handler when the token
// cookie is missing or invalid.
func TestIsLoggedInWithoutCookieRedirects(t *testing.T) {
	auth := newTestAuth()
	called := false
	handler := auth.IsLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/cart", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/login", rec.Header().Get("Location"))
}

func TestIsLoggedInWithInvalidTokenRedirects(t *testing.T) {
	auth := newTestAuth()
	called := false
	handler := auth.IsLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest("GET", "/cart", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "tampered.token.value"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/login", rec.Header().Get("Location"))
}

func TestIsLoggedInWithEmptyCookieRedirects(t *testing.T) {
	// Logout sets an empty cookie value; that must not count as logged in.
	auth := newTestAuth()
	called := false
	handler := auth.IsLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest("GET", "/cart", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: ""})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestIsOwnerWithoutTokenNeverRunsHandler(t *testing.T) {
	auth := newTestAuth()
	called := false
	handler := auth.IsOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/owners/delete-product/123", nil))

	require.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/login", rec.Header().Get("Location"))
}

// signedRequest builds a request carrying a valid token cookie for the user
// and wires the auth's lookup to resolve that user.
func signedRequest(t *testing.T, auth *Auth, user *models.User, target string) *http.Request {
	t.Helper()
	token, err := utils.GenerateToken(user.Email, user.ID, auth.JWTKey)
	require.NoError(t, err)

	auth.findUser = func(ctx context.Context, email string) (*models.User, error) {
		require.Equal(t, user.Email, email)
		return user, nil
	}

	r := httptest.NewRequest("GET", target, nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})
	return r
}

func TestIsOwnerRejectsWrongRole(t *testing.T) {
	auth := newTestAuth()
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "customer@example.com",
		Role:  models.RoleUser,
	}
	r := signedRequest(t, auth, user, "/owners/delete-product/123")

	called := false
	handler := auth.IsOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	// A valid token with the wrong role is turned away before the handler.
	require.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	next := httptest.NewRequest("GET", "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		next.AddCookie(cookie)
	}
	errs, _ := auth.Flash.Pop(httptest.NewRecorder(), next)
	assert.Equal(t, []string{"Access denied. Owner privileges required."}, errs)
}

func TestIsOwnerAdmitsOwner(t *testing.T) {
	auth := newTestAuth()
	owner := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "owner@example.com",
		Role:  models.RoleOwner,
	}
	r := signedRequest(t, auth, owner, "/owners/dashboard")

	var resolved *models.User
	handler := auth.IsOwner(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved, _ = CurrentUser(r)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	require.NotNil(t, resolved)
	assert.Equal(t, owner.Email, resolved.Email)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIsLoggedInAdmitsAnyValidUser(t *testing.T) {
	auth := newTestAuth()
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "customer@example.com",
		Role:  models.RoleUser,
	}
	r := signedRequest(t, auth, user, "/cart")

	called := false
	handler := auth.IsLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalUserAnonymousOnBadToken(t *testing.T) {
	auth := newTestAuth()

	r := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, auth.OptionalUser(r))

	r.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	assert.Nil(t, auth.OptionalUser(r))
}

func TestCurrentUserAbsent(t *testing.T) {
	user, ok := CurrentUser(httptest.NewRequest("GET", "/", nil))
	assert.Nil(t, user)
	assert.False(t, ok)
}
