package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carryCookies copies the cookies set on a response onto a fresh request,
// simulating the browser's next page view.
func carryCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest("GET", "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		r.AddCookie(cookie)
	}
	return r
}

func TestFlashMessagesAreOneShot(t *testing.T) {
	flash := NewFlash("test-session-secret")

	// Request one queues the messages.
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	flash.Error(rec, r, "Something went wrong")

	// Request two sees them once.
	rec2 := httptest.NewRecorder()
	errs, successes := flash.Pop(rec2, carryCookies(t, rec))
	require.Equal(t, []string{"Something went wrong"}, errs)
	assert.Empty(t, successes)

	// Request three sees nothing.
	rec3 := httptest.NewRecorder()
	errs, successes = flash.Pop(rec3, carryCookies(t, rec2))
	assert.Empty(t, errs)
	assert.Empty(t, successes)
}

func TestFlashKeepsErrorAndSuccessApart(t *testing.T) {
	flash := NewFlash("test-session-secret")

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	flash.Success(rec, r, "Added to cart.")

	errs, successes := flash.Pop(httptest.NewRecorder(), carryCookies(t, rec))
	assert.Empty(t, errs)
	assert.Equal(t, []string{"Added to cart."}, successes)
}
