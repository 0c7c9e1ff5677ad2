package utils

import (
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const flashSessionName = "veloura-session"

// Flash stores one-shot messages in a cookie session. A message added during
// one request is rendered on the next page view and then discarded.
type Flash struct {
	store *sessions.CookieStore
}

// NewFlash creates a Flash backed by a cookie session store.
func NewFlash(secret string) *Flash {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}
	return &Flash{store: store}
}

// Error queues an error message for the next page view.
func (f *Flash) Error(w http.ResponseWriter, r *http.Request, message string) {
	f.add(w, r, "error", message)
}

// Success queues a success message for the next page view.
func (f *Flash) Success(w http.ResponseWriter, r *http.Request, message string) {
	f.add(w, r, "success", message)
}

func (f *Flash) add(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, _ := f.store.Get(r, flashSessionName)
	session.AddFlash(message, kind)
	if err := session.Save(r, w); err != nil {
		zap.S().Warnf("saving flash session: %v", err)
	}
}

// Pop consumes and returns the queued error and success messages.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) (errors, successes []string) {
	session, _ := f.store.Get(r, flashSessionName)
	for _, v := range session.Flashes("error") {
		if s, ok := v.(string); ok {
			errors = append(errors, s)
		}
	}
	for _, v := range session.Flashes("success") {
		if s, ok := v.(string); ok {
			successes = append(successes, s)
		}
	}
	if err := session.Save(r, w); err != nil {
		zap.S().Warnf("saving flash session: %v", err)
	}
	return errors, successes
}
