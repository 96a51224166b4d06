package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/ariefcatur/unicor-shoes/internal/session"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
)

// SessionHeader carries the opaque session token in both directions.
const SessionHeader = "X-Session-Token"

type ctxKey int

const shopperKey ctxKey = iota

type shopper struct {
	token string
	sess  *shop.Session
}

func shopperFrom(ctx context.Context) *shopper {
	s, _ := ctx.Value(shopperKey).(*shopper)
	return s
}

// loadSession attaches the session named by the request token, if any.
// Unknown or expired tokens are treated as no session.
func (h *Handler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(SessionHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := h.Sessions.Get(r.Context(), token)
		switch {
		case errors.Is(err, session.ErrNotFound):
			next.ServeHTTP(w, r)
			return
		case err != nil:
			h.fail(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), shopperKey, &shopper{token: token, sess: sess})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := shopperFrom(r.Context())
		if s == nil || !s.sess.IsLoggedIn() {
			writeError(w, http.StatusUnauthorized, shop.ErrNotLoggedIn.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shopperFrom(r.Context()).sess.IsAdmin() {
			writeError(w, http.StatusForbidden, shop.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ensureShopper returns the request session, starting an anonymous one
// (and announcing its token in the response) when there is none.
func (h *Handler) ensureShopper(w http.ResponseWriter, r *http.Request) (*shopper, error) {
	if s := shopperFrom(r.Context()); s != nil {
		return s, nil
	}
	token, sess, err := h.Sessions.Create(r.Context())
	if err != nil {
		return nil, err
	}
	w.Header().Set(SessionHeader, token)
	return &shopper{token: token, sess: sess}, nil
}

func (h *Handler) save(ctx context.Context, s *shopper) error {
	return h.Sessions.Save(ctx, s.token, s.sess)
}

// currentUser is only valid behind requireUser.
func currentUser(r *http.Request) (*shopper, shop.User) {
	s := shopperFrom(r.Context())
	u, _ := s.sess.CurrentUser()
	return s, u
}
