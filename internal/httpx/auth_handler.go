package httpx

import (
	"net/http"
	"strings"

	"github.com/ariefcatur/unicor-shoes/internal/metrics"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
)

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type updateMeReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password,omitempty"`
}

func (h *Handler) loginLimit(next http.Handler) http.Handler {
	if h.Login == nil {
		return next
	}
	return h.Login.Handler(next)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.Services.Auth.Register(r.Context(), req.Username, req.Password, req.Email, req.FullName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserView(u))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.ensureShopper(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Services.Auth.Login(r.Context(), s.sess, req.Username, req.Password); err != nil {
		metrics.RecordLogin(false)
		h.fail(w, r, err)
		return
	}
	metrics.RecordLogin(true)
	if err := h.save(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	u, _ := s.sess.CurrentUser()
	w.Header().Set(SessionHeader, s.token)
	writeJSON(w, http.StatusOK, loginResp{Token: s.token, User: newUserView(u)})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if s := shopperFrom(r.Context()); s != nil {
		h.Services.Auth.Logout(s.sess)
		if err := h.Sessions.Delete(r.Context(), s.token); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) usernameAvailable(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("username"))
	if name == "" {
		h.fail(w, r, shop.ErrInvalidUsername)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": h.Services.Auth.IsUsernameAvailable(r.Context(), name)})
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	_, u := currentUser(r)
	writeJSON(w, http.StatusOK, newUserView(u))
}

// updateMe edits the profile fields of the stored user, so wishlist and
// order references are never taken from the request.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	s, cur := currentUser(r)
	u, err := h.Services.Users.ByID(r.Context(), cur.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	u.Username = strings.TrimSpace(req.Username)
	u.Email = strings.TrimSpace(req.Email)
	u.FullName = strings.TrimSpace(req.FullName)
	u.Password = ""
	if req.Password != "" {
		if !shop.IsValidPassword(req.Password) {
			h.fail(w, r, shop.ErrWeakPassword)
			return
		}
		if u.Password, err = h.Services.Auth.Hasher.Hash(req.Password); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	updated, err := h.Services.Users.Update(r.Context(), s.sess, u)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.save(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(updated))
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	if h.Feed == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	_, u := currentUser(r)
	ns, err := h.Feed.List(r.Context(), u.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}
