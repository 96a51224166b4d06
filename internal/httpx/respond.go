package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidJSON = errors.New("invalid json")
	errNotInCart   = errors.New("product is not in the cart")
	errNoAddress   = errors.New("shipping address is required")
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidJSON
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidJSON), errors.Is(err, errNoAddress),
		errors.Is(err, shop.ErrInvalidEmail), errors.Is(err, shop.ErrWeakPassword),
		errors.Is(err, shop.ErrInvalidUsername), errors.Is(err, shop.ErrInvalidProduct),
		errors.Is(err, shop.ErrInvalidStock), errors.Is(err, shop.ErrInvalidQuantity),
		errors.Is(err, shop.ErrEmptyCart), errors.Is(err, shop.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, shop.ErrInvalidCredentials), errors.Is(err, shop.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, shop.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, shop.ErrUserNotFound), errors.Is(err, shop.ErrProductNotFound),
		errors.Is(err, shop.ErrOrderNotFound), errors.Is(err, errNotInCart):
		return http.StatusNotFound
	case errors.Is(err, shop.ErrUsernameTaken), errors.Is(err, shop.ErrEmailTaken),
		errors.Is(err, shop.ErrInsufficientStock), errors.Is(err, shop.ErrOutOfStock),
		errors.Is(err, shop.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as an error response. Unexpected errors are logged and
// hidden from the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.Log.WithError(err).WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Error("request failed")
		writeError(w, code, "internal error")
		return
	}
	var short *shop.StockShortageError
	if errors.As(err, &short) {
		writeJSON(w, code, map[string]any{"error": shop.ErrInsufficientStock.Error(), "shortages": short.Shortages})
		return
	}
	writeError(w, code, err.Error())
}
