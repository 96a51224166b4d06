package httpx

import (
	"net/http"
	"strings"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/go-chi/chi/v5"
)

type createOrderReq struct {
	ShippingAddress string `json:"shippingAddress"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		h.fail(w, r, errNoAddress)
		return
	}
	s := shopperFrom(r.Context())
	o, err := h.Services.Orders.Create(r.Context(), s.sess, req.ShippingAddress)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	// The order stands even if the session cannot be stored.
	if err := h.save(r.Context(), s); err != nil {
		h.Log.WithError(err).WithField("order_id", o.ID).Warn("save session after checkout")
	}
	writeJSON(w, http.StatusCreated, newOrderView(o))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	_, u := currentUser(r)
	writeJSON(w, http.StatusOK, newOrderViews(h.Services.Orders.UserOrders(r.Context(), u.ID)))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.visibleOrder(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(o))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.visibleOrder(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	o, err = h.Services.Orders.Cancel(r.Context(), o.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(o))
}

// visibleOrder loads the order in the URL if the caller owns it or is an admin.
// Other users' orders read as not found.
func (h *Handler) visibleOrder(r *http.Request) (shop.Order, error) {
	o, err := h.Services.Orders.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return shop.Order{}, err
	}
	s, u := currentUser(r)
	if o.UserID != u.ID && !s.sess.IsAdmin() {
		return shop.Order{}, shop.ErrOrderNotFound
	}
	return o, nil
}
