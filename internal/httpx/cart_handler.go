package httpx

import (
	"net/http"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/go-chi/chi/v5"
)

type cartItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	s := shopperFrom(r.Context())
	if s == nil {
		writeJSON(w, http.StatusOK, newCartView(shop.NewSession()))
		return
	}
	writeJSON(w, http.StatusOK, newCartView(s.sess))
}

// addCartItem snapshots the product into the cart. The requested quantity,
// plus what is already in the cart, must be in stock right now; stock is
// only taken at checkout.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Quantity <= 0 {
		h.fail(w, r, shop.ErrInvalidQuantity)
		return
	}
	p, err := h.Services.Products.ByID(r.Context(), req.ProductID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !p.Available() {
		h.fail(w, r, shop.ErrOutOfStock)
		return
	}
	s, err := h.ensureShopper(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	want := req.Quantity + inCart(s.sess, p.ID)
	if want > p.Stock {
		h.fail(w, r, &shop.StockShortageError{Shortages: []shop.Shortage{{ProductID: p.ID, Required: want, Available: p.Stock}}})
		return
	}
	if err := s.sess.AddToCart(shop.NewCartItem(p, req.Quantity)); err != nil {
		h.fail(w, r, err)
		return
	}
	h.saveCart(w, r, s)
}

func (h *Handler) setCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	s := shopperFrom(r.Context())
	if s == nil || !s.sess.SetCartQuantity(chi.URLParam(r, "productID"), req.Quantity) {
		h.fail(w, r, errNotInCart)
		return
	}
	h.saveCart(w, r, s)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	s := shopperFrom(r.Context())
	if s == nil {
		h.fail(w, r, errNotInCart)
		return
	}
	s.sess.RemoveFromCart(chi.URLParam(r, "productID"))
	h.saveCart(w, r, s)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s := shopperFrom(r.Context())
	if s == nil {
		writeJSON(w, http.StatusOK, newCartView(shop.NewSession()))
		return
	}
	s.sess.ClearCart()
	h.saveCart(w, r, s)
}

func (h *Handler) saveCart(w http.ResponseWriter, r *http.Request, s *shopper) {
	if err := h.save(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(s.sess))
}

func inCart(s *shop.Session, productID string) int {
	for _, it := range s.Cart() {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}
