package httpx

import (
	"net/http"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/go-chi/chi/v5"
)

type wishlistResp struct {
	ProductIDs []string      `json:"productIds"`
	Products   []productView `json:"products"`
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	s := shopperFrom(r.Context())
	writeJSON(w, http.StatusOK, h.wishlist(r, s.sess))
}

func (h *Handler) addWishlist(w http.ResponseWriter, r *http.Request) {
	s := shopperFrom(r.Context())
	p, err := h.Services.Products.ByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Services.Users.AddToWishlist(r.Context(), s.sess, p.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.saveWishlist(w, r, s)
}

func (h *Handler) removeWishlist(w http.ResponseWriter, r *http.Request) {
	s := shopperFrom(r.Context())
	if err := h.Services.Users.RemoveFromWishlist(r.Context(), s.sess, chi.URLParam(r, "productID")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.saveWishlist(w, r, s)
}

func (h *Handler) saveWishlist(w http.ResponseWriter, r *http.Request, s *shopper) {
	if err := h.save(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.wishlist(r, s.sess))
}

// wishlist resolves the wishlisted ids; products deleted since are skipped.
func (h *Handler) wishlist(r *http.Request, sess *shop.Session) wishlistResp {
	ids := h.Services.Users.WishlistProductIDs(sess)
	ps := make([]shop.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := h.Services.Products.ByID(r.Context(), id); err == nil && p.Active {
			ps = append(ps, p)
		}
	}
	return wishlistResp{ProductIDs: ids, Products: newProductViews(ps)}
}
