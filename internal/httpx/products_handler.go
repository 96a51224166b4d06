package httpx

import (
	"net/http"
	"strings"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	var ps []shop.Product
	switch {
	case q != "":
		ps = h.Services.Products.Search(r.Context(), q)
		if category != "" {
			kept := ps[:0]
			for _, p := range ps {
				if strings.EqualFold(p.Category, category) {
					kept = append(kept, p)
				}
			}
			ps = kept
		}
	case category != "":
		ps = h.Services.Products.ByCategory(r.Context(), category)
	default:
		ps = h.Services.Products.All(r.Context())
	}
	writeJSON(w, http.StatusOK, newProductViews(ps))
}

// getProduct hides deactivated products from everyone but admins.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Services.Products.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !p.Active {
		if s := shopperFrom(r.Context()); s == nil || !s.sess.IsAdmin() {
			h.fail(w, r, shop.ErrProductNotFound)
			return
		}
	}
	writeJSON(w, http.StatusOK, newProductViews([]shop.Product{p})[0])
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cs := h.Services.Products.Categories(r.Context())
	if cs == nil {
		cs = []string{}
	}
	writeJSON(w, http.StatusOK, cs)
}
