package httpx

import (
	"net/http"
	"strings"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type productReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImagePath   string          `json:"imagePath"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Active      *bool           `json:"active,omitempty"`
}

func (req productReq) apply(p *shop.Product) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = strings.TrimSpace(req.Description)
	p.Price = req.Price
	p.Stock = req.Stock
	p.ImagePath = req.ImagePath
	p.Category = strings.TrimSpace(req.Category)
	p.Brand = strings.TrimSpace(req.Brand)
	if req.Active != nil {
		p.Active = *req.Active
	}
}

type stockReq struct {
	Stock *int `json:"stock"`
}

type activeReq struct {
	Active *bool `json:"active"`
}

type statusReq struct {
	Status shop.Status `json:"status"`
}

func (h *Handler) adminListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newProductViews(h.Services.Products.AllAdmin(r.Context())))
}

func (h *Handler) adminAddProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	var p shop.Product
	req.apply(&p)
	p, err := h.Services.Products.Add(r.Context(), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProductViews([]shop.Product{p})[0])
}

func (h *Handler) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.Services.Products.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.apply(&p)
	if req.Active != nil && *req.Active && p.Stock == 0 {
		h.fail(w, r, shop.ErrOutOfStock)
		return
	}
	if p, err = h.Services.Products.Update(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductViews([]shop.Product{p})[0])
}

func (h *Handler) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Services.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adminUpdateStock(w http.ResponseWriter, r *http.Request) {
	var req stockReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Stock == nil {
		h.fail(w, r, shop.ErrInvalidStock)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Services.Products.UpdateStock(r.Context(), id, *req.Stock); err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeProduct(w, r, id)
}

func (h *Handler) adminSetActive(w http.ResponseWriter, r *http.Request) {
	var req activeReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Active == nil {
		h.fail(w, r, errInvalidJSON)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Services.Products.ToggleStatus(r.Context(), id, *req.Active); err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeProduct(w, r, id)
}

func (h *Handler) writeProduct(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.Services.Products.ByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductViews([]shop.Product{p})[0])
}

// adminListOrders lists every order, newest first, optionally for one status.
func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.Services.Orders.All(r.Context())
	if st := shop.Status(strings.ToUpper(r.URL.Query().Get("status"))); st != "" {
		if !st.Valid() {
			h.fail(w, r, shop.ErrInvalidStatus)
			return
		}
		kept := orders[:0]
		for _, o := range orders {
			if o.Status == st {
				kept = append(kept, o)
			}
		}
		orders = kept
	}
	writeJSON(w, http.StatusOK, newOrderViews(orders))
}

// adminUpdateStatus moves an order along the status machine. Cancelling
// through here returns stock just like a customer cancel.
func (h *Handler) adminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	var (
		o   shop.Order
		err error
	)
	if req.Status == shop.StatusCancelled {
		o, err = h.Services.Orders.Cancel(r.Context(), id)
	} else {
		o, err = h.Services.Orders.UpdateStatus(r.Context(), id, req.Status)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(o))
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.Services.Users.All(r.Context())
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	writeJSON(w, http.StatusOK, out)
}
