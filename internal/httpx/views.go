package httpx

import (
	"github.com/ariefcatur/unicor-shoes/internal/money"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/shopspring/decimal"
)

// userView is a User without its password hash.
type userView struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	FullName           string    `json:"fullName"`
	Role               shop.Role `json:"role"`
	RoleLabel          string    `json:"roleLabel"`
	WishlistProductIDs []string  `json:"wishlistProductIds"`
	OrderIDs           []string  `json:"orderIds"`
}

func newUserView(u shop.User) userView {
	v := userView{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		RoleLabel:          u.Role.Label(),
		WishlistProductIDs: u.WishlistProductIDs,
		OrderIDs:           u.OrderIDs,
	}
	if v.WishlistProductIDs == nil {
		v.WishlistProductIDs = []string{}
	}
	if v.OrderIDs == nil {
		v.OrderIDs = []string{}
	}
	return v
}

type productView struct {
	shop.Product
	PriceLabel string `json:"priceLabel"`
	Available  bool   `json:"available"`
}

func newProductViews(ps []shop.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, productView{Product: p, PriceLabel: money.FormatPrice(p.Price), Available: p.Available()})
	}
	return out
}

type cartLineView struct {
	shop.CartItem
	Subtotal      decimal.Decimal `json:"subtotal"`
	SubtotalLabel string          `json:"subtotalLabel"`
}

type cartView struct {
	Items      []cartLineView  `json:"items"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"totalLabel"`
}

func newCartView(s *shop.Session) cartView {
	items := s.Cart()
	v := cartView{
		Items:      make([]cartLineView, 0, len(items)),
		Count:      s.CartItemCount(),
		Total:      s.CartTotal(),
		TotalLabel: money.FormatPrice(s.CartTotal()),
	}
	for _, it := range items {
		v.Items = append(v.Items, cartLineView{CartItem: it, Subtotal: it.Subtotal(), SubtotalLabel: money.FormatPrice(it.Subtotal())})
	}
	return v
}

type orderView struct {
	shop.Order
	StatusLabel string `json:"statusLabel"`
	TotalLabel  string `json:"totalLabel"`
	TotalItems  int    `json:"totalItems"`
}

func newOrderView(o shop.Order) orderView {
	return orderView{Order: o, StatusLabel: o.Status.Label(), TotalLabel: money.FormatPrice(o.Total), TotalItems: o.TotalItems()}
}

func newOrderViews(orders []shop.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderView(o))
	}
	return out
}
