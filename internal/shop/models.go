package shop

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Label() string {
	if r == RoleAdmin {
		return "Administrador"
	}
	return "Usuario"
}

type User struct {
	ID                 string   `json:"id"`
	Username           string   `json:"username"`
	Password           string   `json:"password"` // password hash, never plaintext
	Email              string   `json:"email"`
	FullName           string   `json:"fullName"`
	Role               Role     `json:"role"`
	WishlistProductIDs []string `json:"wishlistProductIds"`
	OrderIDs           []string `json:"orderIds"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u User) InWishlist(productID string) bool {
	return slices.Contains(u.WishlistProductIDs, productID)
}

// addToWishlist reports whether the wishlist changed.
func (u *User) addToWishlist(productID string) bool {
	if u.InWishlist(productID) {
		return false
	}
	u.WishlistProductIDs = append(u.WishlistProductIDs, productID)
	return true
}

func (u *User) removeFromWishlist(productID string) bool {
	i := slices.Index(u.WishlistProductIDs, productID)
	if i < 0 {
		return false
	}
	u.WishlistProductIDs = slices.Delete(u.WishlistProductIDs, i, i+1)
	return true
}

// clone returns a deep copy so callers never share slices with the session.
func (u User) clone() User {
	u.WishlistProductIDs = slices.Clone(u.WishlistProductIDs)
	u.OrderIDs = slices.Clone(u.OrderIDs)
	return u
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImagePath   string          `json:"imagePath"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Active      bool            `json:"active"`
}

func (p Product) Available() bool { return p.Active && p.Stock > 0 }

// CartItem is a snapshot of a product at the time it was put in the cart.
// Two items are the same line when their ProductID matches.
type CartItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImagePath   string          `json:"imagePath"`
}

func NewCartItem(p Product, qty int) CartItem {
	return CartItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Quantity:    qty,
		ImagePath:   p.ImagePath,
	}
}

func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Username        string          `json:"username"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	ShippingAddress string          `json:"shippingAddress"`
}

func (o Order) TotalItems() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Key functions used by the collection drivers to index entities.
func UserKey(u User) string       { return u.ID }
func ProductKey(p Product) string { return p.ID }
func OrderKey(o Order) string     { return o.ID }
