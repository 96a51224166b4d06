package shop

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Session is the state of one shopper: the logged-in user, if any, and the
// in-memory cart. A Session is owned by a single caller at a time.
type Session struct {
	User  *User      `json:"user,omitempty"`
	Items []CartItem `json:"cart"`
}

func NewSession() *Session { return &Session{Items: []CartItem{}} }

// Login sets the current user and starts an empty cart.
func (s *Session) Login(u User) {
	s.SetCurrentUser(u)
	s.ClearCart()
}

func (s *Session) Logout() {
	s.User = nil
	s.ClearCart()
}

func (s *Session) IsLoggedIn() bool { return s.User != nil }

func (s *Session) CurrentUser() (User, bool) {
	if s.User == nil {
		return User{}, false
	}
	return s.User.clone(), true
}

// SetCurrentUser keeps a copy of u without its password digest.
func (s *Session) SetCurrentUser(u User) {
	c := u.clone()
	c.Password = ""
	s.User = &c
}

func (s *Session) IsAdmin() bool { return s.User != nil && s.User.IsAdmin() }

// AddToCart merges item into the line with the same product, or appends it.
func (s *Session) AddToCart(item CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range s.Items {
		if s.Items[i].ProductID == item.ProductID {
			s.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	s.Items = append(s.Items, item)
	return nil
}

func (s *Session) RemoveFromCart(productID string) {
	s.Items = slices.DeleteFunc(s.Items, func(it CartItem) bool { return it.ProductID == productID })
}

// SetCartQuantity changes the quantity of a line; qty <= 0 removes it.
func (s *Session) SetCartQuantity(productID string, qty int) bool {
	if qty <= 0 {
		n := len(s.Items)
		s.RemoveFromCart(productID)
		return len(s.Items) != n
	}
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Quantity = qty
			return true
		}
	}
	return false
}

func (s *Session) Cart() []CartItem { return slices.Clone(s.Items) }

func (s *Session) ClearCart() { s.Items = []CartItem{} }

func (s *Session) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *Session) CartItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
