package shop

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidStock      = errors.New("stock must not be negative")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Shortage struct {
	ProductID string `json:"productId"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// StockShortageError lists every cart line that could not be served.
type StockShortageError struct {
	Shortages []Shortage
}

func (e *StockShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (required %d, available %d)", s.ProductID, s.Required, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

func (e *StockShortageError) Is(target error) bool { return target == ErrInsufficientStock }

var domainErrors = []error{
	ErrInvalidEmail, ErrWeakPassword, ErrInvalidUsername, ErrUsernameTaken, ErrEmailTaken,
	ErrInvalidCredentials, ErrNotLoggedIn, ErrForbidden,
	ErrUserNotFound, ErrProductNotFound, ErrOrderNotFound,
	ErrInvalidProduct, ErrInvalidStock, ErrInvalidQuantity, ErrInsufficientStock,
	ErrOutOfStock, ErrEmptyCart, ErrInvalidStatus, ErrInvalidTransition,
}

// isDomainError reports whether err is an expected business outcome rather
// than a storage failure worth logging.
func isDomainError(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}
