package shop

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Orders struct {
	Store    *Store
	Notifier Notifier // optional
	Log      logrus.FieldLogger
	Now      func() time.Time
}

// Create places an order for the session's cart. Stock for every line is
// checked and taken in one step on the products collection: if any line is
// short, no stock moves and the returned error is a *StockShortageError.
// On success the cart is cleared and the session user gains the order id.
func (s *Orders) Create(ctx context.Context, sess *Session, shippingAddress string) (Order, error) {
	u, ok := sess.CurrentUser()
	if !ok {
		return Order{}, ErrNotLoggedIn
	}
	items := sess.Cart()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	if err := s.Store.Products.Update(ctx, func(products []Product) ([]Product, error) {
		return reserve(products, items)
	}); err != nil {
		if !isDomainError(err) {
			s.Log.WithError(err).WithField("user_id", u.ID).Error("reserve stock")
		}
		return Order{}, err
	}

	order := Order{
		ID:              NewID(PrefixOrder),
		UserID:          u.ID,
		Username:        u.Username,
		Items:           items,
		Total:           sess.CartTotal(),
		Status:          StatusPending,
		OrderDate:       s.now(),
		ShippingAddress: strings.TrimSpace(shippingAddress),
	}
	if err := s.Store.SaveOrder(ctx, order); err != nil {
		s.Log.WithError(err).WithField("order_id", order.ID).Error("save order, releasing stock")
		s.restock(ctx, items)
		return Order{}, err
	}

	updated := u
	updated.OrderIDs = append(updated.OrderIDs, order.ID)
	err := s.Store.Users.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == u.ID {
				users[i].OrderIDs = append(users[i].OrderIDs, order.ID)
				updated = users[i].clone()
				return users, nil
			}
		}
		return nil, ErrUserNotFound
	})
	if err != nil {
		// The order and the stock movement stand; only the back-reference is missing.
		s.Log.WithError(err).WithFields(logrus.Fields{"order_id": order.ID, "user_id": u.ID}).Warn("link order to user")
	}

	sess.SetCurrentUser(updated)
	sess.ClearCart()

	s.Log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  u.ID,
		"total":    order.Total.String(),
		"items":    order.TotalItems(),
	}).Info("order placed")
	if s.Notifier != nil {
		s.Notifier.OrderPlaced(ctx, order)
	}
	return order, nil
}

// reserve validates every line before taking any stock.
func reserve(products []Product, items []CartItem) ([]Product, error) {
	idx := make(map[string]int, len(products))
	for i, p := range products {
		idx[p.ID] = i
	}
	need := make(map[string]int, len(items))
	for _, it := range items {
		need[it.ProductID] += it.Quantity
	}

	var shortages []Shortage
	for _, it := range items {
		if _, seen := need[it.ProductID]; !seen {
			continue
		}
		required := need[it.ProductID]
		delete(need, it.ProductID)

		i, ok := idx[it.ProductID]
		if !ok || !products[i].Active {
			shortages = append(shortages, Shortage{ProductID: it.ProductID, Required: required})
			continue
		}
		if products[i].Stock < required {
			shortages = append(shortages, Shortage{ProductID: it.ProductID, Required: required, Available: products[i].Stock})
		}
	}
	if len(shortages) > 0 {
		return nil, &StockShortageError{Shortages: shortages}
	}

	for _, it := range items {
		p := &products[idx[it.ProductID]]
		p.Stock -= it.Quantity
		if p.Stock == 0 {
			p.Active = false
		}
	}
	return products, nil
}

// restock gives the quantities of items back to their products. Products
// deactivated by running out stay inactive.
func (s *Orders) restock(ctx context.Context, items []CartItem) {
	err := s.Store.Products.Update(ctx, func(products []Product) ([]Product, error) {
		for _, it := range items {
			for i := range products {
				if products[i].ID == it.ProductID {
					products[i].Stock += it.Quantity
					break
				}
			}
		}
		return products, nil
	})
	if err != nil {
		s.Log.WithError(err).Error("restock")
	}
}

// UserOrders returns the orders of userID, newest first.
func (s *Orders) UserOrders(ctx context.Context, userID string) []Order {
	var out []Order
	for _, o := range s.Store.LoadOrders(ctx) {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out
}

// All returns every order, newest first.
func (s *Orders) All(ctx context.Context) []Order {
	out := s.Store.LoadOrders(ctx)
	sortNewestFirst(out)
	return out
}

func (s *Orders) ByID(ctx context.Context, id string) (Order, error) {
	for _, o := range s.Store.LoadOrders(ctx) {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

// UpdateStatus moves an order along the status machine. Transitions not
// allowed by CanTransition fail with ErrInvalidTransition.
func (s *Orders) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}
	var (
		updated Order
		from    Status
	)
	err := s.Store.Orders.Update(ctx, func(orders []Order) ([]Order, error) {
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			from = orders[i].Status
			if !CanTransition(from, status) {
				return nil, ErrInvalidTransition
			}
			orders[i].Status = status
			updated = orders[i]
			return orders, nil
		}
		return nil, ErrOrderNotFound
	})
	if err != nil {
		if !isDomainError(err) {
			s.Log.WithError(err).WithField("order_id", id).Error("update order status")
		}
		return Order{}, err
	}

	s.Log.WithFields(logrus.Fields{"order_id": id, "from": from, "to": status}).Info("order status changed")
	if s.Notifier != nil {
		s.Notifier.OrderStatusChanged(ctx, updated, from)
	}
	return updated, nil
}

// Cancel moves the order to CANCELLED and returns its stock.
func (s *Orders) Cancel(ctx context.Context, id string) (Order, error) {
	o, err := s.UpdateStatus(ctx, id, StatusCancelled)
	if err != nil {
		return Order{}, err
	}
	s.restock(ctx, o.Items)
	return o, nil
}

func (s *Orders) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func sortNewestFirst(orders []Order) {
	slices.SortStableFunc(orders, func(a, b Order) int {
		return b.OrderDate.Compare(a.OrderDate)
	})
}
