package shop

import (
	"context"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

type Users struct {
	Store *Store
	Log   logrus.FieldLogger
}

func (s *Users) All(ctx context.Context) []User {
	return s.Store.LoadUsers(ctx)
}

func (s *Users) ByID(ctx context.Context, id string) (User, error) {
	for _, u := range s.Store.LoadUsers(ctx) {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *Users) AddToWishlist(ctx context.Context, sess *Session, productID string) error {
	return s.editWishlist(ctx, sess, func(u *User) { u.addToWishlist(productID) })
}

func (s *Users) RemoveFromWishlist(ctx context.Context, sess *Session, productID string) error {
	return s.editWishlist(ctx, sess, func(u *User) { u.removeFromWishlist(productID) })
}

func (s *Users) IsInWishlist(sess *Session, productID string) bool {
	u, ok := sess.CurrentUser()
	return ok && u.InWishlist(productID)
}

func (s *Users) WishlistProductIDs(sess *Session) []string {
	u, ok := sess.CurrentUser()
	if !ok {
		return []string{}
	}
	if u.WishlistProductIDs == nil {
		return []string{}
	}
	return u.WishlistProductIDs
}

// editWishlist applies fn to the stored copy of the session user, so that
// changes made elsewhere (new orders) are not overwritten by a stale session.
func (s *Users) editWishlist(ctx context.Context, sess *Session, fn func(u *User)) error {
	cur, ok := sess.CurrentUser()
	if !ok {
		return ErrNotLoggedIn
	}
	var updated User
	err := s.Store.Users.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == cur.ID {
				fn(&users[i])
				updated = users[i].clone()
				return users, nil
			}
		}
		return nil, ErrUserNotFound
	})
	if err != nil {
		if !isDomainError(err) {
			s.Log.WithError(err).WithField("user_id", cur.ID).Error("update wishlist")
		}
		return err
	}
	sess.SetCurrentUser(updated)
	return nil
}

// Update stores u. When u is the session user, the session is refreshed.
// An empty Password keeps the stored hash. Changing the username or email to
// one held by another account fails.
func (s *Users) Update(ctx context.Context, sess *Session, u User) (User, error) {
	if strings.TrimSpace(u.Username) == "" {
		return User{}, ErrInvalidUsername
	}
	if !IsValidEmail(u.Email) {
		return User{}, ErrInvalidEmail
	}
	var updated User
	err := s.Store.Users.Update(ctx, func(users []User) ([]User, error) {
		at := slices.IndexFunc(users, func(x User) bool { return x.ID == u.ID })
		if at < 0 {
			return nil, ErrUserNotFound
		}
		for i, other := range users {
			if i == at {
				continue
			}
			if strings.EqualFold(other.Username, u.Username) {
				return nil, ErrUsernameTaken
			}
			if strings.EqualFold(other.Email, u.Email) {
				return nil, ErrEmailTaken
			}
		}
		if u.Password == "" {
			u.Password = users[at].Password
		}
		if u.Role == "" {
			u.Role = users[at].Role
		}
		users[at] = u.clone()
		updated = u.clone()
		return users, nil
	})
	if err != nil {
		if !isDomainError(err) {
			s.Log.WithError(err).WithField("user_id", u.ID).Error("update user")
		}
		return User{}, err
	}
	if cur, ok := sess.CurrentUser(); ok && cur.ID == updated.ID {
		sess.SetCurrentUser(updated)
	}
	return updated, nil
}
