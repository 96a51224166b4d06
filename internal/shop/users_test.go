package shop_test

import (
	"testing"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist(t *testing.T) {
	f := newFixture(t)
	sess := f.shopper(t, "ana")

	require.NoError(t, f.svc.Users.AddToWishlist(f.ctx, sess, "PROD_a"))
	require.NoError(t, f.svc.Users.AddToWishlist(f.ctx, sess, "PROD_a"))
	require.NoError(t, f.svc.Users.AddToWishlist(f.ctx, sess, "PROD_b"))

	assert.True(t, f.svc.Users.IsInWishlist(sess, "PROD_a"))
	assert.Equal(t, []string{"PROD_a", "PROD_b"}, f.svc.Users.WishlistProductIDs(sess))
	cur, _ := sess.CurrentUser()
	assert.Equal(t, []string{"PROD_a", "PROD_b"}, f.storedUser(t, cur.ID).WishlistProductIDs)

	require.NoError(t, f.svc.Users.RemoveFromWishlist(f.ctx, sess, "PROD_a"))
	assert.False(t, f.svc.Users.IsInWishlist(sess, "PROD_a"))
	assert.Equal(t, []string{"PROD_b"}, f.storedUser(t, cur.ID).WishlistProductIDs)

	anon := shop.NewSession()
	assert.ErrorIs(t, f.svc.Users.AddToWishlist(f.ctx, anon, "PROD_a"), shop.ErrNotLoggedIn)
	assert.Empty(t, f.svc.Users.WishlistProductIDs(anon))
	assert.False(t, f.svc.Users.IsInWishlist(anon, "PROD_b"))
}

func TestWishlistFromStaleSessionKeepsOrders(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Air Jordan 1 Azul", 350000, 5)
	phone := f.shopper(t, "ana")
	laptop := shop.NewSession()
	require.NoError(t, f.svc.Auth.Login(f.ctx, laptop, "ana", "secret1"))

	require.NoError(t, phone.AddToCart(shop.NewCartItem(a, 1)))
	o, err := f.svc.Orders.Create(f.ctx, phone, "Calle 1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Users.AddToWishlist(f.ctx, laptop, a.ID))

	cur, _ := laptop.CurrentUser()
	assert.Equal(t, []string{o.ID}, cur.OrderIDs)
	stored := f.storedUser(t, cur.ID)
	assert.Equal(t, []string{o.ID}, stored.OrderIDs)
	assert.Equal(t, []string{a.ID}, stored.WishlistProductIDs)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	sess := f.shopper(t, "ana")
	f.shopper(t, "bea")
	cur, _ := sess.CurrentUser()
	hash := f.storedUser(t, cur.ID).Password

	edit := cur
	edit.Password = ""
	edit.Role = ""
	edit.FullName = "Ana María López"
	got, err := f.svc.Users.Update(f.ctx, sess, edit)
	require.NoError(t, err)
	assert.Equal(t, hash, got.Password)
	assert.Equal(t, shop.RoleUser, got.Role)
	refreshed, _ := sess.CurrentUser()
	assert.Equal(t, "Ana María López", refreshed.FullName)

	edit.Username = "BEA"
	_, err = f.svc.Users.Update(f.ctx, sess, edit)
	assert.ErrorIs(t, err, shop.ErrUsernameTaken)

	edit.Username = "ana"
	edit.Email = "bea@x.com"
	_, err = f.svc.Users.Update(f.ctx, sess, edit)
	assert.ErrorIs(t, err, shop.ErrEmailTaken)

	edit.Email = "not-an-email"
	_, err = f.svc.Users.Update(f.ctx, sess, edit)
	assert.ErrorIs(t, err, shop.ErrInvalidEmail)

	_, err = f.svc.Users.Update(f.ctx, sess, shop.User{ID: "USR_missing", Username: "x", Email: "x@x.com"})
	assert.ErrorIs(t, err, shop.ErrUserNotFound)

	assert.Equal(t, "Ana María López", f.storedUser(t, cur.ID).FullName)
}
