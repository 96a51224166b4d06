package shop_test

import (
	"strings"
	"testing"

	"github.com/ariefcatur/unicor-shoes/internal/password"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.Auth.Register(f.ctx, "ana", "secret1", "ana@x.com", "Ana Lopez")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "USR_"))
	assert.Equal(t, shop.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, f.hasher.Verify("secret1", u.Password))
	assert.False(t, f.svc.Auth.IsUsernameAvailable(f.ctx, "ANA"))
	assert.True(t, f.svc.Auth.IsUsernameAvailable(f.ctx, "bea"))

	sess := shop.NewSession()
	err = f.svc.Auth.Login(f.ctx, sess, "ana", "wrong-pass")
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
	assert.False(t, sess.IsLoggedIn())

	require.NoError(t, f.svc.Auth.Login(f.ctx, sess, "Ana", "secret1"))
	cur, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)
	assert.Equal(t, "Ana Lopez", cur.FullName)
	assert.False(t, sess.IsAdmin())

	f.svc.Auth.Logout(sess)
	assert.False(t, sess.IsLoggedIn())
}

func TestRegisterDuplicateLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Register(f.ctx, "ana", "secret1", "ana@x.com", "Ana Lopez")
	require.NoError(t, err)

	_, err = f.svc.Auth.Register(f.ctx, "ANA", "secret2", "other@x.com", "Other")
	assert.ErrorIs(t, err, shop.ErrUsernameTaken)

	_, err = f.svc.Auth.Register(f.ctx, "bea", "secret2", "Ana@X.com", "Bea")
	assert.ErrorIs(t, err, shop.ErrEmailTaken)

	users := f.svc.Users.All(f.ctx)
	require.Len(t, users, 1)
	assert.Equal(t, "ana", users[0].Username)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name                      string
		username, password, email string
		want                      error
	}{
		{"blank username", "  ", "secret1", "a@x.com", shop.ErrInvalidUsername},
		{"email without at", "ana", "secret1", "ana.x.com", shop.ErrInvalidEmail},
		{"email with bad local part", "ana", "secret1", "a na@x.com", shop.ErrInvalidEmail},
		{"short password", "ana", "12345", "ana@x.com", shop.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Auth.Register(f.ctx, tt.username, tt.password, tt.email, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.svc.Users.All(f.ctx))
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	f := newFixture(t)
	legacy := shop.User{
		ID:       shop.NewID(shop.PrefixUser),
		Username: "Victor19",
		Password: password.LegacySHA256("123456"),
		Email:    "victor@unicor.edu.co",
		Role:     shop.RoleUser,
	}
	require.NoError(t, f.store.SaveUser(f.ctx, legacy))

	sess := shop.NewSession()
	require.NoError(t, f.svc.Auth.Login(f.ctx, sess, "victor19", "123456"))

	stored := f.storedUser(t, legacy.ID)
	assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))
	assert.False(t, f.hasher.NeedsRehash(stored.Password))

	again := shop.NewSession()
	require.NoError(t, f.svc.Auth.Login(f.ctx, again, "Victor19", "123456"))
	assert.ErrorIs(t, f.svc.Auth.Login(f.ctx, shop.NewSession(), "Victor19", "654321"), shop.ErrInvalidCredentials)
}

func TestLoginStartsEmptyCart(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Air Jordan 1 Azul", 350000, 5)
	_, err := f.svc.Auth.Register(f.ctx, "ana", "secret1", "ana@x.com", "Ana Lopez")
	require.NoError(t, err)

	sess := shop.NewSession()
	require.NoError(t, sess.AddToCart(shop.NewCartItem(p, 1)))
	require.NoError(t, f.svc.Auth.Login(f.ctx, sess, "ana", "secret1"))
	assert.Empty(t, sess.Cart())
}
