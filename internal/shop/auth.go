package shop

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// PasswordHasher turns plaintext passwords into stored digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
	NeedsRehash(stored string) bool
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

const minPasswordLen = 6

func IsValidEmail(email string) bool { return emailPattern.MatchString(email) }

func IsValidPassword(password string) bool { return len([]rune(password)) >= minPasswordLen }

// Auth registers users and logs them into sessions. Usernames and emails
// are compared case-insensitively.
type Auth struct {
	Store  *Store
	Hasher PasswordHasher
	Log    logrus.FieldLogger
}

func (a *Auth) Login(ctx context.Context, sess *Session, username, password string) error {
	users, err := a.Store.Users.All(ctx)
	if err != nil {
		a.Log.WithError(err).Error("login: load users")
		return ErrInvalidCredentials
	}
	for _, u := range users {
		if !strings.EqualFold(u.Username, username) || !a.Hasher.Verify(password, u.Password) {
			continue
		}
		if a.Hasher.NeedsRehash(u.Password) {
			u = a.rehash(ctx, u, password)
		}
		sess.Login(u)
		return nil
	}
	return ErrInvalidCredentials
}

// rehash upgrades a stored digest to the current scheme. Failures are logged
// and the old digest is kept; the login itself still succeeds.
func (a *Auth) rehash(ctx context.Context, u User, password string) User {
	digest, err := a.Hasher.Hash(password)
	if err != nil {
		a.Log.WithError(err).WithField("user_id", u.ID).Warn("rehash password")
		return u
	}
	var updated User
	err = a.Store.Users.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == u.ID {
				users[i].Password = digest
				updated = users[i]
				return users, nil
			}
		}
		return nil, ErrUserNotFound
	})
	if err != nil {
		a.Log.WithError(err).WithField("user_id", u.ID).Warn("store rehashed password")
		return u
	}
	a.Log.WithField("user_id", u.ID).Info("password hash upgraded")
	return updated
}

func (a *Auth) Logout(sess *Session) { sess.Logout() }

// Register creates a USER account. A taken username or email leaves the
// store untouched.
func (a *Auth) Register(ctx context.Context, username, password, email, fullName string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return User{}, ErrInvalidUsername
	case !IsValidEmail(email):
		return User{}, ErrInvalidEmail
	case !IsValidPassword(password):
		return User{}, ErrWeakPassword
	}

	digest, err := a.Hasher.Hash(password)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:                 NewID(PrefixUser),
		Username:           username,
		Password:           digest,
		Email:              email,
		FullName:           strings.TrimSpace(fullName),
		Role:               RoleUser,
		WishlistProductIDs: []string{},
		OrderIDs:           []string{},
	}

	err = a.Store.Users.Update(ctx, func(users []User) ([]User, error) {
		for _, existing := range users {
			if strings.EqualFold(existing.Username, username) {
				return nil, ErrUsernameTaken
			}
			if strings.EqualFold(existing.Email, email) {
				return nil, ErrEmailTaken
			}
		}
		return append(users, u), nil
	})
	if err != nil {
		return User{}, err
	}
	a.Log.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	return u, nil
}

func (a *Auth) IsUsernameAvailable(ctx context.Context, username string) bool {
	for _, u := range a.Store.LoadUsers(ctx) {
		if strings.EqualFold(u.Username, username) {
			return false
		}
	}
	return true
}
