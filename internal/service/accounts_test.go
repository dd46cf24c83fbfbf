package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/store"
)

func newAccounts(t *testing.T) (*Accounts, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	return NewAccounts(st, bcrypt.MinCost), st
}

func TestSignUpCreatesAndSignsIn(t *testing.T) {
	acc, st := newAccounts(t)
	ctx := context.Background()

	u, err := acc.SignUp(ctx, "Jamie Baker", "jamie@example.com", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.Password)

	// Signing up establishes the session.
	su, ok := acc.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, u.ID, su.ID)
	assert.False(t, acc.IsAdmin(ctx))

	var flag string
	require.NoError(t, st.Get(ctx, store.KeyLoggedIn, &flag))
	assert.Equal(t, "true", flag)
}

func TestSignUpValidationOrder(t *testing.T) {
	acc, _ := newAccounts(t)
	ctx := context.Background()
	_, err := acc.SignUp(ctx, "Taken", "taken@example.com", "secret1", "secret1")
	require.NoError(t, err)

	cases := []struct {
		name, email, password, confirm string
		want                           error
	}{
		{"J", "taken@example.com", "short", "other", ErrNameTooShort},
		{"Jamie", "not-an-email", "short", "other", ErrInvalidEmail},
		{"Jamie", "taken@example.com", "short", "other", ErrPasswordTooShort},
		// Mismatch is reported before the duplicate email is noticed.
		{"Jamie", "taken@example.com", "secret1", "secret2", ErrPasswordMismatch},
		{"Jamie", "taken@example.com", "secret1", "secret1", ErrEmailTaken},
		{"Jamie", "TAKEN@EXAMPLE.COM", "secret1", "secret1", ErrEmailTaken},
	}
	for _, tc := range cases {
		_, err := acc.SignUp(ctx, tc.name, tc.email, tc.password, tc.confirm)
		assert.ErrorIs(t, err, tc.want, "email %q", tc.email)
	}
}

func TestSignUpAssignsIncrementingIDs(t *testing.T) {
	acc, st := newAccounts(t)
	ctx := context.Background()

	// Ids survive non-numeric entries and gaps: next id is max numeric + 1.
	require.NoError(t, st.Set(ctx, store.KeyUsers, []model.User{
		{ID: "3", Email: "a@example.com"},
		{ID: "legacy", Email: "b@example.com"},
	}))

	u, err := acc.SignUp(ctx, "Jamie", "c@example.com", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "4", u.ID)
}

func TestSignInIndistinguishableFailures(t *testing.T) {
	acc, _ := newAccounts(t)
	ctx := context.Background()
	_, err := acc.SignUp(ctx, "Jamie", "jamie@example.com", "secret1", "secret1")
	require.NoError(t, err)
	require.NoError(t, acc.SignOut(ctx))

	_, wrongPass := acc.SignIn(ctx, "jamie@example.com", "wrong")
	_, unknown := acc.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)

	_, ok := acc.CurrentUser(ctx)
	assert.False(t, ok)
}

func TestSignInMatchesEmailCaseInsensitively(t *testing.T) {
	acc, _ := newAccounts(t)
	ctx := context.Background()
	_, err := acc.SignUp(ctx, "Jamie", "jamie@example.com", "secret1", "secret1")
	require.NoError(t, err)
	require.NoError(t, acc.SignOut(ctx))

	u, err := acc.SignIn(ctx, "Jamie@Example.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", u.Email)
}

func TestSignOutClearsSession(t *testing.T) {
	acc, st := newAccounts(t)
	ctx := context.Background()
	_, err := acc.SignUp(ctx, "Jamie", "jamie@example.com", "secret1", "secret1")
	require.NoError(t, err)

	require.NoError(t, acc.SignOut(ctx))
	_, ok := acc.CurrentUser(ctx)
	assert.False(t, ok)

	var flag string
	assert.ErrorIs(t, st.Get(ctx, store.KeyLoggedIn, &flag), store.ErrNotFound)

	// Signing out twice is harmless.
	require.NoError(t, acc.SignOut(ctx))
}

func TestEnsureSeedAdmin(t *testing.T) {
	acc, st := newAccounts(t)
	ctx := context.Background()

	require.NoError(t, acc.EnsureSeed(ctx))

	admin, err := acc.SignIn(ctx, "admin@sipsandbites.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "1", admin.ID)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, acc.IsAdmin(ctx))

	// Re-seeding never duplicates the account.
	require.NoError(t, acc.EnsureSeed(ctx))
	var users []model.User
	require.NoError(t, st.Get(ctx, store.KeyUsers, &users))
	assert.Len(t, users, 1)
}

func TestCurrentUserIgnoresStaleProjection(t *testing.T) {
	acc, st := newAccounts(t)
	ctx := context.Background()

	// A projection without the logged-in flag is not a session.
	require.NoError(t, st.Set(ctx, store.KeyCurrentUser, model.SessionUser{ID: "9"}))
	_, ok := acc.CurrentUser(ctx)
	assert.False(t, ok)
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"a@b.co", true},
		{"jamie.baker@mail.example.com", true},
		{"@example.com", false},
		{"jamie@.com", false},
		{"jamie@example.c", false},
		{"jamie@examplecom", false},
		{"jamieexample.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, validEmail(tc.email), "email %q", tc.email)
	}
}
