package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/sweetdelights/storefront/internal/model"
	"github.com/sweetdelights/storefront/internal/store"
	"github.com/sweetdelights/storefront/internal/utils"
)

// Seed account created on first use so the storefront is usable without any
// provisioning step. The password is stored as a bcrypt hash like every
// other account.
const (
	seedAdminName     = "Admin User"
	seedAdminEmail    = "admin@sipsandbites.com"
	seedAdminPassword = "password123"
)

// Accounts is the directory of user records. It validates signup,
// authenticates sign-in and tracks the single active session through the
// `isLoggedIn` flag and the `currentUser` projection in the store.
type Accounts struct {
	st         store.Store
	bcryptCost int
}

// NewAccounts returns a directory reading and writing through st.
func NewAccounts(st store.Store, bcryptCost int) *Accounts {
	return &Accounts{st: st, bcryptCost: bcryptCost}
}

// EnsureSeed installs the default admin account when the user list has
// never been written. Calling it again is a no-op.
func (a *Accounts) EnsureSeed(ctx context.Context) error {
	var users []model.User
	err := a.st.Get(ctx, store.KeyUsers, &users)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("accounts: unreadable user list, reseeding: %v", err)
	}
	hash, err := utils.HashPassword(seedAdminPassword, a.bcryptCost)
	if err != nil {
		return err
	}
	admin := model.User{
		ID:        "1",
		Name:      seedAdminName,
		Email:     seedAdminEmail,
		Password:  hash,
		Role:      model.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	return a.st.Set(ctx, store.KeyUsers, []model.User{admin})
}

// SignUp validates the input in a fixed order, stopping at the first
// failing rule, then creates the user with role "user" and signs them in.
func (a *Accounts) SignUp(ctx context.Context, name, email, password, confirm string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if len(name) < 2 {
		return model.User{}, ErrNameTooShort
	}
	if !validEmail(email) {
		return model.User{}, ErrInvalidEmail
	}
	if len(password) < 6 {
		return model.User{}, ErrPasswordTooShort
	}
	if password != confirm {
		return model.User{}, ErrPasswordMismatch
	}

	users := a.loadUsers(ctx)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return model.User{}, ErrEmailTaken
		}
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{
		ID:        nextUserID(users),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      model.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	users = append(users, user)
	if err := a.st.Set(ctx, store.KeyUsers, users); err != nil {
		return model.User{}, err
	}
	if err := a.setSession(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// SignIn matches the email case-insensitively and verifies the password
// against the stored hash. Unknown email and wrong password produce the
// same error on purpose.
func (a *Accounts) SignIn(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range a.loadUsers(ctx) {
		if strings.EqualFold(u.Email, email) && utils.VerifyPassword(u.Password, password) {
			if err := a.setSession(ctx, u); err != nil {
				return model.User{}, err
			}
			return u, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

// SignOut clears the session flag and the cached projection.
func (a *Accounts) SignOut(ctx context.Context) error {
	if err := a.st.Remove(ctx, store.KeyLoggedIn); err != nil {
		return err
	}
	return a.st.Remove(ctx, store.KeyCurrentUser)
}

// CurrentUser returns the cached projection of the active user, or false
// when nobody is signed in.
func (a *Accounts) CurrentUser(ctx context.Context) (model.SessionUser, bool) {
	var flag string
	if err := a.st.Get(ctx, store.KeyLoggedIn, &flag); err != nil || flag != "true" {
		return model.SessionUser{}, false
	}
	var su model.SessionUser
	if err := a.st.Get(ctx, store.KeyCurrentUser, &su); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("accounts: unreadable session projection: %v", err)
		}
		return model.SessionUser{}, false
	}
	return su, true
}

// IsAdmin reports whether the active session belongs to an admin.
func (a *Accounts) IsAdmin(ctx context.Context) bool {
	su, ok := a.CurrentUser(ctx)
	return ok && su.Role == model.RoleAdmin
}

// FindByID returns the full record for an id, used when minting tokens for
// an already-established session.
func (a *Accounts) FindByID(ctx context.Context, id string) (model.User, bool) {
	for _, u := range a.loadUsers(ctx) {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (a *Accounts) setSession(ctx context.Context, u model.User) error {
	if err := a.st.Set(ctx, store.KeyLoggedIn, "true"); err != nil {
		return err
	}
	return a.st.Set(ctx, store.KeyCurrentUser, u.Session())
}

// loadUsers reads the full user list, falling back to an empty one on a
// missing or corrupt key. Storage faults are logged, never fatal.
func (a *Accounts) loadUsers(ctx context.Context) []model.User {
	var users []model.User
	if err := a.st.Get(ctx, store.KeyUsers, &users); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("accounts: unreadable user list: %v", err)
		}
		return nil
	}
	return users
}

// nextUserID is max existing numeric id + 1. Non-numeric ids count as 0.
func nextUserID(users []model.User) string {
	max := 0
	for _, u := range users {
		if n, err := strconv.Atoi(u.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// validEmail applies the signup rule: an '@' not at position
// 0, a '.' after the '@' with at least one character between, and at least
// two characters after the final '.'.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	dot := strings.LastIndex(email, ".")
	return at > 0 && dot > at+1 && dot < len(email)-2
}
