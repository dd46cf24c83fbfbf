// Package service implements the storefront core: account directory,
// product catalog, shopping cart and newsletter list. Every service is an
// explicit object constructed with an injected store; none of them hold
// global state. Sentinel errors defined here let handlers translate
// failures into precise HTTP responses.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// Account errors, in the order signup evaluates its rules.
var (
	ErrNameTooShort     = errors.New("name must be at least 2 characters long")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("an account with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password;
	// sign-in deliberately does not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Cart errors.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrEmptyCart           = errors.New("your cart is empty")
	ErrInvalidPromoCode    = errors.New("invalid promo code")
	ErrPromoAlreadyApplied = errors.New("this promo code is already applied")
	ErrQuantityTooLarge    = errors.New("maximum quantity is 10")
)

// FieldError attaches a validation message to the field that failed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationErrors aggregates every failed field of one request so a caller
// can show all problems at once. Catalog input validation uses this;
// account signup intentionally does not (it stops at the first failure).
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// ByField returns the messages keyed by field name.
func (v ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		out[e.Field] = e.Message
	}
	return out
}
