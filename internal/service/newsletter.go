package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/sweetdelights/storefront/internal/store"
)

// Newsletter keeps the deduplicated subscriber list under the
// `newsletter_subscribers` key.
type Newsletter struct {
	st store.Store
}

// NewNewsletter returns a subscriber list over st.
func NewNewsletter(st store.Store) *Newsletter {
	return &Newsletter{st: st}
}

// Subscribe adds the email to the list. Re-subscribing an existing address
// is a silent success; the list never holds duplicates.
func (n *Newsletter) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	subs := n.load(ctx)
	for _, s := range subs {
		if strings.EqualFold(s, email) {
			return nil
		}
	}
	return n.st.Set(ctx, store.KeyNewsletter, append(subs, email))
}

// Subscribers returns the current list.
func (n *Newsletter) Subscribers(ctx context.Context) []string {
	return n.load(ctx)
}

func (n *Newsletter) load(ctx context.Context) []string {
	var subs []string
	if err := n.st.Get(ctx, store.KeyNewsletter, &subs); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("newsletter: unreadable subscriber list: %v", err)
		}
		return nil
	}
	return subs
}
