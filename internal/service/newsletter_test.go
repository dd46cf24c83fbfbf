package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetdelights/storefront/internal/store"
)

func TestNewsletterSubscribe(t *testing.T) {
	nl := NewNewsletter(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, nl.Subscribe(ctx, " jamie@example.com "))
	assert.Equal(t, []string{"jamie@example.com"}, nl.Subscribers(ctx))

	// Duplicate addresses are accepted silently, case-insensitively.
	require.NoError(t, nl.Subscribe(ctx, "JAMIE@example.com"))
	assert.Len(t, nl.Subscribers(ctx), 1)

	require.NoError(t, nl.Subscribe(ctx, "sam@example.com"))
	assert.Len(t, nl.Subscribers(ctx), 2)
}

func TestNewsletterRejectsInvalidEmail(t *testing.T) {
	nl := NewNewsletter(store.NewMemory())
	ctx := context.Background()

	err := nl.Subscribe(ctx, "not-an-email")
	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, nl.Subscribers(ctx))
}
