package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	type record struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	require.NoError(t, st.Set(ctx, "k", record{Name: "Croissant", Price: 8.99}))

	var got record
	require.NoError(t, st.Get(ctx, "k", &got))
	assert.Equal(t, "Croissant", got.Name)
	assert.InDelta(t, 8.99, got.Price, 1e-9)
}

func TestMemoryGetMissingKey(t *testing.T) {
	st := NewMemory()
	var dest string
	err := st.Get(context.Background(), "absent", &dest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRemove(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "k", "v"))

	require.NoError(t, st.Remove(ctx, "k"))
	var dest string
	assert.ErrorIs(t, st.Get(ctx, "k", &dest), ErrNotFound)

	// Removing an absent key is fine.
	require.NoError(t, st.Remove(ctx, "k"))
}

func TestMemoryClear(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "a", 1))
	require.NoError(t, st.Set(ctx, "b", 2))

	require.NoError(t, st.Clear(ctx))
	var dest int
	assert.ErrorIs(t, st.Get(ctx, "a", &dest), ErrNotFound)
	assert.ErrorIs(t, st.Get(ctx, "b", &dest), ErrNotFound)
}

func TestMemoryCorruptValueSurfacesDecodeError(t *testing.T) {
	st := NewMemory()
	st.SetRaw("k", []byte(`{"broken`))

	var dest map[string]string
	err := st.Get(context.Background(), "k", &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
