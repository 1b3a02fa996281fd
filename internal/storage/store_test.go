package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every DocumentStore must share.
func exerciseStore(t *testing.T, s DocumentStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Read(ctx, "absent.json")
	require.ErrorIs(t, err, ErrNotFound)

	first := []byte(`{"Beverages":[{"name":"Coca Cola","price":5,"descuento":5,"size":"Mediano"}]}`)
	require.NoError(t, s.Write(ctx, "menu.json", first))

	got, err := s.Read(ctx, "menu.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(got))

	second := []byte(`{"Beverages":[]}`)
	require.NoError(t, s.Write(ctx, "menu.json", second))

	got, err = s.Read(ctx, "menu.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(second), string(got))

	// locations are independent
	_, err = s.Read(ctx, "other.json")
	require.ErrorIs(t, err, ErrNotFound)
}
