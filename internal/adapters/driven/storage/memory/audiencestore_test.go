package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

func TestAudienceStore_SaveRefreshesExisting(t *testing.T) {
	store := NewAudienceStore()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.Audience{Value: "veterans", Label: "Veterans", AddedAt: t0}))
	require.NoError(t, store.Save(ctx, domain.Audience{Value: "transfer", Label: "Transfer", AddedAt: t0}))
	require.NoError(t, store.Save(ctx, domain.Audience{Value: "veterans", Label: "Vets", AddedAt: t0.Add(time.Hour)}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "veterans", list[0].Value)
	assert.Equal(t, "Vets", list[0].Label)
	assert.Equal(t, t0.Add(time.Hour), list[0].AddedAt)
}

func TestAudienceStore_DeleteBefore(t *testing.T) {
	store := NewAudienceStore()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.Audience{Value: "a", AddedAt: t0}))
	require.NoError(t, store.Save(ctx, domain.Audience{Value: "b", AddedAt: t0.Add(2 * time.Hour)}))

	n, err := store.DeleteBefore(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Value)
}
