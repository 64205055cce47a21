// Package repotest holds the behavior every cart store must share.
package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/techhub-store/internal/cart/app"
	"github.com/dwikikusuma/techhub-store/internal/cart/domain"
)

// Run exercises a cart store. newRepo must return an empty store per call.
func Run(t *testing.T, newRepo func(t *testing.T) app.CartRepo) {
	t.Run("add creates then merges", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		first, err := repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)
		assert.NotEmpty(t, first.ID)
		assert.Equal(t, domain.CartItem{ID: first.ID, SessionID: "s1", ProductID: "p1", Quantity: 1}, first)

		merged, err := repo.AddItem(ctx, "s1", "p1", 2)
		require.NoError(t, err)
		assert.Equal(t, first.ID, merged.ID)
		assert.Equal(t, 3, merged.Quantity)

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("merge past the quantity limit is rejected", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		_, err := repo.AddItem(ctx, "s1", "p1", domain.MaxQuantity+1)
		assert.ErrorIs(t, err, domain.ErrQuantityLimit)

		full, err := repo.AddItem(ctx, "s1", "p1", domain.MaxQuantity-1)
		require.NoError(t, err)
		full, err = repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxQuantity, full.Quantity)

		_, err = repo.AddItem(ctx, "s1", "p1", 1)
		assert.ErrorIs(t, err, domain.ErrQuantityLimit)

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, full.ID, items[0].ID)
		assert.Equal(t, domain.MaxQuantity, items[0].Quantity)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		a, err := repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)
		b, err := repo.AddItem(ctx, "s2", "p1", 4)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)

		empty, err := repo.ListItems(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("list keeps first-added order", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		for _, p := range []string{"p3", "p1", "p2", "p1"} {
			_, err := repo.AddItem(ctx, "s1", p, 1)
			require.NoError(t, err)
		}

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"p3", "p1", "p2"}, productIDs(items))
		assert.Equal(t, 2, items[1].Quantity)
	})

	t.Run("get and set quantity", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		item, err := repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)

		got, ok, err := repo.GetItem(ctx, item.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, item, got)

		updated, ok, err := repo.SetQuantity(ctx, item.ID, 7)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 7, updated.Quantity)
		assert.Equal(t, "s1", updated.SessionID)
		assert.Equal(t, "p1", updated.ProductID)

		_, ok, err = repo.SetQuantity(ctx, "missing", 2)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = repo.GetItem(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		a, err := repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)
		_, err = repo.AddItem(ctx, "s1", "p2", 1)
		require.NoError(t, err)

		removed, err := repo.RemoveItem(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.RemoveItem(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, productIDs(items))

		again, err := repo.AddItem(ctx, "s1", "p1", 5)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, again.ID)
		assert.Equal(t, 5, again.Quantity)
	})

	t.Run("clear only touches its session", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		_, err := repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)
		_, err = repo.AddItem(ctx, "s1", "p2", 1)
		require.NoError(t, err)
		keep, err := repo.AddItem(ctx, "s2", "p1", 3)
		require.NoError(t, err)

		require.NoError(t, repo.ClearSession(ctx, "s1"))
		require.NoError(t, repo.ClearSession(ctx, "never-used"))

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, items)

		other, err := repo.ListItems(ctx, "s2")
		require.NoError(t, err)
		require.Len(t, other, 1)
		assert.Equal(t, keep.ID, other[0].ID)

		fresh, err := repo.AddItem(ctx, "s1", "p1", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, fresh.Quantity)
	})

	t.Run("concurrent adds merge into one line", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		const N = 50
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < N; i++ {
			g.Go(func() error {
				_, err := repo.AddItem(gctx, "s1", "p1", 1)
				return err
			})
		}
		require.NoError(t, g.Wait())

		items, err := repo.ListItems(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, N, items[0].Quantity)
	})
}

func productIDs(items []domain.CartItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}
