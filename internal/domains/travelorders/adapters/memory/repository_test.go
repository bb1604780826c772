package memory

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
)

func seed(t *testing.T, repo *Repository, id, owner, dest string, created time.Time) {
	t.Helper()
	order, err := domain.NewTravelOrder(id, owner, dest,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), created)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), order)
	require.NoError(t, err)
}

func TestFindByOwner_OrdersNewestFirstWithIDTieBreak(t *testing.T) {
	repo := NewRepository()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seed(t, repo, "a", "u-1", "Paris", base)
	seed(t, repo, "b", "u-1", "Lisbon", base)
	seed(t, repo, "c", "u-1", "Madrid", base.Add(time.Minute))
	seed(t, repo, "d", "u-2", "Paris", base.Add(time.Hour))

	page, err := repo.FindByOwner(context.Background(), "u-1", ports.ListFilter{}, ports.PageRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, []string{"c", "b", "a"}, []string{page.Items[0].ID, page.Items[1].ID, page.Items[2].ID})
}

func TestFindByOwner_Pagination(t *testing.T) {
	repo := NewRepository()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seed(t, repo, fmt.Sprintf("o-%d", i), "u-1", "Paris", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := repo.FindByOwner(context.Background(), "u-1", ports.ListFilter{}, ports.PageRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "o-2", page.Items[0].ID)
	assert.Equal(t, 3, page.LastPage())

	page, err = repo.FindByOwner(context.Background(), "u-1", ports.ListFilter{}, ports.PageRequest{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestFindByOwner_HugePageIsEmpty(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "a", "u-1", "Paris", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	for _, p := range []int{144115188075855873, 1<<62 + 1} {
		page, err := repo.FindByOwner(context.Background(), "u-1", ports.ListFilter{}, ports.PageRequest{Page: p, PerPage: 100})
		require.NoError(t, err)
		assert.Empty(t, page.Items, "page %d", p)
		assert.EqualValues(t, 1, page.Total)
	}
}

func TestPageRequest_OffsetSaturates(t *testing.T) {
	assert.Equal(t, 0, ports.PageRequest{Page: 0, PerPage: 10}.Offset())
	assert.Equal(t, 0, ports.PageRequest{Page: 3, PerPage: 0}.Offset())
	assert.Equal(t, 20, ports.PageRequest{Page: 3, PerPage: 10}.Offset())
	assert.Equal(t, math.MaxInt, ports.PageRequest{Page: 144115188075855873, PerPage: 100}.Offset())
	assert.Equal(t, math.MaxInt, ports.PageRequest{Page: math.MaxInt, PerPage: 2}.Offset())
}

func TestFindByOwner_DestinationIsCaseInsensitive(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "a", "u-1", "Paris, France", time.Now())
	seed(t, repo, "b", "u-1", "Tokyo", time.Now())

	page, err := repo.FindByOwner(context.Background(), "u-1", ports.ListFilter{Destination: "paris"}, ports.PageRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)
}

func TestUpdateStatus_CompareAndSet(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "a", "u-1", "Paris", time.Now())
	now := time.Now().UTC()

	updated, err := repo.UpdateStatus(context.Background(), "a", ports.StatusUpdate{
		Expected: domain.StatusRequested, Status: domain.StatusCanceled, UpdatedAt: now, CanceledAt: &now,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, updated.Status)
	require.NotNil(t, updated.CanceledAt)

	_, err = repo.UpdateStatus(context.Background(), "a", ports.StatusUpdate{
		Expected: domain.StatusRequested, Status: domain.StatusApproved, UpdatedAt: now,
	})
	require.ErrorIs(t, err, ports.ErrStatusConflict)

	_, err = repo.UpdateStatus(context.Background(), "missing", ports.StatusUpdate{Expected: domain.StatusRequested})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestExistsForOwner(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "a", "u-1", "Paris", time.Now())

	ok, err := repo.ExistsForOwner(context.Background(), "a", "u-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForOwner(context.Background(), "a", "u-2")
	require.NoError(t, err)
	assert.False(t, ok)
}
