//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/migrations"
)

func setupTravelOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("travel_orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func insertUser(t *testing.T, db *gorm.DB) string {
	t.Helper()
	id := uuid.NewString()
	err := db.Exec(
		"INSERT INTO users (id, name, email, password_hash, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, false, NOW(), NOW())",
		id, "Traveller", id+"@example.com", "x",
	).Error
	require.NoError(t, err)
	return id
}

func newOrder(t *testing.T, owner, dest string, created time.Time) *domain.TravelOrder {
	t.Helper()
	order, err := domain.NewTravelOrder(uuid.NewString(), owner, dest,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), created)
	require.NoError(t, err)
	return order
}

func TestRepository_CreateFindAndOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupTravelOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	alice, bob := insertUser(t, db), insertUser(t, db)

	created, err := repo.Create(ctx, newOrder(t, alice, "Paris, France", time.Now()))
	require.NoError(t, err)

	fetched, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris, France", fetched.Destination)
	assert.Equal(t, domain.StatusRequested, fetched.Status)
	assert.Equal(t, "2024-06-01", fetched.DepartureDate.Format("2006-01-02"))

	owned, err := repo.ExistsForOwner(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.True(t, owned)
	owned, err = repo.ExistsForOwner(ctx, created.ID, bob)
	require.NoError(t, err)
	assert.False(t, owned)

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	owned, err = repo.ExistsForOwner(ctx, "abc", alice)
	require.NoError(t, err)
	assert.False(t, owned)
	_, err = repo.UpdateStatus(ctx, "abc", ports.StatusUpdate{
		Expected: domain.StatusRequested, Status: domain.StatusApproved, UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_FindByOwnerFiltersAndOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupTravelOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	alice, bob := insertUser(t, db), insertUser(t, db)
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	for i, dest := range []string{"Paris", "Lisbon", "Paris Disneyland"} {
		_, err := repo.Create(ctx, newOrder(t, alice, dest, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newOrder(t, bob, "Paris", base))
	require.NoError(t, err)

	page, err := repo.FindByOwner(ctx, alice, ports.ListFilter{Destination: "paris"}, ports.PageRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, "Paris Disneyland", page.Items[0].Destination)
	for _, item := range page.Items {
		assert.Equal(t, alice, item.OwnerID)
	}

	page, err = repo.FindByOwner(ctx, alice, ports.ListFilter{}, ports.PageRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Paris", page.Items[0].Destination)
	assert.Equal(t, int64(3), page.Total)
}

func TestRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupTravelOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	order, err := repo.Create(ctx, newOrder(t, insertUser(t, db), "Paris", time.Now()))
	require.NoError(t, err)

	targets := []domain.Status{domain.StatusApproved, domain.StatusCanceled}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target domain.Status) {
			defer wg.Done()
			now := time.Now().UTC()
			update := ports.StatusUpdate{Expected: domain.StatusRequested, Status: target, UpdatedAt: now}
			if target == domain.StatusCanceled {
				update.CanceledAt = &now
			}
			_, errs[i] = repo.UpdateStatus(ctx, order.ID, update)
		}(i, target)
	}
	wg.Wait()

	var conflicts int
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ports.ErrStatusConflict, fmt.Sprint(err))
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts)

	_, err = repo.UpdateStatus(ctx, uuid.NewString(), ports.StatusUpdate{Expected: domain.StatusRequested})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
