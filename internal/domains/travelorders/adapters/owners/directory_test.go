package owners

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	usermemory "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

func TestDirectoryLookup(t *testing.T) {
	users := usermemory.NewRepository()
	_, err := users.Create(context.Background(), &userdomain.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	dir := NewDirectory(users)
	owner, err := dir.Lookup(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Owner{ID: "u-1", Name: "Alice", Email: "alice@example.com"}, owner)

	_, err = dir.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, userports.ErrNotFound)
}
