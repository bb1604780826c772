package owners

import (
	"context"

	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/domain"
	"github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports"
	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
)

// UserFinder is the slice of the users repository the directory needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Directory resolves travel order owners from the users context.
type Directory struct {
	users UserFinder
}

func NewDirectory(users UserFinder) *Directory {
	return &Directory{users: users}
}

func (d *Directory) Lookup(ctx context.Context, userID string) (domain.Owner, error) {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Owner{}, err
	}
	return domain.Owner{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

var _ ports.OwnerDirectory = (*Directory)(nil)
