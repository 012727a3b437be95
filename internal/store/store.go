// Package store defines the datastore abstraction for crosslist.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/ktnkk/crosslist/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines all data access operations for crosslist.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error

	// Settings. One row per user, created lazily: GetSetting on a user
	// without a row inserts an empty one first.
	GetSetting(ctx context.Context, userID string) (*domain.Setting, error)
	UpdateSetting(ctx context.Context, userID string, patch *domain.SettingPatch) (*domain.Setting, error)

	// Shipping reference data
	GetService(ctx context.Context, id int) (*domain.ShippingService, error)
	ListServices(ctx context.Context) ([]domain.ShippingService, error)
	GetCountry(ctx context.Context, serviceID int, countryCode string) (*domain.Country, error)
	GetShippingRate(ctx context.Context, serviceID int, zone string, weightGrams int) (*domain.ShippingRate, error)
	ListActiveSurcharges(ctx context.Context, serviceID int, at time.Time) ([]domain.ShippingSurcharge, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
