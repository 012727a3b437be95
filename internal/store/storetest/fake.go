// Package storetest provides a function-field fake of store.Store for
// unit tests that don't need a running database.
package storetest

import (
	"context"
	"time"

	"github.com/ktnkk/crosslist/internal/store"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// Fake implements store.Store. Each method delegates to the matching
// function field; unset fields return store.ErrNotFound or zero values.
type Fake struct {
	CreateUserFunc     func(ctx context.Context, u *domain.User) error
	GetUserFunc        func(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	ListUsersFunc      func(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	UpdateUserFunc     func(ctx context.Context, u *domain.User) error
	DeleteUserFunc     func(ctx context.Context, id string) error

	GetSettingFunc    func(ctx context.Context, userID string) (*domain.Setting, error)
	UpdateSettingFunc func(ctx context.Context, userID string, patch *domain.SettingPatch) (*domain.Setting, error)

	GetServiceFunc           func(ctx context.Context, id int) (*domain.ShippingService, error)
	ListServicesFunc         func(ctx context.Context) ([]domain.ShippingService, error)
	GetCountryFunc           func(ctx context.Context, serviceID int, countryCode string) (*domain.Country, error)
	GetShippingRateFunc      func(ctx context.Context, serviceID int, zone string, weightGrams int) (*domain.ShippingRate, error)
	ListActiveSurchargesFunc func(ctx context.Context, serviceID int, at time.Time) ([]domain.ShippingSurcharge, error)

	MigrateFunc func(ctx context.Context) error
	PingFunc    func(ctx context.Context) error
}

var _ store.Store = (*Fake)(nil)

func (f *Fake) CreateUser(ctx context.Context, u *domain.User) error {
	if f.CreateUserFunc == nil {
		return nil
	}
	return f.CreateUserFunc(ctx, u)
}

func (f *Fake) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if f.GetUserFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.GetUserFunc(ctx, id)
}

func (f *Fake) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.GetUserByEmailFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.GetUserByEmailFunc(ctx, email)
}

func (f *Fake) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	if f.ListUsersFunc == nil {
		return nil, 0, nil
	}
	return f.ListUsersFunc(ctx, limit, offset)
}

func (f *Fake) UpdateUser(ctx context.Context, u *domain.User) error {
	if f.UpdateUserFunc == nil {
		return nil
	}
	return f.UpdateUserFunc(ctx, u)
}

func (f *Fake) DeleteUser(ctx context.Context, id string) error {
	if f.DeleteUserFunc == nil {
		return nil
	}
	return f.DeleteUserFunc(ctx, id)
}

func (f *Fake) GetSetting(ctx context.Context, userID string) (*domain.Setting, error) {
	if f.GetSettingFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.GetSettingFunc(ctx, userID)
}

func (f *Fake) UpdateSetting(
	ctx context.Context,
	userID string,
	patch *domain.SettingPatch,
) (*domain.Setting, error) {
	if f.UpdateSettingFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.UpdateSettingFunc(ctx, userID, patch)
}

func (f *Fake) GetService(ctx context.Context, id int) (*domain.ShippingService, error) {
	if f.GetServiceFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.GetServiceFunc(ctx, id)
}

func (f *Fake) ListServices(ctx context.Context) ([]domain.ShippingService, error) {
	if f.ListServicesFunc == nil {
		return nil, nil
	}
	return f.ListServicesFunc(ctx)
}

func (f *Fake) GetCountry(
	ctx context.Context,
	serviceID int,
	countryCode string,
) (*domain.Country, error) {
	if f.GetCountryFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.GetCountryFunc(ctx, serviceID, countryCode)
}

func (f *Fake) GetShippingRate(
	ctx context.Context,
	serviceID int,
	zone string,
	weightGrams int,
) (*domain.ShippingRate, error) {
	if f.GetShippingRateFunc == nil {
		return nil, store.ErrNotFound
	}
	return f.GetShippingRateFunc(ctx, serviceID, zone, weightGrams)
}

func (f *Fake) ListActiveSurcharges(
	ctx context.Context,
	serviceID int,
	at time.Time,
) ([]domain.ShippingSurcharge, error) {
	if f.ListActiveSurchargesFunc == nil {
		return nil, nil
	}
	return f.ListActiveSurchargesFunc(ctx, serviceID, at)
}

func (f *Fake) Migrate(ctx context.Context) error {
	if f.MigrateFunc == nil {
		return nil
	}
	return f.MigrateFunc(ctx)
}

func (f *Fake) Ping(ctx context.Context) error {
	if f.PingFunc == nil {
		return nil
	}
	return f.PingFunc(ctx)
}
