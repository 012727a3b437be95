package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/ktnkk/crosslist/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Methods require live Postgres and are covered by the integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// notFound maps pgx.ErrNoRows onto the package sentinel.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// CreateUser inserts a new user and fills in its generated fields.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	args := pgx.NamedArgs{
		"email":         u.Email,
		"name":          u.Name,
		"password_hash": u.PasswordHash,
	}

	err := s.pool.QueryRow(ctx, queryCreateUser, args).Scan(
		&u.ID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by its UUID.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	err := scanUser(s.pool.QueryRow(ctx, queryGetUser, id), u)
	if err != nil {
		return nil, notFound(err, "user "+id)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	err := scanUser(s.pool.QueryRow(ctx, queryGetUserByEmail, email), u)
	if err != nil {
		return nil, notFound(err, "user "+email)
	}
	return u, nil
}

// ListUsers returns a page of users plus the total count.
func (s *PostgresStore) ListUsers(
	ctx context.Context,
	limit, offset int,
) ([]domain.User, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, queryCountUsers).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	rows, err := s.pool.Query(ctx, queryListUsers, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

// UpdateUser updates an existing user's mutable fields.
func (s *PostgresStore) UpdateUser(ctx context.Context, u *domain.User) error {
	args := pgx.NamedArgs{
		"id":            u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"password_hash": u.PasswordHash,
	}

	err := s.pool.QueryRow(ctx, queryUpdateUser, args).Scan(&u.UpdatedAt)
	if err != nil {
		return notFound(err, "user "+u.ID)
	}
	return nil
}

// DeleteUser removes a user. The settings row goes with it via the
// foreign key cascade.
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteUser, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetSetting retrieves a user's settings row, creating an empty one
// first when none exists yet.
func (s *PostgresStore) GetSetting(ctx context.Context, userID string) (*domain.Setting, error) {
	if _, err := s.pool.Exec(ctx, queryEnsureSetting, userID); err != nil {
		return nil, fmt.Errorf("ensuring settings row: %w", err)
	}

	st := &domain.Setting{}
	err := s.pool.QueryRow(ctx, queryGetSetting, userID).Scan(
		&st.UserID,
		&st.YahooClientID, &st.YahooClientSecret,
		&st.EbayClientID, &st.EbayDevID,
		&st.EbayClientSecret, &st.EbayAuthToken,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "settings for user "+userID)
	}
	return st, nil
}

// UpdateSetting applies a partial update to a user's settings and
// returns the merged result. Fields absent from the patch are left as
// they were.
func (s *PostgresStore) UpdateSetting(
	ctx context.Context,
	userID string,
	patch *domain.SettingPatch,
) (*domain.Setting, error) {
	st, err := s.GetSetting(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(st)

	args := pgx.NamedArgs{
		"user_id":             userID,
		"yahoo_client_id":     st.YahooClientID,
		"yahoo_client_secret": st.YahooClientSecret,
		"ebay_client_id":      st.EbayClientID,
		"ebay_dev_id":         st.EbayDevID,
		"ebay_client_secret":  st.EbayClientSecret,
		"ebay_auth_token":     st.EbayAuthToken,
	}

	if err := s.pool.QueryRow(ctx, queryUpdateSetting, args).Scan(&st.UpdatedAt); err != nil {
		return nil, fmt.Errorf("updating settings: %w", err)
	}
	return st, nil
}

// GetService retrieves a carrier service by ID.
func (s *PostgresStore) GetService(ctx context.Context, id int) (*domain.ShippingService, error) {
	svc := &domain.ShippingService{}
	err := s.pool.QueryRow(ctx, queryGetService, id).Scan(&svc.ID, &svc.Name)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("shipping service %d", id))
	}
	return svc, nil
}

// ListServices returns all carrier services.
func (s *PostgresStore) ListServices(ctx context.Context) ([]domain.ShippingService, error) {
	rows, err := s.pool.Query(ctx, queryListServices)
	if err != nil {
		return nil, fmt.Errorf("querying shipping services: %w", err)
	}
	defer rows.Close()

	var services []domain.ShippingService
	for rows.Next() {
		var svc domain.ShippingService
		if err := rows.Scan(&svc.ID, &svc.Name); err != nil {
			return nil, fmt.Errorf("scanning shipping service: %w", err)
		}
		services = append(services, svc)
	}

	return services, rows.Err()
}

// GetCountry retrieves the zone mapping for a country under a service.
func (s *PostgresStore) GetCountry(
	ctx context.Context,
	serviceID int,
	countryCode string,
) (*domain.Country, error) {
	c := &domain.Country{}
	err := s.pool.QueryRow(ctx, queryGetCountry, serviceID, countryCode).Scan(
		&c.ID, &c.Code, &c.Name, &c.NameJP, &c.Zone, &c.ServiceID,
	)
	if err != nil {
		return nil, notFound(err, "country "+countryCode)
	}
	return c, nil
}

// GetShippingRate retrieves the base price for the lightest weight
// bracket covering weightGrams in the given zone.
func (s *PostgresStore) GetShippingRate(
	ctx context.Context,
	serviceID int,
	zone string,
	weightGrams int,
) (*domain.ShippingRate, error) {
	r := &domain.ShippingRate{}
	err := s.pool.QueryRow(ctx, queryGetShippingRate, serviceID, zone, weightGrams).Scan(
		&r.ID, &r.Zone, &r.WeightGrams, &r.BasicPrice, &r.ServiceID,
	)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("shipping rate for zone %s at %dg", zone, weightGrams))
	}
	return r, nil
}

// ListActiveSurcharges returns the surcharges in effect for a service
// on the given date.
func (s *PostgresStore) ListActiveSurcharges(
	ctx context.Context,
	serviceID int,
	at time.Time,
) ([]domain.ShippingSurcharge, error) {
	rows, err := s.pool.Query(ctx, queryListActiveSurcharges, serviceID, at)
	if err != nil {
		return nil, fmt.Errorf("querying surcharges: %w", err)
	}
	defer rows.Close()

	var surcharges []domain.ShippingSurcharge
	for rows.Next() {
		var sc domain.ShippingSurcharge
		if err := rows.Scan(
			&sc.ID, &sc.ServiceID, &sc.Type, &sc.Rate,
			&sc.FixedAmount, &sc.StartDate, &sc.EndDate,
		); err != nil {
			return nil, fmt.Errorf("scanning surcharge: %w", err)
		}
		surcharges = append(surcharges, sc)
	}

	return surcharges, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
}
