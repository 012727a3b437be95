package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ktnkk/crosslist/internal/ebay"
	"github.com/ktnkk/crosslist/internal/source"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// envelope is the server's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *envelope) decode(dst any) error {
	if dst == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, dst); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// Login exchanges email and password for an access token and stores it
// on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "/api/v1/token", body, &resp); err != nil {
		return "", err
	}
	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

// CreateUser registers a new user account.
func (c *Client) CreateUser(ctx context.Context, email, name, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "name": name, "password": password}
	var u domain.User
	if err := c.post(ctx, "/api/v1/users", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/v1/users/"+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser deletes a user by ID.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/users/"+id, nil)
}

// GetSettings returns the authenticated user's marketplace settings.
func (c *Client) GetSettings(ctx context.Context) (*domain.Setting, error) {
	var env envelope
	if err := c.get(ctx, "/api/v1/settings", &env); err != nil {
		return nil, err
	}
	var s domain.Setting
	if err := env.decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings applies a partial settings update and returns the
// merged result.
func (c *Client) UpdateSettings(ctx context.Context, patch *domain.SettingPatch) (*domain.Setting, error) {
	var env envelope
	if err := c.put(ctx, "/api/v1/settings", patch, &env); err != nil {
		return nil, err
	}
	var s domain.Setting
	if err := env.decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RegisterProduct submits a listing for registration on the marketplace.
func (c *Client) RegisterProduct(ctx context.Context, req *ebay.ListingRequest) (*ebay.RegisterResult, error) {
	var env envelope
	if err := c.post(ctx, "/api/v1/product-register", req, &env); err != nil {
		return nil, err
	}
	var result ebay.RegisterResult
	if err := env.decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetItem fetches a registered item's summary from the marketplace.
func (c *Client) GetItem(ctx context.Context, itemID string) (*ebay.ItemSummary, error) {
	var env envelope
	if err := c.get(ctx, "/api/v1/items/"+itemID, &env); err != nil {
		return nil, err
	}
	var item ebay.ItemSummary
	if err := env.decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SubmitProductData asks the server to pull product data from a source
// marketplace listing.
func (c *Client) SubmitProductData(ctx context.Context, req *source.FetchRequest) (*source.FetchAck, error) {
	var env envelope
	if err := c.post(ctx, "/api/v1/product-data", req, &env); err != nil {
		return nil, err
	}
	var ack source.FetchAck
	if err := env.decode(&ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListShippingServices returns the configured carrier services.
func (c *Client) ListShippingServices(ctx context.Context) ([]domain.ShippingService, error) {
	var env envelope
	if err := c.get(ctx, "/api/v1/shipping-services", &env); err != nil {
		return nil, err
	}
	var services []domain.ShippingService
	if err := env.decode(&services); err != nil {
		return nil, err
	}
	return services, nil
}

// CalculateShipping requests a shipping quote.
func (c *Client) CalculateShipping(ctx context.Context, serviceID int, countryCode string, weightGrams int) (*domain.ShippingQuote, error) {
	body := map[string]any{
		"service_id":   serviceID,
		"country_code": countryCode,
		"weight":       weightGrams,
	}
	var env envelope
	if err := c.post(ctx, "/api/v1/shipping-calculator", body, &env); err != nil {
		return nil, err
	}
	var quote domain.ShippingQuote
	if err := env.decode(&quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
