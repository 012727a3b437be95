package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ktnkk/crosslist/internal/api/middleware"
	"github.com/ktnkk/crosslist/internal/ebay"
	"github.com/ktnkk/crosslist/internal/listing"
	"github.com/ktnkk/crosslist/internal/store"
)

// ListingService is the per-seller listing surface the handlers call.
// *listing.Service satisfies it.
type ListingService interface {
	RegisterProduct(ctx context.Context, req *ebay.ListingRequest) (*ebay.RegisterResult, error)
	GetItem(ctx context.Context, itemID string) (*ebay.ItemSummary, error)
}

// ServiceResolver yields the listing service for a given seller.
type ServiceResolver func(ctx context.Context, userID string) (ListingService, error)

// ResolveWithFactory adapts a listing.Factory into a ServiceResolver.
func ResolveWithFactory(f *listing.Factory) ServiceResolver {
	return func(ctx context.Context, userID string) (ListingService, error) {
		return f.ForUser(ctx, userID)
	}
}

// ListingHandler handles product registration and item retrieval.
type ListingHandler struct {
	resolve ServiceResolver
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(resolve ServiceResolver) *ListingHandler {
	return &ListingHandler{resolve: resolve}
}

// Register handles POST /api/v1/product-register.
func (h *ListingHandler) Register(c echo.Context) error {
	const failMsg = "Failed to register product on eBay"

	var req ebay.ListingRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, failMsg, err)
	}

	svc, err := h.resolve(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, registerErrorStatus(err), failMsg, err)
	}

	result, err := svc.RegisterProduct(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, registerErrorStatus(err), failMsg, err)
	}

	return respond(c, http.StatusOK, "Successfully registered product on eBay", result)
}

// Item handles GET /api/v1/items/:id.
func (h *ListingHandler) Item(c echo.Context) error {
	const failMsg = "Failed to fetch item from eBay"

	svc, err := h.resolve(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, registerErrorStatus(err), failMsg, err)
	}

	item, err := svc.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ebay.ErrItemNotFound) {
			return respondError(c, http.StatusNotFound, failMsg, err)
		}
		return respondError(c, registerErrorStatus(err), failMsg, err)
	}

	return respond(c, http.StatusOK, "Successfully fetched item from eBay", item)
}

// registerErrorStatus maps listing errors to HTTP statuses: caller
// mistakes and marketplace rejections are 400s, throttling is 429, and
// anything transport-shaped is a 502.
func registerErrorStatus(err error) int {
	var (
		validationErr *listing.ValidationError
		credErr       *ebay.CredentialError
		apiErr        *ebay.APIError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &credErr), errors.As(err, &apiErr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ebay.ErrDailyLimitReached):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}
