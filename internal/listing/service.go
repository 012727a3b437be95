// Package listing implements product registration and retrieval on the
// marketplace, one service instance per seller.
package listing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ktnkk/crosslist/internal/currency"
	"github.com/ktnkk/crosslist/internal/ebay"
	"github.com/ktnkk/crosslist/internal/metrics"
	"github.com/ktnkk/crosslist/internal/notify"
)

// Marketplace is the subset of marketplace operations the service
// dispatches to.
type Marketplace interface {
	RegisterItem(ctx context.Context, r *ebay.ListingRequest) (*ebay.RegisterResult, error)
	GetItem(ctx context.Context, itemID string) (*ebay.ItemSummary, error)
}

// ValidationError reports a rejected listing payload, enumerating every
// failed field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid listing payload: " + strings.Join(e.Fields, "; ")
}

// Service registers and retrieves listings for a single seller.
type Service struct {
	market    Marketplace
	converter currency.Converter
	notifier  notify.Notifier
	validate  *validator.Validate
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithNotifier announces successful registrations through n. Delivery
// failures never fail the registration itself.
func WithNotifier(n notify.Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// NewService creates a listing service over the given marketplace
// client and currency converter.
func NewService(market Marketplace, conv currency.Converter, opts ...ServiceOption) *Service {
	s := &Service{
		market:    market,
		converter: conv,
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterProduct validates the payload, converts JPY amounts to USD,
// and registers the item on the marketplace.
func (s *Service) RegisterProduct(
	ctx context.Context,
	req *ebay.ListingRequest,
) (*ebay.RegisterResult, error) {
	if err := s.validatePayload(req); err != nil {
		return nil, err
	}

	if err := s.adjustCurrency(ctx, req); err != nil {
		return nil, fmt.Errorf("adjusting currency: %w", err)
	}

	result, err := s.market.RegisterItem(ctx, req)
	if err != nil {
		metrics.ListingRegisterFailuresTotal.Inc()
		return nil, err
	}

	metrics.ListingsRegisteredTotal.Inc()
	s.announce(ctx, req, result)
	return result, nil
}

func (s *Service) announce(ctx context.Context, req *ebay.ListingRequest, result *ebay.RegisterResult) {
	if s.notifier == nil {
		return
	}

	ev := &notify.ListingEvent{
		Title:    req.Title,
		ItemID:   result.ItemID,
		Price:    strconv.FormatFloat(req.StartPrice.Value, 'f', 2, 64),
		Currency: req.Currency,
	}
	for _, fee := range result.Fees.Fee {
		ev.Fees = append(ev.Fees, notify.FeeLine{Name: fee.Name, Amount: fee.Amount.Value})
	}

	if err := s.notifier.ListingRegistered(ctx, ev); err != nil {
		metrics.NotificationFailuresTotal.Inc()
	}
}

// GetItem retrieves a listed item's summary.
func (s *Service) GetItem(ctx context.Context, itemID string) (*ebay.ItemSummary, error) {
	if itemID == "" {
		return nil, &ValidationError{Fields: []string{"itemId is required"}}
	}
	return s.market.GetItem(ctx, itemID)
}

func (s *Service) validatePayload(req *ebay.ListingRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describeFieldError(fe))
	}
	return &ValidationError{Fields: fields}
}

func describeFieldError(fe validator.FieldError) string {
	// Strip the leading struct name from the namespace.
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// adjustCurrency converts JPY amounts to USD in place: the start price
// and every shipping service cost, with their currency tags. Payloads
// in other currencies pass through untouched.
func (s *Service) adjustCurrency(ctx context.Context, req *ebay.ListingRequest) error {
	if req.Currency != "JPY" {
		return nil
	}

	converted, err := s.converter.Convert(ctx, req.StartPrice.Value, "JPY", "USD")
	if err != nil {
		return err
	}
	req.StartPrice.Value = converted
	req.StartPrice.CurrencyID = "USD"

	for i := range req.ShippingDetails.ShippingServiceOptions {
		opt := &req.ShippingDetails.ShippingServiceOptions[i]
		if opt.ShippingServiceCost == nil {
			continue
		}
		converted, err := s.converter.Convert(ctx, opt.ShippingServiceCost.Value, "JPY", "USD")
		if err != nil {
			return err
		}
		opt.ShippingServiceCost.Value = converted
		opt.ShippingServiceCost.CurrencyID = "USD"
	}

	req.Currency = "USD"
	return nil
}
